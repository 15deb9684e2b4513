// Package trainpb defines the wire types and gRPC plumbing for the
// MLTrainingService.
//
// The message definitions are hand-maintained rather than generated: messages
// travel as JSON frames over gRPC using the codec registered by this package
// (see codec.go), so no protoc step is required to build or evolve the
// service. Field names and enum values are part of the wire contract and must
// not be changed once released.
package trainpb

import (
	"fmt"
	"time"
)

// ModelType classifies the kind of model a training job produces.
type ModelType int32

// Recognized model types. ModelTypeUnspecified is not a valid submission
// value; the service rejects it.
const (
	ModelTypeUnspecified ModelType = iota
	ModelTypeSingleLabelClassification
	ModelTypeMultiLabelClassification
	ModelTypeObjectDetection
)

// String returns the lower_snake wire name of the model type.
func (m ModelType) String() string {
	switch m {
	case ModelTypeUnspecified:
		return "unspecified"
	case ModelTypeSingleLabelClassification:
		return "single_label_classification"
	case ModelTypeMultiLabelClassification:
		return "multi_label_classification"
	case ModelTypeObjectDetection:
		return "object_detection"
	}
	return fmt.Sprintf("ModelType(%d)", int32(m))
}

// ParseModelType converts a wire name as returned by [ModelType.String] back
// to its enum value.
func ParseModelType(s string) (ModelType, error) {
	switch s {
	case "unspecified":
		return ModelTypeUnspecified, nil
	case "single_label_classification":
		return ModelTypeSingleLabelClassification, nil
	case "multi_label_classification":
		return ModelTypeMultiLabelClassification, nil
	case "object_detection":
		return ModelTypeObjectDetection, nil
	}
	return ModelTypeUnspecified, fmt.Errorf("unknown model type %q", s)
}

// TrainingStatus is the lifecycle state of a training job as reported by the
// service.
//
// TrainingStatusUnspecified is a sentinel: in [ListTrainingJobsRequest] it
// means "no status filter" and it is never the status of an actual job.
type TrainingStatus int32

const (
	TrainingStatusUnspecified TrainingStatus = iota
	TrainingStatusPending
	TrainingStatusInProgress
	TrainingStatusCompleted
	TrainingStatusFailed
	TrainingStatusCanceled
	TrainingStatusCanceling
)

// Terminal reports whether the status is an end state. Terminal jobs cannot
// be canceled.
func (s TrainingStatus) Terminal() bool {
	return s == TrainingStatusCompleted || s == TrainingStatusFailed || s == TrainingStatusCanceled
}

// String returns the lower_snake wire name of the status.
func (s TrainingStatus) String() string {
	switch s {
	case TrainingStatusUnspecified:
		return "unspecified"
	case TrainingStatusPending:
		return "pending"
	case TrainingStatusInProgress:
		return "in_progress"
	case TrainingStatusCompleted:
		return "completed"
	case TrainingStatusFailed:
		return "failed"
	case TrainingStatusCanceled:
		return "canceled"
	case TrainingStatusCanceling:
		return "canceling"
	}
	return fmt.Sprintf("TrainingStatus(%d)", int32(s))
}

// ParseTrainingStatus converts a wire name as returned by
// [TrainingStatus.String] back to its enum value.
func ParseTrainingStatus(s string) (TrainingStatus, error) {
	switch s {
	case "unspecified":
		return TrainingStatusUnspecified, nil
	case "pending":
		return TrainingStatusPending, nil
	case "in_progress":
		return TrainingStatusInProgress, nil
	case "completed":
		return TrainingStatusCompleted, nil
	case "failed":
		return TrainingStatusFailed, nil
	case "canceled":
		return TrainingStatusCanceled, nil
	case "canceling":
		return TrainingStatusCanceling, nil
	}
	return TrainingStatusUnspecified, fmt.Errorf("unknown training status %q", s)
}

// Filter is a structured predicate selecting which data records participate
// in training. It is owned by the data service; the training service and its
// clients treat it as pass-through. A nil *Filter means "include all data",
// which is distinct from an empty Filter value.
type Filter struct {
	ComponentName   string    `json:"component_name,omitempty"`
	ComponentType   string    `json:"component_type,omitempty"`
	Method          string    `json:"method,omitempty"`
	RobotID         string    `json:"robot_id,omitempty"`
	LocationIDs     []string  `json:"location_ids,omitempty"`
	OrganizationIDs []string  `json:"organization_ids,omitempty"`
	MimeTypes       []string  `json:"mime_types,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	DatasetID       string    `json:"dataset_id,omitempty"`
	IntervalStart   time.Time `json:"interval_start"`
	IntervalEnd     time.Time `json:"interval_end"`
}

// SubmitTrainingJobRequest asks the service to schedule a new training job.
type SubmitTrainingJobRequest struct {
	OrganizationID string    `json:"organization_id"`
	ModelName      string    `json:"model_name"`
	ModelVersion   string    `json:"model_version"`
	ModelType      ModelType `json:"model_type"`
	Tags           []string  `json:"tags,omitempty"`
	Filter         *Filter   `json:"filter,omitempty"`
}

// SubmitTrainingJobResponse carries the id assigned to the new job.
type SubmitTrainingJobResponse struct {
	ID string `json:"id"`
}

type GetTrainingJobRequest struct {
	ID string `json:"id"`
}

type GetTrainingJobResponse struct {
	Metadata *TrainingJobMetadata `json:"metadata"`
}

// ListTrainingJobsRequest enumerates jobs of one organization.
// A Status of TrainingStatusUnspecified returns jobs of every status.
type ListTrainingJobsRequest struct {
	OrganizationID string         `json:"organization_id"`
	Status         TrainingStatus `json:"status"`
}

type ListTrainingJobsResponse struct {
	Jobs []*TrainingJobMetadata `json:"jobs"`
}

type CancelTrainingJobRequest struct {
	ID string `json:"id"`
}

type CancelTrainingJobResponse struct{}

// TrainingJobMetadata is the service's read-only snapshot of a job. It embeds
// the request the job was submitted with.
type TrainingJobMetadata struct {
	ID              string                    `json:"id"`
	Request         *SubmitTrainingJobRequest `json:"request"`
	Status          TrainingStatus            `json:"status"`
	ErrorDetails    string                    `json:"error_details,omitempty"`
	Created         time.Time                 `json:"created"`
	LastModified    time.Time                 `json:"last_modified"`
	TrainingStarted time.Time                 `json:"training_started"`
	TrainingEnded   time.Time                 `json:"training_ended"`
	SyncedModelID   string                    `json:"synced_model_id,omitempty"`
}
