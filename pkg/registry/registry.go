// Package registry provides the training-job store backing the mltrain
// service.
//
// It provides methods to manage training jobs:
//   - Submit: Validates and records a new job in pending status.
//   - Get: Returns a snapshot of a job.
//   - List: Returns jobs of one organization, optionally filtered by status.
//   - Cancel: Moves a non-terminal job to canceled status.
//
// ## Lifecycle:
// Jobs move pending → in_progress → completed/failed, or to canceled from any
// non-terminal status. The registry tracks status, it does not schedule or run
// training; the Start, Complete and Fail transitions are driven by whatever
// executes the work.
//
// ## Concurrency:
// All methods are safe for concurrent use. Snapshots returned by Get and List
// are deep copies and never share memory with the registry's own records.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modelkit/mltrain/pkg/trainpb"
)

// The Registry stores training jobs for the mltrain service.
type Registry struct {
	mutex sync.Mutex
	jobs  map[string]*trainpb.TrainingJobMetadata
	order []string // ids in submission order, the order List reports

	newID func() string
	now   func() time.Time
}

// New creates a new Registry with the given options.
func New(opts ...Option) *Registry {
	r := &Registry{
		jobs:  make(map[string]*trainpb.TrainingJobMetadata),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Option is a functional option for the Registry.
type Option func(*Registry)

// WithIDFunc sets the id generator for new jobs, e.g. a deterministic
// sequence in tests. The default generates UUIDs.
func WithIDFunc(newID func() string) Option {
	return func(r *Registry) {
		r.newID = newID
	}
}

// WithClock sets the time source used for job timestamps. The default is
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// Submit validates the request and records a new job in pending status. It
// returns the id assigned to the job. The request is copied; the caller's
// value is not retained.
func (r *Registry) Submit(req *trainpb.SubmitTrainingJobRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	id := r.newID()
	now := r.now()
	r.jobs[id] = &trainpb.TrainingJobMetadata{
		ID:           id,
		Request:      req.Clone(),
		Status:       trainpb.TrainingStatusPending,
		Created:      now,
		LastModified: now,
	}
	r.order = append(r.order, id)
	return id, nil
}

// Get returns a snapshot of the job with the given id.
func (r *Registry) Get(id string) (*trainpb.TrainingJobMetadata, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	job, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return job.Clone(), nil
}

// List returns snapshots of the organization's jobs in submission order.
// A status of TrainingStatusUnspecified matches every status. An organization
// with no matching jobs yields an empty slice.
func (r *Registry) List(orgID string, status trainpb.TrainingStatus) []*trainpb.TrainingJobMetadata {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	jobs := []*trainpb.TrainingJobMetadata{}
	for _, id := range r.order {
		job := r.jobs[id]
		if job.Request.OrganizationID != orgID {
			continue
		}
		if status != trainpb.TrainingStatusUnspecified && job.Status != status {
			continue
		}
		jobs = append(jobs, job.Clone())
	}
	return jobs
}

// Cancel moves the job with the given id to canceled status. Canceling a job
// that already reached a terminal status is an ErrState failure, never a
// silent success.
func (r *Registry) Cancel(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	job, err := r.get(id)
	if err != nil {
		return err
	}
	if job.Status.Terminal() {
		return fmt.Errorf("%w: cannot cancel job %q with status %s", ErrState, id, job.Status)
	}
	r.transition(job, trainpb.TrainingStatusCanceled)
	job.TrainingEnded = r.now()
	return nil
}

// Start moves a pending job to in_progress status and stamps the training
// start time.
func (r *Registry) Start(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	job, err := r.get(id)
	if err != nil {
		return err
	}
	if job.Status != trainpb.TrainingStatusPending {
		return fmt.Errorf("%w: cannot start job %q with status %s", ErrState, id, job.Status)
	}
	r.transition(job, trainpb.TrainingStatusInProgress)
	job.TrainingStarted = job.LastModified
	return nil
}

// Complete moves an in_progress job to completed status and records the id of
// the synced model artifact.
func (r *Registry) Complete(id, syncedModelID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	job, err := r.get(id)
	if err != nil {
		return err
	}
	if job.Status != trainpb.TrainingStatusInProgress {
		return fmt.Errorf("%w: cannot complete job %q with status %s", ErrState, id, job.Status)
	}
	r.transition(job, trainpb.TrainingStatusCompleted)
	job.TrainingEnded = job.LastModified
	job.SyncedModelID = syncedModelID
	return nil
}

// Fail moves a pending or in_progress job to failed status and records the
// failure details.
func (r *Registry) Fail(id, details string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	job, err := r.get(id)
	if err != nil {
		return err
	}
	if job.Status != trainpb.TrainingStatusPending && job.Status != trainpb.TrainingStatusInProgress {
		return fmt.Errorf("%w: cannot fail job %q with status %s", ErrState, id, job.Status)
	}
	r.transition(job, trainpb.TrainingStatusFailed)
	job.TrainingEnded = job.LastModified
	job.ErrorDetails = details
	return nil
}

// get retrieves a job by id. It must be called with r.mutex held.
func (r *Registry) get(id string) (*trainpb.TrainingJobMetadata, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrJobNotFound, id)
	}
	return job, nil
}

// transition updates the job status and last-modified time. It must be called
// with r.mutex held.
func (r *Registry) transition(job *trainpb.TrainingJobMetadata, status trainpb.TrainingStatus) {
	job.Status = status
	job.LastModified = r.now()
}

// validate checks the fields the service requires on submission.
func validate(req *trainpb.SubmitTrainingJobRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidJob)
	}
	if req.OrganizationID == "" {
		return fmt.Errorf("%w: empty organization id", ErrInvalidJob)
	}
	if req.ModelName == "" {
		return fmt.Errorf("%w: empty model name", ErrInvalidJob)
	}
	if req.ModelVersion == "" {
		return fmt.Errorf("%w: empty model version", ErrInvalidJob)
	}
	switch req.ModelType {
	case trainpb.ModelTypeSingleLabelClassification, trainpb.ModelTypeMultiLabelClassification, trainpb.ModelTypeObjectDetection:
		return nil
	}
	return fmt.Errorf("%w: unknown model type %s", ErrInvalidJob, req.ModelType)
}
