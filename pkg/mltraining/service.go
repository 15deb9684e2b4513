package mltraining

import (
	"context"
	"errors"
	"log/slog"

	"github.com/modelkit/mltrain/pkg/registry"
	"github.com/modelkit/mltrain/pkg/trainpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service implements the gRPC interface trainpb.MLTrainingServiceServer.
//
// It requires that the [registry.Registry] is initialized. It is a lower
// integration point than the [Server] type for custom security setup or
// testing: the auth interceptor is wired by [NewServer], not here.
//
// It implements the gRPC layer to access [registry.Registry] methods to:
//   - Submit training jobs.
//   - Retrieve training job metadata.
//   - List an organization's training jobs.
//   - Cancel training jobs.
type Service struct {
	Registry *registry.Registry
}

// SubmitTrainingJob records a new training job and returns its assigned id.
// Invalid submissions are rejected with codes.InvalidArgument.
func (s *Service) SubmitTrainingJob(ctx context.Context, req *trainpb.SubmitTrainingJobRequest) (*trainpb.SubmitTrainingJobResponse, error) {
	id, err := s.Registry.Submit(req)
	if err != nil {
		return nil, statusError(err, "")
	}
	slog.Info("training job submitted", "id", id, "org", req.OrganizationID, "model", req.ModelName, "caller", Caller(ctx))
	return &trainpb.SubmitTrainingJobResponse{ID: id}, nil
}

// GetTrainingJob returns the metadata snapshot of the job with the requested
// id, or codes.NotFound if no such job exists.
func (s *Service) GetTrainingJob(_ context.Context, req *trainpb.GetTrainingJobRequest) (*trainpb.GetTrainingJobResponse, error) {
	md, err := s.Registry.Get(req.ID)
	if err != nil {
		return nil, statusError(err, req.ID)
	}
	return &trainpb.GetTrainingJobResponse{Metadata: md}, nil
}

// ListTrainingJobs returns the organization's jobs in submission order. A
// request status of TrainingStatusUnspecified matches jobs of every status.
// An organization with no matching jobs yields an empty list, not an error.
func (s *Service) ListTrainingJobs(_ context.Context, req *trainpb.ListTrainingJobsRequest) (*trainpb.ListTrainingJobsResponse, error) {
	jobs := s.Registry.List(req.OrganizationID, req.Status)
	return &trainpb.ListTrainingJobsResponse{Jobs: jobs}, nil
}

// CancelTrainingJob cancels the job with the requested id. Jobs that already
// reached a terminal status are rejected with codes.FailedPrecondition.
func (s *Service) CancelTrainingJob(ctx context.Context, req *trainpb.CancelTrainingJobRequest) (*trainpb.CancelTrainingJobResponse, error) {
	if err := s.Registry.Cancel(req.ID); err != nil {
		return nil, statusError(err, req.ID)
	}
	slog.Info("training job canceled", "id", req.ID, "caller", Caller(ctx))
	return &trainpb.CancelTrainingJobResponse{}, nil
}

// statusError converts a registry error to a gRPC status error.
func statusError(err error, id string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, registry.ErrInvalidJob):
		return status.Errorf(codes.InvalidArgument, "%v", err)
	case errors.Is(err, registry.ErrJobNotFound):
		return status.Errorf(codes.NotFound, "training job %q not found", id)
	case errors.Is(err, registry.ErrState):
		return status.Errorf(codes.FailedPrecondition, "%v", err)
	}
	return status.Errorf(codes.Internal, "training job %q: %v", id, err)
}
