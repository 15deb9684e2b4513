package mltraining

import (
	"context"

	"github.com/modelkit/mltrain/pkg/trainpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client is the training-job lifecycle facade over the MLTrainingService.
//
// It borrows an established connection and attaches a fixed set of
// authorization metadata to every call. The connection's lifecycle (closing,
// reconnecting) remains the caller's responsibility; see [Conn] for a wrapper
// that owns its connection.
//
// The client holds no per-call state: each operation is an independent remote
// call, safe to issue concurrently, and every transport or service failure is
// returned to the caller with its original cause and gRPC status code intact.
// The client never retries; retry policy belongs to the transport or the
// caller.
type Client struct {
	train trainpb.MLTrainingServiceClient
	md    metadata.MD
}

// NewClient creates a Client that issues calls over conn with the given
// authorization metadata, e.g. an "authorization" bearer-token entry. The
// metadata map is copied; later changes to it do not affect the client.
func NewClient(conn grpc.ClientConnInterface, md map[string]string) *Client {
	return &Client{
		train: trainpb.NewMLTrainingServiceClient(conn),
		md:    metadata.New(md),
	}
}

// SubmitTrainingJob submits a training job to be processed by the training
// job manager and returns the id it was assigned.
//
// The fields are passed to the service verbatim. A nil filter means "train on
// all of the organization's data" and is sent as an unset filter, which the
// service treats differently from an empty filter value.
func (c *Client) SubmitTrainingJob(ctx context.Context, orgID, modelName, modelVersion string, modelType trainpb.ModelType, tags []string, filter *trainpb.Filter) (string, error) {
	req := &trainpb.SubmitTrainingJobRequest{
		OrganizationID: orgID,
		ModelName:      modelName,
		ModelVersion:   modelVersion,
		ModelType:      modelType,
		Tags:           tags,
		Filter:         filter,
	}
	resp, err := c.train.SubmitTrainingJob(c.withAuth(ctx), req)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// GetTrainingJob returns the service's metadata snapshot for the job with the
// given id, unmodified.
func (c *Client) GetTrainingJob(ctx context.Context, id string) (*trainpb.TrainingJobMetadata, error) {
	resp, err := c.train.GetTrainingJob(c.withAuth(ctx), &trainpb.GetTrainingJobRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return resp.Metadata, nil
}

// ListTrainingJobs returns metadata for the organization's training jobs, in
// the order the service reports them.
//
// A nil status means "no status filter": the request is sent with the
// explicit TrainingStatusUnspecified sentinel so the service returns jobs of
// every status. A non-nil status is passed through unchanged. The mapping is
// on absence of the value, so a future zero-valued real status would not be
// misread as "no filter".
func (c *Client) ListTrainingJobs(ctx context.Context, orgID string, status *trainpb.TrainingStatus) ([]*trainpb.TrainingJobMetadata, error) {
	st := trainpb.TrainingStatusUnspecified
	if status != nil {
		st = *status
	}
	req := &trainpb.ListTrainingJobsRequest{OrganizationID: orgID, Status: st}
	resp, err := c.train.ListTrainingJobs(c.withAuth(ctx), req)
	if err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// CancelTrainingJob requests cancellation of the job with the given id and
// returns once the service acknowledges it. Canceling a job that already
// reached a terminal status fails with codes.FailedPrecondition; the client
// does not mask it.
func (c *Client) CancelTrainingJob(ctx context.Context, id string) error {
	_, err := c.train.CancelTrainingJob(c.withAuth(ctx), &trainpb.CancelTrainingJobRequest{ID: id})
	return err
}

// withAuth attaches the client's authorization metadata to the outgoing
// context, preserving any metadata the caller already set.
func (c *Client) withAuth(ctx context.Context) context.Context {
	if existing, ok := metadata.FromOutgoingContext(ctx); ok {
		return metadata.NewOutgoingContext(ctx, metadata.Join(existing, c.md))
	}
	return metadata.NewOutgoingContext(ctx, c.md)
}
