package mltraining_test

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"testing"

	"github.com/modelkit/mltrain/pkg/mltraining"
	"github.com/modelkit/mltrain/pkg/registry"
	"github.com/modelkit/mltrain/pkg/trainpb"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testAPIKey = "test-key"

type testServer struct {
	*mltraining.Server
	address string
}

// newTestServer starts an insecure server with deterministic job ids job-1,
// job-2, ... on a free local port.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	var n atomic.Uint64
	idFunc := func() string {
		return fmt.Sprintf("job-%d", n.Add(1))
	}
	server, err := mltraining.NewServer("", "", []string{testAPIKey}, registry.WithIDFunc(idFunc))
	require.NoError(t, err)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		if err := server.Serve(lis); err != nil {
			t.Errorf("cannot start test server %v", err)
		}
	}()
	t.Cleanup(server.Stop)
	return &testServer{Server: server, address: lis.Addr().String()}
}

func dialTestServer(t *testing.T, ts *testServer, opts ...mltraining.DialOption) *mltraining.Conn {
	t.Helper()
	conn, err := mltraining.Dial(ts.address, append([]mltraining.DialOption{mltraining.WithInsecure()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, conn.Close()) })
	return conn
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts, mltraining.WithAPIKey(testAPIKey))
	ctx := context.Background()

	id, err := conn.SubmitTrainingJob(ctx, "org1", "classifier", "v1", trainpb.ModelTypeSingleLabelClassification, []string{"prod"}, nil)
	require.NoError(t, err)
	require.Equal(t, "job-1", id)

	md, err := conn.GetTrainingJob(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, md.ID)
	require.Equal(t, trainpb.TrainingStatusPending, md.Status)
	wantReq := &trainpb.SubmitTrainingJobRequest{
		OrganizationID: "org1",
		ModelName:      "classifier",
		ModelVersion:   "v1",
		ModelType:      trainpb.ModelTypeSingleLabelClassification,
		Tags:           []string{"prod"},
	}
	require.Equal(t, wantReq, md.Request)
	require.False(t, md.Created.IsZero())

	require.NoError(t, conn.CancelTrainingJob(ctx, id))
	md, err = conn.GetTrainingJob(ctx, id)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusCanceled, md.Status)
}

func TestFilterRoundTrip(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts, mltraining.WithAPIKey(testAPIKey))
	ctx := context.Background()

	filter := &trainpb.Filter{
		DatasetID:   "ds1",
		Tags:        []string{"night", "rain"},
		LocationIDs: []string{"loc1"},
	}
	id, err := conn.SubmitTrainingJob(ctx, "org1", "detector", "v3", trainpb.ModelTypeObjectDetection, nil, filter)
	require.NoError(t, err)

	md, err := conn.GetTrainingJob(ctx, id)
	require.NoError(t, err)
	require.Equal(t, filter, md.Request.Filter)

	// no filter on submission stays unset end to end
	id, err = conn.SubmitTrainingJob(ctx, "org1", "detector", "v4", trainpb.ModelTypeObjectDetection, nil, nil)
	require.NoError(t, err)
	md, err = conn.GetTrainingJob(ctx, id)
	require.NoError(t, err)
	require.Nil(t, md.Request.Filter)
}

func TestListStatusFilter(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts, mltraining.WithAPIKey(testAPIKey))
	ctx := context.Background()

	id1, err := conn.SubmitTrainingJob(ctx, "org1", "m1", "v1", trainpb.ModelTypeObjectDetection, nil, nil)
	require.NoError(t, err)
	id2, err := conn.SubmitTrainingJob(ctx, "org1", "m2", "v1", trainpb.ModelTypeObjectDetection, nil, nil)
	require.NoError(t, err)
	_, err = conn.SubmitTrainingJob(ctx, "org2", "m3", "v1", trainpb.ModelTypeObjectDetection, nil, nil)
	require.NoError(t, err)

	reg := ts.Registry()
	require.NoError(t, reg.Start(id1))
	require.NoError(t, reg.Complete(id1, "model-1"))

	// no status filter: all of org1's jobs, in submission order
	jobs, err := conn.ListTrainingJobs(ctx, "org1", nil)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.Equal(t, id1, jobs[0].ID)
	require.Equal(t, id2, jobs[1].ID)

	completed := trainpb.TrainingStatusCompleted
	jobs, err = conn.ListTrainingJobs(ctx, "org1", &completed)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, id1, jobs[0].ID)
	require.Equal(t, "model-1", jobs[0].SyncedModelID)

	// an organization with no jobs yields an empty list, not a failure
	jobs, err = conn.ListTrainingJobs(ctx, "org-none", nil)
	require.NoError(t, err)
	require.Empty(t, jobs)
}

func TestCancelTerminalJob(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts, mltraining.WithAPIKey(testAPIKey))
	ctx := context.Background()

	id, err := conn.SubmitTrainingJob(ctx, "org1", "m1", "v1", trainpb.ModelTypeObjectDetection, nil, nil)
	require.NoError(t, err)
	reg := ts.Registry()
	require.NoError(t, reg.Start(id))
	require.NoError(t, reg.Fail(id, "out of memory"))

	err = conn.CancelTrainingJob(ctx, id)
	require.Error(t, err)
	s := status.Convert(err)
	require.Equal(t, codes.FailedPrecondition, s.Code())
	require.Contains(t, s.Message(), id)
}

func TestAuthUnknownKey(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts, mltraining.WithAPIKey("wrong-key"))

	_, err := conn.GetTrainingJob(context.Background(), "job-1")
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Convert(err).Code())
}

func TestAuthMissingKey(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	conn := dialTestServer(t, ts)

	_, err := conn.ListTrainingJobs(context.Background(), "org1", nil)
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Convert(err).Code())
}

func TestServerRequiresAPIKeys(t *testing.T) {
	t.Parallel()
	_, err := mltraining.NewServer("", "", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, mltraining.ErrAPIKey)
}
