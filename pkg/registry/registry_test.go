package registry_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/modelkit/mltrain/pkg/registry"
	"github.com/modelkit/mltrain/pkg/trainpb"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(opts ...registry.Option) *registry.Registry {
	n := 0
	idFunc := func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
	return registry.New(append([]registry.Option{registry.WithIDFunc(idFunc)}, opts...)...)
}

func validRequest(org, name string) *trainpb.SubmitTrainingJobRequest {
	return &trainpb.SubmitTrainingJobRequest{
		OrganizationID: org,
		ModelName:      name,
		ModelVersion:   "v1",
		ModelType:      trainpb.ModelTypeSingleLabelClassification,
	}
}

func TestSubmitAndGet(t *testing.T) {
	t.Parallel()
	created := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)
	reg := newTestRegistry(registry.WithClock(func() time.Time { return created }))

	req := validRequest("org1", "classifier")
	req.Tags = []string{"prod"}
	req.Filter = &trainpb.Filter{DatasetID: "ds1"}
	id, err := reg.Submit(req)
	require.NoError(t, err)
	require.Equal(t, "job-1", id)

	md, err := reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, id, md.ID)
	require.Equal(t, trainpb.TrainingStatusPending, md.Status)
	require.Equal(t, req, md.Request)
	require.Equal(t, created, md.Created)
	require.Equal(t, created, md.LastModified)
	require.True(t, md.TrainingStarted.IsZero())
}

func TestSubmitDefaultIDs(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	id1, err := reg.Submit(validRequest("org1", "m1"))
	require.NoError(t, err)
	id2, err := reg.Submit(validRequest("org1", "m2"))
	require.NoError(t, err)
	require.NotEmpty(t, id1)
	require.NotEmpty(t, id2)
	require.NotEqual(t, id1, id2)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	tests := map[string]*trainpb.SubmitTrainingJobRequest{
		"nil request":   nil,
		"empty org":     {ModelName: "m", ModelVersion: "v1", ModelType: trainpb.ModelTypeObjectDetection},
		"empty name":    {OrganizationID: "org1", ModelVersion: "v1", ModelType: trainpb.ModelTypeObjectDetection},
		"empty version": {OrganizationID: "org1", ModelName: "m", ModelType: trainpb.ModelTypeObjectDetection},
		"bad type":      {OrganizationID: "org1", ModelName: "m", ModelVersion: "v1", ModelType: trainpb.ModelType(-1)},
	}
	for name, req := range tests {
		req := req
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := reg.Submit(req)
			require.ErrorIs(t, err, registry.ErrInvalidJob)
		})
	}
}

func TestSnapshotIsolation(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	req := validRequest("org1", "classifier")
	id, err := reg.Submit(req)
	require.NoError(t, err)

	// mutating the submitted request does not affect the stored job
	req.ModelName = "mutated"
	md, err := reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, "classifier", md.Request.ModelName)

	// mutating a snapshot does not affect the stored job
	md.Status = trainpb.TrainingStatusFailed
	md.Request.ModelVersion = "v99"
	md2, err := reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusPending, md2.Status)
	require.Equal(t, "v1", md2.Request.ModelVersion)
}

func TestListOrderAndFilter(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	id1, err := reg.Submit(validRequest("org1", "m1"))
	require.NoError(t, err)
	_, err = reg.Submit(validRequest("org2", "m2"))
	require.NoError(t, err)
	id3, err := reg.Submit(validRequest("org1", "m3"))
	require.NoError(t, err)

	jobs := reg.List("org1", trainpb.TrainingStatusUnspecified)
	require.Len(t, jobs, 2)
	require.Equal(t, id1, jobs[0].ID) // submission order
	require.Equal(t, id3, jobs[1].ID)

	require.NoError(t, reg.Start(id1))
	jobs = reg.List("org1", trainpb.TrainingStatusInProgress)
	require.Len(t, jobs, 1)
	require.Equal(t, id1, jobs[0].ID)

	jobs = reg.List("org1", trainpb.TrainingStatusPending)
	require.Len(t, jobs, 1)
	require.Equal(t, id3, jobs[0].ID)

	require.Empty(t, reg.List("org-none", trainpb.TrainingStatusUnspecified))
	require.Empty(t, reg.List("org2", trainpb.TrainingStatusCompleted))
}

func TestLifecycle(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	id, err := reg.Submit(validRequest("org1", "m1"))
	require.NoError(t, err)

	require.NoError(t, reg.Start(id))
	md, err := reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusInProgress, md.Status)
	require.False(t, md.TrainingStarted.IsZero())

	require.ErrorIs(t, reg.Start(id), registry.ErrState) // already started

	require.NoError(t, reg.Complete(id, "model-55"))
	md, err = reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusCompleted, md.Status)
	require.Equal(t, "model-55", md.SyncedModelID)
	require.False(t, md.TrainingEnded.IsZero())

	require.ErrorIs(t, reg.Complete(id, "model-56"), registry.ErrState)
	require.ErrorIs(t, reg.Fail(id, "boom"), registry.ErrState)
}

func TestFail(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	id, err := reg.Submit(validRequest("org1", "m1"))
	require.NoError(t, err)

	require.NoError(t, reg.Fail(id, "out of memory"))
	md, err := reg.Get(id)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusFailed, md.Status)
	require.Equal(t, "out of memory", md.ErrorDetails)
}

func TestCancel(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()

	pending, err := reg.Submit(validRequest("org1", "m1"))
	require.NoError(t, err)
	require.NoError(t, reg.Cancel(pending))
	md, err := reg.Get(pending)
	require.NoError(t, err)
	require.Equal(t, trainpb.TrainingStatusCanceled, md.Status)

	inProgress, err := reg.Submit(validRequest("org1", "m2"))
	require.NoError(t, err)
	require.NoError(t, reg.Start(inProgress))
	require.NoError(t, reg.Cancel(inProgress))

	// terminal jobs cannot be canceled, in any terminal status
	require.ErrorIs(t, reg.Cancel(pending), registry.ErrState)
	completed, err := reg.Submit(validRequest("org1", "m3"))
	require.NoError(t, err)
	require.NoError(t, reg.Start(completed))
	require.NoError(t, reg.Complete(completed, "model-1"))
	require.ErrorIs(t, reg.Cancel(completed), registry.ErrState)
	failed, err := reg.Submit(validRequest("org1", "m4"))
	require.NoError(t, err)
	require.NoError(t, reg.Fail(failed, "boom"))
	require.ErrorIs(t, reg.Cancel(failed), registry.ErrState)
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	_, err := reg.Get("NON-EXISTENT-ID")
	require.ErrorIs(t, err, registry.ErrJobNotFound)
	require.ErrorIs(t, reg.Cancel("NON-EXISTENT-ID"), registry.ErrJobNotFound)
	require.ErrorIs(t, reg.Start("NON-EXISTENT-ID"), registry.ErrJobNotFound)
	require.ErrorIs(t, reg.Complete("NON-EXISTENT-ID", "m"), registry.ErrJobNotFound)
	require.ErrorIs(t, reg.Fail("NON-EXISTENT-ID", "boom"), registry.ErrJobNotFound)
}
