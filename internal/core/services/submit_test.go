package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/storage/memory"
	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
)

// --- Mock implementations for submit testing ---

// submitMockConfig implements driven.JobConfigStore with a canned config.
type submitMockConfig struct {
	cfg      domain.JobConfig
	err      error
	lastPath string
}

func (m *submitMockConfig) Load(path string) (*domain.JobConfig, error) {
	m.lastPath = path
	if m.err != nil {
		return nil, m.err
	}
	cfg := m.cfg
	cfg.ApplyDefaults()
	return &cfg, nil
}

// submitMockJobClient implements driven.JobClient.
type submitMockJobClient struct {
	lastJob   domain.TrainingJob
	createErr error
	states    map[string]domain.JobState
	stateErrs map[string]error
}

func (m *submitMockJobClient) CreateJob(_ context.Context, job domain.TrainingJob) (*domain.Submission, error) {
	m.lastJob = job
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &domain.Submission{
		ResourceName: fmt.Sprintf("projects/%s/locations/%s/customJobs/9001", job.Project, job.Location),
		DisplayName:  job.DisplayName,
		Project:      job.Project,
		Location:     job.Location,
		ImageURI:     job.ImageURI,
		State:        domain.JobStatePending,
	}, nil
}

func (m *submitMockJobClient) JobState(_ context.Context, resourceName string) (domain.JobState, error) {
	if err := m.stateErrs[resourceName]; err != nil {
		return "", err
	}
	state, ok := m.states[resourceName]
	if !ok {
		return "", domain.ErrNotFound
	}
	return state, nil
}

// submitFailingLedger fails every write.
type submitFailingLedger struct {
	memory.SubmissionStore
}

func (*submitFailingLedger) Save(context.Context, *domain.Submission) error {
	return errors.New("disk full")
}

func submitTestConfig() domain.JobConfig {
	return domain.JobConfig{
		Project:       "demo",
		DisplayName:   "detector-train",
		ImageURI:      "gcr.io/demo/trainer:latest",
		StagingBucket: "gs://demo-staging",
		DataPath:      "gs://datasets/traffic/v2",
		Args:          []string{"--config", "det.yaml"},
		Labels:        map[string]string{"team": "perception"},
		WandbAPIKey:   "file-key",
	}
}

// newTestSubmitService clears the override environment and pins time.
func newTestSubmitService(t *testing.T, config *submitMockConfig, jobs *submitMockJobClient, ledger driven.SubmissionStore) *SubmitService {
	t.Helper()

	t.Setenv(EnvProject, "")
	t.Setenv(EnvWandbKey, "")
	os.Unsetenv(EnvProject)
	os.Unsetenv(EnvWandbKey)

	svc := NewSubmitService(config, jobs, ledger)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// --- Tests ---

func TestSubmitService_Submit_BuildsJobFromConfig(t *testing.T) {
	config := &submitMockConfig{cfg: submitTestConfig()}
	jobs := &submitMockJobClient{}
	svc := newTestSubmitService(t, config, jobs, memory.NewSubmissionStore())

	sub, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})

	require.NoError(t, err)
	assert.Equal(t, "vertex.toml", config.lastPath)

	job := jobs.lastJob
	assert.Equal(t, "demo", job.Project)
	assert.Equal(t, domain.DefaultLocation, job.Location)
	assert.Equal(t, "detector-train", job.DisplayName)
	assert.Equal(t, domain.DefaultMachineType, job.MachineType)
	assert.Equal(t, domain.DefaultAcceleratorType, job.AcceleratorType)
	assert.Equal(t, int64(1), job.AcceleratorCount)
	assert.Equal(t, int64(1), job.ReplicaCount)
	assert.Equal(t, "gcr.io/demo/trainer:latest", job.ImageURI)
	assert.Equal(t, []string{"--config", "det.yaml"}, job.Args)
	assert.Equal(t, "gs://demo-staging", job.OutputURIPrefix)
	assert.Equal(t, map[string]string{"team": "perception"}, job.Labels)
	assert.Equal(t, map[string]string{
		EnvWandbKey: "file-key",
		EnvDataPath: "gs://datasets/traffic/v2",
	}, job.Env)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, domain.JobStatePending, sub.State)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), sub.CreatedAt)
}

func TestSubmitService_Submit_RecordsInLedger(t *testing.T) {
	ledger := memory.NewSubmissionStore()
	svc := newTestSubmitService(t, &submitMockConfig{cfg: submitTestConfig()}, &submitMockJobClient{}, ledger)

	sub, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})
	require.NoError(t, err)

	got, err := ledger.GetByResourceName(context.Background(), sub.ResourceName)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, domain.JobStatePending, got.State)
}

func TestSubmitService_Submit_CLIOverridesBecomeUpdateArgs(t *testing.T) {
	jobs := &submitMockJobClient{}
	svc := newTestSubmitService(t, &submitMockConfig{cfg: submitTestConfig()}, jobs, memory.NewSubmissionStore())

	_, err := svc.Submit(context.Background(), driving.SubmitOverrides{
		ConfigPath:     "vertex.toml",
		Epochs:         50,
		BatchSize:      64,
		CheckpointFreq: 5,
		TestOnly:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"--config", "det.yaml",
		"--update", "epochs=50",
		"--update", "train_dataloader.total_batch_size=64",
		"--update", "checkpoint_freq=5",
		"--test-only",
	}, jobs.lastJob.Args)
}

func TestSubmitService_Submit_EnvironmentOverrides(t *testing.T) {
	jobs := &submitMockJobClient{}
	svc := newTestSubmitService(t, &submitMockConfig{cfg: submitTestConfig()}, jobs, memory.NewSubmissionStore())
	t.Setenv(EnvProject, "prod-project")
	t.Setenv(EnvWandbKey, "env-key")

	_, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})

	require.NoError(t, err)
	assert.Equal(t, "prod-project", jobs.lastJob.Project)
	assert.Equal(t, "env-key", jobs.lastJob.Env[EnvWandbKey])
}

func TestSubmitService_Submit_MissingImageURI(t *testing.T) {
	cfg := submitTestConfig()
	cfg.ImageURI = ""
	svc := newTestSubmitService(t, &submitMockConfig{cfg: cfg}, &submitMockJobClient{}, memory.NewSubmissionStore())

	_, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})

	assert.ErrorIs(t, err, domain.ErrMissingImageURI)
}

func TestSubmitService_Submit_ConfigLoadError(t *testing.T) {
	config := &submitMockConfig{err: os.ErrNotExist}
	svc := newTestSubmitService(t, config, &submitMockJobClient{}, memory.NewSubmissionStore())

	_, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "missing.toml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load job config")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSubmitService_Submit_CreateError(t *testing.T) {
	jobs := &submitMockJobClient{createErr: domain.ErrMissingProject}
	svc := newTestSubmitService(t, &submitMockConfig{cfg: submitTestConfig()}, jobs, memory.NewSubmissionStore())

	_, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create job")
	assert.ErrorIs(t, err, domain.ErrMissingProject)
}

func TestSubmitService_Submit_LedgerFailureIsNotFatal(t *testing.T) {
	svc := newTestSubmitService(t, &submitMockConfig{cfg: submitTestConfig()}, &submitMockJobClient{}, &submitFailingLedger{})

	sub, err := svc.Submit(context.Background(), driving.SubmitOverrides{ConfigPath: "vertex.toml"})

	// The remote job exists, so the submission is still returned.
	require.NoError(t, err)
	assert.NotNil(t, sub)
}

func TestSubmitService_List_DelegatesToLedger(t *testing.T) {
	ledger := memory.NewSubmissionStore()
	require.NoError(t, ledger.Save(context.Background(), &domain.Submission{
		ID:           "a",
		ResourceName: "projects/p/locations/l/customJobs/1",
		CreatedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}))

	svc := newTestSubmitService(t, &submitMockConfig{}, &submitMockJobClient{}, ledger)
	subs, err := svc.List(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a", subs[0].ID)
}

func TestSubmitService_SyncStates(t *testing.T) {
	ledger := memory.NewSubmissionStore()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	records := []domain.Submission{
		{ID: "done", ResourceName: "projects/p/locations/l/customJobs/1", State: domain.JobStateSucceeded, CreatedAt: base},
		{ID: "running", ResourceName: "projects/p/locations/l/customJobs/2", State: domain.JobStateRunning, CreatedAt: base.Add(time.Minute)},
		{ID: "pending", ResourceName: "projects/p/locations/l/customJobs/3", State: domain.JobStatePending, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "unreachable", ResourceName: "projects/p/locations/l/customJobs/4", State: domain.JobStateRunning, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range records {
		require.NoError(t, ledger.Save(context.Background(), &records[i]))
	}

	jobs := &submitMockJobClient{
		states: map[string]domain.JobState{
			"projects/p/locations/l/customJobs/2": domain.JobStateSucceeded,
			"projects/p/locations/l/customJobs/3": domain.JobStatePending,
		},
		stateErrs: map[string]error{
			"projects/p/locations/l/customJobs/4": errors.New("deadline exceeded"),
		},
	}
	svc := newTestSubmitService(t, &submitMockConfig{}, jobs, ledger)

	subs, err := svc.SyncStates(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 4)

	byID := make(map[string]domain.Submission, len(subs))
	for _, sub := range subs {
		byID[sub.ID] = sub
	}

	// Refreshed from the API.
	assert.Equal(t, domain.JobStateSucceeded, byID["running"].State)
	// Unchanged state, no write.
	assert.Equal(t, domain.JobStatePending, byID["pending"].State)
	// Terminal record never queried.
	assert.Equal(t, domain.JobStateSucceeded, byID["done"].State)
	// Lookup failure skips the record instead of failing the sync.
	assert.Equal(t, domain.JobStateRunning, byID["unreachable"].State)

	// The refresh is persisted.
	got, err := ledger.GetByResourceName(context.Background(), "projects/p/locations/l/customJobs/2")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStateSucceeded, got.State)
}

func TestSubmitService_SyncStates_ListError(t *testing.T) {
	svc := newTestSubmitService(t, &submitMockConfig{}, &submitMockJobClient{}, &submitBrokenLedger{})

	_, err := svc.SyncStates(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "list submissions")
}

// submitBrokenLedger fails every read.
type submitBrokenLedger struct {
	memory.SubmissionStore
}

func (*submitBrokenLedger) List(context.Context, int) ([]domain.Submission, error) {
	return nil, errors.New("database locked")
}
