package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

func ledgerSubmissions() []domain.Submission {
	return []domain.Submission{
		{
			ID:           "run-2",
			ResourceName: "projects/demo/locations/us-central1/customJobs/222",
			DisplayName:  "detector-train-2",
			Project:      "demo",
			Location:     "us-central1",
			State:        domain.JobStateRunning,
			CreatedAt:    time.Date(2025, 3, 2, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:           "run-1",
			ResourceName: "projects/demo/locations/us-central1/customJobs/111",
			DisplayName:  "detector-train-1",
			Project:      "demo",
			Location:     "us-central1",
			State:        domain.JobStateSucceeded,
			CreatedAt:    time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestJobsCmd_Use(t *testing.T) {
	assert.Equal(t, "jobs", jobsCmd.Use)
}

func TestJobsCmd_LimitFlagDefault(t *testing.T) {
	flag := jobsCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "20", flag.DefValue)
}

func TestJobsCmd_HasSyncSubcommand(t *testing.T) {
	sub, _, err := jobsCmd.Find([]string{"sync"})
	require.NoError(t, err)
	assert.Equal(t, "sync", sub.Use)
}

func TestJobsCmd_EmptyLedger(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"jobs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No jobs submitted yet.")
}

func TestJobsCmd_ListsSubmissions(t *testing.T) {
	_, _, _, submitter, cleanup := setupTestServices()
	defer cleanup()

	var gotLimit int
	submitter.listFn = func(_ context.Context, limit int) ([]domain.Submission, error) {
		gotLimit = limit
		return ledgerSubmissions(), nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"jobs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)

	out := buf.String()
	assert.Contains(t, out, "RUNNING")
	assert.Contains(t, out, "SUCCEEDED")
	assert.Contains(t, out, "detector-train-2")
	assert.Contains(t, out, "Job: 222")
	assert.Contains(t, out, "Console: https://console.cloud.google.com/vertex-ai/locations/us-central1/training/111?project=demo")
	assert.Contains(t, out, "Total: 2 jobs")
}

func TestJobsCmd_PassesLimitFlag(t *testing.T) {
	_, _, _, submitter, cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		jobsLimit = 20
	}()

	var gotLimit int
	submitter.listFn = func(_ context.Context, limit int) ([]domain.Submission, error) {
		gotLimit = limit
		return nil, nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"jobs", "--limit", "5"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)
}

func TestJobsSyncCmd_RefreshesStates(t *testing.T) {
	_, _, _, submitter, cleanup := setupTestServices()
	defer cleanup()

	synced := false
	submitter.syncFn = func(_ context.Context) ([]domain.Submission, error) {
		synced = true
		return ledgerSubmissions()[:1], nil
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"jobs", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, synced)
	assert.Contains(t, buf.String(), "Total: 1 jobs")
}
