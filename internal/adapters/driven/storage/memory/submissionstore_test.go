package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

func submissionAt(id string, created time.Time) *domain.Submission {
	return &domain.Submission{
		ID:           id,
		ResourceName: "projects/p/locations/l/customJobs/" + id,
		State:        domain.JobStatePending,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestSubmissionStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, submissionAt("1", base)))
	require.NoError(t, store.Save(ctx, submissionAt("2", base.Add(time.Hour))))
	require.NoError(t, store.Save(ctx, submissionAt("3", base.Add(2*time.Hour))))

	subs, err := store.List(ctx, 2)

	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "3", subs[0].ID)
	assert.Equal(t, "2", subs[1].ID)
}

func TestSubmissionStore_GetByResourceName(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	require.NoError(t, store.Save(ctx, submissionAt("1", time.Now())))

	sub, err := store.GetByResourceName(ctx, "projects/p/locations/l/customJobs/1")
	require.NoError(t, err)
	assert.Equal(t, "1", sub.ID)

	_, err = store.GetByResourceName(ctx, "projects/p/locations/l/customJobs/none")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSubmissionStore_UpdateState(t *testing.T) {
	ctx := context.Background()
	store := NewSubmissionStore()
	require.NoError(t, store.Save(ctx, submissionAt("1", time.Now())))

	require.NoError(t, store.UpdateState(ctx, "1", domain.JobStateSucceeded))

	subs, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStateSucceeded, subs[0].State)

	assert.True(t, errors.Is(store.UpdateState(ctx, "none", domain.JobStateFailed), domain.ErrNotFound))
}
