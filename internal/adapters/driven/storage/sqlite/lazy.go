package sqlite

import (
	"context"
	"sync"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// LazySubmissionStore defers opening the database until first use.
// Commands that never touch the ledger keep working in environments
// without a writable home directory, such as training containers.
type LazySubmissionStore struct {
	dataDir string

	once  sync.Once
	inner driven.SubmissionStore
	err   error
}

var _ driven.SubmissionStore = (*LazySubmissionStore)(nil)

// NewLazySubmissionStore returns a ledger that opens the store at
// dataDir on the first call. An empty dataDir uses the default
// location, see NewStore.
func NewLazySubmissionStore(dataDir string) *LazySubmissionStore {
	return &LazySubmissionStore{dataDir: dataDir}
}

func (l *LazySubmissionStore) open() (driven.SubmissionStore, error) {
	l.once.Do(func() {
		store, err := NewStore(l.dataDir)
		if err != nil {
			l.err = err
			return
		}
		l.inner = store.SubmissionStore()
	})
	return l.inner, l.err
}

// Save records a new submission.
func (l *LazySubmissionStore) Save(ctx context.Context, sub *domain.Submission) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Save(ctx, sub)
}

// List returns submissions newest first. A limit of 0 returns everything.
func (l *LazySubmissionStore) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.List(ctx, limit)
}

// GetByResourceName retrieves a submission by its full resource name.
func (l *LazySubmissionStore) GetByResourceName(ctx context.Context, resourceName string) (*domain.Submission, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.GetByResourceName(ctx, resourceName)
}

// UpdateState sets the last observed state for a submission.
func (l *LazySubmissionStore) UpdateState(ctx context.Context, id string, state domain.JobState) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.UpdateState(ctx, id, state)
}
