package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Ensure SubmissionStore implements the interface.
var _ driven.SubmissionStore = (*SubmissionStore)(nil)

// SubmissionStore is an in-memory implementation of driven.SubmissionStore.
type SubmissionStore struct {
	mu   sync.RWMutex
	subs []domain.Submission
}

// NewSubmissionStore creates a new in-memory submission store.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{}
}

// Save records a new submission.
func (s *SubmissionStore) Save(_ context.Context, sub *domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, *sub)
	return nil
}

// List returns submissions newest first.
func (s *SubmissionStore) List(_ context.Context, limit int) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sorted := make([]domain.Submission, len(s.subs))
	copy(sorted, s.subs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// GetByResourceName retrieves a submission by resource name.
func (s *SubmissionStore) GetByResourceName(_ context.Context, resourceName string) (*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.subs {
		if s.subs[i].ResourceName == resourceName {
			sub := s.subs[i]
			return &sub, nil
		}
	}
	return nil, domain.ErrNotFound
}

// UpdateState sets the last observed state for a submission.
func (s *SubmissionStore) UpdateState(_ context.Context, id string, state domain.JobState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subs {
		if s.subs[i].ID == id {
			s.subs[i].State = state
			s.subs[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrNotFound
}
