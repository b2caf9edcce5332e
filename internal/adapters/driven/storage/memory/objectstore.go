package memory

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is an in-memory implementation of driven.ObjectStore,
// used by tests and offline development.
type ObjectStore struct {
	mu       sync.RWMutex
	buckets  map[string]map[string][]byte
	failures map[string]error
}

// NewObjectStore creates a new in-memory object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		buckets:  make(map[string]map[string][]byte),
		failures: make(map[string]error),
	}
}

// Put stores object content for later listing and download.
func (s *ObjectStore) Put(bucket, object string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets[bucket] == nil {
		s.buckets[bucket] = make(map[string][]byte)
	}
	s.buckets[bucket][object] = content
}

// FailWith makes downloads of the named object return err.
func (s *ObjectStore) FailWith(object string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[object] = err
}

// List returns every object under the path's prefix, sorted by name.
func (s *ObjectStore) List(_ context.Context, path domain.StoragePath) ([]driven.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var infos []driven.ObjectInfo
	for name, content := range s.buckets[path.Bucket] {
		if strings.HasPrefix(name, path.Prefix) {
			infos = append(infos, driven.ObjectInfo{Name: name, Size: int64(len(content))})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Download writes the stored content into w.
func (s *ObjectStore) Download(_ context.Context, bucket, object string, w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err, ok := s.failures[object]; ok {
		return err
	}
	content, ok := s.buckets[bucket][object]
	if !ok {
		return domain.ErrNotFound
	}
	_, err := w.Write(content)
	return err
}
