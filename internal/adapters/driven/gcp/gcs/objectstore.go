// Package gcs reads dataset objects from Google Cloud Storage.
package gcs

import (
	"context"
	"fmt"
	"io"
	"sync"

	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/gcp"
	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Compile-time check that ObjectStore implements the driven port.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore reads objects through the Cloud Storage JSON API.
type ObjectStore struct {
	mu      sync.Mutex
	svc     *storage.Service
	limiter *gcp.RateLimiter
}

// NewObjectStore creates a Cloud Storage client. Credentials are resolved
// on first use, so commands that never touch Cloud Storage run without
// Application Default Credentials.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{
		limiter: gcp.NewRateLimiter(gcp.ServiceStorage),
	}
}

// service returns the API service, creating it on first use with read-only
// scope.
func (s *ObjectStore) service(ctx context.Context) (*storage.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.svc != nil {
		return s.svc, nil
	}

	creds, err := gcp.Credentials(ctx, storage.DevstorageReadOnlyScope)
	if err != nil {
		return nil, err
	}

	svc, err := storage.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("create storage service: %w", err)
	}

	s.svc = svc
	return svc, nil
}

// List returns every object under the path's prefix, across all pages.
func (s *ObjectStore) List(ctx context.Context, path domain.StoragePath) ([]driven.ObjectInfo, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var objects []driven.ObjectInfo
	call := svc.Objects.List(path.Bucket).Prefix(path.Prefix)
	err = call.Pages(ctx, func(page *storage.Objects) error {
		for _, obj := range page.Items {
			objects = append(objects, driven.ObjectInfo{
				Name: obj.Name,
				Size: int64(obj.Size),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, gcp.WrapError(err))
	}

	return objects, nil
}

// Download streams the named object into w.
func (s *ObjectStore) Download(ctx context.Context, bucket, object string, w io.Writer) error {
	svc, err := s.service(ctx)
	if err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := svc.Objects.Get(bucket, object).Context(ctx).Download()
	if err != nil {
		if gcp.IsRateLimited(err) {
			s.limiter.RecordRateLimitError(0)
		}
		return fmt.Errorf("download gs://%s/%s: %w", bucket, object, gcp.WrapError(err))
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read gs://%s/%s: %w", bucket, object, err)
	}

	return nil
}
