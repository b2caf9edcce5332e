package driven

import (
	"context"
	"io"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// ObjectInfo describes one remote object.
type ObjectInfo struct {
	// Name is the full object name, including the listing prefix.
	Name string

	// Size is the object size in bytes.
	Size int64
}

// ObjectStore reads objects from a remote bucket.
// Backed by the Cloud Storage JSON API.
type ObjectStore interface {
	// List returns every object under the path's prefix.
	List(ctx context.Context, path domain.StoragePath) ([]ObjectInfo, error)

	// Download streams the named object into w.
	Download(ctx context.Context, bucket, object string, w io.Writer) error
}
