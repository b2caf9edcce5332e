package driving

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// StageRequest describes one dataset download.
type StageRequest struct {
	// Remote is the bucket prefix to mirror.
	Remote domain.StoragePath

	// DestDir is the local directory receiving the objects, laid out by
	// their paths relative to the prefix.
	DestDir string

	// Workers caps concurrent downloads. Zero means the service default.
	Workers int
}

// StageFailure records one object that could not be downloaded.
type StageFailure struct {
	// Object is the full remote object name.
	Object string

	// Err is what went wrong.
	Err error
}

// StageResult summarises a staging run.
type StageResult struct {
	// Downloaded counts objects written locally.
	Downloaded int

	// Skipped counts directory markers and other non-file objects.
	Skipped int

	// Failures lists objects that could not be downloaded.
	Failures []StageFailure
}

// DataStager mirrors a remote dataset onto the local filesystem before
// training starts.
type DataStager interface {
	// Stage downloads everything under the remote prefix. The returned
	// error is non-nil when any object failed, so callers never train on
	// a partially staged dataset.
	Stage(ctx context.Context, req StageRequest) (*StageResult, error)
}
