package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// Ensure StagingService implements the interface.
var _ driving.DataStager = (*StagingService)(nil)

// DefaultStageWorkers caps concurrent downloads when the request does
// not say otherwise.
const DefaultStageWorkers = 10

// maxReportedFailures limits how many download failures are logged
// individually before the rest are summarised.
const maxReportedFailures = 5

// StagingService mirrors a remote dataset prefix onto local disk.
type StagingService struct {
	store    driven.ObjectStore
	progress driven.ProgressReporter
}

// NewStagingService creates a new staging service.
// A nil progress reporter disables progress display.
func NewStagingService(store driven.ObjectStore, progress driven.ProgressReporter) *StagingService {
	if progress == nil {
		progress = driven.NopProgress{}
	}
	return &StagingService{store: store, progress: progress}
}

type stageTask struct {
	object string
	dest   string
}

// Stage downloads everything under the remote prefix with a bounded
// worker pool. It returns a non-nil error when any object failed.
func (s *StagingService) Stage(ctx context.Context, req driving.StageRequest) (*driving.StageResult, error) {
	workers := req.Workers
	if workers <= 0 {
		workers = DefaultStageWorkers
	}

	// 1. List everything under the prefix
	objects, err := s.store.List(ctx, req.Remote)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", req.Remote, err)
	}

	// 2. Plan local destinations, skipping directory markers
	var tasks []stageTask
	result := &driving.StageResult{}
	for _, obj := range objects {
		rel, ok := req.Remote.Relative(obj.Name)
		if !ok || rel == "" || strings.HasSuffix(obj.Name, "/") {
			result.Skipped++
			continue
		}
		tasks = append(tasks, stageTask{
			object: obj.Name,
			dest:   filepath.Join(req.DestDir, filepath.FromSlash(rel)),
		})
	}
	if len(tasks) == 0 {
		logger.Info("no objects under %s", req.Remote)
		return result, nil
	}

	// 3. Download with a bounded worker pool
	s.progress.Start(fmt.Sprintf("Downloading %s", req.Remote), len(tasks))
	defer s.progress.Done()

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		work = make(chan stageTask)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range work {
				err := s.downloadOne(ctx, req.Remote.Bucket, t)
				mu.Lock()
				if err != nil {
					result.Failures = append(result.Failures, driving.StageFailure{Object: t.object, Err: err})
				} else {
					result.Downloaded++
				}
				mu.Unlock()
				s.progress.Advance(t.object)
			}
		}()
	}

feed:
	for _, t := range tasks {
		select {
		case work <- t:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// 4. Any failure means the dataset is incomplete
	if n := len(result.Failures); n > 0 {
		for i, f := range result.Failures {
			if i == maxReportedFailures {
				logger.Warn("... and %d more", n-maxReportedFailures)
				break
			}
			logger.Warn("download failed: %s: %v", f.Object, f.Err)
		}
		return result, fmt.Errorf("%w: %d of %d objects", domain.ErrStageFailed, n, len(tasks))
	}

	return result, nil
}

// downloadOne fetches a single object into its destination path,
// creating parent directories. Partial files are removed on failure so
// a rerun never mistakes them for staged data.
func (s *StagingService) downloadOne(ctx context.Context, bucket string, t stageTask) error {
	if err := os.MkdirAll(filepath.Dir(t.dest), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(t.dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := s.store.Download(ctx, bucket, t.object, f); err != nil {
		f.Close()
		os.Remove(t.dest)
		return err
	}
	return f.Close()
}
