package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// Ensure SubmitService implements the interface.
var _ driving.JobSubmitter = (*SubmitService)(nil)

// Environment overrides honoured at submit time.
const (
	// EnvProject overrides the config file's project.
	EnvProject = "GCP_PROJECT"

	// EnvWandbKey overrides the config file's wandb key. The same name
	// is used for the key inside the container.
	EnvWandbKey = "WANDB_API_KEY"
)

// SubmitService builds custom jobs from config and tracks them in the
// local ledger.
type SubmitService struct {
	config driven.JobConfigStore
	jobs   driven.JobClient
	ledger driven.SubmissionStore

	// now is swappable so tests can pin timestamps.
	now func() time.Time
}

// NewSubmitService creates a new submit service.
func NewSubmitService(config driven.JobConfigStore, jobs driven.JobClient, ledger driven.SubmissionStore) *SubmitService {
	return &SubmitService{
		config: config,
		jobs:   jobs,
		ledger: ledger,
		now:    time.Now,
	}
}

// Submit builds, creates, and records one custom job.
func (s *SubmitService) Submit(ctx context.Context, ov driving.SubmitOverrides) (*domain.Submission, error) {
	// 1. Load the job config
	cfg, err := s.config.Load(ov.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load job config: %w", err)
	}

	// 2. Environment overrides
	if p := os.Getenv(EnvProject); p != "" {
		cfg.Project = p
	}
	if k := os.Getenv(EnvWandbKey); k != "" {
		cfg.WandbAPIKey = k
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 3. Assemble the job
	job := buildJob(cfg, ov)

	// 4. Create it remotely
	sub, err := s.jobs.CreateJob(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	// 5. Record it locally. A ledger failure is logged, not returned:
	// the remote job already exists.
	sub.ID = uuid.NewString()
	now := s.now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if err := s.ledger.Save(ctx, sub); err != nil {
		logger.Warn("record submission %s: %v", sub.ResourceName, err)
	}

	return sub, nil
}

// List returns recent ledger records, newest first.
func (s *SubmitService) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	return s.ledger.List(ctx, limit)
}

// SyncStates refreshes non-terminal records from the API. A lookup that
// fails is logged and skipped, so one unreachable job cannot block the
// rest of the refresh.
func (s *SubmitService) SyncStates(ctx context.Context) ([]domain.Submission, error) {
	subs, err := s.ledger.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	for i := range subs {
		if subs[i].State.Terminal() {
			continue
		}
		state, err := s.jobs.JobState(ctx, subs[i].ResourceName)
		if err != nil {
			logger.Warn("refresh %s: %v", subs[i].ResourceName, err)
			continue
		}
		if state == subs[i].State {
			continue
		}
		if err := s.ledger.UpdateState(ctx, subs[i].ID, state); err != nil {
			return nil, fmt.Errorf("update state: %w", err)
		}
		subs[i].State = state
		subs[i].UpdatedAt = s.now().UTC()
	}
	return subs, nil
}

// buildJob turns config plus CLI overrides into a TrainingJob. Override
// values ride as --update patches understood by the trainer's config
// loader.
func buildJob(cfg *domain.JobConfig, ov driving.SubmitOverrides) domain.TrainingJob {
	args := make([]string, len(cfg.Args), len(cfg.Args)+7)
	copy(args, cfg.Args)
	if ov.Epochs > 0 {
		args = append(args, "--update", fmt.Sprintf("epochs=%d", ov.Epochs))
	}
	if ov.BatchSize > 0 {
		args = append(args, "--update", fmt.Sprintf("train_dataloader.total_batch_size=%d", ov.BatchSize))
	}
	if ov.CheckpointFreq > 0 {
		args = append(args, "--update", fmt.Sprintf("checkpoint_freq=%d", ov.CheckpointFreq))
	}
	if ov.TestOnly {
		args = append(args, "--test-only")
	}

	env := make(map[string]string)
	if cfg.WandbAPIKey != "" {
		env[EnvWandbKey] = cfg.WandbAPIKey
	}
	if cfg.DataPath != "" {
		env[EnvDataPath] = cfg.DataPath
	}

	return domain.TrainingJob{
		Project:          cfg.Project,
		Location:         cfg.Location,
		DisplayName:      cfg.DisplayName,
		MachineType:      cfg.MachineType,
		AcceleratorType:  cfg.AcceleratorType,
		AcceleratorCount: cfg.AcceleratorCount,
		ReplicaCount:     cfg.ReplicaCount,
		ServiceAccount:   cfg.ServiceAccount,
		ImageURI:         cfg.ImageURI,
		Args:             args,
		Env:              env,
		Labels:           cfg.Labels,
		OutputURIPrefix:  cfg.StagingBucket,
	}
}
