package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/google/uuid"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// Ensure LaunchService implements the interface.
var _ driving.TrainingLauncher = (*LaunchService)(nil)

// Environment variables the entrypoint understands.
const (
	// EnvDataPath points at the gs:// prefix to stage before training.
	EnvDataPath = "GCS_DATA_PATH"

	// EnvDataDir overrides where staged data lands.
	EnvDataDir = "DATA_DIR"

	// EnvTrainCommand overrides the training command line.
	EnvTrainCommand = "TRAIN_COMMAND"

	// EnvExtraArgs supplies the argument list when none were forwarded.
	EnvExtraArgs = "TRAIN_EXTRA_ARGS"
)

const (
	// DefaultTrainCommand starts the trainer when EnvTrainCommand is unset.
	DefaultTrainCommand = "python3 train.py"

	// DefaultDataDir receives staged data when EnvDataDir is unset.
	DefaultDataDir = "data"

	// runIDLength is the number of hex characters in a run identifier.
	runIDLength = 8
)

// LaunchService is the container entrypoint. It stages data, stamps a
// run identifier into the output directory, and execs the trainer.
type LaunchService struct {
	stager driving.DataStager
	runner driven.ProcessRunner

	// newRunID is swappable so tests can pin the identifier.
	newRunID func() string
}

// NewLaunchService creates the entrypoint service. The stager may be nil
// when no remote data path will ever be configured.
func NewLaunchService(stager driving.DataStager, runner driven.ProcessRunner) *LaunchService {
	return &LaunchService{
		stager:   stager,
		runner:   runner,
		newRunID: newRunID,
	}
}

// newRunID returns 8 random lowercase hex characters.
func newRunID() string {
	return uuid.NewString()[:runIDLength]
}

// Launch implements the entrypoint sequence. On success the process is
// replaced and this call never returns.
func (s *LaunchService) Launch(ctx context.Context, args []string) error {
	// 1. Stage remote data when configured
	if remote := os.Getenv(EnvDataPath); remote != "" {
		if err := s.stageData(ctx, remote); err != nil {
			return err
		}
	}

	// 2. Fresh run identifier
	runID := s.newRunID()
	logger.Print("run id: %s", runID)

	// 3. Assemble the final argument list
	finalArgs, err := buildArgs(args, runID)
	if err != nil {
		return err
	}

	// 4. Resolve the training command
	command := os.Getenv(EnvTrainCommand)
	if command == "" {
		command = DefaultTrainCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return fmt.Errorf("parse %s: %w", EnvTrainCommand, err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, EnvTrainCommand)
	}
	argv = append(argv, finalArgs...)

	// 5. Hand the process over
	logger.Print("exec: %s", strings.Join(argv, " "))
	return s.runner.Exec(argv, os.Environ())
}

func (s *LaunchService) stageData(ctx context.Context, remote string) error {
	path, err := domain.ParseStoragePath(remote)
	if err != nil {
		return fmt.Errorf("parse %s: %w", EnvDataPath, err)
	}
	destDir := os.Getenv(EnvDataDir)
	if destDir == "" {
		destDir = DefaultDataDir
	}
	if s.stager == nil {
		return errors.New("data stager not configured")
	}
	logger.Print("staging %s into %s", path, destDir)
	if _, err := s.stager.Stage(ctx, driving.StageRequest{Remote: path, DestDir: destDir}); err != nil {
		return fmt.Errorf("stage training data: %w", err)
	}
	return nil
}

// buildArgs applies the output-dir rewrite to forwarded args. When no
// args were forwarded, the extra-args variable is used verbatim: no
// rewrite and no default output dir, even when the variable is empty.
func buildArgs(args []string, runID string) ([]string, error) {
	if len(args) == 0 {
		extra := os.Getenv(EnvExtraArgs)
		if extra == "" {
			return nil, nil
		}
		split, err := shlex.Split(extra)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvExtraArgs, err)
		}
		return split, nil
	}
	return domain.RewriteOutputDir(args, runID), nil
}
