package cli

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
)

// Fake services for command tests. Each records the last request it saw
// and returns canned values, overridable per test via the function fields.

type fakeConverter struct {
	lastReq   driving.ConvertRequest
	convertFn func(ctx context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error)
}

var _ driving.DatasetConverter = (*fakeConverter)(nil)

func (f *fakeConverter) Convert(ctx context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error) {
	f.lastReq = req
	if f.convertFn != nil {
		return f.convertFn(ctx, req)
	}
	return &driving.ConvertResult{
		Categories: []domain.Category{{ID: 1, Name: "car"}, {ID: 2, Name: "truck"}},
		Train:      driving.SplitCount{Images: 9, Annotations: 27},
		Val:        driving.SplitCount{Images: 1, Annotations: 3},
		OutputDir:  req.OutputDir,
	}, nil
}

type fakeStager struct {
	lastReq driving.StageRequest
	stageFn func(ctx context.Context, req driving.StageRequest) (*driving.StageResult, error)
}

var _ driving.DataStager = (*fakeStager)(nil)

func (f *fakeStager) Stage(ctx context.Context, req driving.StageRequest) (*driving.StageResult, error) {
	f.lastReq = req
	if f.stageFn != nil {
		return f.stageFn(ctx, req)
	}
	return &driving.StageResult{Downloaded: 4}, nil
}

type fakeLauncher struct {
	lastArgs []string
	called   bool
	launchFn func(ctx context.Context, args []string) error
}

var _ driving.TrainingLauncher = (*fakeLauncher)(nil)

func (f *fakeLauncher) Launch(ctx context.Context, args []string) error {
	f.called = true
	f.lastArgs = args
	if f.launchFn != nil {
		return f.launchFn(ctx, args)
	}
	return nil
}

type fakeSubmitter struct {
	lastOverrides driving.SubmitOverrides
	submitFn      func(ctx context.Context, ov driving.SubmitOverrides) (*domain.Submission, error)
	listFn        func(ctx context.Context, limit int) ([]domain.Submission, error)
	syncFn        func(ctx context.Context) ([]domain.Submission, error)
}

var _ driving.JobSubmitter = (*fakeSubmitter)(nil)

func (f *fakeSubmitter) Submit(ctx context.Context, ov driving.SubmitOverrides) (*domain.Submission, error) {
	f.lastOverrides = ov
	if f.submitFn != nil {
		return f.submitFn(ctx, ov)
	}
	return &domain.Submission{
		ID:           "run-1",
		ResourceName: "projects/demo/locations/us-central1/customJobs/111",
		DisplayName:  "detector-train",
		Project:      "demo",
		Location:     "us-central1",
		State:        domain.JobStatePending,
	}, nil
}

func (f *fakeSubmitter) List(ctx context.Context, limit int) ([]domain.Submission, error) {
	if f.listFn != nil {
		return f.listFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeSubmitter) SyncStates(ctx context.Context) ([]domain.Submission, error) {
	if f.syncFn != nil {
		return f.syncFn(ctx)
	}
	return nil, nil
}

// setupTestServices installs fresh fakes into the package service vars and
// returns them plus a cleanup restoring whatever was wired before.
func setupTestServices() (*fakeConverter, *fakeStager, *fakeLauncher, *fakeSubmitter, func()) {
	origConverter := converterService
	origStager := stagerService
	origLauncher := launcherService
	origSubmitter := submitterService

	converter := &fakeConverter{}
	stager := &fakeStager{}
	launcher := &fakeLauncher{}
	submitter := &fakeSubmitter{}

	SetServices(Services{
		Converter: converter,
		Stager:    stager,
		Launcher:  launcher,
		Submitter: submitter,
	})

	cleanup := func() {
		converterService = origConverter
		stagerService = origStager
		launcherService = origLauncher
		submitterService = origSubmitter
	}

	return converter, stager, launcher, submitter, cleanup
}
