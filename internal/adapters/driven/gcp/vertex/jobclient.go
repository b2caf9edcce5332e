// Package vertex submits and tracks custom training jobs on Vertex AI.
package vertex

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	aiplatform "google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/option"

	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/gcp"
	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Compile-time check that JobClient implements the driven port.
var _ driven.JobClient = (*JobClient)(nil)

// JobClient talks to the Vertex AI custom jobs API. The API is regional, so
// the client keeps one underlying service per location it has touched.
// Credentials are resolved on first use.
type JobClient struct {
	mu             sync.Mutex
	services       map[string]*aiplatform.Service
	tokenSource    oauth2.TokenSource
	defaultProject string
	limiter        *gcp.RateLimiter
}

// NewJobClient creates a Vertex AI client. No credentials are touched until
// the first API call.
func NewJobClient() *JobClient {
	return &JobClient{
		services: make(map[string]*aiplatform.Service),
		limiter:  gcp.NewRateLimiter(gcp.ServiceAIPlatform),
	}
}

// CreateJob submits a custom job and returns the created record with its
// resource name and initial state filled in.
func (c *JobClient) CreateJob(ctx context.Context, job domain.TrainingJob) (*domain.Submission, error) {
	// 1. Resolve the project, falling back to the credentials' own project.
	defaultProject, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}
	project := job.Project
	if project == "" {
		project = defaultProject
	}
	if project == "" {
		return nil, fmt.Errorf("%w: set project in vertex.toml or GCP_PROJECT", domain.ErrMissingProject)
	}

	// 2. Get the regional API service.
	svc, err := c.serviceFor(ctx, job.Location)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// 3. Submit.
	parent := fmt.Sprintf("projects/%s/locations/%s", project, job.Location)
	created, err := svc.Projects.Locations.CustomJobs.Create(parent, buildCustomJob(job)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create custom job: %w", gcp.WrapError(err))
	}

	// The create response omits the state field until the scheduler picks
	// the job up.
	state := domain.JobState(created.State)
	if created.State == "" {
		state = domain.JobStatePending
	}

	return &domain.Submission{
		ResourceName: created.Name,
		DisplayName:  created.DisplayName,
		Project:      project,
		Location:     job.Location,
		ImageURI:     job.ImageURI,
		State:        state,
	}, nil
}

// JobState fetches the current lifecycle state of a job.
func (c *JobClient) JobState(ctx context.Context, resourceName string) (domain.JobState, error) {
	location := locationFromResource(resourceName)
	if location == "" {
		return "", fmt.Errorf("%w: no location in resource name %q", domain.ErrInvalidInput, resourceName)
	}

	if _, err := c.credentials(ctx); err != nil {
		return "", err
	}

	svc, err := c.serviceFor(ctx, location)
	if err != nil {
		return "", err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	job, err := svc.Projects.Locations.CustomJobs.Get(resourceName).Context(ctx).Do()
	if err != nil {
		if gcp.IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return "", fmt.Errorf("get custom job: %w", gcp.WrapError(err))
	}

	return domain.JobState(job.State), nil
}

// credentials resolves Application Default Credentials once and returns the
// credentials' default project.
func (c *JobClient) credentials(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokenSource != nil {
		return c.defaultProject, nil
	}

	creds, err := gcp.Credentials(ctx, aiplatform.CloudPlatformScope)
	if err != nil {
		return "", err
	}

	c.tokenSource = creds.TokenSource
	c.defaultProject = creds.ProjectID
	return c.defaultProject, nil
}

// serviceFor returns the API service for a location, creating it on first
// use. credentials must have been resolved.
func (c *JobClient) serviceFor(ctx context.Context, location string) (*aiplatform.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if svc, ok := c.services[location]; ok {
		return svc, nil
	}

	svc, err := aiplatform.NewService(ctx,
		option.WithTokenSource(c.tokenSource),
		option.WithEndpoint(regionalEndpoint(location)),
	)
	if err != nil {
		return nil, fmt.Errorf("create aiplatform service for %s: %w", location, err)
	}

	c.services[location] = svc
	return svc, nil
}

// regionalEndpoint returns the Vertex AI endpoint for a location.
func regionalEndpoint(location string) string {
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/", location)
}

// locationFromResource extracts the location segment from a full resource
// name like projects/p/locations/us-central1/customJobs/123.
func locationFromResource(resourceName string) string {
	parts := strings.Split(resourceName, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "locations" {
			return parts[i+1]
		}
	}
	return ""
}

// buildCustomJob maps a training job onto the Vertex AI request shape: a
// single worker pool running the container image.
func buildCustomJob(job domain.TrainingJob) *aiplatform.GoogleCloudAiplatformV1CustomJob {
	machine := &aiplatform.GoogleCloudAiplatformV1MachineSpec{
		MachineType:      job.MachineType,
		AcceleratorType:  job.AcceleratorType,
		AcceleratorCount: job.AcceleratorCount,
	}

	container := &aiplatform.GoogleCloudAiplatformV1ContainerSpec{
		ImageUri: job.ImageURI,
		Args:     job.Args,
		Env:      envVars(job.Env),
	}

	pool := &aiplatform.GoogleCloudAiplatformV1WorkerPoolSpec{
		MachineSpec:   machine,
		ReplicaCount:  job.ReplicaCount,
		ContainerSpec: container,
	}

	spec := &aiplatform.GoogleCloudAiplatformV1CustomJobSpec{
		WorkerPoolSpecs: []*aiplatform.GoogleCloudAiplatformV1WorkerPoolSpec{pool},
		ServiceAccount:  job.ServiceAccount,
	}
	if job.OutputURIPrefix != "" {
		spec.BaseOutputDirectory = &aiplatform.GoogleCloudAiplatformV1GcsDestination{
			OutputUriPrefix: job.OutputURIPrefix,
		}
	}

	return &aiplatform.GoogleCloudAiplatformV1CustomJob{
		DisplayName: job.DisplayName,
		JobSpec:     spec,
		Labels:      job.Labels,
	}
}

// envVars converts the env map to the API list form. Keys are sorted so the
// request body is deterministic.
func envVars(env map[string]string) []*aiplatform.GoogleCloudAiplatformV1EnvVar {
	if len(env) == 0 {
		return nil
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]*aiplatform.GoogleCloudAiplatformV1EnvVar, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, &aiplatform.GoogleCloudAiplatformV1EnvVar{Name: k, Value: env[k]})
	}
	return vars
}
