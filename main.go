// vtrain prepares object detection datasets and manages training jobs
// on Vertex AI.
package main

import (
	"os"

	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/config/file"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/execrunner"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/gcp/gcs"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/gcp/vertex"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/imagefs"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driven/storage/sqlite"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driving/cli"
	"github.com/calvera-labs/vtrain-cli/internal/adapters/driving/progress"
	"github.com/calvera-labs/vtrain-cli/internal/core/services"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logger.SetOutput(os.Stderr)

	// Driven adapters. Cloud clients and the ledger open on first use,
	// so commands that never touch them run without credentials or a
	// writable home directory.
	placer := imagefs.NewPlacer()
	objects := gcs.NewObjectStore()
	jobs := vertex.NewJobClient()
	configs := file.NewJobConfigStore()
	ledger := sqlite.NewLazySubmissionStore("")
	runner := execrunner.NewRunner()
	reporter := progress.New(os.Stderr)

	// Core services.
	stager := services.NewStagingService(objects, reporter)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Converter: services.NewConversionService(placer, reporter),
		Stager:    stager,
		Launcher:  services.NewLaunchService(stager, runner),
		Submitter: services.NewSubmitService(configs, jobs, ledger),
	})

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
