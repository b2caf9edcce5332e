// Package cli implements the vtrain command surface with cobra.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// version is the build version, injected via SetVersion from main.
var version = "dev"

// verbose mirrors the --verbose persistent flag.
var verbose bool

// Services the commands call. main wires real implementations; tests swap
// in fakes.
var (
	converterService driving.DatasetConverter
	stagerService    driving.DataStager
	launcherService  driving.TrainingLauncher
	submitterService driving.JobSubmitter
)

var rootCmd = &cobra.Command{
	Use:   "vtrain",
	Short: "Dataset and training job tooling for object detection",
	Long: `vtrain prepares object detection datasets and runs training jobs.

It converts YOLO layout datasets to COCO, stages datasets from Cloud
Storage, wraps the training command inside containers, and submits custom
training jobs to Vertex AI.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Services bundles the driving ports the commands depend on.
type Services struct {
	Converter driving.DatasetConverter
	Stager    driving.DataStager
	Launcher  driving.TrainingLauncher
	Submitter driving.JobSubmitter
}

// SetServices wires service implementations into the commands.
func SetServices(s Services) {
	converterService = s.Converter
	stagerService = s.Stager
	launcherService = s.Launcher
	submitterService = s.Submitter
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
