package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
)

var (
	submitConfigPath     string
	submitEpochs         int
	submitBatchSize      int
	submitCheckpointFreq int
	submitTestOnly       bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a training job to Vertex AI",
	Long: `Builds a custom training job from the vertex.toml config file and
submits it to Vertex AI.

The GCP_PROJECT and WANDB_API_KEY environment variables override their
config file counterparts. Command line flags append config overrides to
the container arguments, so the config file stays the single source of
truth for everything else.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitConfigPath, "config", "vertex.toml", "job config file")
	submitCmd.Flags().IntVar(&submitEpochs, "epochs", 0, "override the training epoch count")
	submitCmd.Flags().IntVar(&submitBatchSize, "batch-size", 0, "override the total train batch size")
	submitCmd.Flags().IntVar(&submitCheckpointFreq, "checkpoint-freq", 0, "override the checkpoint interval")
	submitCmd.Flags().BoolVar(&submitTestOnly, "test-only", false, "run evaluation instead of training")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	if submitterService == nil {
		return errors.New("submitter service not configured")
	}

	sub, err := submitterService.Submit(cmd.Context(), driving.SubmitOverrides{
		ConfigPath:     submitConfigPath,
		Epochs:         submitEpochs,
		BatchSize:      submitBatchSize,
		CheckpointFreq: submitCheckpointFreq,
		TestOnly:       submitTestOnly,
	})
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	cmd.Println("Job submitted successfully!")
	cmd.Printf("  Name: %s\n", sub.ResourceName)
	cmd.Printf("  Display name: %s\n", sub.DisplayName)
	cmd.Printf("  State: %s\n", sub.State.Short())
	cmd.Println()
	cmd.Println("Monitor progress at:")
	cmd.Printf("  %s\n", sub.ConsoleURL())

	return nil
}
