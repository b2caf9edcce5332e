package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
)

var (
	fetchDest    string
	fetchWorkers int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch gs://bucket/prefix",
	Short: "Download a dataset from Cloud Storage",
	Long: `Mirrors every object under a gs:// prefix into a local directory,
preserving paths relative to the prefix. Downloads run concurrently.

Authentication uses Application Default Credentials; run
'gcloud auth application-default login' first on a workstation.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDest, "dest", "data", "destination directory")
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 0, "concurrent downloads (0 uses the default)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if stagerService == nil {
		return errors.New("stager service not configured")
	}

	remote, err := domain.ParseStoragePath(args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Fetching %s to %s\n", remote, fetchDest)

	result, err := stagerService.Stage(cmd.Context(), driving.StageRequest{
		Remote:  remote,
		DestDir: fetchDest,
		Workers: fetchWorkers,
	})
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	cmd.Printf("Downloaded %d objects", result.Downloaded)
	if result.Skipped > 0 {
		cmd.Printf(" (%d skipped)", result.Skipped)
	}
	cmd.Println()

	return nil
}
