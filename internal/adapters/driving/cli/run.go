package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [--] [training args...]",
	Short: "Stage data and hand the process over to the training command",
	Long: `The container entrypoint. Behaviour is driven by the environment:

  GCS_DATA_PATH     gs:// prefix fetched before training (optional)
  DATA_DIR          where fetched data lands (default "data")
  TRAIN_COMMAND     the command to exec (default "python3 train.py")
  TRAIN_EXTRA_ARGS  fallback args used when none are given here

Forwarded arguments get a per-run output directory: an 8-character run ID
is appended to the --output-dir value, or --output-dir output/<id> is added
when the flag is absent. The process is then replaced by the training
command, so its exit code is the container's exit code.

Flag parsing is disabled; everything after "run" goes to the trainer.`,
	DisableFlagParsing: true,
	RunE:               runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h") {
		return cmd.Help()
	}

	if launcherService == nil {
		return errors.New("launcher service not configured")
	}

	// Flag parsing is off, so a separator still reaches us. Drop it.
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	// On success the process is replaced and this never returns.
	return launcherService.Launch(cmd.Context(), args)
}
