package driving

import "context"

// TrainingLauncher is the container entrypoint: it prepares data and
// environment, then hands the process over to the training command.
type TrainingLauncher interface {
	// Launch optionally stages remote data, rewrites the output
	// directory so each run writes somewhere fresh, and replaces the
	// current process with the training command. On success it never
	// returns.
	Launch(ctx context.Context, args []string) error
}
