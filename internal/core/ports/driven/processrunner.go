package driven

// ProcessRunner hands the current process over to another command.
type ProcessRunner interface {
	// Exec replaces the current process image with argv[0] and its
	// arguments, passing env as the complete environment. On success it
	// never returns.
	Exec(argv []string, env []string) error
}
