package driven

// ProgressReporter receives coarse progress events from long-running
// work. Implementations must tolerate concurrent Advance calls.
type ProgressReporter interface {
	// Start begins a new phase of total steps.
	Start(title string, total int)

	// Advance records one completed step.
	Advance(label string)

	// Done ends the current phase.
	Done()
}

// NopProgress discards all progress events. Services treat it as the
// default when no reporter is wired.
type NopProgress struct{}

func (NopProgress) Start(string, int) {}
func (NopProgress) Advance(string)    {}
func (NopProgress) Done()             {}
