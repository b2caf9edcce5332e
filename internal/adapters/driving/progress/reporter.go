// Package progress renders progress for long-running work. When the output
// is a terminal it shows a live progress bar; otherwise it falls back to
// coarse log lines so piped output stays readable.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// plainStepPercent is how often the plain fallback prints, in percent.
const plainStepPercent = 10

// Compile-time check that Reporter implements the driven port.
var _ driven.ProgressReporter = (*Reporter)(nil)

// Reporter implements driven.ProgressReporter on a terminal or plain writer.
// Start and Done must be called from the same goroutine; Advance may be
// called from many.
type Reporter struct {
	out   io.Writer
	isTTY bool

	// TTY mode
	program  *tea.Program
	progDone chan struct{}

	// Plain mode
	mu      sync.Mutex
	title   string
	total   int
	done    int
	lastPct int
}

// New creates a reporter writing to w. The live bar is used only when w is
// a terminal.
func New(w io.Writer) *Reporter {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	return &Reporter{out: w, isTTY: isTTY}
}

// Start begins a new phase of total steps.
func (r *Reporter) Start(title string, total int) {
	if r.isTTY {
		r.program = tea.NewProgram(
			newModel(title, total),
			tea.WithOutput(r.out),
			tea.WithInput(nil),
		)
		r.progDone = make(chan struct{})
		go func() {
			_, _ = r.program.Run()
			close(r.progDone)
		}()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.title = title
	r.total = total
	r.done = 0
	r.lastPct = 0
	fmt.Fprintf(r.out, "%s: 0/%d\n", title, total)
}

// Advance records one completed step.
func (r *Reporter) Advance(label string) {
	if r.program != nil {
		r.program.Send(advanceMsg{label: label})
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	if r.total <= 0 {
		return
	}

	pct := r.done * 100 / r.total
	if pct/plainStepPercent > r.lastPct/plainStepPercent || r.done == r.total {
		fmt.Fprintf(r.out, "%s: %d/%d (%d%%)\n", r.title, r.done, r.total, pct)
	}
	r.lastPct = pct
}

// Done ends the current phase.
func (r *Reporter) Done() {
	if r.program != nil {
		r.program.Send(finishMsg{})
		<-r.progDone
		r.program = nil
		r.progDone = nil
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s: done\n", r.title)
}
