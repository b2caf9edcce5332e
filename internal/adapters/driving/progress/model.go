package progress

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// advanceMsg records one completed step.
type advanceMsg struct {
	label string
}

// finishMsg tells the model to quit.
type finishMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// model renders a single-phase progress bar.
type model struct {
	bar   progress.Model
	title string
	total int
	done  int
	label string
}

func newModel(title string, total int) model {
	return model{
		bar:   progress.New(progress.WithDefaultGradient()),
		title: title,
		total: total,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.done++
		m.label = msg.label
		return m, nil

	case finishMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		width := msg.Width - 30
		if width > 60 {
			width = 60
		}
		if width > 0 {
			m.bar.Width = width
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}

	return fmt.Sprintf("%s %s %d/%d %s\n",
		titleStyle.Render(m.title),
		m.bar.ViewAs(percent),
		m.done, m.total,
		labelStyle.Render(m.label),
	)
}
