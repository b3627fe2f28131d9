// Package tui renders scenario progress as a bubbletea dashboard.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI forwards ui.UI calls to a running program.
type TUI struct {
	program *tea.Program
}

func NewTUI(p *tea.Program) *TUI {
	return &TUI{program: p}
}

func (t *TUI) UpdateStatus(status string) {
	t.program.Send(StatusMsg(status))
}

func (t *TUI) UpdateStep(step, total int) {
	t.program.Send(StepMsg{Step: step, Total: total})
}

func (t *TUI) Log(msg string) {
	t.program.Send(LogMsg(msg))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

type Model struct {
	Title    string
	Status   string
	Step     int
	Total    int
	Failed   bool
	Log      []string
	Progress progress.Model
	Viewport viewport.Model
	Quitting bool
	Ready    bool
	Width    int
	Height   int
}

type LogMsg string
type StatusMsg string

type StepMsg struct {
	Step  int
	Total int
}

// DoneMsg marks the end of a scenario. A non-nil Err is shown in red.
type DoneMsg struct {
	Err error
}

func NewModel(title string, total int) Model {
	return Model{
		Title:    title,
		Status:   "Initializing...",
		Total:    total,
		Progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-6)
			m.Viewport.SetContent(strings.Join(m.Log, "\n"))
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 6
		}
		m.Progress.Width = msg.Width - 4

	case LogMsg:
		m.Log = append(m.Log, string(msg))
		m.Viewport.SetContent(strings.Join(m.Log, "\n"))
		m.Viewport.GotoBottom()

	case StatusMsg:
		m.Status = string(msg)

	case StepMsg:
		m.Step = msg.Step
		m.Total = msg.Total

	case DoneMsg:
		if msg.Err != nil {
			m.Failed = true
			m.Status = msg.Err.Error()
		} else {
			m.Status = "Done (press q to quit)"
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// Fraction is the share of steps completed, in [0, 1].
func (m Model) Fraction() float64 {
	if m.Total <= 0 {
		return 0
	}
	return min(float64(m.Step)/float64(m.Total), 1)
}

func (m Model) View() string {
	if !m.Ready {
		return "\n  Initializing..."
	}

	header := titleStyle.Render(" TOXIC Mates: " + m.Title + " ")
	status := infoStyle.Render(fmt.Sprintf(" Status: %s ", m.Status))
	if m.Failed {
		status = errorStyle.Render(fmt.Sprintf(" Failed: %s ", m.Status))
	}
	step := fmt.Sprintf(" Step: %d/%d ", m.Step, m.Total)

	view := fmt.Sprintf("%s%s%s\n\n%s\n\n%s",
		header, status, step,
		m.Viewport.View(),
		m.Progress.ViewAs(m.Fraction()))

	if m.Quitting {
		return view + "\n  Quitting...\n"
	}
	return view
}
