package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/scribe/internal/styles"
)

// TaskResult holds the outcome of a one-shot job
type TaskResult struct {
	Summary  string
	Detail   string
	Duration time.Duration
}

// TaskMsg is sent when the job finishes
type TaskMsg struct {
	Result *TaskResult
	Err    error
}

// taskModel shows a spinner while a job runs, then its result
type taskModel struct {
	spinner  spinner.Model
	status   string
	job      func() (*TaskResult, error)
	complete bool
	result   *TaskResult
	err      error
}

// InitTaskModel creates a progress model for job
func InitTaskModel(status string, job func() (*TaskResult, error)) taskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return taskModel{
		spinner: s,
		status:  status,
		job:     job,
	}
}

func (m taskModel) Init() tea.Cmd {
	job := m.job
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		start := time.Now()
		result, err := job()
		if result != nil {
			result.Duration = time.Since(start)
		}
		return TaskMsg{Result: result, Err: err}
	})
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case TaskMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m taskModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ "+m.err.Error()) + "\n"
	}

	if m.result == nil {
		return styles.SuccessStyle.Render("✓ Done") + "\n"
	}

	out := styles.SuccessStyle.Render("✓ "+m.result.Summary) + "\n"
	if m.result.Detail != "" {
		out += styles.DimStyle.Render("  "+m.result.Detail) + "\n"
	}
	out += styles.HelpStyle.Render(fmt.Sprintf("Completed in %v", m.result.Duration.Round(time.Millisecond))) + "\n"
	return out
}

// Err reports the job's failure, if any
func (m taskModel) Err() error {
	return m.err
}
