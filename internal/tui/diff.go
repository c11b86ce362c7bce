package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/scribe/internal/styles"
)

// DiffMsg is sent when the diff is ready
type DiffMsg struct {
	Content string
	Changed bool
	Err     error
}

type diffModel struct {
	viewport viewport.Model
	title    string
	content  string
	changed  bool
	err      error
	ready    bool
	load     func() DiffMsg
}

// InitDiffModel creates a scrollable diff viewer. load produces the diff.
func InitDiffModel(title string, load func() DiffMsg) diffModel {
	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return diffModel{
		viewport: vp,
		title:    title,
		load:     load,
	}
}

func (m diffModel) Init() tea.Cmd {
	return func() tea.Msg {
		return m.load()
	}
}

func (m diffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k", "down", "j", "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case DiffMsg:
		m.ready = true
		m.err = msg.Err
		m.changed = msg.Changed
		m.content = msg.Content
		m.viewport.SetContent(m.content)
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m diffModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready {
		return b.String()
	}

	if !m.changed {
		b.WriteString(styles.SuccessStyle.Render("✓ Converting would not change the stored Markdown"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf("↑/k up • ↓/j down • g/G top/bottom • q quit  %3.f%%", m.viewport.ScrollPercent()*100)))
	b.WriteString("\n")

	return b.String()
}
