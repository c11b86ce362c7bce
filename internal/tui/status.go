package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/scribe/internal/styles"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.Muted))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.Foreground))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(styles.Border))
)

// StoredKey is one persisted value
type StoredKey struct {
	Key   string
	Bytes int
	Value string
}

// StatusData holds everything the status screen shows
type StatusData struct {
	Backend   string
	Location  string
	Mode      string
	Title     string
	Words     int
	Chars     int
	Keys      []StoredKey
	LastSaved time.Time
	LogLines  []string
}

// StatusMsg is sent when status data is ready
type StatusMsg struct {
	Data *StatusData
	Err  error
}

// TickMsg triggers a periodic refresh
type TickMsg time.Time

type statusModel struct {
	spinner  spinner.Model
	table    table.Model
	data     *StatusData
	err      error
	loading  bool
	ready    bool
	width    int
	height   int
	interval time.Duration
	load     func() (*StatusData, error)
}

// InitStatusModel creates the status screen. load is called on start and
// again every interval; a zero interval disables refreshing.
func InitStatusModel(load func() (*StatusData, error), interval time.Duration) statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	columns := []table.Column{
		{Title: "Key", Width: 22},
		{Title: "Bytes", Width: 8},
		{Title: "Preview", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(6),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Foreground)).
		Background(lipgloss.Color(styles.Blue)).
		Bold(false)
	t.SetStyles(ts)

	return statusModel{
		spinner:  s,
		table:    t,
		loading:  true,
		interval: interval,
		load:     load,
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m statusModel) fetch() tea.Cmd {
	return func() tea.Msg {
		data, err := m.load()
		return StatusMsg{Data: data, Err: err}
	}
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, m.fetch()
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case TickMsg:
		return m, m.fetch()

	case StatusMsg:
		m.loading = false
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Keys))
			for _, k := range m.data.Keys {
				rows = append(rows, table.Row{k.Key, fmt.Sprintf("%d", k.Bytes), preview(k.Value, 38)})
			}
			m.table.SetRows(rows)
		}

		if m.interval > 0 {
			return m, tea.Tick(m.interval, func(t time.Time) tea.Msg {
				return TickMsg(t)
			})
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scribe Status"))
	b.WriteString("\n\n")

	if m.err != nil {
		return styles.ErrorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if m.loading && !m.ready {
		b.WriteString(fmt.Sprintf("%s Reading store...\n", m.spinner.View()))
		return b.String()
	}

	if m.data == nil {
		return b.String()
	}

	// Store
	b.WriteString(labelStyle.Render("Store"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Backend:  %s\n", valueStyle.Render(m.data.Backend)))
	b.WriteString(fmt.Sprintf("  Location: %s\n", valueStyle.Render(m.data.Location)))
	if !m.data.LastSaved.IsZero() {
		since := time.Since(m.data.LastSaved).Round(time.Second)
		b.WriteString(fmt.Sprintf("  Saved:    %s ago\n", valueStyle.Render(since.String())))
	}
	b.WriteString("\n")

	// Document
	b.WriteString(labelStyle.Render("Document"))
	b.WriteString("\n")
	if len(m.data.Keys) == 0 {
		b.WriteString(fmt.Sprintf("  %s\n", styles.HelpStyle.Render("Nothing saved yet")))
	} else {
		b.WriteString(fmt.Sprintf("  Title: %s\n", valueStyle.Render(m.data.Title)))
		b.WriteString(fmt.Sprintf("  Mode:  %s\n", valueStyle.Render(m.data.Mode)))
		b.WriteString(fmt.Sprintf("  Count: %s\n", valueStyle.Render(fmt.Sprintf("%d words • %d chars", m.data.Words, m.data.Chars))))
		b.WriteString("\n")
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Log tail
	b.WriteString(labelStyle.Render("Recent Logs"))
	b.WriteString("\n")
	if len(m.data.LogLines) > 0 {
		for _, line := range m.data.LogLines {
			b.WriteString("  " + line + "\n")
		}
	} else {
		b.WriteString(styles.HelpStyle.Render("  No logs available"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	help := "↑/k up • ↓/j down • r refresh • q quit"
	if m.interval > 0 {
		help += fmt.Sprintf(" • auto-refresh: %s", m.interval)
	}
	b.WriteString(styles.HelpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// preview flattens a stored value to one line of at most n runes
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
