package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/scribe/internal/clipboard"
	"github.com/gerunddev/scribe/internal/convert"
	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/editor"
	"github.com/gerunddev/scribe/internal/format"
	"github.com/gerunddev/scribe/internal/styles"
	"github.com/gerunddev/scribe/internal/surface"
)

// SwitchedMsg is sent when a mode transition finishes
type SwitchedMsg struct {
	Err error
}

// ImportedMsg is sent when a file import finishes
type ImportedMsg struct {
	Path string
	Err  error
}

// SavedMsg is sent when a save finishes
type SavedMsg struct {
	Err error
}

// ExportedMsg is sent when an export has been written
type ExportedMsg struct {
	Path string
	Err  error
}

type promptKind int

const (
	promptNone promptKind = iota
	promptImport
	promptLink
	promptScratchpad
)

// EditorOptions wires the editor program
type EditorOptions struct {
	Controller *editor.Controller
	Surface    *surface.Surface
	Clipboard  clipboard.Reader
	ExportDir  string
	WordWrap   int
	Converter  convert.Converter // visual preview, same as the controller's
	// Label names the document in the header, usually the opened file
	Label string
}

type editorModel struct {
	ctrl      *editor.Controller
	surf      *surface.Surface
	clip      clipboard.Reader
	exportDir string
	label     string

	source  textarea.Model
	input   textinput.Model
	preview viewport.Model
	spinner spinner.Model
	glam    *glamour.TermRenderer
	visual  convert.Converter

	prompt    promptKind
	pending   bool
	notice    string
	noticeErr bool
	width     int
	height    int
}

// InitEditorModel creates the editor program model
func InitEditorModel(opts EditorOptions) editorModel {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Placeholder = "Start typing..."
	ta.CharLimit = 0
	ta.Focus()

	ti := textinput.New()
	ti.CharLimit = 512

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	vp := viewport.New(40, 20)

	wrap := opts.WordWrap
	if wrap <= 0 {
		wrap = 80
	}
	glam, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		glam = nil
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.System{}
	}

	conv := opts.Converter
	if conv == nil {
		conv = convert.Rules{}
	}

	m := editorModel{
		ctrl:      opts.Controller,
		surf:      opts.Surface,
		clip:      clip,
		exportDir: opts.ExportDir,
		label:     opts.Label,
		source:    ta,
		input:     ti,
		preview:   vp,
		spinner:   s,
		glam:      glam,
		visual:    conv,
	}
	m.reload()
	return m
}

func (m editorModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)

	case SwitchedMsg:
		if editor.IsStale(msg.Err) {
			// A newer transition owns the screen and is still pending
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.notify(msg.Err.Error(), true)
		} else {
			m.notify(fmt.Sprintf("Switched to %s", m.ctrl.State()), false)
		}
		m.reload()
		return m, nil

	case ImportedMsg:
		if editor.IsStale(msg.Err) {
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.notify(msg.Err.Error(), true)
			return m, nil
		}
		m.notify("Loaded "+msg.Path, false)
		m.reload()
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.notify(msg.Err.Error(), true)
		} else {
			m.notify("Document saved", false)
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.notify(msg.Err.Error(), true)
		} else {
			m.notify("Exported "+msg.Path, false)
		}
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.source, cmd = m.source.Update(msg)
	return m, cmd
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if mode, ok := modeKeys[key]; ok {
		return m.switchMode(mode)
	}
	if cmd, ok := formatKeys[key]; ok {
		m.apply(cmd, "")
		return m, nil
	}

	switch key {
	case keyQuit:
		return m, tea.Quit

	case keyLanguage:
		lang := document.LangHTML
		if m.ctrl.RawLanguage() == document.LangHTML {
			lang = document.LangMarkdown
		}
		if m.ctrl.Mode() != document.RawSource {
			_ = m.ctrl.SetRawLanguage(context.Background(), lang)
			m.notify("Raw language: "+lang.String(), false)
			return m, nil
		}
		m.pending = true
		return m, func() tea.Msg {
			return SwitchedMsg{Err: m.ctrl.SetRawLanguage(context.Background(), lang)}
		}

	case keySave:
		return m, func() tea.Msg {
			return SavedMsg{Err: m.ctrl.Save(context.Background())}
		}

	case keyExport:
		exp := m.ctrl.Download()
		dir := m.exportDir
		return m, func() tea.Msg {
			path, err := exp.WriteTo(dir)
			return ExportedMsg{Path: path, Err: err}
		}

	case keyImport:
		return m.openPrompt(promptImport, "File to import")

	case keyLink:
		if m.ctrl.Mode() != document.Visual {
			m.notify(editor.ErrFormatUnavailable.Error(), true)
			return m, nil
		}
		return m.openPrompt(promptLink, "https://")

	case keyScratchpad:
		if m.ctrl.Mode() != document.Visual {
			m.notify(editor.ErrFormatUnavailable.Error(), true)
			return m, nil
		}
		return m.openPrompt(promptScratchpad, "Text to insert as plain text")

	case keyPaste:
		if err := m.ctrl.PastePlainText(context.Background(), m.clip); err != nil {
			m.notify(err.Error(), true)
			return m, nil
		}
		m.notify("Pasted as plain text", false)
		m.reload()
		return m, nil

	case keyClear:
		m.ctrl.Clear()
		m.notify("Document cleared", false)
		m.reload()
		return m, nil
	}

	if m.pending {
		// Edits wait until the pending transition lands
		return m, nil
	}

	before := m.source.Value()
	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	m.syncEdit(before)
	return m, cmd
}

func (m editorModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCancel:
		m.closePrompt()
		return m, nil

	case keyConfirm:
		raw := m.input.Value()
		value := strings.TrimSpace(raw)
		kind := m.prompt
		m.closePrompt()
		if value == "" {
			return m, nil
		}

		switch kind {
		case promptImport:
			m.pending = true
			return m, func() tea.Msg {
				return ImportedMsg{Path: value, Err: m.ctrl.UploadFile(context.Background(), value)}
			}
		case promptLink:
			m.apply(format.CreateLink, value)
		case promptScratchpad:
			m.apply(format.InsertText, raw)
			m.reload()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editorModel) switchMode(mode document.Mode) (tea.Model, tea.Cmd) {
	if mode == m.ctrl.Mode() {
		return m, nil
	}
	m.pending = true
	return m, func() tea.Msg {
		return SwitchedMsg{Err: m.ctrl.SwitchMode(context.Background(), mode)}
	}
}

func (m *editorModel) apply(cmd format.Command, value string) {
	m.surf.SetCursor(m.source.Line())
	if err := m.ctrl.Apply(cmd, value); err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.notify(cmd.String(), false)
	m.refreshPreview()
}

// syncEdit pushes a textarea change into the controller
func (m *editorModel) syncEdit(before string) {
	value := m.source.Value()
	if m.ctrl.Mode() == document.Visual {
		m.surf.SetCursor(m.source.Line())
		if value == before {
			return
		}
		m.surf.SetLines(strings.Split(value, "\n"))
		m.ctrl.Capture()
		m.surf.SetCursor(m.source.Line())
	} else {
		if value == before {
			return
		}
		m.ctrl.Edit(value)
	}
	m.refreshPreview()
}

// reload shows the controller's current text in the editor pane
func (m *editorModel) reload() {
	if m.ctrl.Mode() == document.Visual {
		m.source.SetValue(strings.Join(m.surf.Lines(), "\n"))
	} else {
		m.source.SetValue(m.ctrl.Shown())
	}
	m.resize()
	m.refreshPreview()
}

func (m *editorModel) refreshPreview() {
	var md string
	switch m.ctrl.Mode() {
	case document.Visual:
		md = m.visual.ToMarkdown(m.surf.HTML())
	case document.MarkdownSplit:
		md = m.ctrl.Content().Markdown
	default:
		return
	}

	out := md
	if m.glam != nil {
		if rendered, err := m.glam.Render(md); err == nil {
			out = rendered
		}
	}
	m.preview.SetContent(out)
}

func (m *editorModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := m.height - 6
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	if m.ctrl.Mode() == document.RawSource {
		m.source.SetWidth(m.width - 2)
		m.source.SetHeight(bodyHeight)
		return
	}

	half := m.width / 2
	m.source.SetWidth(half - 2)
	m.source.SetHeight(bodyHeight)
	m.preview.Width = m.width - half - 4
	m.preview.Height = bodyHeight
}

func (m *editorModel) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.source.Blur()
	return *m, m.input.Focus()
}

func (m *editorModel) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.source.Focus()
}

func (m *editorModel) notify(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(m.header())
	b.WriteString("\n\n")

	state := m.ctrl.State()
	switch state.Mode {
	case document.RawSource:
		badge := styles.MarkdownBadge
		if state.Lang == document.LangHTML {
			badge = styles.HTMLBadge
		}
		b.WriteString(badge.Render(state.Lang.Filename()))
		b.WriteString("\n")
		b.WriteString(m.source.View())
	default:
		left := lipgloss.JoinVertical(lipgloss.Left,
			styles.PaneTitleStyle.Render(m.editorTitle()),
			m.source.View())
		right := lipgloss.JoinVertical(lipgloss.Left,
			styles.PaneTitleStyle.Render("Preview"),
			styles.PaneStyle.Render(m.preview.View()))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}
	b.WriteString("\n")

	switch m.prompt {
	case promptImport:
		b.WriteString(styles.HighlightStyle.Render("Import: ") + m.input.View())
	case promptLink:
		b.WriteString(styles.HighlightStyle.Render("Link: ") + m.input.View())
	default:
		b.WriteString(m.statusLine())
	}
	b.WriteString("\n")

	if state.Mode == document.Visual {
		b.WriteString(styles.HelpStyle.Render(formatHelpText))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render(helpText))

	return b.String()
}

func (m editorModel) header() string {
	current := m.ctrl.Mode()
	var tabs []string
	for _, mode := range []document.Mode{document.Visual, document.MarkdownSplit, document.RawSource} {
		style := styles.TabStyle
		if mode == current {
			style = styles.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(tabLabel(mode)))
	}

	title := document.Title(m.ctrl.Content().Markdown)
	if title == "" {
		title = "Untitled"
	}
	if m.label != "" {
		title = m.label + " · " + title
	}

	stats := m.ctrl.Stats()
	counts := styles.DimStyle.Render(fmt.Sprintf("%d words • %d chars", stats.Words, stats.Chars))

	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.TitleStyle.Render(title), "  ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...), "  ",
		counts)
}

func (m editorModel) editorTitle() string {
	if m.ctrl.Mode() == document.Visual {
		return "Visual"
	}
	return "Markdown"
}

func (m editorModel) statusLine() string {
	if m.pending {
		return m.spinner.View() + " Rendering..."
	}
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return styles.ErrorStyle.Render("✗ " + m.notice)
	}
	return styles.SuccessStyle.Render("✓ " + m.notice)
}

func tabLabel(mode document.Mode) string {
	switch mode {
	case document.Visual:
		return "F1 Visual"
	case document.MarkdownSplit:
		return "F2 Markdown"
	default:
		return "F3 Raw"
	}
}
