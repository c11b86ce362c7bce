package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/scribe/internal/diff"
	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/store"
	"github.com/gerunddev/scribe/internal/surface"
	"github.com/gerunddev/scribe/internal/tui"
)

const statusRefresh = 2 * time.Second

// Status shows the stored document and recent activity
func Status() {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	load := func() (*tui.StatusData, error) {
		return gatherStatus(ctx, s)
	}

	p := tea.NewProgram(tui.InitStatusModel(load, statusRefresh), tea.WithInput(os.Stdin))
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

// gatherStatus reads the store directly so changes from other editors show up
func gatherStatus(ctx context.Context, s *session) (*tui.StatusData, error) {
	values, err := s.gateway.Load(ctx)
	if err != nil {
		return nil, err
	}

	data := &tui.StatusData{
		Backend:  s.cfg.StoreBackend,
		Location: location(s.cfg),
		Mode:     storedState(values).String(),
		Title:    document.Title(values[store.KeyMarkdown]),
	}
	if data.Title == "" {
		data.Title = "Untitled"
	}

	for _, key := range store.Keys {
		value, ok := values[key]
		if !ok {
			continue
		}
		data.Keys = append(data.Keys, tui.StoredKey{Key: key, Bytes: len(value), Value: value})
	}

	if len(data.Keys) > 0 {
		state := storedState(values)
		content := document.Content{HTML: values[store.KeyHTML], Markdown: values[store.KeyMarkdown]}
		surf := surface.New()
		surf.SetHTML(content.HTML)
		stats := document.ComputeStats(state.Mode, content, state.Lang, surf.Text())
		data.Words, data.Chars = stats.Words, stats.Chars
	}

	if s.cfg.LogFile != "" {
		data.LogLines, data.LastSaved, _ = ParseLogFile(s.cfg.LogFile, 10)
	}

	return data, nil
}

// storedState decodes the persisted mode keys the way a restore would
func storedState(values map[string]string) document.State {
	state := document.State{Mode: document.Visual, Lang: document.LangMarkdown}
	mode, err := document.ParseMode(values[store.KeyMode])
	if err != nil {
		return state
	}
	state.Mode = mode
	if lang, err := document.ParseRawLanguage(values[store.KeyRawLanguage]); err == nil && mode == document.MarkdownSplit {
		state.Mode = document.RawSource
		state.Lang = lang
	}
	return state
}

// Diff shows how the stored Markdown differs from a fresh conversion of the
// stored HTML
func Diff() {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	load := func() tui.DiffMsg {
		return diffDocument(s)
	}

	title := fmt.Sprintf("Markdown vs %s conversion", s.converter.Name())
	p := tea.NewProgram(tui.InitDiffModel(title, load), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

func diffDocument(s *session) tui.DiffMsg {
	content := s.ctrl.Content()
	result := diff.Compare(content.Markdown, content.HTML, s.converter)
	return tui.DiffMsg{
		Content: result.Render(s.cfg.WordWrap),
		Changed: result.Changed,
	}
}
