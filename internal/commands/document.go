package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/scribe/internal/convert"
	"github.com/gerunddev/scribe/internal/editor"
	"github.com/gerunddev/scribe/internal/render"
	"github.com/gerunddev/scribe/internal/styles"
	"github.com/gerunddev/scribe/internal/tui"
)

// Conversion targets for the convert command
const (
	ToMarkdown = "md"
	ToHTML     = "html"
)

// Edit opens the interactive editor, optionally loading a file first.
// The document is saved when the editor closes.
func Edit(args []string) {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	label := ""
	if len(args) > 0 {
		if err := s.ctrl.UploadFile(ctx, args[0]); err != nil {
			fail(err)
		}
		label = filepath.Base(args[0])
	}

	m := tui.InitEditorModel(tui.EditorOptions{
		Controller: s.ctrl,
		Surface:    s.surface,
		ExportDir:  s.cfg.ExportDir,
		WordWrap:   s.cfg.WordWrap,
		Converter:  s.converter,
		Label:      label,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(err)
	}

	if err := s.ctrl.Save(ctx); err != nil {
		fail(err)
	}
	fmt.Println(styles.SuccessStyle.Render("✓ Document saved"))
}

// Import loads a file into the stored document
func Import(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scribe import <file>")
		os.Exit(1)
	}

	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	runTask("Importing "+filepath.Base(args[0])+"...", func() (*tui.TaskResult, error) {
		return importFile(ctx, s, args[0])
	})
}

func importFile(ctx context.Context, s *session, path string) (*tui.TaskResult, error) {
	if err := s.ctrl.UploadFile(ctx, path); err != nil {
		return nil, err
	}
	if err := s.ctrl.Save(ctx); err != nil {
		return nil, err
	}

	stats := s.ctrl.Stats()
	return &tui.TaskResult{
		Summary: fmt.Sprintf("Imported %s", filepath.Base(path)),
		Detail:  fmt.Sprintf("%s • %d words • %d chars", s.ctrl.State(), stats.Words, stats.Chars),
	}, nil
}

// Export writes the stored document to the export directory. --out
// overrides the directory.
func Export(args []string) {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	dir := s.cfg.ExportDir
	for i, arg := range args {
		if arg == "--out" && i+1 < len(args) {
			dir = args[i+1]
		}
	}

	path, err := exportDocument(s, dir)
	if err != nil {
		fail(err)
	}
	fmt.Println(styles.SuccessStyle.Render("✓ Exported " + path))
}

func exportDocument(s *session, dir string) (string, error) {
	exp := s.ctrl.Download()
	path, err := exp.WriteTo(dir)
	if err != nil {
		s.log.FileError(path, err)
		return "", err
	}
	s.log.DocumentExported(exp.Name, exp.MIMEType, len(exp.Content))
	return path, nil
}

// Convert prints a file converted between Markdown and HTML. The stored
// document is untouched.
func Convert(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scribe convert <file> [--to md|html]")
		os.Exit(1)
	}

	to := ""
	for i, arg := range args {
		if arg == "--to" && i+1 < len(args) {
			to = args[i+1]
		}
	}

	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	out, err := convertFile(ctx, s.converter, s.renderer, args[0], to)
	if err != nil {
		fail(err)
	}
	fmt.Print(out)
}

// convertFile converts the file at path. An empty target picks the other
// format: Markdown files become HTML and everything else becomes Markdown.
func convertFile(ctx context.Context, conv convert.Converter, r render.Renderer, path, to string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &editor.FileReadError{Name: filepath.Base(path), Err: err}
	}

	if to == "" {
		to = ToMarkdown
		if editor.IsMarkdown(path, "") {
			to = ToHTML
		}
	}

	switch strings.ToLower(to) {
	case ToMarkdown, "markdown":
		return conv.ToMarkdown(string(data)), nil
	case ToHTML:
		out, err := r.Render(ctx, string(data))
		if err != nil {
			return "", &editor.RendererError{Transition: "convert", Err: err}
		}
		return out, nil
	default:
		return "", fmt.Errorf("unknown conversion target: %s", to)
	}
}

// Stats prints word and character counts for the stored document
func Stats() {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	fmt.Println(statsLine(s))
}

func statsLine(s *session) string {
	stats := s.ctrl.Stats()
	return fmt.Sprintf("%s  %d words • %d chars",
		styles.DimStyle.Render(s.ctrl.State().String()), stats.Words, stats.Chars)
}

// Clear empties the stored document, keeping its mode
func Clear() {
	ctx := context.Background()
	s := mustOpen(ctx)
	defer s.cleanup()

	if err := clearDocument(ctx, s); err != nil {
		fail(err)
	}
	fmt.Println(styles.SuccessStyle.Render("✓ Document cleared"))
}

func clearDocument(ctx context.Context, s *session) error {
	s.ctrl.Clear()
	return s.ctrl.Save(ctx)
}

// runTask runs job behind a spinner and exits on failure
func runTask(status string, job func() (*tui.TaskResult, error)) {
	p := tea.NewProgram(tui.InitTaskModel(status, job), tea.WithInput(os.Stdin))
	final, err := p.Run()
	if err != nil {
		fail(err)
	}
	if t, ok := final.(interface{ Err() error }); ok && t.Err() != nil {
		os.Exit(1)
	}
}
