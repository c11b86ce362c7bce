// Package diff shows what a visual to Markdown switch would write over the
// stored Markdown.
package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/scribe/internal/convert"
)

// Names of the two sides of a conversion diff
const (
	StoredName    = "stored.md"
	ConvertedName = "converted.md"
)

// Result is a unified diff between two texts
type Result struct {
	Unified string
	Changed bool
}

// Compare diffs the stored Markdown against the conversion of the stored
// HTML
func Compare(markdown, html string, conv convert.Converter) Result {
	converted := conv.ToMarkdown(html)
	return Unified(StoredName, ConvertedName, markdown, converted)
}

// Unified diffs two texts with the Myers algorithm
func Unified(oldName, newName, oldText, newText string) Result {
	if oldText == newText {
		return Result{}
	}
	edits := myers.ComputeEdits(span.URIFromPath(oldName), oldText, newText)
	unified := fmt.Sprint(gotextdiff.ToUnified(oldName, newName, oldText, edits))
	return Result{Unified: unified, Changed: true}
}

// Markdown wraps the diff in a fenced diff block
func (r Result) Markdown() string {
	return fmt.Sprintf("```diff\n%s```\n", r.Unified)
}

// Render returns the diff styled for the terminal. It falls back to the
// fenced Markdown if glamour cannot render it.
func (r Result) Render(wrap int) string {
	if !r.Changed {
		return ""
	}
	diffMarkdown := r.Markdown()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}
	return rendered
}

// Conversion renders the conversion diff, or returns "" when converting
// would change nothing
func Conversion(markdown, html string, conv convert.Converter, wrap int) string {
	return Compare(markdown, html, conv).Render(wrap)
}
