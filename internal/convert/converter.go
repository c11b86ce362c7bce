package convert

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter turns HTML into Markdown. Implementations never fail: the
// worst case is plain text.
type Converter interface {
	ToMarkdown(html string) string
	Name() string
}

// Rules is the ordered-substitution converter
type Rules struct{}

func (Rules) ToMarkdown(html string) string { return HTMLToMarkdown(html) }

func (Rules) Name() string { return "rules" }

// Tree walks the parsed markup tree and keeps lists, links, code and
// tables. Anything it cannot convert falls back to Rules.
type Tree struct {
	conv *md.Converter
}

// NewTree creates a tree-walking converter
func NewTree() *Tree {
	return &Tree{conv: md.NewConverter("", true, nil)}
}

func (t *Tree) ToMarkdown(html string) string {
	if strings.TrimSpace(html) == "" {
		return HTMLToMarkdown(html)
	}
	out, err := t.conv.ConvertString(html)
	if err != nil {
		return HTMLToMarkdown(html)
	}
	return out
}

func (t *Tree) Name() string { return "tree" }

// New returns the converter registered under name, defaulting to Rules
func New(name string) Converter {
	if name == "tree" {
		return NewTree()
	}
	return Rules{}
}
