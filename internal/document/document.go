// Package document holds the editor's content model: the two textual
// representations of a document, the view modes that show them, and the
// statistics derived from whichever one is authoritative.
package document

import (
	"fmt"
	"strings"
)

// Mode is the active view of the editor
type Mode int

const (
	// Visual edits a rendered, directly editable rich-text surface
	Visual Mode = iota
	// MarkdownSplit edits Markdown source next to a live preview
	MarkdownSplit
	// RawSource edits Markdown or HTML source directly
	RawSource
)

// Persisted mode values
const (
	PersistedVisual   = "wysiwyg"
	PersistedMarkdown = "markdown"
)

func (m Mode) String() string {
	switch m {
	case Visual:
		return "visual"
	case MarkdownSplit:
		return "markdown"
	case RawSource:
		return "raw"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Persisted returns the value stored under the editor-mode key.
// Every non-visual mode is recorded as markdown.
func (m Mode) Persisted() string {
	if m == Visual {
		return PersistedVisual
	}
	return PersistedMarkdown
}

// ParseMode parses a mode name, accepting both persisted and display names
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wysiwyg", "visual":
		return Visual, nil
	case "markdown", "split":
		return MarkdownSplit, nil
	case "raw", "advanced", "source":
		return RawSource, nil
	default:
		return Visual, fmt.Errorf("unknown mode %q", s)
	}
}

// RawLanguage selects which representation the raw source view shows
type RawLanguage int

const (
	LangMarkdown RawLanguage = iota
	LangHTML
)

func (l RawLanguage) String() string {
	if l == LangHTML {
		return "html"
	}
	return "markdown"
}

// Filename is the label shown above the raw source editor
func (l RawLanguage) Filename() string {
	if l == LangHTML {
		return "content.html"
	}
	return "content.md"
}

// ParseRawLanguage parses a raw source language tag
func ParseRawLanguage(s string) (RawLanguage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return LangMarkdown, nil
	case "html", "htm":
		return LangHTML, nil
	default:
		return LangMarkdown, fmt.Errorf("unknown raw language %q", s)
	}
}

// Content holds the two canonical representations of a document.
// Only one of them is fresh after a direct edit; the other is refreshed
// at the next mode transition that needs it.
type Content struct {
	HTML     string
	Markdown string
}

// Empty reports whether both representations are empty
func (c Content) Empty() bool {
	return c.HTML == "" && c.Markdown == ""
}

// State is the position of the mode state machine
type State struct {
	Mode Mode
	Lang RawLanguage
}

func (s State) String() string {
	if s.Mode == RawSource {
		return fmt.Sprintf("raw(%s)", s.Lang)
	}
	return s.Mode.String()
}

// Normalize drops the raw language outside of RawSource so that states
// compare equal regardless of a remembered language
func (s State) Normalize() State {
	if s.Mode != RawSource {
		s.Lang = LangMarkdown
	}
	return s
}
