// Package format defines the closed set of formatting operations the
// visual surface understands, and maps the platform's command names onto it.
package format

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned for a command name outside the supported set
	ErrUnknownCommand = errors.New("unknown format command")
	// ErrMissingValue is returned when a command that needs a value gets none
	ErrMissingValue = errors.New("format command requires a value")
)

// Command is a supported formatting operation
type Command int

const (
	Bold Command = iota
	Italic
	Underline
	StrikeThrough
	JustifyLeft
	JustifyCenter
	JustifyRight
	Heading1
	Heading2
	Heading3
	Blockquote
	Paragraph
	UnorderedList
	OrderedList
	CreateLink
	RemoveFormat
	InsertText
)

var names = map[Command]string{
	Bold:          "bold",
	Italic:        "italic",
	Underline:     "underline",
	StrikeThrough: "strikeThrough",
	JustifyLeft:   "justifyLeft",
	JustifyCenter: "justifyCenter",
	JustifyRight:  "justifyRight",
	Heading1:      "heading1",
	Heading2:      "heading2",
	Heading3:      "heading3",
	Blockquote:    "blockquote",
	Paragraph:     "paragraph",
	UnorderedList: "insertUnorderedList",
	OrderedList:   "insertOrderedList",
	CreateLink:    "createLink",
	RemoveFormat:  "removeFormat",
	InsertText:    "insertText",
}

// formatBlock values
var blockValues = map[string]Command{
	"h1":         Heading1,
	"h2":         Heading2,
	"h3":         Heading3,
	"blockquote": Blockquote,
	"p":          Paragraph,
	"div":        Paragraph,
}

func (c Command) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// NeedsValue reports whether the command takes an argument
func (c Command) NeedsValue() bool {
	return c == CreateLink || c == InsertText
}

// Inline reports whether the command wraps text rather than a block
func (c Command) Inline() bool {
	switch c {
	case Bold, Italic, Underline, StrikeThrough, CreateLink:
		return true
	}
	return false
}

// Parse resolves a command name and its optional value. formatBlock takes
// the block tag as value (h1, h2, h3, blockquote, p).
func Parse(name, value string) (Command, error) {
	if name == "formatBlock" {
		tag := strings.ToLower(strings.Trim(strings.TrimSpace(value), "<>"))
		if tag == "" {
			return 0, fmt.Errorf("%s: %w", name, ErrMissingValue)
		}
		cmd, ok := blockValues[tag]
		if !ok {
			return 0, fmt.Errorf("formatBlock %q: %w", value, ErrUnknownCommand)
		}
		return cmd, nil
	}

	for cmd, n := range names {
		if strings.EqualFold(n, name) {
			if cmd.NeedsValue() && value == "" {
				return 0, fmt.Errorf("%s: %w", name, ErrMissingValue)
			}
			return cmd, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownCommand)
}

// All returns every command in declaration order
func All() []Command {
	cmds := make([]Command, 0, len(names))
	for c := Bold; c <= InsertText; c++ {
		cmds = append(cmds, c)
	}
	return cmds
}
