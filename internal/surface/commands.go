package surface

import (
	"fmt"
	"html"

	nethtml "golang.org/x/net/html"

	"github.com/gerunddev/scribe/internal/convert"
	"github.com/gerunddev/scribe/internal/format"
)

type handler func(b *block, value string) error

var handlers = map[format.Command]handler{
	format.Bold:          wrapInline("strong"),
	format.Italic:        wrapInline("em"),
	format.Underline:     wrapInline("u"),
	format.StrikeThrough: wrapInline("s"),
	format.CreateLink:    link,
	format.JustifyLeft:   align(""),
	format.JustifyCenter: align("center"),
	format.JustifyRight:  align("right"),
	format.Heading1:      setTag("h1"),
	format.Heading2:      setTag("h2"),
	format.Heading3:      setTag("h3"),
	format.Blockquote:    setTag("blockquote"),
	format.Paragraph:     setTag("p"),
	format.UnorderedList: toggleList(bulleted),
	format.OrderedList:   toggleList(numbered),
	format.RemoveFormat:  removeFormat,
	format.InsertText:    insertText,
}

// Apply runs a formatting command on the cursor line. An empty surface
// gets a line first.
func (s *Surface) Apply(cmd format.Command, value string) error {
	h, ok := handlers[cmd]
	if !ok {
		return fmt.Errorf("%s: %w", cmd, format.ErrUnknownCommand)
	}
	if cmd.NeedsValue() && value == "" {
		return fmt.Errorf("%s: %w", cmd, format.ErrMissingValue)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.blocks) == 0 {
		s.blocks = []block{{}}
		s.cursor = 0
	}

	// Work on a copy so a failing handler leaves the line untouched
	b := s.blocks[s.cursor]
	if err := h(&b, value); err != nil {
		return err
	}
	s.blocks[s.cursor] = b
	return nil
}

// wrapInline toggles an inline element around the whole line. It only
// unwraps when one such element spans the entire line.
func wrapInline(tag string) handler {
	return func(b *block, _ string) error {
		if inner, ok := unwrapWhole(b.inner, tag); ok {
			b.inner = inner
			return nil
		}
		b.inner = "<" + tag + ">" + b.inner + "</" + tag + ">"
		return nil
	}
}

// unwrapWhole returns the children of content's single top-level element
// when that element is tag
func unwrapWhole(content, tag string) (string, bool) {
	root, err := convert.ParseFragment(content)
	if err != nil {
		return "", false
	}
	only := root.FirstChild
	if only == nil || only.NextSibling != nil ||
		only.Type != nethtml.ElementNode || only.Data != tag {
		return "", false
	}
	return renderChildren(only), true
}

func link(b *block, href string) error {
	b.inner = `<a href="` + html.EscapeString(href) + `">` + b.inner + "</a>"
	return nil
}

func align(value string) handler {
	return func(b *block, _ string) error {
		b.align = value
		return nil
	}
}

func setTag(tag string) handler {
	return func(b *block, _ string) error {
		b.tag = tag
		b.list = noList
		return nil
	}
}

func toggleList(kind listKind) handler {
	return func(b *block, _ string) error {
		if b.list == kind {
			b.list = noList
			b.tag = "div"
			return nil
		}
		b.list = kind
		b.tag = ""
		return nil
	}
}

func removeFormat(b *block, _ string) error {
	b.inner = html.EscapeString(b.text())
	return nil
}

func insertText(b *block, text string) error {
	b.inner += html.EscapeString(text)
	return nil
}
