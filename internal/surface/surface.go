// Package surface is the editable region behind the visual mode. It keeps
// the document as a list of blocks, one per visible line, so a line editor
// can change text while the blocks keep their markup.
package surface

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"sync"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gerunddev/scribe/internal/convert"
)

type listKind int

const (
	noList listKind = iota
	bulleted
	numbered
)

// block is one line of the surface
type block struct {
	tag   string // "" for a bare line
	attrs []nethtml.Attribute
	list  listKind
	align string
	inner string // inline HTML
}

func (b block) bare() bool {
	return b.tag == "" && b.list == noList && b.align == ""
}

// text is the single-line plain text of the block
func (b block) text() string {
	return strings.ReplaceAll(convert.PlainText(b.inner), "\n", " ")
}

// Surface is safe for concurrent use
type Surface struct {
	mu     sync.Mutex
	blocks []block
	cursor int
}

// New creates an empty surface
func New() *Surface {
	return &Surface{}
}

// SetHTML replaces the surface content
func (s *Surface) SetHTML(content string) {
	blocks := parseBlocks(content)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = blocks
	s.clampCursor()
}

// HTML serializes the surface. Typed lines follow contentEditable: a bare
// first line, then one <div> per line.
func (s *Surface) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return serialize(s.blocks)
}

// Text is the rendered plain text, one line per block
func (s *Surface) Text() string {
	return strings.Join(s.Lines(), "\n")
}

// Lines returns the plain text of each block
func (s *Surface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		lines[i] = b.text()
	}
	return lines
}

// SetLines applies an edit made in a line editor. Lines whose text did not
// change keep their markup; changed lines keep their block formatting and
// become plain text.
func (s *Surface) SetLines(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(lines) == 1 && lines[0] == "" && len(s.blocks) <= 1 &&
		(len(s.blocks) == 0 || s.blocks[0].bare()) {
		s.blocks = nil
		s.clampCursor()
		return
	}

	old := s.blocks
	prefix := 0
	for prefix < len(old) && prefix < len(lines) && old[prefix].text() == lines[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(lines)-prefix &&
		old[len(old)-1-suffix].text() == lines[len(lines)-1-suffix] {
		suffix++
	}

	blocks := make([]block, 0, len(lines))
	blocks = append(blocks, old[:prefix]...)

	changedOld := old[prefix : len(old)-suffix]
	for i, line := range lines[prefix : len(lines)-suffix] {
		if i < len(changedOld) {
			b := changedOld[i]
			b.inner = html.EscapeString(line)
			blocks = append(blocks, b)
			continue
		}
		tag := "div"
		if len(blocks) == 0 {
			tag = ""
		}
		blocks = append(blocks, block{tag: tag, inner: html.EscapeString(line)})
	}

	blocks = append(blocks, old[len(old)-suffix:]...)
	s.blocks = blocks
	s.clampCursor()
}

// SetCursor selects the line that formatting commands act on
func (s *Surface) SetCursor(line int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = line
	s.clampCursor()
}

// Cursor returns the selected line
func (s *Surface) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Surface) clampCursor() {
	if s.cursor >= len(s.blocks) {
		s.cursor = len(s.blocks) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

var alignPattern = regexp.MustCompile(`text-align\s*:\s*(left|center|right|justify)`)

// markupSpace is HTML whitespace; a non-breaking space is content
const markupSpace = " \t\n\r\f"

func parseBlocks(content string) []block {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	root, err := convert.ParseFragment(content)
	if err != nil {
		return []block{{inner: html.EscapeString(content)}}
	}

	var blocks []block
	var run bytes.Buffer
	pending := false

	flush := func(force bool) {
		if pending || force {
			blocks = append(blocks, block{inner: strings.Trim(run.String(), markupSpace)})
		}
		run.Reset()
		pending = false
	}

	for n := root.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == nethtml.TextNode:
			if !pending && strings.Trim(n.Data, markupSpace) == "" {
				continue
			}
			run.WriteString(html.EscapeString(n.Data))
			pending = true

		case n.Type != nethtml.ElementNode:
			continue

		case n.DataAtom == atom.Br:
			flush(true)

		case n.DataAtom == atom.Ul || n.DataAtom == atom.Ol:
			flush(false)
			kind := bulleted
			if n.DataAtom == atom.Ol {
				kind = numbered
			}
			for li := n.FirstChild; li != nil; li = li.NextSibling {
				if li.Type != nethtml.ElementNode || li.DataAtom != atom.Li {
					continue
				}
				attrs, align := splitAttrs(li.Attr)
				blocks = append(blocks, block{list: kind, attrs: attrs, align: align, inner: renderChildren(li)})
			}

		case convert.IsBlock(n.DataAtom):
			flush(false)
			attrs, align := splitAttrs(n.Attr)
			blocks = append(blocks, block{tag: n.Data, attrs: attrs, align: align, inner: renderChildren(n)})

		default:
			nethtml.Render(&run, n)
			pending = true
		}
	}
	flush(false)

	return blocks
}

// splitAttrs separates text alignment from the other attributes. The rest
// of an inline style is dropped.
func splitAttrs(attrs []nethtml.Attribute) ([]nethtml.Attribute, string) {
	var kept []nethtml.Attribute
	align := ""
	for _, a := range attrs {
		if a.Key == "style" {
			if m := alignPattern.FindStringSubmatch(a.Val); m != nil && m[1] != "left" {
				align = m[1]
			}
			continue
		}
		kept = append(kept, a)
	}
	return kept, align
}

func renderChildren(n *nethtml.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nethtml.Render(&buf, c)
	}
	return buf.String()
}

func serialize(blocks []block) string {
	var sb strings.Builder

	for i, b := range blocks {
		if b.list != noList {
			listTag := "ul"
			if b.list == numbered {
				listTag = "ol"
			}
			if i == 0 || blocks[i-1].list != b.list {
				sb.WriteString("<" + listTag + ">")
			}
			sb.WriteString(openTag("li", b.attrs, b.align))
			sb.WriteString(b.inner)
			sb.WriteString("</li>")
			if i == len(blocks)-1 || blocks[i+1].list != b.list {
				sb.WriteString("</" + listTag + ">")
			}
			continue
		}

		if b.bare() {
			if i > 0 && blocks[i-1].bare() {
				sb.WriteString("<br>")
			}
			sb.WriteString(b.inner)
			continue
		}

		tag := b.tag
		if tag == "" {
			tag = "div"
		}
		sb.WriteString(openTag(tag, b.attrs, b.align))
		if tag == "hr" {
			continue
		}
		sb.WriteString(b.inner)
		sb.WriteString("</" + tag + ">")
	}

	return nbspEscaper.Replace(sb.String())
}

// Parsing decodes &nbsp; to U+00A0; write it back the way an editable region does
var nbspEscaper = strings.NewReplacer("\u00a0", "&nbsp;")

func openTag(tag string, attrs []nethtml.Attribute, align string) string {
	var sb strings.Builder
	sb.WriteString("<" + tag)
	for _, a := range attrs {
		sb.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
	}
	if align != "" {
		sb.WriteString(` style="text-align: ` + align + `"`)
	}
	sb.WriteString(">")
	return sb.String()
}
