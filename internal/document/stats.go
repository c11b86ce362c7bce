package document

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Stats is derived from whichever content is authoritative for the active mode
type Stats struct {
	Words int
	Chars int
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes anything that looks like a markup tag
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// CountText counts the trimmed text. Chars are runes; words are maximal
// runs of non-whitespace.
func CountText(text string) Stats {
	text = strings.TrimSpace(text)
	if text == "" {
		return Stats{}
	}
	return Stats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}

// ComputeStats selects the authoritative text for the mode and counts it.
// visualText is the rendered plain text of the editable region.
func ComputeStats(mode Mode, content Content, lang RawLanguage, visualText string) Stats {
	switch mode {
	case Visual:
		return CountText(visualText)
	case MarkdownSplit:
		return CountText(content.Markdown)
	case RawSource:
		if lang == LangMarkdown {
			return CountText(content.Markdown)
		}
		return CountText(StripTags(content.HTML))
	default:
		return Stats{}
	}
}
