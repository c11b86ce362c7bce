// Package convert turns the visual surface's HTML into Markdown source and
// extracts plain text from HTML fragments.
package convert

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// replacement is one literal/structural substitution
type replacement struct {
	pattern *regexp.Regexp
	repl    string
}

// Applied in order: later rules see the output of earlier ones.
// '.' does not cross newlines, so tags spanning lines are left for the
// final text extraction.
var rules = []replacement{
	{regexp.MustCompile(`<strong>(.*?)</strong>`), "**${1}**"},
	{regexp.MustCompile(`<b>(.*?)</b>`), "**${1}**"},
	{regexp.MustCompile(`<em>(.*?)</em>`), "*${1}*"},
	{regexp.MustCompile(`<i>(.*?)</i>`), "*${1}*"},
	{regexp.MustCompile(`<u>(.*?)</u>`), "_${1}_"},
	{regexp.MustCompile(`<h1>(.*?)</h1>`), "# ${1}\n"},
	{regexp.MustCompile(`<h2>(.*?)</h2>`), "## ${1}\n"},
	{regexp.MustCompile(`<h3>(.*?)</h3>`), "### ${1}\n"},
	{regexp.MustCompile(`<div[^>]*>`), ""},
	{regexp.MustCompile(`</div>`), "\n"},
	{regexp.MustCompile(`<br\s*/?>`), "\n"},
	{regexp.MustCompile(`<p[^>]*>`), ""},
	{regexp.MustCompile(`</p>`), "\n\n"},
	{regexp.MustCompile(`&nbsp;`), " "},
}

// HTMLToMarkdown is a best-effort, lossy text extractor. Bold, italic,
// underline, h1-h3, divs, line breaks and paragraphs become Markdown; every
// other tag degrades to its text. It never fails.
func HTMLToMarkdown(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}

	md := htmlContent
	for _, r := range rules {
		md = r.pattern.ReplaceAllString(md, r.repl)
	}

	return TextContent(md)
}

// TextContent parses s as markup in a body context and returns the
// concatenated text of every text node, the way a DOM's textContent does.
func TextContent(s string) string {
	root, err := ParseFragment(s)
	if err != nil {
		// The tokenizer only fails on reader errors; a string reader has none.
		return s
	}
	return goquery.NewDocumentFromNode(root).Text()
}

// ParseFragment parses s in a body context and returns a detached div
// holding the resulting nodes
func ParseFragment(s string) (*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}
