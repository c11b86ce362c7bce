package editor

import "github.com/gerunddev/scribe/internal/document"

// step is one action a transition performs, in this order
type step uint8

const (
	// stepCapture reads the surface into the HTML content
	stepCapture step = 1 << iota
	// stepToMarkdown converts the HTML content into Markdown
	stepToMarkdown
	// stepRender renders the Markdown content into HTML
	stepRender
	// stepPush loads the HTML content into the surface
	stepPush
)

func (s step) has(flag step) bool {
	return s&flag != 0
}

var (
	visual  = document.State{Mode: document.Visual}
	split   = document.State{Mode: document.MarkdownSplit}
	rawMD   = document.State{Mode: document.RawSource, Lang: document.LangMarkdown}
	rawHTML = document.State{Mode: document.RawSource, Lang: document.LangHTML}
)

type edge struct {
	from, to document.State
}

// transitions lists every boundary crossing and the conversions it needs.
// Pairs that are absent convert nothing.
var transitions = map[edge]step{
	{visual, split}:    stepCapture | stepToMarkdown,
	{visual, rawMD}:    stepCapture | stepToMarkdown,
	{visual, rawHTML}:  stepCapture,
	{split, visual}:    stepRender | stepPush,
	{rawMD, visual}:    stepRender | stepPush,
	{rawHTML, visual}:  stepPush,
	{split, rawHTML}:   stepRender,
	{split, rawMD}:     0,
	{rawHTML, split}:   stepToMarkdown,
	{rawMD, split}:     0,
	{rawMD, rawHTML}:   stepRender,
	{rawHTML, rawMD}:   stepToMarkdown,
}

// plan returns the steps for moving between two states
func plan(from, to document.State) step {
	return transitions[edge{from.Normalize(), to.Normalize()}]
}
