// Package editor is the mode controller. It owns the document content,
// moves it between the visual, Markdown and raw source views, and saves,
// restores, imports and exports it.
package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/scribe/internal/clipboard"
	"github.com/gerunddev/scribe/internal/convert"
	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/format"
	"github.com/gerunddev/scribe/internal/logger"
	"github.com/gerunddev/scribe/internal/render"
	"github.com/gerunddev/scribe/internal/store"
	"github.com/gerunddev/scribe/internal/surface"
)

// Surface is the editable region shown in visual mode
type Surface interface {
	HTML() string
	SetHTML(html string)
	// Text is the rendered plain text
	Text() string
	Apply(cmd format.Command, value string) error
}

// Options configures a Controller. Nil fields get in-process defaults.
type Options struct {
	Surface   Surface
	Renderer  render.Renderer
	Converter convert.Converter
	Gateway   store.Gateway
	Logger    *logger.Logger
}

// Controller is safe for concurrent use. Renders run without the lock; a
// transition that was overtaken while rendering is dropped.
type Controller struct {
	mu        sync.Mutex
	surface   Surface
	renderer  render.Renderer
	converter convert.Converter
	gateway   store.Gateway
	log       *logger.Logger
	session   string

	mode    document.Mode
	lang    document.RawLanguage
	content document.Content
	seq     uint64
}

// New creates a controller in visual mode with empty content
func New(opts Options) *Controller {
	if opts.Surface == nil {
		opts.Surface = surface.New()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewGoldmark()
	}
	if opts.Converter == nil {
		opts.Converter = convert.Rules{}
	}
	if opts.Gateway == nil {
		opts.Gateway = store.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	session := uuid.NewString()
	return &Controller{
		surface:   opts.Surface,
		renderer:  opts.Renderer,
		converter: opts.Converter,
		gateway:   opts.Gateway,
		log:       opts.Logger.WithSession(session),
		session:   session,
		mode:      document.Visual,
		lang:      document.LangMarkdown,
	}
}

// Session identifies this controller in log records
func (c *Controller) Session() string {
	return c.session
}

// State returns the current mode and raw language
func (c *Controller) State() document.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() document.State {
	return document.State{Mode: c.mode, Lang: c.lang}
}

// Mode returns the active mode
func (c *Controller) Mode() document.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// RawLanguage returns the language the raw source view shows. It is
// remembered outside of raw source mode.
func (c *Controller) RawLanguage() document.RawLanguage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// Content returns a snapshot of both representations
func (c *Controller) Content() document.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// Stats counts the representation the active mode shows
func (c *Controller) Stats() document.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return document.ComputeStats(c.mode, c.content, c.lang, c.surface.Text())
}

// Shown returns the text the active mode edits: the surface HTML in visual
// mode, otherwise the Markdown or HTML source
func (c *Controller) Shown() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.mode == document.Visual:
		return c.surface.HTML()
	case c.mode == document.RawSource && c.lang == document.LangHTML:
		return c.content.HTML
	default:
		return c.content.Markdown
	}
}

// SwitchMode moves to mode, keeping the remembered raw language
func (c *Controller) SwitchMode(ctx context.Context, mode document.Mode) error {
	c.mu.Lock()
	lang := c.lang
	c.mu.Unlock()
	return c.SwitchTo(ctx, mode, lang)
}

// SetRawLanguage selects the raw source language. In raw source mode this
// is a transition; elsewhere the choice is only remembered.
func (c *Controller) SetRawLanguage(ctx context.Context, lang document.RawLanguage) error {
	c.mu.Lock()
	if c.mode != document.RawSource {
		c.lang = lang
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.SwitchTo(ctx, document.RawSource, lang)
}

// SwitchTo moves to the given state, converting only what the crossing
// needs. On a renderer failure nothing changes and a *RendererError is
// returned. If another transition starts while this one renders, this one
// returns ErrStaleTransition and leaves the newer result alone.
func (c *Controller) SwitchTo(ctx context.Context, mode document.Mode, lang document.RawLanguage) error {
	start := time.Now()

	c.mu.Lock()
	from := c.state()
	to := document.State{Mode: mode, Lang: lang}
	if mode != document.RawSource {
		to.Lang = c.lang
	}
	if from.Normalize() == to.Normalize() {
		c.lang = to.Lang
		c.mu.Unlock()
		return nil
	}

	c.seq++
	token := c.seq
	steps := plan(from, to)
	next := c.content

	if steps.has(stepCapture) {
		next.HTML = c.surface.HTML()
	}
	if steps.has(stepToMarkdown) {
		next.Markdown = c.converter.ToMarkdown(next.HTML)
	}
	c.mu.Unlock()

	if steps.has(stepRender) {
		// Entering the visual view with no Markdown keeps the HTML as is
		blank := strings.TrimSpace(next.Markdown) == ""
		if !(blank && steps.has(stepPush) && next.HTML != "") {
			html, err := c.renderer.Render(ctx, next.Markdown)
			if err != nil {
				c.log.ConversionFailed(from.String()+" -> "+to.String(), err)
				return &RendererError{Transition: from.String() + " -> " + to.String(), Err: err}
			}
			next.HTML = html
		}
	}

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.log.TransitionDiscarded(from.String(), to.String(), token)
		return ErrStaleTransition
	}

	// Only the representations this crossing produced are written back, so
	// a direct edit made while rendering survives
	if steps.has(stepCapture) || steps.has(stepRender) {
		c.content.HTML = next.HTML
	}
	if steps.has(stepToMarkdown) {
		c.content.Markdown = next.Markdown
	}
	if steps.has(stepPush) {
		c.surface.SetHTML(c.content.HTML)
	}
	c.mode = to.Mode
	c.lang = to.Lang
	c.mu.Unlock()

	c.log.ModeSwitched(from.String(), to.String(), time.Since(start))
	return nil
}

// Edit replaces the representation the active mode shows. In visual mode
// the text is HTML and is loaded into the surface.
func (c *Controller) Edit(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.mode == document.Visual:
		c.surface.SetHTML(text)
		c.content.HTML = c.surface.HTML()
	case c.mode == document.RawSource && c.lang == document.LangHTML:
		c.content.HTML = text
	default:
		c.content.Markdown = text
	}
}

// Capture records the surface markup as the HTML content. It is a no-op
// outside visual mode.
func (c *Controller) Capture() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == document.Visual {
		c.content.HTML = c.surface.HTML()
	}
	return c.content.HTML
}

// Format resolves a command by name and applies it
func (c *Controller) Format(name, value string) error {
	cmd, err := format.Parse(name, value)
	if err != nil {
		return err
	}
	return c.Apply(cmd, value)
}

// Apply runs a formatting command on the surface
func (c *Controller) Apply(cmd format.Command, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != document.Visual {
		return ErrFormatUnavailable
	}
	if err := c.surface.Apply(cmd, value); err != nil {
		return err
	}
	c.content.HTML = c.surface.HTML()
	return nil
}

// PastePlainText inserts the clipboard text without any formatting
func (c *Controller) PastePlainText(ctx context.Context, r clipboard.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Mode() != document.Visual {
		return ErrFormatUnavailable
	}

	text, err := r.ReadAll()
	if err != nil {
		return &ClipboardError{Err: err}
	}
	if text == "" {
		return nil
	}
	return c.Apply(format.InsertText, text)
}

// Clear empties both representations and the surface. The mode is kept
// and the store is untouched until the next save.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.seq++
	c.content = document.Content{}
	c.surface.SetHTML("")
	c.mu.Unlock()

	c.log.DocumentCleared()
}
