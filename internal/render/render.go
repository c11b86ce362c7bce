// Package render turns Markdown source into HTML for the visual surface.
package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/patrickmn/go-cache"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/gerunddev/scribe/internal/config"
)

// Renderer converts Markdown to HTML
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// Goldmark renders GitHub-flavored Markdown. Raw HTML in the source is
// passed through, as browser Markdown renderers do.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a GFM renderer
func NewGoldmark() *Goldmark {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Goldmark{md: md}
}

func (g *Goldmark) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// Cached memoizes another renderer's output by source text
type Cached struct {
	next  Renderer
	cache *cache.Cache
}

// NewCached wraps next with an expiring cache
func NewCached(next Renderer, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Cached) Render(ctx context.Context, markdown string) (string, error) {
	if out, ok := c.cache.Get(markdown); ok {
		return out.(string), nil
	}
	out, err := c.next.Render(ctx, markdown)
	if err != nil {
		return "", err
	}
	c.cache.SetDefault(markdown, out)
	return out, nil
}

// Len reports the number of cached renders
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

// Sanitized strips script, event handlers and other unsafe markup from
// another renderer's output
type Sanitized struct {
	next   Renderer
	policy *bluemonday.Policy
}

// NewSanitized wraps next with the user-generated-content policy
func NewSanitized(next Renderer) *Sanitized {
	return &Sanitized{next: next, policy: bluemonday.UGCPolicy()}
}

func (s *Sanitized) Render(ctx context.Context, markdown string) (string, error) {
	out, err := s.next.Render(ctx, markdown)
	if err != nil {
		return "", err
	}
	return s.policy.Sanitize(out), nil
}

// New builds the renderer chain described by cfg
func New(cfg *config.Config) Renderer {
	var r Renderer = NewGoldmark()
	if cfg.SanitizeHTML {
		r = NewSanitized(r)
	}
	if cfg.RenderCacheTTL > 0 {
		r = NewCached(r, cfg.RenderCacheTTL)
	}
	return r
}
