package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/scribe/internal/config"
)

type countingRenderer struct {
	calls int
	err   error
}

func (r *countingRenderer) Render(ctx context.Context, markdown string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return "<p>" + markdown + "</p>", nil
}

func TestGoldmarkRender(t *testing.T) {
	g := NewGoldmark()
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "paragraph", input: "Hello", expected: "<p>Hello</p>\n"},
		{name: "bold", input: "**x**", expected: "<p><strong>x</strong></p>\n"},
		{name: "italic", input: "*x*", expected: "<p><em>x</em></p>\n"},
		{name: "heading", input: "# Title", expected: "<h1>Title</h1>\n"},
		{name: "raw html passes through", input: "<u>x</u>", expected: "<p><u>x</u></p>\n"},
		{name: "strikethrough extension", input: "~~x~~", expected: "<p><del>x</del></p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := g.Render(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestGoldmarkRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmark().Render(ctx, "Hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCached(t *testing.T) {
	next := &countingRenderer{}
	c := NewCached(next, time.Minute)
	ctx := context.Background()

	first, err := c.Render(ctx, "a")
	require.NoError(t, err)
	second, err := c.Render(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, c.Len())

	_, err = c.Render(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &countingRenderer{err: errors.New("boom")}
	c := NewCached(next, time.Minute)

	_, err := c.Render(context.Background(), "a")
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSanitized(t *testing.T) {
	s := NewSanitized(NewGoldmark())

	out, err := s.Render(context.Background(), "Hi <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Hi")
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	_, ok := New(cfg).(*Cached)
	assert.True(t, ok, "default config caches renders")

	cfg.RenderCacheTTL = 0
	_, ok = New(cfg).(*Goldmark)
	assert.True(t, ok)

	cfg.SanitizeHTML = true
	_, ok = New(cfg).(*Sanitized)
	assert.True(t, ok)
}
