package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/store"
	"github.com/gerunddev/scribe/internal/surface"
)

// brokenGateway fails every call
type brokenGateway struct{}

func (brokenGateway) Load(ctx context.Context) (map[string]string, error) {
	return nil, errors.New("disk on fire")
}
func (brokenGateway) Save(ctx context.Context, key, value string) error {
	return errors.New("disk on fire")
}
func (brokenGateway) Delete(ctx context.Context, key string) error {
	return errors.New("disk on fire")
}
func (brokenGateway) Close() error { return nil }

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()

	surf := surface.New()
	c := New(Options{Surface: surf, Renderer: &fakeRenderer{}, Gateway: gw})
	surf.SetLines([]string{"hello world"})
	c.content.Markdown = "hello"

	require.NoError(t, c.Save(ctx))

	values, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		store.KeyHTML:     "hello world",
		store.KeyMarkdown: "hello",
		store.KeyMode:     "wysiwyg",
	}, values)

	restoredSurface := surface.New()
	restored := New(Options{Surface: restoredSurface, Gateway: gw})
	ok, err := restored.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, document.Visual, restored.Mode())
	assert.Equal(t, document.Content{HTML: "hello world", Markdown: "hello"}, restored.Content())
	assert.Equal(t, "hello world", restoredSurface.HTML())
	assert.Equal(t, document.Stats{Words: 2, Chars: 11}, restored.Stats())
}

func TestSaveRawSourceRemembersLanguage(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()

	c := New(Options{Renderer: &fakeRenderer{}, Gateway: gw})
	seed(c, document.State{Mode: document.RawSource, Lang: document.LangHTML}, document.Content{HTML: "<p>x</p>"}, "")
	require.NoError(t, c.Save(ctx))

	values, err := gw.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "markdown", values[store.KeyMode])
	assert.Equal(t, "html", values[store.KeyRawLanguage])

	restored := New(Options{Gateway: gw})
	_, err = restored.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, document.State{Mode: document.RawSource, Lang: document.LangHTML}, restored.State())

	// Leaving raw mode drops the language on the next save
	seed(c, document.State{Mode: document.MarkdownSplit}, document.Content{Markdown: "x"}, "")
	require.NoError(t, c.Save(ctx))
	values, err = gw.Load(ctx)
	require.NoError(t, err)
	_, ok := values[store.KeyRawLanguage]
	assert.False(t, ok)
}

func TestRestoreOnlyMarkdown(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	require.NoError(t, gw.Save(ctx, store.KeyMarkdown, "hello world"))
	require.NoError(t, gw.Save(ctx, store.KeyMode, "markdown"))

	c := New(Options{Gateway: gw})
	ok, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, document.MarkdownSplit, c.Mode())
	assert.Equal(t, document.Content{Markdown: "hello world"}, c.Content())
	assert.Equal(t, document.Stats{Words: 2, Chars: 11}, c.Stats())
}

func TestRestoreOnlyMarkdownInVisual(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	require.NoError(t, gw.Save(ctx, store.KeyMarkdown, "hello"))

	c := New(Options{Gateway: gw})
	ok, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, document.Visual, c.Mode())
	assert.Equal(t, document.Stats{}, c.Stats())
}

func TestRestoreNothingStored(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	require.NoError(t, gw.Save(ctx, store.KeyMode, "markdown"))

	c := New(Options{Gateway: gw})
	ok, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, document.Visual, c.Mode(), "mode alone is not restored")
}

func TestRestoreIgnoresUnknownMode(t *testing.T) {
	ctx := context.Background()
	gw := store.NewMemory()
	require.NoError(t, gw.Save(ctx, store.KeyHTML, "<p>x</p>"))
	require.NoError(t, gw.Save(ctx, store.KeyMode, "presentation"))

	c := New(Options{Gateway: gw})
	ok, err := c.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, document.Visual, c.Mode())
	assert.Equal(t, "<p>x</p>", c.Content().HTML)
}

func TestPersistenceErrors(t *testing.T) {
	ctx := context.Background()
	c := New(Options{Gateway: brokenGateway{}})

	_, err := c.Restore(ctx)
	assert.True(t, IsPersistence(err))

	err = c.Save(ctx)
	assert.True(t, IsPersistence(err))
	assert.Contains(t, err.Error(), store.KeyHTML)
}

func TestDownload(t *testing.T) {
	c, surf := newTestController(t, &fakeRenderer{})
	surf.SetHTML("<p>visual</p>")
	c.content.Markdown = "md"

	exp := c.Download()
	assert.Equal(t, Export{Name: "documento.html", MIMEType: "text/html", Content: "<p>visual</p>"}, exp)
	assert.Equal(t, "<p>visual</p>", c.Content().HTML, "download captures the surface")

	for _, state := range []document.State{
		{Mode: document.MarkdownSplit},
		{Mode: document.RawSource, Lang: document.LangHTML},
	} {
		seed(c, state, document.Content{HTML: "<p>h</p>", Markdown: "# md"}, "")
		exp = c.Download()
		assert.Equal(t, Export{Name: "documento.md", MIMEType: "text/markdown", Content: "# md"}, exp)
	}
}

func TestExportWriteTo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	exp := Export{Name: MarkdownFilename, MIMEType: MarkdownMIME, Content: "# hi"}

	path, err := exp.WriteTo(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "documento.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		mime        string
		from        document.Mode
		body        string
		wantMode    document.Mode
		wantContent document.Content
		wantSurface string
	}{
		{
			name:        "markdown by suffix forces split",
			file:        "notes.md",
			mime:        "",
			from:        document.Visual,
			body:        "hi",
			wantMode:    document.MarkdownSplit,
			wantContent: document.Content{Markdown: "hi", HTML: "<p>hi</p>"},
			wantSurface: "<p>hi</p>",
		},
		{
			name:        "markdown by mime",
			file:        "notes.txt",
			mime:        "text/markdown; charset=utf-8",
			from:        document.RawSource,
			body:        "hi",
			wantMode:    document.MarkdownSplit,
			wantContent: document.Content{Markdown: "hi", HTML: "<p>hi</p>"},
			wantSurface: "<p>hi</p>",
		},
		{
			name:        "html forces visual",
			file:        "page.html",
			mime:        "text/html",
			from:        document.MarkdownSplit,
			body:        "<h1>Page</h1>",
			wantMode:    document.Visual,
			wantContent: document.Content{Markdown: "prior", HTML: "<h1>Page</h1>"},
			wantSurface: "<h1>Page</h1>",
		},
		{
			name:        "plain text loads as html",
			file:        "notes.txt",
			mime:        "text/plain",
			from:        document.RawSource,
			body:        "just text",
			wantMode:    document.Visual,
			wantContent: document.Content{Markdown: "prior", HTML: "just text"},
			wantSurface: "just text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, surf := newTestController(t, &fakeRenderer{})
			seed(c, document.State{Mode: tt.from}, document.Content{Markdown: "prior"}, "before")

			err := c.Upload(context.Background(), tt.file, tt.mime, strings.NewReader(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, c.Mode())
			assert.Equal(t, tt.wantContent, c.Content())
			assert.Equal(t, tt.wantSurface, surf.HTML())
		})
	}
}

func TestUploadReadFailure(t *testing.T) {
	c, surf := newTestController(t, &fakeRenderer{})
	seed(c, document.State{Mode: document.MarkdownSplit}, document.Content{Markdown: "keep"}, "old")

	err := c.Upload(context.Background(), "notes.md", "", iotest.ErrReader(errors.New("unreadable")))
	require.Error(t, err)
	assert.True(t, IsFileRead(err))
	assert.Contains(t, err.Error(), "notes.md")

	assert.Equal(t, document.MarkdownSplit, c.Mode())
	assert.Equal(t, document.Content{Markdown: "keep"}, c.Content())
	assert.Equal(t, "old", surf.HTML())
}

func TestUploadRendererFailure(t *testing.T) {
	c, _ := newTestController(t, &fakeRenderer{err: errors.New("boom")})

	err := c.Upload(context.Background(), "notes.md", "", strings.NewReader("# x"))
	assert.True(t, IsRenderer(err))
	assert.Equal(t, document.Visual, c.Mode())
	assert.True(t, c.Content().Empty())
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		name string
		mime string
		want bool
	}{
		{"page.html", "text/html", true},
		{"notes.txt", "text/plain; charset=utf-8", true},
		{"notes", "text/markdown", true},
		{"notes.md", "application/octet-stream", true},
		{"image.png", "image/png", false},
		{"data.json", "application/json", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Accepts(tt.name, tt.mime))
		})
	}
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mdPath := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("# Notes\n"), 0644))
	htmlPath := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<html><body><p>page</p></body></html>"), 0644))
	pngPath := filepath.Join(dir, "pixel.png")
	require.NoError(t, os.WriteFile(pngPath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0644))

	c, _ := newTestController(t, &fakeRenderer{})

	require.NoError(t, c.UploadFile(ctx, mdPath))
	assert.Equal(t, document.MarkdownSplit, c.Mode())
	assert.Equal(t, "# Notes\n", c.Content().Markdown)

	require.NoError(t, c.UploadFile(ctx, htmlPath))
	assert.Equal(t, document.Visual, c.Mode())

	err := c.UploadFile(ctx, pngPath)
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	err = c.UploadFile(ctx, filepath.Join(dir, "missing.md"))
	assert.True(t, IsFileRead(err))
}
