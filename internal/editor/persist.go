package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/gerunddev/scribe/internal/document"
	"github.com/gerunddev/scribe/internal/store"
)

// Export file names and types
const (
	HTMLFilename     = "documento.html"
	MarkdownFilename = "documento.md"
	HTMLMIME         = "text/html"
	MarkdownMIME     = "text/markdown"
	PlainMIME        = "text/plain"
)

// Export is a downloadable copy of the document
type Export struct {
	Name     string
	MIMEType string
	Content  string
}

// WriteTo writes the export into dir and returns the file path
func (e Export) WriteTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, e.Name)
	if err := os.WriteFile(path, []byte(e.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", e.Name, err)
	}
	return path, nil
}

// Save writes both representations and the mode to the store. In visual
// mode the surface is captured first.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.mode == document.Visual {
		c.content.HTML = c.surface.HTML()
	}
	content := c.content
	mode := c.mode
	lang := c.lang
	c.mu.Unlock()

	writes := []struct{ key, value string }{
		{store.KeyHTML, content.HTML},
		{store.KeyMarkdown, content.Markdown},
		{store.KeyMode, mode.Persisted()},
	}
	if mode == document.RawSource {
		writes = append(writes, struct{ key, value string }{store.KeyRawLanguage, lang.String()})
	}

	for _, w := range writes {
		if err := c.gateway.Save(ctx, w.key, w.value); err != nil {
			c.log.StoreError("save "+w.key, err)
			return &PersistenceError{Op: "save", Key: w.key, Err: err}
		}
	}
	if mode != document.RawSource {
		if err := c.gateway.Delete(ctx, store.KeyRawLanguage); err != nil {
			c.log.StoreError("delete "+store.KeyRawLanguage, err)
			return &PersistenceError{Op: "delete", Key: store.KeyRawLanguage, Err: err}
		}
	}

	c.log.DocumentSaved(mode.String(), len(content.HTML), len(content.Markdown))
	return nil
}

// Restore loads the stored document. It reports false when neither
// representation was stored. An unknown stored mode is ignored.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	values, err := c.gateway.Load(ctx)
	if err != nil {
		c.log.StoreError("load", err)
		return false, &PersistenceError{Op: "load", Err: err}
	}

	html, hasHTML := values[store.KeyHTML]
	markdown, hasMarkdown := values[store.KeyMarkdown]
	if !hasHTML && !hasMarkdown {
		return false, nil
	}

	c.mu.Lock()
	c.seq++
	if hasMarkdown {
		c.content.Markdown = markdown
	}
	if hasHTML {
		c.content.HTML = html
		c.surface.SetHTML(html)
	}

	if saved, ok := values[store.KeyMode]; ok {
		mode, err := document.ParseMode(saved)
		if err != nil {
			c.log.Warn("ignoring stored mode", "mode", saved, "error", err)
		} else {
			c.mode = mode
			if raw, ok := values[store.KeyRawLanguage]; ok && mode == document.MarkdownSplit {
				if lang, err := document.ParseRawLanguage(raw); err == nil {
					c.mode = document.RawSource
					c.lang = lang
				}
			}
		}
	}

	stats := document.ComputeStats(c.mode, c.content, c.lang, c.surface.Text())
	mode := c.state()
	c.mu.Unlock()

	c.log.DocumentRestored(mode.String(), stats.Words, stats.Chars)
	return true, nil
}

// Download returns the HTML in visual mode and the Markdown otherwise
func (c *Controller) Download() Export {
	c.mu.Lock()
	var exp Export
	if c.mode == document.Visual {
		c.content.HTML = c.surface.HTML()
		exp = Export{Name: HTMLFilename, MIMEType: HTMLMIME, Content: c.content.HTML}
	} else {
		exp = Export{Name: MarkdownFilename, MIMEType: MarkdownMIME, Content: c.content.Markdown}
	}
	c.mu.Unlock()

	c.log.DocumentExported(exp.Name, exp.MIMEType, len(exp.Content))
	return exp
}

// Upload loads a file. Markdown files are rendered and open in the split
// view; anything else is loaded as HTML into the visual view.
func (c *Controller) Upload(ctx context.Context, name, mimeType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		c.log.FileError(name, err)
		return &FileReadError{Name: name, Err: err}
	}
	text := string(data)

	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	markdown := IsMarkdown(name, mimeType)
	var html string
	if markdown {
		html, err = c.renderer.Render(ctx, text)
		if err != nil {
			c.log.ConversionFailed("upload "+name, err)
			return &RendererError{Transition: "upload", Err: err}
		}
	}

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.log.TransitionDiscarded("upload", name, token)
		return ErrStaleTransition
	}
	if markdown {
		c.content.Markdown = text
		c.content.HTML = html
		c.surface.SetHTML(html)
		c.mode = document.MarkdownSplit
	} else {
		c.surface.SetHTML(text)
		c.content.HTML = text
		c.mode = document.Visual
	}
	mode := c.mode
	c.mu.Unlock()

	c.log.DocumentImported(name, mimeType, mode.String())
	return nil
}

// UploadFile reads a file from disk, sniffs its content type and uploads it
func (c *Controller) UploadFile(ctx context.Context, path string) error {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		c.log.FileError(path, err)
		return &FileReadError{Name: name, Err: err}
	}

	mimeType := mimetype.Detect(data).String()
	if !Accepts(name, mimeType) {
		return fmt.Errorf("%s (%s): %w", name, mimeType, ErrUnsupportedFile)
	}
	return c.Upload(ctx, name, mimeType, bytes.NewReader(data))
}

// IsMarkdown reports whether an uploaded file is loaded as Markdown
func IsMarkdown(name, mimeType string) bool {
	return strings.HasSuffix(name, ".md") || mediaType(mimeType) == MarkdownMIME
}

// Accepts reports whether a file can be uploaded
func Accepts(name, mimeType string) bool {
	if strings.HasSuffix(name, ".md") {
		return true
	}
	switch mediaType(mimeType) {
	case HTMLMIME, PlainMIME, MarkdownMIME:
		return true
	}
	return false
}

// mediaType drops parameters such as charset
func mediaType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
