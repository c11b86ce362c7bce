package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gerunddev/scribe/internal/convert"
)

func TestCompareUnchanged(t *testing.T) {
	r := Compare("Hello", "Hello", convert.Rules{})
	assert.False(t, r.Changed)
	assert.Empty(t, r.Unified)
	assert.Empty(t, r.Render(80))
	assert.Empty(t, Conversion("Hello", "Hello", convert.Rules{}, 80))
}

func TestCompareChanged(t *testing.T) {
	r := Compare("Hello\n", "<h1>Hello</h1>", convert.Rules{})
	assert.True(t, r.Changed)
	assert.Contains(t, r.Unified, "--- "+StoredName)
	assert.Contains(t, r.Unified, "+++ "+ConvertedName)
	assert.Contains(t, r.Unified, "-Hello")
	assert.Contains(t, r.Unified, "+# Hello")
}

func TestMarkdownFence(t *testing.T) {
	r := Unified("a", "b", "x\n", "y\n")
	md := r.Markdown()
	assert.True(t, strings.HasPrefix(md, "```diff\n"))
	assert.True(t, strings.HasSuffix(md, "```\n"))
	assert.Contains(t, md, "+y")
}

func TestRender(t *testing.T) {
	r := Unified("a", "b", "old line\n", "new line\n")
	out := r.Render(80)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "new")
}
