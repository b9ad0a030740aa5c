package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	t.Run("basic formatting", func(t *testing.T) {
		out := RenderMarkdown("Some **bold** and *italic* text")
		assert.Contains(t, out, "<strong>bold</strong>")
		assert.Contains(t, out, "<em>italic</em>")
	})

	t.Run("fenced code blocks", func(t *testing.T) {
		out := RenderMarkdown("```\ndef merge_sort(arr):\n    pass\n```")
		assert.Contains(t, out, "<code>")
		assert.Contains(t, out, "merge_sort")
	})

	t.Run("gfm tables", func(t *testing.T) {
		out := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
		assert.Contains(t, out, "<table>")
	})

	t.Run("script tags are stripped", func(t *testing.T) {
		out := RenderMarkdown("hello <script>alert('xss')</script> world")
		assert.NotContains(t, out, "<script>")
		assert.NotContains(t, out, "alert")
	})

	t.Run("raw event handlers are stripped", func(t *testing.T) {
		out := RenderMarkdown(`<img src="x" onerror="alert(1)">`)
		assert.NotContains(t, out, "onerror")
	})

	t.Run("links open in new tab", func(t *testing.T) {
		out := RenderMarkdown("[docs](https://example.com)")
		assert.Contains(t, out, `target="_blank"`)
		assert.Contains(t, out, "noreferrer")
	})
}
