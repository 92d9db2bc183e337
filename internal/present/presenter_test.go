// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docview/pkg/types"
)

func scenarioDoc() *types.ParsedDocument {
	return &types.ParsedDocument{
		Metadata: types.DocumentMetadata{
			Filename:      types.StringPtr("a.pdf"),
			ParsingMethod: types.StringPtr("mineru/one"),
			Timestamp:     types.StringPtr("2024-01-01T00:00:00Z"),
		},
		Content: []types.ContentItem{{Type: "paragraph", Content: "**hi**"}},
	}
}

func TestPresenter_BoldScenario(t *testing.T) {
	p := New()
	p.Show(scenarioDoc())

	rendered := p.View()
	assert.Contains(t, rendered, "<strong>hi</strong>")
	assert.NotContains(t, rendered, "**hi**")
	assert.Contains(t, rendered, `<span class="item-type">paragraph</span>`)

	assert.Equal(t, types.ViewRaw, p.Toggle())
	raw := p.View()
	assert.Contains(t, raw, "**hi**")
	assert.NotContains(t, raw, "<strong>")
}

func TestPresenter_ToggleTwiceRoundTrips(t *testing.T) {
	doc := scenarioDoc()
	doc.Content = append(doc.Content,
		types.ContentItem{Type: "markdown", Content: "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~"},
		types.ContentItem{Type: "markdown", Content: "```go\nfunc main() {}\n```\n"},
	)

	for _, start := range []types.ViewMode{types.ViewRendered, types.ViewRaw} {
		t.Run(string(start), func(t *testing.T) {
			p := New(WithMode(start))
			p.Show(doc)
			before := p.View()

			p.Toggle()
			assert.NotEqual(t, before, p.View())
			p.Toggle()

			assert.Equal(t, before, p.View())
			assert.Equal(t, start, p.Mode())
		})
	}
}

func TestPresenter_ToggleDoesNotMutateDocument(t *testing.T) {
	doc := scenarioDoc()
	p := New()
	p.Show(doc)
	p.Toggle()

	assert.Same(t, doc, p.Document())
	assert.Equal(t, "**hi**", doc.Content[0].Content)
}

func TestPresenter_EmptyContent(t *testing.T) {
	doc := scenarioDoc()
	doc.Content = []types.ContentItem{}

	p := New()
	p.Show(doc)
	view := p.View()

	assert.Contains(t, view, `<section class="metadata">`)
	assert.Contains(t, view, "a.pdf")
	assert.Contains(t, view, `data-items="0"`)
	assert.NotContains(t, view, "content-item")
}

func TestPresenter_MetadataSubsets(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		t.Run(fmt.Sprintf("mask%03b", mask), func(t *testing.T) {
			var m types.DocumentMetadata
			if mask&1 != 0 {
				m.Filename = types.StringPtr("a.pdf")
			}
			if mask&2 != 0 {
				m.ParsingMethod = types.StringPtr("mineru/one")
			}
			if mask&4 != 0 {
				m.Timestamp = types.StringPtr("2024-01-01T00:00:00Z")
			}

			view := New().Render(&types.ParsedDocument{Metadata: m})

			assert.Equal(t, mask&1 != 0, strings.Contains(view, "<dt>File</dt>"))
			assert.Equal(t, mask&2 != 0, strings.Contains(view, "<dt>Parsing method</dt>"))
			assert.Equal(t, mask&4 != 0, strings.Contains(view, "<dt>Converted at</dt>"))
			assert.NotContains(t, view, "<dd></dd>")
		})
	}
}

func TestPresenter_SameSectionStaysSeparate(t *testing.T) {
	doc := &types.ParsedDocument{Content: []types.ContentItem{
		{Type: "markdown", Section: types.StringPtr("1"), Content: "first"},
		{Type: "markdown", Section: types.StringPtr("1"), Content: "second"},
	}}
	view := New().Render(doc)

	assert.Equal(t, 2, strings.Count(view, `class="content-item"`))
	assert.Equal(t, 2, strings.Count(view, "Section 1"))
	first := strings.Index(view, `id="item-0"`)
	second := strings.Index(view, `id="item-1"`)
	require.True(t, first >= 0 && second > first)
	assert.Less(t, strings.Index(view, "first"), strings.Index(view, "second"))
}

func TestPresenter_RenderedExtensions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |\n", "<table>"},
		{"strikethrough", "~~old~~", "<del>old</del>"},
		{"raw html", `<span class="note">kept</span>`, `<span class="note">kept</span>`},
		{"fenced code highlighted", "```go\nfunc main() {}\n```\n", `class="chroma"`},
		{"heading", "# Intro", "<h1>Intro</h1>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &types.ParsedDocument{Content: []types.ContentItem{{Type: "markdown", Content: tt.content}}}
			assert.Contains(t, New().Render(doc), tt.want)
		})
	}
}

func TestPresenter_RawPreservesText(t *testing.T) {
	content := "\n  indented\n\ttabbed <b>&</b>\n\n\ntrailing  \n"
	doc := &types.ParsedDocument{Content: []types.ContentItem{{Type: "markdown", Content: content}}}

	view := New(WithMode(types.ViewRaw)).Render(doc)

	want := "<pre class=\"item-body raw\">\n\n  indented\n\ttabbed &lt;b&gt;&amp;&lt;/b&gt;\n\n\ntrailing  \n</pre>"
	assert.Contains(t, view, want)
}

func TestPresenter_TitleAndLabelsEscaped(t *testing.T) {
	doc := &types.ParsedDocument{Content: []types.ContentItem{{
		Type:    "<i>type</i>",
		Title:   types.StringPtr("<script>x</script>"),
		Content: "body",
	}}}
	view := New().Render(doc)

	assert.Contains(t, view, `<h2 class="item-title">&lt;script&gt;x&lt;/script&gt;</h2>`)
	assert.Contains(t, view, "&lt;i&gt;type&lt;/i&gt;")
	assert.NotContains(t, view, "<script>")
}

func TestPresenter_Idle(t *testing.T) {
	p := New()
	assert.Contains(t, p.View(), DefaultPrompt)
	assert.Contains(t, p.View(), `class="idle"`)

	p.Show(scenarioDoc())
	assert.NotContains(t, p.View(), DefaultPrompt)

	p.Show(nil)
	assert.Contains(t, p.View(), DefaultPrompt)
}

func TestPresenter_CustomIdle(t *testing.T) {
	var got string
	p := New(
		WithPrompt("drop a file"),
		WithIdle(IdleFunc(func(prompt string) string {
			got = prompt
			return "<p>empty</p>"
		})),
	)
	assert.Equal(t, "<p>empty</p>", p.View())
	assert.Equal(t, "drop a file", got)
}

func TestPresenter_SetMode(t *testing.T) {
	p := New()
	p.Show(scenarioDoc())
	p.SetMode(types.ViewRaw)
	assert.Equal(t, types.ViewRaw, p.Mode())
	assert.Contains(t, p.View(), `data-view="raw"`)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T00:00:00Z", "2024-01-01 00:00:00 UTC"},
		{"2025-03-01T10:11:12.345678", "2025-03-01 10:11:12"},
		{"2025-03-01T10:11:12", "2025-03-01 10:11:12"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTimestamp(tt.in))
		})
	}
}

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, "a <b>", "<p>fragment</p>"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>a &lt;b&gt;</title>")
	assert.Contains(t, out, "<p>fragment</p>")
	assert.Contains(t, out, ".chroma")
}
