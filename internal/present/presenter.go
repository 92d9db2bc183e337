// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package present renders a parsed document as HTML under one of two view
// modes, rendered Markdown or raw text, and keeps the derived view current as
// the document or the mode changes.
package present

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/docview/pkg/types"
)

// DefaultPrompt is shown when no document is loaded.
const DefaultPrompt = "Select a PDF file, choose a loading method and a parsing option, then convert."

// timestampLayouts are tried in order when formatting metadata timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Presenter owns the view mode and the derived view of the current document.
// Every change to either re-derives the view once; readers of View always
// see a complete rendering. It is safe for concurrent use.
type Presenter struct {
	md     goldmark.Markdown
	idle   Idle
	prompt string

	mu   sync.Mutex
	mode types.ViewMode
	doc  *types.ParsedDocument
	view string
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithIdle sets the collaborator that renders the no-document placeholder.
func WithIdle(idle Idle) Option {
	return func(p *Presenter) {
		if idle != nil {
			p.idle = idle
		}
	}
}

// WithPrompt sets the placeholder prompt.
func WithPrompt(prompt string) Option {
	return func(p *Presenter) { p.prompt = prompt }
}

// WithMode sets the initial view mode.
func WithMode(mode types.ViewMode) Option {
	return func(p *Presenter) { p.mode = mode }
}

// New returns a presenter showing the idle placeholder in rendered mode.
func New(opts ...Option) *Presenter {
	p := &Presenter{
		md:     newMarkdown(),
		idle:   Placeholder{},
		prompt: DefaultPrompt,
		mode:   types.ViewRendered,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.view = p.render(nil, p.mode)
	return p
}

// Show replaces the displayed document; nil shows the placeholder.
func (p *Presenter) Show(doc *types.ParsedDocument) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = doc
	p.view = p.render(doc, p.mode)
}

// Toggle flips between rendered and raw. The document is not touched.
func (p *Presenter) Toggle() types.ViewMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = p.mode.Toggle()
	p.view = p.render(p.doc, p.mode)
	return p.mode
}

// SetMode selects a view mode.
func (p *Presenter) SetMode(mode types.ViewMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == mode {
		return
	}
	p.mode = mode
	p.view = p.render(p.doc, p.mode)
}

// Mode returns the current view mode.
func (p *Presenter) Mode() types.ViewMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Document returns the displayed document, or nil.
func (p *Presenter) Document() *types.ParsedDocument {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}

// View returns the most recently derived HTML fragment.
func (p *Presenter) View() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// Render derives the HTML fragment for doc under the current mode without
// changing what the presenter displays.
func (p *Presenter) Render(doc *types.ParsedDocument) string {
	return p.render(doc, p.Mode())
}

func (p *Presenter) render(doc *types.ParsedDocument, mode types.ViewMode) string {
	if doc == nil {
		return p.idle.RenderIdle(p.prompt)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=\"document\" data-view=\"%s\">\n", mode)
	writeMetadata(&b, doc.Metadata)

	fmt.Fprintf(&b, "<section class=\"content\" data-items=\"%d\">\n", len(doc.Content))
	for i, item := range doc.Content {
		p.writeItem(&b, i, item, mode)
	}
	b.WriteString("</section>\n</div>\n")
	return b.String()
}

func writeMetadata(b *strings.Builder, m types.DocumentMetadata) {
	b.WriteString("<section class=\"metadata\">\n<dl>\n")
	writeField(b, "File", m.Filename)
	writeField(b, "Parsing method", m.ParsingMethod)
	if m.Timestamp != nil {
		raw := *m.Timestamp
		fmt.Fprintf(b, "<dt>Converted at</dt><dd><time datetime=\"%s\">%s</time></dd>\n",
			html.EscapeString(raw), html.EscapeString(formatTimestamp(raw)))
	}
	writeField(b, "Markdown file", m.MDFilePath)
	writeField(b, "Service error", m.Error)
	b.WriteString("</dl>\n</section>\n")
}

func writeField(b *strings.Builder, label string, value *string) {
	if value == nil {
		return
	}
	fmt.Fprintf(b, "<dt>%s</dt><dd>%s</dd>\n", label, html.EscapeString(*value))
}

// writeItem renders one content item, keyed by its sequence index.
func (p *Presenter) writeItem(b *strings.Builder, i int, item types.ContentItem, mode types.ViewMode) {
	fmt.Fprintf(b, "<article class=\"content-item\" id=\"item-%d\">\n", i)

	b.WriteString("<header class=\"item-header\">")
	if item.Type != "" {
		fmt.Fprintf(b, "<span class=\"item-type\">%s</span>", html.EscapeString(item.Type))
	}
	if item.Section != nil {
		fmt.Fprintf(b, "<span class=\"item-section\">Section %s</span>", html.EscapeString(*item.Section))
	}
	b.WriteString("</header>\n")

	if item.Title != nil && *item.Title != "" {
		fmt.Fprintf(b, "<h2 class=\"item-title\">%s</h2>\n", html.EscapeString(*item.Title))
	}

	if mode == types.ViewRaw {
		b.WriteString(renderRaw(item.Content))
	} else {
		b.WriteString(renderMarkdown(p.md, item.Content))
	}
	b.WriteString("\n</article>\n")
}

// formatTimestamp returns a readable form of an ISO 8601 timestamp, or the
// input unchanged when it does not parse.
func formatTimestamp(raw string) string {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if layout == time.RFC3339Nano {
			return t.Format("2006-01-02 15:04:05 MST")
		}
		return t.Format("2006-01-02 15:04:05")
	}
	return raw
}
