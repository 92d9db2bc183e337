package present

import (
	"bytes"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// newMarkdown returns a goldmark instance with GFM tables, strikethrough,
// autolinks and task lists, raw HTML passthrough, and chroma highlighting
// of fenced code. Highlighting emits CSS classes; Stylesheet supplies them.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
}

// renderMarkdown converts src to HTML. If goldmark fails the content falls
// back to its raw rendering so a single item never breaks the view.
func renderMarkdown(md goldmark.Markdown, src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return renderRaw(src)
	}
	return `<div class="item-body rendered">` + buf.String() + "</div>"
}

// renderRaw shows src as literal preformatted text. The newline after <pre>
// is swallowed by HTML parsers, so a leading newline in src survives.
func renderRaw(src string) string {
	return `<pre class="item-body raw">` + "\n" + html.EscapeString(src) + "</pre>"
}

// Stylesheet returns the CSS for the named chroma style, falling back to
// the default style for unknown names.
func Stylesheet(style string) string {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, s); err != nil {
		return ""
	}
	return b.String()
}
