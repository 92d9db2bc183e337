package present

import (
	"html/template"
	"io"
)

// BaseCSS is the minimal layout shared by the standalone page and the web UI.
const BaseCSS = `body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#222}
.metadata dl{display:grid;grid-template-columns:max-content 1fr;gap:.25rem 1rem}
.metadata dt{font-weight:600}
.content-item{border:1px solid #ddd;border-radius:6px;margin:1rem 0;padding:1rem}
.item-header span{display:inline-block;font-size:.8rem;background:#eef;border-radius:4px;padding:0 .4rem;margin-right:.4rem}
pre.raw{white-space:pre-wrap;background:#f7f7f7;padding:.75rem;overflow-x:auto}
.rendered table{border-collapse:collapse}.rendered td,.rendered th{border:1px solid #ccc;padding:.25rem .5rem}
.idle{border:2px dashed #ccc;border-radius:8px;padding:3rem;text-align:center;color:#666}
`

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`))

// Page writes a standalone HTML page around a rendered fragment.
func Page(w io.Writer, title, fragment string) error {
	return pageTmpl.Execute(w, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		CSS:   template.CSS(BaseCSS + Stylesheet(DefaultHighlightStyle)),
		Body:  template.HTML(fragment),
	})
}
