package web

import (
	"html/template"

	"github.com/pdiddy/docview/pkg/types"
)

const uiCSS = `form.upload{display:flex;flex-wrap:wrap;gap:.75rem;align-items:end;margin-bottom:1rem}
form.upload label{display:flex;flex-direction:column;font-size:.85rem}
.notice{padding:.5rem .75rem;border-radius:4px;background:#f3f3f3}
.notice.failed{background:#fde8e8;color:#8a1c1c}
.notice.succeeded{background:#e7f6ea}
.toolbar{display:flex;gap:.5rem;align-items:center;margin:1rem 0}
`

type choiceView struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	CSS            template.CSS
	Notice         string
	Status         types.RequestStatus
	Processing     bool
	LoadingMethods []choiceView
	ParsingOptions []choiceView
	FileSelected   bool
	DisplayName    string
	Mode           types.ViewMode
	OtherMode      types.ViewMode
	View           template.HTML
}

// choices marks the selected entry of a choice list, falling back to def
// when nothing is selected yet.
func choices(list []types.Choice, selected, def string) []choiceView {
	if selected == "" {
		selected = def
	}
	out := make([]choiceView, len(list))
	for i, c := range list {
		out[i] = choiceView{Value: c.Value, Label: c.Label, Selected: c.Value == selected}
	}
	return out
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
{{if .Processing}}<meta http-equiv="refresh" content="2">{{end}}
<title>docview</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>PDF to Markdown</h1>
<form class="upload" method="post" action="/convert" enctype="multipart/form-data">
  <label>PDF file{{if .FileSelected}} (selected: {{.DisplayName}}){{end}}
    <input type="file" name="file" accept=".pdf,application/pdf"{{if not .FileSelected}} required{{end}}>
  </label>
  <label>Loading method
    <select name="loading_method" required>
    {{range .LoadingMethods}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <label>Parsing option
    <select name="parsing_option" required>
    {{range .ParsingOptions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
  </label>
  <button type="submit"{{if .Processing}} disabled{{end}}>{{if .Processing}}Converting...{{else}}Convert{{end}}</button>
</form>
{{if .Notice}}<p class="notice {{.Status}}" role="status">{{.Notice}}</p>{{end}}
<div class="toolbar">
  <form method="post" action="/view/toggle">
    <button type="submit">Show {{.OtherMode}}</button>
  </form>
  <span>Viewing: {{.Mode}}</span>
</div>
{{.View}}
</body>
</html>
`))
