package preview

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>how2use documents</title></head>
<body>
<h1>Documents</h1>
<ul>
{{- range .}}
<li>{{if .Present}}<a href="/docs/{{.Name}}">{{.Name}}</a> <small>{{.ModTime}}</small>{{else}}{{.Name}} <em>not generated</em>{{end}}</li>
{{- end}}
</ul>
</body></html>
`))

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Name}}</title><base href="/files/"></head>
<body>
<nav><a href="/">All documents</a> | <a href="/docs/{{.Name}}/raw">Markdown</a>
<ul>
{{- range .Outline}}
<li class="h{{.Level}}">{{.Text}}</li>
{{- end}}
</ul>
</nav>
<main>
{{.Body}}
</main>
</body></html>
`))
