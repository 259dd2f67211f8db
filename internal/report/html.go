package report

import (
	"fmt"
	"html/template"
	"io"
)

// reportTemplate renders the composed document as a single HTML page. The
// "items" template recurses into reply lists.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Activity report {{.From.Format "2006-01-02"}} – {{.To.Format "2006-01-02"}}</title>
</head>
<body>
<div class="report">
{{- if .Narrative}}
<p class="narrative"><em>{{.Narrative}}</em></p>
{{- end}}
{{- range .Days}}
<section>
<h2>{{.Heading}}</h2>
{{- if .MergeRequests}}
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Merge request</th><th>Commits</th><th>Comments</th><th>Reviewed</th><th>Merged</th></tr>
{{- range .MergeRequests}}
<tr style="background-color:{{.Color}}"><td>{{.Title}}</td><td>{{.Commits}}</td><td>{{.Comments}}</td><td>{{if .Reviewed}}✔{{end}}</td><td>{{if .Merged}}✔{{end}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- range .Conversations}}
<h3>{{.Heading}}</h3>
<ul>
{{- template "items" .Items}}
</ul>
{{- end}}
</section>
{{- end}}
</div>
</body>
</html>
{{- define "items"}}
{{- range .}}
{{- if .Gap}}
<li class="gap">⋮</li>
{{- else}}
<li style="color:{{if .Important}}#222222{{else}}#999999{{end}}">{{.Text}}{{if .Replies}}
<ul>
{{- template "items" .Replies}}
</ul>
{{- end}}</li>
{{- end}}
{{- end}}
{{- end}}`))

// Render serializes the document as HTML.
func Render(w io.Writer, doc *Document) error {
	if err := reportTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
