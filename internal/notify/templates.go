package notify

import (
	"bytes"
	"html/template"
)

type row struct {
	Label string
	Value string
}

type mailView struct {
	Emoji    string
	Title    string
	Greeting string
	Message  string
	Rows     []row
	Footer   string
}

var mailTmpl = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #ff6b35; color: #fff; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: #f9f9f9; padding: 20px; border-radius: 0 0 8px 8px; }
td { padding: 4px 8px; }
.footer { text-align: center; color: #999; font-size: 12px; margin-top: 20px; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>{{.Emoji}} {{.Title}}</h1></div>
<div class="content">
{{if .Greeting}}<p>{{.Greeting}}</p>{{end}}
<p>{{.Message}}</p>
{{if .Rows}}<table>{{range .Rows}}<tr><td><strong>{{.Label}}</strong></td><td>{{.Value}}</td></tr>{{end}}</table>{{end}}
{{if .Footer}}<p>{{.Footer}}</p>{{end}}
</div>
<div class="footer">MealSection</div>
</div>
</body>
</html>`))

func render(v mailView) (string, error) {
	var buf bytes.Buffer
	if err := mailTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
