package http

import "html/template"

type errorPage struct {
	StatusCode int
	Title      string
	Payload    errorPayload
	ShowDetail bool
}

var errorPageTemplate = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.StatusCode}} {{.Title}}</title>
</head>
<body>
  <main>
    <h1>{{.StatusCode}}</h1>
    <h2>{{.Title}}</h2>
    <p>{{.Payload.Message}}</p>
    <p><small>Request ID: {{.Payload.RequestID}}</small></p>
    <nav>
      <a href="/">Go Home</a>
      <a href="javascript:history.back()">Go Back</a>
    </nav>
    {{- if .ShowDetail}}
    <details>
      <summary>Technical details</summary>
      <p>Code: {{.Payload.Code}}</p>
      <p>Timestamp: {{.Payload.Timestamp}}</p>
      <pre>{{.Payload.Details}}</pre>
      {{- if .Payload.Stack}}
      <pre>{{.Payload.Stack}}</pre>
      {{- end}}
    </details>
    {{- end}}
  </main>
</body>
</html>
`))
