package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/hmelse/folio"
)

// holdingsMarkdownTemplate is the template for rendering a holdings report in Markdown.
const holdingsMarkdownTemplate = `# Holdings on {{ .Date }}

Total Portfolio Value: **{{ .TotalValue }}**
{{- if .Lines }}

| Ticker | Shares | Price | Market Value |
|:---|---:|---:|---:|
{{- range .Lines }}
| {{ .Ticker }} | {{ .Shares }} | {{ .Price }} | {{ .MarketValue }} |
{{- end }}
| **Total** | | | **{{ .TotalValue }}** |
{{- end }}
`

// HoldingsMarkdown renders the holdings report to a markdown string using a text/template.
func HoldingsMarkdown(r *folio.HoldingsReport) string {
	tmpl := template.Must(template.New("holdings").Parse(holdingsMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, r); err != nil {
		// In a real application, you might want to handle this error more gracefully.
		return fmt.Sprintf("Error executing template: %v", err)
	}
	return b.String()
}
