package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
@page { size: A4; margin: 2cm; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.5; color: #333; }
h1 { font-size: 18pt; color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
h2, h3 { color: #2c3e50; margin-top: 20px; }
table { width: 100%%; border-collapse: collapse; margin: 15px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f8f9fa; }
</style>
</head>
<body>
%s
</body>
</html>
`

// HTMLExporter renders minutes as a standalone, sanitized HTML page
type HTMLExporter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewHTMLExporter creates an HTML exporter with GitHub flavored tables
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
	}
}

func (e *HTMLExporter) Format() string      { return "html" }
func (e *HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

// Export converts markdown to HTML and strips anything unsafe the LLM emitted
func (e *HTMLExporter) Export(markdown string, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	safe := e.policy.SanitizeBytes(body.Bytes())
	page := fmt.Sprintf(htmlPage, html.EscapeString(title), safe)
	return []byte(page), nil
}
