package explorer

import (
	"fmt"
	"html"
	"strings"

	"ner-explorer/internal/core/types"
)

const documentWrapper = `<div style="overflow-x: auto; border: 1px solid #e6e9ef; border-radius: 0.25rem; padding: 1rem; margin-bottom: 2.5rem">%s</div>`

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
mark.entity { padding: 0.25em 0.4em; margin: 0 0.2em; border-radius: 0.35em; line-height: 2.5; }
mark.entity .label { font-size: 0.7em; font-weight: bold; text-transform: uppercase; margin-left: 0.4rem; }
table { border-collapse: collapse; }
td, th { border: 1px solid #e6e9ef; padding: 0.25rem 0.5rem; }
</style>
</head>
<body>
%s
</body>
</html>
`

func Page(title, body string) string {
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), body)
}

// Visualize renders each document highlighted inside its own box.
func Visualize(docs []*types.Document) string {
	var sb strings.Builder
	for _, doc := range docs {
		fmt.Fprintf(&sb, documentWrapper, Highlight(doc))
		sb.WriteString("\n")
	}
	return sb.String()
}
