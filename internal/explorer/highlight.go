package explorer

import (
	"fmt"
	"hash/fnv"
	"html"
	"strings"

	"ner-explorer/internal/core/types"
)

var labelColors = []string{
	"#7aecec", "#bfeeb7", "#feca74", "#ff9561", "#aa9cfc",
	"#c887fb", "#9cc9cc", "#ffeb80", "#ff8197", "#e4e7d2",
}

func labelColor(label string) string {
	h := fnv.New32a()
	h.Write([]byte(label))
	return labelColors[h.Sum32()%uint32(len(labelColors))]
}

// Highlight renders the document text as HTML with every entity wrapped in a
// colored mark followed by its label.
func Highlight(doc *types.Document) string {
	var sb strings.Builder
	sb.WriteString(`<div class="entities">`)

	next := 0
	for i, tok := range doc.Tokens {
		if i < next {
			continue
		}
		if i > 0 {
			sb.WriteString(types.TokenSeparator)
		}

		ent, ok := entityStartingAt(doc, i)
		if !ok {
			sb.WriteString(html.EscapeString(tok))
			continue
		}

		fmt.Fprintf(&sb,
			`<mark class="entity" style="background: %s">%s <span class="label">%s</span></mark>`,
			labelColor(ent.Label), html.EscapeString(ent.Text), html.EscapeString(ent.Label),
		)
		next = ent.End
	}

	sb.WriteString(`</div>`)
	return sb.String()
}

func entityStartingAt(doc *types.Document, start int) (types.Entity, bool) {
	for _, ent := range doc.Entities {
		if ent.Start == start && ent.End > start {
			return ent, true
		}
	}
	return types.Entity{}, false
}
