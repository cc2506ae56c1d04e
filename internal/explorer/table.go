package explorer

import "ner-explorer/internal/core/types"

// EntityRow is one line of the entity table: the entity, its text, the index
// of its first token and the text around it.
type EntityRow struct {
	Entity    string `json:"entity"`
	Value     string `json:"value"`
	StartWord int    `json:"start_word"`
	DocSpan   string `json:"doc_span"`
}

var tableColumns = []string{"entity", "value", "start_word", "doc_span"}

// EntityTable lists the entities of docs. If label is not empty only entities
// with that label are listed.
func EntityTable(docs []*types.Document, label string) []EntityRow {
	var rows []EntityRow
	for _, doc := range docs {
		text := doc.Text()
		for _, ent := range doc.Entities {
			if label != "" && ent.Label != label {
				continue
			}
			rows = append(rows, EntityRow{
				Entity:    ent.Label,
				Value:     ent.Text,
				StartWord: ent.Start,
				DocSpan:   ent.Context(text),
			})
		}
	}
	return rows
}
