package core

import "ner-explorer/internal/core/types"

// LabelToTexts maps an entity label to the texts of the entities carrying it,
// in document order.
type LabelToTexts map[string][]string

func ExtractEntities(entities []types.Entity) LabelToTexts {
	out := make(LabelToTexts)
	for _, ent := range entities {
		out[ent.Label] = append(out[ent.Label], ent.Text)
	}
	return out
}
