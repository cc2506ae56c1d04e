package types

import "strings"

// TokenSeparator is the spacing placed between tokens when a document's text
// is reconstructed; the tagged format does not record the original whitespace.
const TokenSeparator = " "

type Document struct {
	Tokens   []string
	Entities []Entity
}

func (d *Document) Text() string {
	return strings.Join(d.Tokens, TokenSeparator)
}

func (d *Document) HasLabel(label string) bool {
	for _, ent := range d.Entities {
		if ent.Label == label {
			return true
		}
	}
	return false
}

func (d *Document) Labels() []string {
	var labels []string
	seen := make(map[string]bool)
	for _, ent := range d.Entities {
		if !seen[ent.Label] {
			seen[ent.Label] = true
			labels = append(labels, ent.Label)
		}
	}
	return labels
}
