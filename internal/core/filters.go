package core

import (
	"strings"

	"ner-explorer/internal/core/types"
)

// Filter decides whether a document, given its entities grouped by label,
// should be kept.
type Filter interface {
	Matches(entities LabelToTexts) bool
}

// FilterDocuments returns the documents whose extracted entities match filter.
func FilterDocuments(docs []*types.Document, filter Filter) []*types.Document {
	var out []*types.Document
	for _, doc := range docs {
		if filter.Matches(ExtractEntities(doc.Entities)) {
			out = append(out, doc)
		}
	}
	return out
}

type AndFilter struct {
	filters []Filter
}

func (f *AndFilter) Matches(entities LabelToTexts) bool {
	for _, filter := range f.filters {
		if !filter.Matches(entities) {
			return false
		}
	}
	return true
}

type OrFilter struct {
	filters []Filter
}

func (f *OrFilter) Matches(entities LabelToTexts) bool {
	for _, filter := range f.filters {
		if filter.Matches(entities) {
			return true
		}
	}
	return false
}

type NotFilter struct {
	filter Filter
}

func (f *NotFilter) Matches(entities LabelToTexts) bool {
	return !f.filter.Matches(entities)
}

// LabelFilter keeps documents with at least one entity of the label.
type LabelFilter struct {
	label string
}

func (f *LabelFilter) Matches(entities LabelToTexts) bool {
	return len(entities[f.label]) > 0
}

// CountFilter keeps documents whose number of entities with the label lies
// strictly between min and max.
type CountFilter struct {
	label string
	min   int
	max   int
}

func (f *CountFilter) Matches(entities LabelToTexts) bool {
	count := len(entities[f.label])
	return f.min < count && count < f.max
}

// TextFilter keeps documents where any entity with the label satisfies op
// against value.
type TextFilter struct {
	label string
	op    string
	value string
}

func (f *TextFilter) Matches(entities LabelToTexts) bool {
	for _, text := range entities[f.label] {
		if f.matchText(text) {
			return true
		}
	}
	return false
}

func (f *TextFilter) matchText(text string) bool {
	switch f.op {
	case "CONTAINS":
		return strings.Contains(strings.ToLower(text), strings.ToLower(f.value))
	case "=":
		return text == f.value
	case "!=":
		return text != f.value
	case "<":
		return text < f.value
	case ">":
		return text > f.value
	default:
		return false
	}
}
