package explorer

import (
	"math/rand"

	"ner-explorer/internal/core"
	"ner-explorer/internal/core/types"
)

const (
	DefaultTableSample     = 1000
	DefaultVisualizeSample = 20
)

// Sample draws min(n, len(docs)) documents uniformly without replacement. The
// input slice is not modified.
func Sample(docs []*types.Document, n int, rng *rand.Rand) []*types.Document {
	n = max(0, min(n, len(docs)))
	if n == 0 {
		return nil
	}

	perm := rng.Perm(len(docs))
	out := make([]*types.Document, n)
	for i := range out {
		out[i] = docs[perm[i]]
	}
	return out
}

// Candidates returns the documents a sample is drawn from: every document, or
// only those indexed under label, narrowed by query when it is not empty.
func Candidates(corpus *core.Corpus, label, query string) ([]*types.Document, error) {
	docs := corpus.Documents
	if label != "" {
		docs = uniqueDocuments(corpus.EntityIndex[label])
	}

	if query == "" {
		return docs, nil
	}

	filter, err := core.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return core.FilterDocuments(docs, filter), nil
}

// uniqueDocuments drops repeated index entries, keeping first occurrences.
func uniqueDocuments(docs []*types.Document) []*types.Document {
	seen := make(map[*types.Document]struct{}, len(docs))
	out := make([]*types.Document, 0, len(docs))
	for _, doc := range docs {
		if _, ok := seen[doc]; ok {
			continue
		}
		seen[doc] = struct{}{}
		out = append(out, doc)
	}
	return out
}
