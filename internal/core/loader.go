package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ner-explorer/internal/core/types"
)

type Stats struct {
	DocCount       int
	UnalignedCount int
	EmptyDocs      int
}

// Runs is the number of non-empty token runs that were read.
func (s Stats) Runs() int {
	return s.DocCount + s.UnalignedCount + s.EmptyDocs
}

type EntityIndex map[string][]*types.Document

type Corpus struct {
	Documents   []*types.Document
	EntityIndex EntityIndex
	Stats       Stats
}

type LoaderOptions struct {
	Dialect Dialect
	Scheme  TagScheme

	// DedupeIndex adds a document to EntityIndex once per label instead of once
	// per entity of that label.
	DedupeIndex bool

	// Progress, if set, is called after every token run with the running stats.
	Progress func(Stats)
}

type Loader struct {
	opts LoaderOptions
}

func NewLoader(opts LoaderOptions) *Loader {
	if opts.Dialect.Delimiter == 0 {
		opts.Dialect = DefaultDialect
	}
	return &Loader{opts: opts}
}

type tokenRun struct {
	tokens []string
	tags   []string
}

func (r *tokenRun) reset() {
	r.tokens = nil
	r.tags = nil
}

// Load reads the tagged file at path into a Corpus. If maxDocs is positive,
// reading stops once that many documents have been accepted.
func (l *Loader) Load(ctx context.Context, path string, maxDocs int) (*Corpus, error) {
	start := time.Now()

	corpus := &Corpus{EntityIndex: make(EntityIndex)}
	var run tokenRun

	finishRun := func() {
		if len(run.tokens) == 0 {
			return
		}
		l.addRun(corpus, run)
		run.reset()
		if l.opts.Progress != nil {
			l.opts.Progress(corpus.Stats)
		}
	}

	for row, err := range ReadRows(path, l.opts.Dialect) {
		if err != nil {
			return nil, fmt.Errorf("error loading corpus from %s: %w", path, err)
		}

		if len(row) == 0 {
			finishRun()
			if maxDocs > 0 && corpus.Stats.DocCount >= maxDocs {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			continue
		}

		if len(row) != 4 {
			continue
		}
		run.tokens = append(run.tokens, row[0])
		run.tags = append(run.tags, row[3])
	}

	finishRun()

	slog.Info("loaded corpus", "path", path, "docs", corpus.Stats.DocCount, "unaligned", corpus.Stats.UnalignedCount, "empty", corpus.Stats.EmptyDocs, "labels", len(corpus.EntityIndex), "duration", time.Since(start))

	return corpus, nil
}

func (l *Loader) addRun(corpus *Corpus, run tokenRun) {
	numInitialEntities := CountInitialEntities(run.tags)
	if numInitialEntities == 0 {
		corpus.Stats.EmptyDocs++
		return
	}

	doc := BuildDocument(run.tokens, run.tags, l.opts.Scheme)
	if len(doc.Entities) != numInitialEntities {
		slog.Debug("unaligned document", "tokens", len(doc.Tokens), "initial_entities", numInitialEntities, "predicted_entities", len(doc.Entities))
		corpus.Stats.UnalignedCount++
		return
	}

	corpus.Documents = append(corpus.Documents, doc)
	corpus.Stats.DocCount++

	indexed := make(map[string]bool)
	for _, ent := range doc.Entities {
		if l.opts.DedupeIndex && indexed[ent.Label] {
			continue
		}
		indexed[ent.Label] = true
		corpus.EntityIndex[ent.Label] = append(corpus.EntityIndex[ent.Label], doc)
	}
}

// BuildDocument converts the tags of a token run into entity spans and
// attaches them to a new document.
func BuildDocument(tokens, tags []string, scheme TagScheme) *types.Document {
	doc := &types.Document{Tokens: append([]string(nil), tokens...)}
	for _, span := range IOBToSpans(tags, scheme) {
		doc.Entities = append(doc.Entities, types.CreateEntity(span.Label, doc.Tokens, span.Start, span.End))
	}
	return doc
}

// Labels returns the labels of the index ordered by document count,
// most frequent first.
func (idx EntityIndex) Labels() []string {
	labels := make([]string, 0, len(idx))
	for label := range idx {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(idx[labels[i]]) != len(idx[labels[j]]) {
			return len(idx[labels[i]]) > len(idx[labels[j]])
		}
		return labels[i] < labels[j]
	})
	return labels
}
