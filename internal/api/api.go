package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"sort"
	"time"

	"ner-explorer/internal/core"
	"ner-explorer/internal/core/types"
	"ner-explorer/internal/core/utils"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/explorer"
	"ner-explorer/pkg/api"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExplorerService struct {
	registry *datasets.Registry
	resolver *datasets.Resolver
	caches   map[string]*core.CorpusCache
	maxDocs  int
}

type ServiceOptions struct {
	// MaxDocs caps the number of documents loaded per dataset, 0 loads all.
	MaxDocs     int
	DedupeIndex bool
	Observer    core.CacheObserver
}

func NewExplorerService(registry *datasets.Registry, resolver *datasets.Resolver, opts ServiceOptions) *ExplorerService {
	caches := make(map[string]*core.CorpusCache)
	for _, ds := range registry.List() {
		loader := core.NewLoader(core.LoaderOptions{
			Dialect:     ds.Dialect,
			Scheme:      ds.Scheme,
			DedupeIndex: opts.DedupeIndex,
		})
		caches[ds.Name] = core.NewCorpusCache(loader, opts.Observer)
	}
	return &ExplorerService{registry: registry, resolver: resolver, caches: caches, maxDocs: opts.MaxDocs}
}

func (s *ExplorerService) AddRoutes(r chi.Router) {
	r.Get("/health", RestHandler(func(r *http.Request) (any, error) { return nil, nil }))
	r.Route("/datasets", func(r chi.Router) {
		r.Get("/", RestHandler(s.ListDatasets))
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/stats", RestHandler(s.GetStats))
			r.Get("/entities", RestHandler(s.GetEntities))
			r.Get("/entities.xlsx", ContentHandler(xlsxContentType, s.ExportEntities))
			r.Get("/visualize", ContentHandler("text/html; charset=utf-8", s.Visualize))
			r.Get("/report", ContentHandler("text/html; charset=utf-8", s.Report))
			r.Post("/reload", RestHandler(s.Reload))
		})
	})
}

func (s *ExplorerService) ListDatasets(r *http.Request) (any, error) {
	return convertDatasets(s.registry.List()), nil
}

func (s *ExplorerService) GetStats(r *http.Request) (any, error) {
	ds, entry, err := s.loadDataset(r)
	if err != nil {
		return nil, err
	}

	report := explorer.NewReport(ds.Name, entry.Corpus, nil)
	return api.DatasetStats{
		Dataset:    ds.Name,
		Stats:      convertStats(entry.Corpus.Stats),
		Labels:     convertLabelCounts(report.Labels),
		Generation: entry.Generation,
		LoadedAt:   entry.LoadedAt,
	}, nil
}

func (s *ExplorerService) GetEntities(r *http.Request) (any, error) {
	ds, sample, rows, err := s.entityTable(r)
	if err != nil {
		return nil, err
	}
	return api.EntitiesResponse{Dataset: ds.Name, Documents: len(sample), Rows: convertEntityRows(rows)}, nil
}

func (s *ExplorerService) ExportEntities(r *http.Request, buf *bytes.Buffer) error {
	_, _, rows, err := s.entityTable(r)
	if err != nil {
		return err
	}
	if err := explorer.WriteXLSX(rows, buf); err != nil {
		return CodedError(http.StatusInternalServerError, err)
	}
	return nil
}

func (s *ExplorerService) Visualize(r *http.Request, buf *bytes.Buffer) error {
	params, err := ParseRequestQueryParams[api.SampleParams](r)
	if err != nil {
		return err
	}

	ds, entry, err := s.loadDataset(r)
	if err != nil {
		return err
	}

	sample, err := sampleDocuments(entry.Corpus, params, explorer.DefaultVisualizeSample)
	if err != nil {
		return err
	}

	buf.WriteString(explorer.Page(ds.Name, explorer.Visualize(sample)))
	return nil
}

func (s *ExplorerService) Report(r *http.Request, buf *bytes.Buffer) error {
	params, err := ParseRequestQueryParams[api.SampleParams](r)
	if err != nil {
		return err
	}

	ds, entry, err := s.loadDataset(r)
	if err != nil {
		return err
	}

	sample, err := sampleDocuments(entry.Corpus, params, explorer.DefaultVisualizeSample)
	if err != nil {
		return err
	}

	body, err := explorer.NewReport(ds.Name, entry.Corpus, explorer.EntityTable(sample, params.Label)).HTML()
	if err != nil {
		return CodedError(http.StatusInternalServerError, err)
	}

	buf.WriteString(explorer.Page(ds.Name, body))
	return nil
}

// Reload downloads remote datasets again and drops every cached corpus for
// the dataset, then loads it so the response carries the new generation.
func (s *ExplorerService) Reload(r *http.Request) (any, error) {
	ds, err := s.getDataset(r)
	if err != nil {
		return nil, err
	}

	path, err := s.resolver.Refresh(r.Context(), ds)
	if err != nil {
		return nil, CodedError(http.StatusInternalServerError, err)
	}

	entry, err := s.caches[ds.Name].Reload(r.Context(), path, s.maxDocs)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error loading dataset '%s': %w", ds.Name, err)
	}

	return api.ReloadResponse{Dataset: ds.Name, Generation: entry.Generation}, nil
}

// Preload loads every registered dataset into its cache using up to workers
// concurrent loads. It returns the names of datasets that failed to load.
func (s *ExplorerService) Preload(ctx context.Context, workers int) []string {
	load := func(ds datasets.Dataset) (*core.CacheEntry, error) {
		path, err := s.resolver.LocalPath(ctx, ds)
		if err != nil {
			return nil, err
		}
		return s.caches[ds.Name].Get(ctx, path, s.maxDocs)
	}

	var failed []string
	for task := range utils.RunInPool(s.registry.List(), workers, load) {
		if task.Error != nil {
			slog.Error("error preloading dataset", "dataset", task.Input.Name, "error", task.Error)
			failed = append(failed, task.Input.Name)
			continue
		}
		slog.Info("preloaded dataset", "dataset", task.Input.Name, "documents", task.Result.Corpus.Stats.DocCount)
	}
	sort.Strings(failed)
	return failed
}

func (s *ExplorerService) getDataset(r *http.Request) (datasets.Dataset, error) {
	name := chi.URLParam(r, "name")
	ds, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, datasets.ErrDatasetNotFound) {
			return ds, CodedError(http.StatusNotFound, err)
		}
		return ds, CodedError(http.StatusInternalServerError, err)
	}
	return ds, nil
}

func (s *ExplorerService) loadDataset(r *http.Request) (datasets.Dataset, *core.CacheEntry, error) {
	ds, err := s.getDataset(r)
	if err != nil {
		return ds, nil, err
	}

	path, err := s.resolver.LocalPath(r.Context(), ds)
	if err != nil {
		return ds, nil, CodedError(http.StatusInternalServerError, err)
	}

	entry, err := s.caches[ds.Name].Get(r.Context(), path, s.maxDocs)
	if err != nil {
		return ds, nil, CodedErrorf(http.StatusInternalServerError, "error loading dataset '%s': %w", ds.Name, err)
	}
	return ds, entry, nil
}

func (s *ExplorerService) entityTable(r *http.Request) (datasets.Dataset, []*types.Document, []explorer.EntityRow, error) {
	params, err := ParseRequestQueryParams[api.SampleParams](r)
	if err != nil {
		return datasets.Dataset{}, nil, nil, err
	}

	ds, entry, err := s.loadDataset(r)
	if err != nil {
		return ds, nil, nil, err
	}

	sample, err := sampleDocuments(entry.Corpus, params, explorer.DefaultTableSample)
	if err != nil {
		return ds, nil, nil, err
	}
	return ds, sample, explorer.EntityTable(sample, params.Label), nil
}

// sampleDocuments draws params.N candidate documents, or defaultN if unset.
// Without a seed every request draws a fresh sample.
func sampleDocuments(corpus *core.Corpus, params api.SampleParams, defaultN int) ([]*types.Document, error) {
	n := params.N
	if n < 0 {
		return nil, CodedErrorf(http.StatusBadRequest, "invalid sample size %d", n)
	}
	if n == 0 {
		n = defaultN
	}

	docs, err := explorer.Candidates(corpus, params.Label, params.Query)
	if err != nil {
		return nil, CodedError(http.StatusBadRequest, err)
	}

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}
	return explorer.Sample(docs, n, rand.New(rand.NewSource(seed))), nil
}
