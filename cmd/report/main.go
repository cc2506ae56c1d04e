package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"ner-explorer/cmd"
	"ner-explorer/internal/config"
	"ner-explorer/internal/core"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/explorer"

	"github.com/schollz/progressbar/v3"
)

var (
	datasetName = flag.String("dataset", "", "name of a dataset in the registry")
	file        = flag.String("file", "", "corpus file to load instead of a registry dataset")
	delimiter   = flag.String("delimiter", "\t", "field delimiter used with -file")
	scheme      = flag.String("scheme", "iob", "tag scheme used with -file (iob or legacy)")
	maxDocs     = flag.Int("max-docs", 0, "stop after this many documents, 0 loads the whole corpus")
	sampleSize  = flag.Int("n", explorer.DefaultVisualizeSample, "number of documents sampled for the entity table")
	label       = flag.String("label", "", "only sample documents with this entity label")
	query       = flag.String("query", "", "only sample documents matching this query")
	seed        = flag.Int64("seed", time.Now().UnixNano(), "sampling seed")
	htmlOut     = flag.Bool("html", false, "print the report as html instead of markdown")
	xlsxPath    = flag.String("xlsx", "", "also write the sampled entity table to this xlsx file")
)

func resolveDataset(ctx context.Context) (datasets.Dataset, string, error) {
	if *file != "" {
		ds := datasets.Dataset{Name: *file, Location: *file}
		delim := []rune(*delimiter)
		if len(delim) != 1 {
			return ds, "", fmt.Errorf("delimiter must be a single character, got '%s'", *delimiter)
		}
		ds.Dialect = core.Dialect{Delimiter: delim[0], Quote: core.DefaultDialect.Quote}

		s, err := core.ParseTagScheme(*scheme)
		if err != nil {
			return ds, "", err
		}
		ds.Scheme = s
		return ds, *file, nil
	}

	if *datasetName == "" {
		return datasets.Dataset{}, "", fmt.Errorf("either -dataset or -file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return datasets.Dataset{}, "", err
	}

	registry, err := datasets.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		return datasets.Dataset{}, "", err
	}

	ds, err := registry.Get(*datasetName)
	if err != nil {
		return ds, "", err
	}

	resolver, err := cmd.NewResolver(cfg, registry)
	if err != nil {
		return ds, "", err
	}

	path, err := resolver.LocalPath(ctx, ds)
	return ds, path, err
}

func main() {
	cmd.LoadEnvFile()

	ctx := context.Background()

	ds, path, err := resolveDataset(ctx)
	if err != nil {
		log.Fatalf("error resolving dataset: %v", err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("loading "+ds.Name),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	loader := core.NewLoader(core.LoaderOptions{
		Dialect: ds.Dialect,
		Scheme:  ds.Scheme,
		Progress: func(stats core.Stats) {
			_ = bar.Set(stats.Runs())
		},
	})

	corpus, err := loader.Load(ctx, path, *maxDocs)
	_ = bar.Finish()
	if err != nil {
		log.Fatalf("error loading dataset: %v", err)
	}

	docs, err := explorer.Candidates(corpus, *label, *query)
	if err != nil {
		log.Fatalf("invalid query: %v", err)
	}

	sample := explorer.Sample(docs, *sampleSize, rand.New(rand.NewSource(*seed)))
	rows := explorer.EntityTable(sample, *label)
	report := explorer.NewReport(ds.Name, corpus, rows)

	if *htmlOut {
		body, err := report.HTML()
		if err != nil {
			log.Fatalf("error rendering report: %v", err)
		}
		fmt.Print(explorer.Page(ds.Name, body))
	} else {
		fmt.Print(report.Markdown())
	}

	if *xlsxPath != "" {
		if err := explorer.WriteXLSXFile(*xlsxPath, rows); err != nil {
			log.Fatalf("error writing %s: %v", *xlsxPath, err)
		}
		log.Printf("wrote %d entities to %s", len(rows), *xlsxPath)
	}
}
