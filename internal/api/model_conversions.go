package api

import (
	"ner-explorer/internal/core"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/explorer"
	"ner-explorer/pkg/api"
)

func convertDataset(ds datasets.Dataset) api.Dataset {
	return api.Dataset{
		Name:     ds.Name,
		Location: ds.Location,
		Type:     ds.Type,
		Scheme:   ds.Scheme.String(),
	}
}

func convertDatasets(dss []datasets.Dataset) []api.Dataset {
	out := make([]api.Dataset, 0, len(dss))
	for _, ds := range dss {
		out = append(out, convertDataset(ds))
	}
	return out
}

func convertStats(s core.Stats) api.Stats {
	return api.Stats{
		DocCount:       s.DocCount,
		UnalignedCount: s.UnalignedCount,
		EmptyDocs:      s.EmptyDocs,
	}
}

func convertLabelCounts(counts []explorer.LabelCount) []api.LabelCount {
	out := make([]api.LabelCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, api.LabelCount{Label: c.Label, Documents: c.Documents})
	}
	return out
}

func convertEntityRows(rows []explorer.EntityRow) []api.EntityRow {
	out := make([]api.EntityRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.EntityRow(r))
	}
	return out
}
