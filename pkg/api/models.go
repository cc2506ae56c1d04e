package api

import (
	"time"

	"github.com/google/uuid"
)

type Dataset struct {
	Name     string
	Location string
	Type     string
	Scheme   string
}

type Stats struct {
	DocCount       int
	UnalignedCount int
	EmptyDocs      int
}

type LabelCount struct {
	Label     string
	Documents int
}

type DatasetStats struct {
	Dataset    string
	Stats      Stats
	Labels     []LabelCount
	Generation uuid.UUID
	LoadedAt   time.Time
}

type EntityRow struct {
	Entity    string `json:"entity"`
	Value     string `json:"value"`
	StartWord int    `json:"start_word"`
	DocSpan   string `json:"doc_span"`
}

type EntitiesResponse struct {
	Dataset   string
	Documents int
	Rows      []EntityRow
}

// SampleParams are the query parameters shared by the sampling endpoints.
type SampleParams struct {
	N     int    `schema:"n"`
	Label string `schema:"label"`
	Query string `schema:"query"`
	Seed  *int64 `schema:"seed"`
}

type ReloadResponse struct {
	Dataset    string
	Generation uuid.UUID
}
