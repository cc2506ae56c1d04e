package metrics

import (
	"time"

	"ner-explorer/internal/core"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports corpus statistics and cache behaviour. It implements
// core.CacheObserver.
type Metrics struct {
	documents     *prometheus.GaugeVec
	unaligned     *prometheus.GaugeVec
	empty         *prometheus.GaugeVec
	cacheRequests *prometheus.CounterVec
	loadDuration  prometheus.Histogram
}

var _ core.CacheObserver = (*Metrics)(nil)

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		documents: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ner_explorer_documents",
				Help: "Accepted documents in the most recently loaded corpus",
			},
			[]string{"path"},
		),
		unaligned: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ner_explorer_unaligned_documents",
				Help: "Documents rejected because their spans disagree with their opening tags",
			},
			[]string{"path"},
		),
		empty: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ner_explorer_empty_documents",
				Help: "Documents without any opening entity tag",
			},
			[]string{"path"},
		),
		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ner_explorer_cache_requests_total",
				Help: "Corpus cache lookups by result",
			},
			[]string{"result"},
		),
		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ner_explorer_load_duration_seconds",
				Help:    "Time spent loading a corpus",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
	}

	reg.MustRegister(m.documents, m.unaligned, m.empty, m.cacheRequests, m.loadDuration)
	return m
}

func (m *Metrics) CacheLookup(hit bool) {
	if hit {
		m.cacheRequests.WithLabelValues("hit").Inc()
	} else {
		m.cacheRequests.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) CorpusLoaded(path string, stats core.Stats, duration time.Duration) {
	m.documents.WithLabelValues(path).Set(float64(stats.DocCount))
	m.unaligned.WithLabelValues(path).Set(float64(stats.UnalignedCount))
	m.empty.WithLabelValues(path).Set(float64(stats.EmptyDocs))
	m.loadDuration.Observe(duration.Seconds())
}
