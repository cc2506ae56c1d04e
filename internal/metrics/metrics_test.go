package metrics

import (
	"testing"
	"time"

	"ner-explorer/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CacheLookup(false)
	m.CacheLookup(true)
	m.CacheLookup(true)
	m.CorpusLoaded("/data/train.ner", core.Stats{DocCount: 10, UnalignedCount: 2, EmptyDocs: 3}, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.documents.WithLabelValues("/data/train.ner")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unaligned.WithLabelValues("/data/train.ner")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.empty.WithLabelValues("/data/train.ner")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.loadDuration))
}
