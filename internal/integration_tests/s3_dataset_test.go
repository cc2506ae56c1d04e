package integrationtests

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	backend "ner-explorer/internal/api"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/storage"
	"ner-explorer/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corpusBucket = "corpora"

func setupTestObjectStore(t *testing.T, ctx context.Context) *storage.S3ObjectStore {
	t.Helper()

	endpoint := setupMinioContainer(t, ctx)

	store, err := storage.NewS3ObjectStore(storage.S3ClientConfig{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     minioUsername,
		SecretAccessKey: minioPassword,
	})
	require.NoError(t, err)
	require.NoError(t, store.CreateBucket(ctx, corpusBucket))
	return store
}

func TestS3ObjectStore_PutListDownload(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	store := setupTestObjectStore(t, ctx)

	require.NoError(t, store.PutObject(ctx, corpusBucket, "conll/train.ner", strings.NewReader("John\t_\t_\tB-PER\n")))
	require.NoError(t, store.PutObject(ctx, corpusBucket, "atis/train.ner", strings.NewReader("x")))

	objs, err := store.ListObjects(ctx, corpusBucket, "conll/")
	require.NoError(t, err)
	assert.Equal(t, []storage.Object{{Name: "conll/train.ner", Size: 15}}, objs)

	resolver := datasets.NewResolver(store, t.TempDir())
	_, err = resolver.LocalPath(ctx, datasets.Dataset{Name: "missing", Location: "s3://corpora/conll/missing.ner"})
	assert.Error(t, err)
}

func TestExplorer_RemoteDataset(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	store := setupTestObjectStore(t, ctx)

	corpus := "John\t_\t_\tB-PER\nSmith\t_\t_\tI-PER\n\nParis\t_\t_\tB-LOC\n\nnothing\t_\t_\tO\n\n"
	require.NoError(t, store.PutObject(ctx, corpusBucket, "conll/train.ner", strings.NewReader(corpus)))

	registry, err := datasets.NewRegistry(datasets.Dataset{Name: "conll", Location: "s3://corpora/conll/train.ner"})
	require.NoError(t, err)

	service := backend.NewExplorerService(registry, datasets.NewResolver(store, t.TempDir()), backend.ServiceOptions{})
	router := chi.NewRouter()
	service.AddRoutes(router)

	var stats api.DatasetStats
	require.NoError(t, httpRequest(router, http.MethodGet, "/datasets/conll/stats", &stats))
	assert.Equal(t, api.Stats{DocCount: 2, EmptyDocs: 1}, stats.Stats)

	updated := corpus + "Rome\t_\t_\tB-LOC\n\n"
	require.NoError(t, store.PutObject(ctx, corpusBucket, "conll/train.ner", strings.NewReader(updated)))

	require.NoError(t, httpRequest(router, http.MethodGet, "/datasets/conll/stats", &stats))
	assert.Equal(t, 2, stats.Stats.DocCount, "cached until reloaded")

	var reload api.ReloadResponse
	require.NoError(t, httpRequest(router, http.MethodPost, "/datasets/conll/reload", &reload))

	require.NoError(t, httpRequest(router, http.MethodGet, "/datasets/conll/stats", &stats))
	assert.Equal(t, 3, stats.Stats.DocCount)
	assert.Equal(t, reload.Generation, stats.Generation)
}
