package datasets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ner-explorer/internal/storage"
)

// Resolver maps dataset locations to files the corpus loader can read.
// Remote datasets are downloaded once into cacheDir.
type Resolver struct {
	store    storage.ObjectStore
	cacheDir string
}

func NewResolver(store storage.ObjectStore, cacheDir string) *Resolver {
	return &Resolver{store: store, cacheDir: cacheDir}
}

func (r *Resolver) LocalPath(ctx context.Context, ds Dataset) (string, error) {
	return r.resolve(ctx, ds, false)
}

// Refresh downloads a remote dataset again even if a copy already exists.
func (r *Resolver) Refresh(ctx context.Context, ds Dataset) (string, error) {
	return r.resolve(ctx, ds, true)
}

func (r *Resolver) resolve(ctx context.Context, ds Dataset, refresh bool) (string, error) {
	if !storage.IsS3Path(ds.Location) {
		return ds.Location, nil
	}

	bucket, key, err := storage.ParseS3Path(ds.Location)
	if err != nil {
		return "", err
	}
	if r.store == nil {
		return "", fmt.Errorf("dataset '%s' is stored at %s but no object store is configured", ds.Name, ds.Location)
	}

	dest := filepath.Join(r.cacheDir, bucket, filepath.FromSlash(key))
	if !refresh {
		if _, err := os.Stat(dest); err == nil {
			return dest, nil
		}
	}

	slog.Info("downloading dataset", "dataset", ds.Name, "location", ds.Location, "dest", dest)
	if err := r.store.DownloadObject(ctx, bucket, key, dest); err != nil {
		return "", fmt.Errorf("error downloading dataset '%s': %w", ds.Name, err)
	}
	return dest, nil
}
