package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

type Object struct {
	Name string
	Size int64
}

// ObjectStore is where remote datasets live. Buckets group objects the same
// way for every implementation.
type ObjectStore interface {
	CreateBucket(ctx context.Context, bucket string) error

	PutObject(ctx context.Context, bucket, key string, data io.Reader) error

	DownloadObject(ctx context.Context, bucket, key, dest string) error

	ListObjects(ctx context.Context, bucket, prefix string) ([]Object, error)
}

func IsS3Path(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

func ParseS3Path(s3Path string) (bucket, key string, err error) {
	parsed, err := url.Parse(s3Path)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 path '%s': %w", s3Path, err)
	}
	if parsed.Scheme != "s3" {
		return "", "", fmt.Errorf("invalid scheme in S3 path '%s', expected 's3'", s3Path)
	}
	bucket = parsed.Host
	key = strings.TrimPrefix(parsed.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("S3 path '%s' must name a bucket and a key", s3Path)
	}
	return bucket, key, nil
}
