package cmd

import (
	"flag"
	"fmt"
	"log"

	"ner-explorer/internal/config"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/storage"

	"github.com/joho/godotenv"
)

// LoadEnvFile parses the command line and, if -env was given, loads that file
// into the environment. Callers must declare their own flags beforehand.
func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	err := godotenv.Load(configPath)
	if err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}

// NewResolver builds the dataset resolver for cfg. An S3 client is only
// created when some dataset in the registry lives in object storage.
func NewResolver(cfg *config.Config, registry *datasets.Registry) (*datasets.Resolver, error) {
	var store storage.ObjectStore
	for _, ds := range registry.List() {
		if storage.IsS3Path(ds.Location) {
			s3Store, err := storage.NewS3ObjectStore(storage.S3ClientConfig{
				Endpoint:        cfg.S3EndpointURL,
				Region:          cfg.S3Region,
				AccessKeyID:     cfg.S3AccessKeyID,
				SecretAccessKey: cfg.S3SecretAccessKey,
			})
			if err != nil {
				return nil, fmt.Errorf("error creating s3 object store: %w", err)
			}
			store = s3Store
			break
		}
	}
	return datasets.NewResolver(store, cfg.CacheDir), nil
}
