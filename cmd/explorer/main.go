package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ner-explorer/cmd"
	"ner-explorer/internal/api"
	"ner-explorer/internal/config"
	"ner-explorer/internal/datasets"
	"ner-explorer/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.Println("Starting NER explorer...")

	cmd.LoadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	registry, err := datasets.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("Failed to load dataset registry: %v", err)
	}
	log.Printf("loaded %d datasets from %s", len(registry.Names()), cfg.RegistryPath)

	resolver, err := cmd.NewResolver(cfg, registry)
	if err != nil {
		log.Fatalf("Failed to create dataset resolver: %v", err)
	}

	explorer := api.NewExplorerService(registry, resolver, api.ServiceOptions{
		MaxDocs:     cfg.MaxDocs,
		DedupeIndex: cfg.DedupeIndex,
		Observer:    metrics.New(prometheus.DefaultRegisterer),
	})

	if cfg.PreloadWorkers > 0 {
		go func() {
			if failed := explorer.Preload(context.Background(), cfg.PreloadWorkers); len(failed) > 0 {
				log.Printf("failed to preload datasets: %v", failed)
			}
		}()
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// loading a large corpus on first access can take a while
	r.Use(middleware.Timeout(5 * time.Minute))

	explorer.AddRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("Explorer listening on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.Port, err)
	}

	log.Println("Server stopped.")
}
