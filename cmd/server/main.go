// Package main provides the HTTP front door for the daily game:
// - Game API: state, guess, suggest, share (per-device sessions)
// - Live feed: WebSocket push of session state after each guess
// - Operations: health check and Prometheus metrics
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockle/internal/bucket"
	"stockle/internal/dataset"
	"stockle/internal/lookup"
	"stockle/internal/observability"
	"stockle/internal/schedule"
	"stockle/internal/storage"
	chstore "stockle/internal/storage/clickhouse"
	"stockle/internal/storage/memory"
	"stockle/internal/storage/migrations"
	pgstore "stockle/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	datasetPath := flag.String("dataset", os.Getenv("STOCKLE_DATASET"), "Path to company list JSON")
	metaPath := flag.String("dataset-meta", os.Getenv("STOCKLE_DATASET_META"), "Path to dataset metadata JSON (optional)")
	addr := flag.String("addr", ":8080", "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional, result history)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	salt := flag.String("salt", schedule.DefaultSalt, "Schedule salt (changing it reshuffles the daily calendar)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *datasetPath == "" {
		logger.Fatal("--dataset is required")
	}
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the company list. An empty list is fatal: the game cannot
	// run in a degraded mode.
	companies, err := dataset.LoadFile(*datasetPath)
	if err != nil {
		logger.Fatalf("Failed to load company dataset: %v", err)
	}
	logger.Printf("Loaded %d companies from %s", len(companies), *datasetPath)

	if *metaPath != "" {
		if meta, err := dataset.LoadMetaFile(*metaPath); err != nil {
			logger.Printf("Dataset metadata unavailable: %v", err)
		} else {
			logger.Printf("Dataset as of %s (%d updated, %d missing)",
				meta.AsOfDate, meta.UpdatedCompanies, meta.MissingCompanies)
		}
	}

	// Create stores
	sessions, results, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, logger)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	loc, err := schedule.LoadReferenceLocation()
	if err != nil {
		logger.Fatalf("Failed to load reference timezone: %v", err)
	}

	server := &Server{
		index:    lookup.NewIndex(companies),
		defs:     bucket.DefaultDefs(),
		sessions: sessions,
		results:  results,
		salt:     *salt,
		loc:      loc,
		metrics:  observability.NewMetrics(""),
		logger:   logger,
		engines:  make(map[string]*engineEntry),
		live:     newLiveHub(),
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.routes(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Serving on %s (puzzle date %s)", *addr, schedule.DayKey(time.Now(), loc))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores wires session and result storage from flags. The result
// store prefers ClickHouse when configured, falling back to Postgres.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool, logger *log.Logger) (storage.SessionStore, storage.ResultStore, func(), error) {
	if useMemory {
		return memory.NewSessionStore(), memory.NewResultStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	sessions := pgstore.NewSessionStore(pool)
	var results storage.ResultStore = pgstore.NewResultStore(pool)
	cleanup := func() { pool.Close() }

	if clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			conn.Close()
			pool.Close()
			return nil, nil, nil, err
		}
		results = chstore.NewResultStore(conn)
		logger.Println("Result history backed by ClickHouse")
		cleanup = func() {
			conn.Close()
			pool.Close()
		}
	}

	return sessions, results, cleanup, nil
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
