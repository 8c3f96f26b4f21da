package main

import (
	"context"
	"flag"
	"os"
	"time"

	"nco-classifier-be/internal/config"
	"nco-classifier-be/internal/ingest"
	"nco-classifier-be/internal/repository/unitofwork"
	"nco-classifier-be/pkg/database"
	"nco-classifier-be/pkg/embedding"

	"github.com/fatih/color"
)

func main() {
	csvPath := flag.String("csv", "data/occupations.csv", "reference occupations CSV")
	batchSize := flag.Int("batch", ingest.DefaultBatchSize, "documents per embedding batch")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	embeddingProvider, err := embedding.NewEmbeddingProvider(ctx, embedding.Config{
		Provider:      cfg.Ai.EmbeddingProvider,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OllamaModel:   cfg.Ai.OllamaEmbeddingModel,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
		GeminiModel:   cfg.Ai.GeminiEmbeddingModel,
	})
	if err != nil {
		color.Red("Failed to init embedding provider: %v", err)
		os.Exit(1)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		color.Red("Failed to open %s: %v", *csvPath, err)
		os.Exit(1)
	}
	defer f.Close()

	occupations, err := ingest.ReadOccupations(f)
	if err != nil {
		color.Red("Invalid CSV: %v", err)
		os.Exit(1)
	}
	color.Cyan("Loaded %d occupations from %s", len(occupations), *csvPath)

	started := time.Now()
	loader := ingest.NewLoader(unitofwork.NewRepositoryFactory(db), embeddingProvider, *batchSize)
	skipped, err := loader.Load(ctx, occupations, func(done, total int) {
		color.Yellow("  embedded %d/%d", done, total)
	})
	if err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}
	if skipped {
		color.Yellow("Occupations table already populated, nothing to do")
		return
	}

	color.Green("Seeded %d occupations in %s", len(occupations), time.Since(started).Round(time.Millisecond))
}
