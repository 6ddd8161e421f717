package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/kmutua/metertrack/internal/config"
	"github.com/kmutua/metertrack/internal/database"
)

// Applies every migrations/*.sql file in name order. The schema files are
// idempotent, so re-running is safe.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		slog.Error("failed to list migrations", "error", err)
		os.Exit(1)
	}

	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			slog.Error("failed to read migration", "file", file, "error", err)
			os.Exit(1)
		}

		if _, err := db.Exec(string(content)); err != nil {
			slog.Error("migration failed", "file", file, "error", err)
			os.Exit(1)
		}

		slog.Info("applied migration", "file", file)
	}
}
