package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/config"
	"github.com/claude/liftarena/internal/importer"
	"github.com/claude/liftarena/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("path", "", "path to legacy SQLite export (required)")
	login := flag.String("user", "", "login to import workouts for (required)")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" || *login == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftarena-import -config config.yaml -path export.db -user login [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*exportPath); err != nil {
		log.Error("export file not found", "path", *exportPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	// Resolve the catalog so imported sets get volumes computed against
	// current definitions.
	provider := catalog.NewProvider(cfg.Catalog.SourceURL, cfg.Catalog.FetchTimeout(), log)
	loadCtx, cancelLoad := context.WithTimeout(ctx, 30*time.Second)
	if err := provider.Load(loadCtx); err != nil {
		log.Warn("catalog load failed, importing against fallback", "error", err)
	}
	cancelLoad()

	// Run import
	imp := importer.New(db, provider.Catalog(), log, *dryRun)
	stats, err := imp.Import(ctx, *exportPath, *login)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"workouts_read", stats.WorkoutsRead,
		"workouts_imported", stats.WorkoutsImported,
		"workouts_skipped", stats.WorkoutsSkipped,
		"exercises_read", stats.ExercisesRead,
		"sets_read", stats.SetsRead,
		"sets_zeroed", stats.SetsZeroed,
	)
}
