package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/config"
	"github.com/claude/liftarena/internal/mcp"
	"github.com/claude/liftarena/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	serverURL := flag.String("server", "", "remote LiftArena server URL; when set, data is read over the REST API instead of the database")
	login := flag.String("user", "", "login the session is scoped to (defaults to 'local')")
	flag.Parse()

	// Logs go to stderr: stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx := context.Background()

	var ds mcp.DataSource
	var catalogSource string
	var fetchTimeout time.Duration = 10 * time.Second

	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = mcp.NewLocal(db)
		catalogSource = cfg.Catalog.SourceURL
		fetchTimeout = cfg.Catalog.FetchTimeout()
		log.Info("local mode", "database", cfg.Database.Host)
	}

	provider := catalog.NewProvider(catalogSource, fetchTimeout, log)
	loadCtx, cancelLoad := context.WithTimeout(ctx, fetchTimeout)
	if err := provider.Load(loadCtx); err != nil {
		log.Warn("catalog load failed, using fallback", "error", err)
	}
	cancelLoad()

	srv := mcp.New(ds, provider, Version, log)

	stdio := mcpserver.NewStdioServer(srv)
	stdio.SetContextFunc(func(ctx context.Context) context.Context {
		if *login != "" {
			return mcp.WithUserLogin(ctx, *login)
		}
		return ctx
	})

	log.Info("MCP server listening on stdio", "version", Version)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
