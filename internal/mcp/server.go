package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftarena/internal/catalog"
)

type contextKey int

const userLoginKey contextKey = iota

// UserLoginFromContext extracts the login injected by the transport
// layer, defaulting to the local dev identity.
func UserLoginFromContext(ctx context.Context) string {
	if login, ok := ctx.Value(userLoginKey).(string); ok && login != "" {
		return login
	}
	return "local"
}

// WithUserLogin returns a context carrying the given login.
func WithUserLogin(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, userLoginKey, login)
}

// New creates an MCP server with all tools and resources registered.
// The catalog provider supplies name resolution regardless of whether
// the data source is local or remote.
func New(ds DataSource, provider *catalog.Provider, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftArena", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftArena training data server. Resolve exercise names, query workouts, compute personal records and friendly Arena rankings. Dates accept ISO 8601 or YYYY-MM-DD."),
	)

	h := &handlers{ds: ds, catalog: provider, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolResolveExercise, Handler: h.resolveExercise},
		server.ServerTool{Tool: toolListCatalog, Handler: h.listCatalog},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetArenaRanking, Handler: h.getArenaRanking},
		server.ServerTool{Tool: toolGetVolumeSummary, Handler: h.getVolumeSummary},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalogResource},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resRecords, Handler: h.recordsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	catalog *catalog.Provider
	log     *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"liftarena://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All registered exercise definitions with localized names, categories, and metric types"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftarena://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days for the authenticated user"),
	mcp.WithMIMEType("application/json"),
)

var resRecords = mcp.NewResource(
	"liftarena://records",
	"Personal Records",
	mcp.WithResourceDescription("Per-exercise personal records computed from the authenticated user's full history"),
	mcp.WithMIMEType("application/json"),
)
