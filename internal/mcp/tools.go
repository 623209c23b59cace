package mcp

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftarena/internal/arena"
	"github.com/claude/liftarena/internal/records"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// --- Tool definitions ---

var toolResolveExercise = mcp.NewTool("resolve_exercise",
	mcp.WithDescription("Resolve a free-form exercise name (any supported language, any casing or accents) to its canonical exercise ID and localized display name."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name as spoken or typed (e.g. 'Press Banca', 'bench')")),
	mcp.WithString("locale", mcp.Description("Locale for the display name (e.g. 'en', 'es'). Defaults to 'en'.")),
)

var toolListCatalog = mcp.NewTool("list_catalog",
	mcp.WithDescription("List all registered exercise definitions with their IDs, localized names, categories, and metric types."),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query a user's workouts in a time range. Each workout includes its exercises and per-set reps, weights, distances, and durations."),
	mcp.WithString("user", mcp.Description("User login. Defaults to the authenticated user.")),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("Compute per-exercise personal records from a user's full history. Loaded records carry an estimated one-rep max, bodyweight records a rep count, cardio records a distance."),
	mcp.WithString("user", mcp.Description("User login. Defaults to the authenticated user.")),
	mcp.WithString("locale", mcp.Description("Locale for exercise names. Defaults to 'en'.")),
)

var toolGetArenaRanking = mcp.NewTool("get_arena_ranking",
	mcp.WithDescription("Rank two or more users by total training volume, with per-exercise head-to-head comparisons on shared exercises. Scores are normalized to the leader's volume."),
	mcp.WithString("participants", mcp.Required(), mcp.Description("Comma-separated user logins (e.g. 'ana,bruno')")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Overall data statistics for a user: workout count, set count, distinct exercises, and the date range covered."),
	mcp.WithString("user", mcp.Description("User login. Defaults to the authenticated user.")),
)

var toolGetVolumeSummary = mcp.NewTool("get_volume_summary",
	mcp.WithDescription("Aggregated training volume per period: workout count, working sets, total reps, tonnage, and cardio distance."),
	mcp.WithString("user", mcp.Description("User login. Defaults to the authenticated user.")),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 week", "1 month")),
)

// --- Tool handlers ---

func (h *handlers) resolveExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	locale := req.GetString("locale", "en")

	cat := h.catalog.Catalog()
	id := cat.ResolveID(name)
	_, registered := cat.Lookup(id)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"input":       name,
		"exercise_id": id,
		"name":        cat.LocalizedName(id, locale),
		"registered":  registered,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cat := h.catalog.Catalog()
	result, err := mcp.NewToolResultJSON(map[string]any{
		"state":       h.catalog.State().String(),
		"definitions": cat.Definitions(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := req.GetString("user", UserLoginFromContext(ctx))

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.Workouts(ctx, login, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// recordEntry is a personal record enriched with its display name.
type recordEntry struct {
	records.PersonalRecord
	Name string `json:"name"`
}

func (h *handlers) computeRecords(ctx context.Context, login, locale string) ([]recordEntry, error) {
	history, err := h.ds.History(ctx, login)
	if err != nil {
		return nil, err
	}

	cat := h.catalog.Catalog()
	recs := records.Compute(history, cat)

	entries := make([]recordEntry, 0, len(recs))
	for _, pr := range recs {
		entries = append(entries, recordEntry{
			PersonalRecord: pr,
			Name:           cat.LocalizedName(pr.ExerciseID, locale),
		})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].ExerciseID < entries[b].ExerciseID })
	return entries, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := req.GetString("user", UserLoginFromContext(ctx))
	locale := req.GetString("locale", "en")

	entries, err := h.computeRecords(ctx, login, locale)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getArenaRanking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("participants")
	if err != nil {
		return mcp.NewToolResultError("participants parameter is required"), nil
	}

	var logins []string
	for _, l := range strings.Split(raw, ",") {
		if l = strings.TrimSpace(l); l != "" {
			logins = append(logins, l)
		}
	}
	if len(logins) == 0 {
		return mcp.NewToolResultError("participants must name at least one login"), nil
	}

	participants := make([]arena.Participant, 0, len(logins))
	for _, login := range logins {
		history, err := h.ds.History(ctx, login)
		if err != nil {
			h.log.Error("mcp get_arena_ranking", "login", login, "error", err)
			return mcp.NewToolResultError("query failed for " + login + ": " + err.Error()), nil
		}
		weight, err := h.ds.ProfileWeight(ctx, login)
		if err != nil {
			return mcp.NewToolResultError("query failed for " + login + ": " + err.Error()), nil
		}
		participants = append(participants, arena.Participant{
			Name:            login,
			ProfileWeightKg: weight,
			Workouts:        history,
		})
	}

	match := arena.Rank(participants, h.catalog.Catalog())

	result, err := mcp.NewToolResultJSON(match.Summarize())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := req.GetString("user", UserLoginFromContext(ctx))

	stats, err := h.ds.Stats(ctx, login)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	login := req.GetString("user", UserLoginFromContext(ctx))

	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	bucket := req.GetString("bucket", "1 month")

	periods, err := h.ds.VolumeSummary(ctx, login, start, end, bucket)
	if err != nil {
		h.log.Error("mcp get_volume_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(periods)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
