package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/liftarena/internal/arena"
	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/narrative"
	"github.com/claude/liftarena/internal/records"
)

// ingestPayload is the structured output of the voice/LLM extractor.
// Set fields decode tolerantly — a malformed number becomes zero, it
// never rejects the whole workout.
type ingestPayload struct {
	ID           string                 `json:"id,omitempty"`
	Login        string                 `json:"login"`
	DisplayName  string                 `json:"display_name,omitempty"`
	Date         string                 `json:"date"`
	BodyWeightKg *float64               `json:"body_weight_kg,omitempty"`
	Exercises    []models.ExerciseEntry `json:"exercises"`
}

// ingestResult reports what was stored and how each name resolved.
type ingestResult struct {
	WorkoutID uuid.UUID         `json:"workout_id"`
	Exercises int               `json:"exercises"`
	Sets      int               `json:"sets"`
	Resolved  map[string]string `json:"resolved"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload ingestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if payload.Login == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "login is required"})
		return
	}

	day, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	userID, err := s.db.GetOrCreateUser(r.Context(), payload.Login, payload.DisplayName)
	if err != nil {
		s.log.Error("ingest: user lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	id := uuid.New()
	if payload.ID != "" {
		parsed, err := uuid.Parse(payload.ID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout id"})
			return
		}
		id = parsed
	}

	workout := models.Workout{
		ID:           id,
		UserID:       userID,
		Day:          day,
		BodyWeightKg: payload.BodyWeightKg,
		Exercises:    payload.Exercises,
	}

	cat := s.catalog.Catalog()
	if err := s.db.InsertWorkout(r.Context(), workout, cat); err != nil {
		s.log.Error("ingest: insert", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	result := ingestResult{
		WorkoutID: id,
		Exercises: len(workout.Exercises),
		Resolved:  make(map[string]string, len(workout.Exercises)),
	}
	for _, e := range workout.Exercises {
		result.Sets += len(e.Sets)
		result.Resolved[e.Name] = cat.ResolveID(e.Name)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	user, err := s.userFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.db.DeleteWorkout(r.Context(), id, user.ID); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

func (s *Server) handleSetWeight(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	var body struct {
		BodyWeightKg float64 `json:"body_weight_kg"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.BodyWeightKg <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body_weight_kg must be positive"})
		return
	}

	user, err := s.db.GetUserByLogin(r.Context(), login)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err := s.db.SetProfileWeight(r.Context(), user.ID, body.BodyWeightKg); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"login": login, "body_weight_kg": body.BodyWeightKg})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserByLogin(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// recordEntry enriches a personal record with its display name.
type recordEntry struct {
	records.PersonalRecord
	Name string `json:"name"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = "en"
	}

	history, err := s.db.GetUserHistory(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	cat := s.catalog.Catalog()
	recs := records.Compute(history, cat)

	entries := make([]recordEntry, 0, len(recs))
	for _, pr := range recs {
		entries = append(entries, recordEntry{
			PersonalRecord: pr,
			Name:           cat.LocalizedName(pr.ExerciseID, locale),
		})
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].ExerciseID < entries[b].ExerciseID })

	writeJSON(w, http.StatusOK, entries)
}

// arenaRequest names the competitors. Narrate attaches AI commentary
// when a narrative API is configured.
type arenaRequest struct {
	Participants []string `json:"participants"`
	Narrate      bool     `json:"narrate,omitempty"`
}

type arenaResponse struct {
	*arena.MatchResult
	Narrative *narrative.Result `json:"narrative,omitempty"`
}

func (s *Server) handleArena(w http.ResponseWriter, r *http.Request) {
	var req arenaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Participants) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participants are required"})
		return
	}

	participants := make([]arena.Participant, 0, len(req.Participants))
	for _, login := range req.Participants {
		user, err := s.db.GetUserByLogin(r.Context(), login)
		if err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown participant: " + login})
			return
		}
		history, err := s.db.GetUserHistory(r.Context(), user.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		p := arena.Participant{Name: displayName(user.DisplayName, login), Workouts: history}
		if user.BodyWeightKg != nil {
			p.ProfileWeightKg = *user.BodyWeightKg
		}
		participants = append(participants, p)
	}

	result := arena.Rank(participants, s.catalog.Catalog())
	resp := arenaResponse{MatchResult: result}

	if req.Narrate {
		narration, err := s.narrator.Narrate(r.Context(), result.Summarize())
		if err != nil {
			// Rankings stand on their own; a narrator outage only
			// drops the commentary.
			s.log.Warn("arena narration failed", "error", err)
		} else {
			resp.Narrative = narration
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":       s.catalog.State().String(),
		"definitions": cat.Definitions(),
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = "en"
	}

	cat := s.catalog.Catalog()
	id := cat.ResolveID(name)
	_, registered := cat.Lookup(id)

	writeJSON(w, http.StatusOK, map[string]any{
		"input":       name,
		"exercise_id": id,
		"name":        cat.LocalizedName(id, locale),
		"registered":  registered,
	})
}

func (s *Server) handleCatalogRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Load(r.Context()); err != nil {
		s.log.Warn("catalog refresh failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":       s.catalog.State().String(),
		"definitions": s.catalog.Catalog().Len(),
	})
}

func (s *Server) handleVolumeSummary(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		bucket = "1 month"
	}

	summary, err := s.db.GetVolumeSummary(r.Context(), start, end, bucket, user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user, err := s.userFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	stats, err := s.db.GetDataStats(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
