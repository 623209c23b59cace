package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/claude/liftarena/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// userFromQuery resolves the mandatory ?user= login parameter.
func (s *Server) userFromQuery(r *http.Request) (*storage.User, error) {
	login := r.URL.Query().Get("user")
	if login == "" {
		return nil, fmt.Errorf("user parameter required")
	}
	user, err := s.db.GetUserByLogin(r.Context(), login)
	if err != nil {
		return nil, fmt.Errorf("unknown user %q", login)
	}
	return user, nil
}

func displayName(display, login string) string {
	if display != "" {
		return display
	}
	return login
}

// parseTimeRange extracts start/end query parameters. Accepts RFC3339
// or plain dates; a date-only end is pushed to the end of that day.
// Defaults to the last 7 days.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	q := r.URL.Query()
	now := time.Now()

	if s := q.Get("start"); s != "" {
		start, err = parseFlexTime(s)
		if err != nil {
			return start, end, fmt.Errorf("invalid start time: %w", err)
		}
	} else {
		start = now.AddDate(0, 0, -7)
	}

	if e := q.Get("end"); e != "" {
		end, err = parseFlexTime(e)
		if err != nil {
			return start, end, fmt.Errorf("invalid end time: %w", err)
		}
		if len(e) == 10 {
			end = end.Add(24 * time.Hour)
		}
	} else {
		end = now
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
