// Package arena ranks multiple users' training histories against each
// other: total-volume standings, per-exercise head-to-head comparisons,
// and an overall winner or draw.
package arena

import (
	"sort"

	"github.com/claude/liftarena/internal/catalog"
	"github.com/claude/liftarena/internal/metrics"
	"github.com/claude/liftarena/internal/models"
	"github.com/claude/liftarena/internal/records"
)

// Winner value for a fully tied match. A distinct terminal state, not a
// user name — the UI renders it without a podium.
const Draw = "DRAW"

// scoreEpsilon is the negligible difference under which two overall
// scores count as equal.
const scoreEpsilon = 1e-9

// headToHeadEpsilon is the gap under which a per-exercise comparison is
// a tie rather than a win.
const headToHeadEpsilon = 0.1

// Participant is one competitor: a display name and their full history.
// ProfileWeightKg backs bodyweight-volume math for workouts that carry
// no historical body weight.
type Participant struct {
	Name            string
	ProfileWeightKg float64
	Workouts        []models.Workout
}

// UserRanking is one row of the overall standings.
type UserRanking struct {
	Name          string  `json:"name"`
	TotalVolumeKg float64 `json:"total_volume_kg"`
	Score         float64 `json:"score"`
	Rank          int     `json:"rank"`
}

// Standing is one participant's entry in a head-to-head comparison.
type Standing struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Display    string  `json:"display_unit"`
	Bodyweight bool    `json:"is_bodyweight,omitempty"`
}

// Comparison is the head-to-head result for one exercise common to all
// participants. Tie means the top two values differ by less than 0.1;
// both are listed and Winner is empty.
type Comparison struct {
	ExerciseID string     `json:"exercise_id"`
	Name       string     `json:"name"`
	Standings  []Standing `json:"standings"`
	Winner     string     `json:"winner,omitempty"`
	Tie        bool       `json:"tie,omitempty"`
}

// MatchResult is the full outcome of an arena match.
type MatchResult struct {
	Rankings   []UserRanking `json:"rankings"`
	HeadToHead []Comparison  `json:"head_to_head"`
	Winner     string        `json:"winner"`
}

// Rank computes the overall standings, head-to-head comparisons, and
// winner for the given participants. Degenerate input never divides by
// zero: with maxVolume == 0 every score is 0.
func Rank(participants []Participant, cat *catalog.Catalog) *MatchResult {
	result := &MatchResult{}
	if len(participants) == 0 {
		return result
	}

	// Per-user totals and best-lift maps.
	recordMaps := make([]map[string]records.PersonalRecord, len(participants))
	volumes := make([]float64, len(participants))
	for i, p := range participants {
		volumes[i] = totalVolume(p, cat)
		recordMaps[i] = records.Compute(p.Workouts, cat)
	}

	// Overall standings: descending volume, name breaks exact ties so
	// repeated calls agree.
	order := make([]int, len(participants))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if volumes[order[a]] != volumes[order[b]] {
			return volumes[order[a]] > volumes[order[b]]
		}
		return participants[order[a]].Name < participants[order[b]].Name
	})

	maxVolume := volumes[order[0]]
	for rank, idx := range order {
		score := 0.0
		if maxVolume > 0 {
			score = 100 * volumes[idx] / maxVolume
		}
		result.Rankings = append(result.Rankings, UserRanking{
			Name:          participants[idx].Name,
			TotalVolumeKg: volumes[idx],
			Score:         score,
			Rank:          rank + 1,
		})
	}

	result.HeadToHead = headToHead(participants, recordMaps, cat)

	result.Winner = result.Rankings[0].Name
	if len(result.Rankings) > 1 {
		gap := result.Rankings[0].Score - result.Rankings[1].Score
		if gap < scoreEpsilon && len(result.HeadToHead) == 0 {
			result.Winner = Draw
		}
	}
	return result
}

// totalVolume sums SetVolume over a participant's entire history, using
// the body weight recorded on each workout (profile weight as fallback).
func totalVolume(p Participant, cat *catalog.Catalog) float64 {
	var total float64
	for _, w := range p.Workouts {
		bw := w.BodyWeightOr(p.ProfileWeightKg)
		for _, entry := range w.Exercises {
			id := cat.ResolveID(entry.Name)
			style := cat.BodyweightStyle(id)
			for _, set := range entry.Sets {
				total += metrics.SetVolume(set, bw, style)
			}
		}
	}
	return total
}

// headToHead compares every exercise present in all participants' record
// maps — strict intersection, because absence of data must not read as
// weakness.
func headToHead(participants []Participant, recordMaps []map[string]records.PersonalRecord, cat *catalog.Catalog) []Comparison {
	if len(recordMaps) == 0 {
		return nil
	}

	common := make([]string, 0, len(recordMaps[0]))
	for id := range recordMaps[0] {
		shared := true
		for _, m := range recordMaps[1:] {
			if _, ok := m[id]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, id)
		}
	}
	sort.Strings(common)

	var comparisons []Comparison
	for _, id := range common {
		cmp := Comparison{
			ExerciseID: id,
			Name:       cat.LocalizedName(id, "en"),
		}
		for i, p := range participants {
			pr := recordMaps[i][id]
			cmp.Standings = append(cmp.Standings, Standing{
				Name:       p.Name,
				Value:      recordScore(pr),
				Display:    pr.DisplayUnit,
				Bodyweight: pr.Bodyweight,
			})
		}
		sort.SliceStable(cmp.Standings, func(a, b int) bool {
			if cmp.Standings[a].Value != cmp.Standings[b].Value {
				return cmp.Standings[a].Value > cmp.Standings[b].Value
			}
			return cmp.Standings[a].Name < cmp.Standings[b].Name
		})

		if len(cmp.Standings) > 1 && cmp.Standings[0].Value-cmp.Standings[1].Value < headToHeadEpsilon {
			cmp.Tie = true
		} else {
			cmp.Winner = cmp.Standings[0].Name
		}
		comparisons = append(comparisons, cmp)
	}
	return comparisons
}

// recordScore is the comparison scalar of a record: estimated 1RM for
// loaded lifts, reps for bodyweight lifts, distance for cardio.
func recordScore(pr records.PersonalRecord) float64 {
	if pr.DisplayUnit == "kg" && pr.OneRepMax > 0 {
		return pr.OneRepMax
	}
	return pr.Value
}
