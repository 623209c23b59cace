package arena

// Summary is the pre-aggregated, JSON-serializable shape handed to the
// text-generation collaborator. Plain numbers and names only — never raw
// workouts — so the narrator sees exactly what the UI sees.
type Summary struct {
	Rankings   []UserRanking         `json:"rankings"`
	BestLifts  map[string][]Standing `json:"best_lifts"`
	HeadToHead []HeadToHeadLine      `json:"head_to_head"`
	Winner     string                `json:"winner"`
}

// HeadToHeadLine is one exercise's outcome in narration-ready form.
type HeadToHeadLine struct {
	Exercise string `json:"exercise"`
	Winner   string `json:"winner,omitempty"`
	Tie      bool   `json:"tie,omitempty"`
}

// Summarize flattens a match result into the narrative input.
func (r *MatchResult) Summarize() *Summary {
	s := &Summary{
		Rankings:  r.Rankings,
		BestLifts: make(map[string][]Standing, len(r.HeadToHead)),
		Winner:    r.Winner,
	}
	for _, cmp := range r.HeadToHead {
		s.BestLifts[cmp.Name] = cmp.Standings
		s.HeadToHead = append(s.HeadToHead, HeadToHeadLine{
			Exercise: cmp.Name,
			Winner:   cmp.Winner,
			Tie:      cmp.Tie,
		})
	}
	return s
}
