package catalog

import (
	"sort"
	"strings"

	"github.com/claude/liftarena/internal/models"
)

// Definition is one canonical exercise. ID is immutable; Names maps a
// locale code to the display name in that locale.
type Definition struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	Category   string            `json:"category"`
	Metric     models.MetricType `json:"metric_type"`
	Bodyweight bool              `json:"bodyweight,omitempty"`
}

// Catalog is an ordered, read-only collection of definitions. It is built
// once and never mutated; a refresh constructs a new Catalog and swaps it
// wholesale so readers never observe a partial update.
type Catalog struct {
	defs  []Definition
	byID  map[string]int
	names [][]string // normalized names per definition, locale-sorted
}

// New builds a Catalog from definitions, preserving their order. Name
// normalization happens once here, not per lookup.
func New(defs []Definition) *Catalog {
	c := &Catalog{
		defs:  defs,
		byID:  make(map[string]int, len(defs)),
		names: make([][]string, len(defs)),
	}
	for i, d := range defs {
		if _, exists := c.byID[d.ID]; !exists {
			c.byID[d.ID] = i
		}

		locales := make([]string, 0, len(d.Names))
		for loc := range d.Names {
			locales = append(locales, loc)
		}
		sort.Strings(locales)

		norm := make([]string, 0, len(d.Names))
		for _, loc := range locales {
			norm = append(norm, Normalize(d.Names[loc]))
		}
		c.names[i] = norm
	}
	return c
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }

// Definitions returns the ordered definitions. Callers must not mutate.
func (c *Catalog) Definitions() []Definition { return c.defs }

// Lookup finds a definition by canonical id.
func (c *Catalog) Lookup(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Metric returns the metric type for an id. Ad-hoc ids (not in the
// catalog) default to strength — the common case for typed-in exercises.
func (c *Catalog) Metric(id string) models.MetricType {
	if d, ok := c.Lookup(id); ok {
		return d.Metric
	}
	return models.MetricStrength
}

// BodyweightStyle reports whether the exercise's category is inherently
// bodyweight (pull-ups, dips, push-ups). Ad-hoc ids are not.
func (c *Catalog) BodyweightStyle(id string) bool {
	d, ok := c.Lookup(id)
	return ok && d.Bodyweight
}

// capitalize title-cases each word of an ad-hoc exercise id for display.
func capitalize(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
