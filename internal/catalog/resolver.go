package catalog

import "strings"

// ResolveID maps free-text input (typed or voice-transcribed) to a
// canonical exercise id. Tiers, on normalized strings, in strict order:
//
//  1. exact: a definition name equals the input
//  2. prefix: a definition name starts with the input
//  3. substring: a definition name contains the input
//  4. fallback: the trimmed input itself, an ad-hoc identity
//
// Only the first matching tier is evaluated; ties within a tier go to
// catalog order. Deliberately not a relevance-ranked search — truncated
// voice input like "press banca" should land on "Press Banca (Barra)"
// without an edit-distance pass. Never fails: an unknown exercise keeps
// its own name as identity so logging is never blocked.
func (c *Catalog) ResolveID(name string) string {
	q := Normalize(name)
	if q == "" || c.Len() == 0 {
		return strings.TrimSpace(name)
	}

	for i := range c.defs {
		for _, n := range c.names[i] {
			if n == q {
				return c.defs[i].ID
			}
		}
	}
	for i := range c.defs {
		for _, n := range c.names[i] {
			if strings.HasPrefix(n, q) {
				return c.defs[i].ID
			}
		}
	}
	for i := range c.defs {
		for _, n := range c.names[i] {
			if strings.Contains(n, q) {
				return c.defs[i].ID
			}
		}
	}
	return strings.TrimSpace(name)
}

// LocalizedName is the reverse lookup: the display name for an id in the
// given locale, falling back to English, then any name, then a
// capitalized form of the id itself for ad-hoc exercises.
func (c *Catalog) LocalizedName(id, locale string) string {
	d, ok := c.Lookup(id)
	if !ok {
		return capitalize(id)
	}
	if n, ok := d.Names[locale]; ok && n != "" {
		return n
	}
	if n, ok := d.Names["en"]; ok && n != "" {
		return n
	}
	i := c.byID[id]
	for _, n := range c.names[i] {
		if n != "" {
			return capitalize(n)
		}
	}
	return capitalize(id)
}
