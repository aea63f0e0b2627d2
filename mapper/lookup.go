package mapper

import (
	"sort"
	"strings"
)

// LookupTable resolves a human-readable natural key to a surrogate value.
// It is built once per batch from the reference table. When several rows
// share a key the first one added wins; the order is whatever the database
// returned, so ties are deliberately left unresolved and only reported via
// Ambiguous.
type LookupTable[V any] struct {
	entries map[string]V
	dupes   map[string]int
}

// NewLookupTable returns an empty table.
func NewLookupTable[V any]() *LookupTable[V] {
	return &LookupTable[V]{
		entries: make(map[string]V),
		dupes:   make(map[string]int),
	}
}

// NormalizeKey folds case and surrounding whitespace, matching the
// case-insensitive collation of the legacy database.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add registers a key. Blank keys are ignored.
func (t *LookupTable[V]) Add(key string, v V) {
	k := NormalizeKey(key)
	if k == "" {
		return
	}
	if _, exists := t.entries[k]; exists {
		t.dupes[k]++
		return
	}
	t.entries[k] = v
}

// Lookup resolves key. A nil, blank or unknown key is a miss.
func (t *LookupTable[V]) Lookup(key *string) (V, bool) {
	var zero V
	if key == nil {
		return zero, false
	}
	v, ok := t.entries[NormalizeKey(*key)]
	if !ok {
		return zero, false
	}
	return v, true
}

// Contains reports whether key resolves.
func (t *LookupTable[V]) Contains(key string) bool {
	_, ok := t.Lookup(&key)
	return ok
}

// Len returns the number of distinct keys.
func (t *LookupTable[V]) Len() int {
	return len(t.entries)
}

// Ambiguous returns the keys that matched more than one row, sorted.
func (t *LookupTable[V]) Ambiguous() []string {
	out := make([]string, 0, len(t.dupes))
	for k := range t.dupes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Country is the part of a countries row the mapping rules need.
type Country struct {
	ID       int64
	Name     string
	DialCode *string
}

// Lookups bundles the natural-key tables used by the customer and lead rules.
type Lookups struct {
	// Countries by name, matched against legacy nationality strings.
	Countries *LookupTable[Country]
	// CountryByID resolves stored customers back to their nationality.
	CountryByID map[int64]Country
	// Admins by first name, matched against legacy sales-person strings.
	Admins *LookupTable[int64]
}

// NewLookups returns empty lookup tables.
func NewLookups() Lookups {
	return Lookups{
		Countries:   NewLookupTable[Country](),
		CountryByID: make(map[int64]Country),
		Admins:      NewLookupTable[int64](),
	}
}

// AddCountry registers a country under both its name and id.
func (l Lookups) AddCountry(c Country) {
	l.Countries.Add(c.Name, c)
	if _, ok := l.CountryByID[c.ID]; !ok {
		l.CountryByID[c.ID] = c
	}
}

// CountryName returns the name of the country with the given id.
func (l Lookups) CountryName(id *int64) *string {
	if id == nil {
		return nil
	}
	c, ok := l.CountryByID[*id]
	if !ok {
		return nil
	}
	name := c.Name
	return &name
}

// UnmatchedSalesPeople returns the distinct first tokens of sales-person
// values that match no admin first name, sorted.
func UnmatchedSalesPeople(values []*string, admins *LookupTable[int64]) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v == nil {
			continue
		}
		name := FirstToken(*v)
		if name == "" || admins.Contains(name) {
			continue
		}
		k := NormalizeKey(name)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
