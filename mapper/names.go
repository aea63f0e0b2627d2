package mapper

import (
	"fmt"
	"strings"
)

// PersonName is a full name split into its parts.
type PersonName struct {
	First *string
	Last  *string
}

// SplitStrategy selects how a single full-name field is broken up. The
// legacy sources were migrated with different rules, so the strategy is
// chosen per source and never inferred.
type SplitStrategy string

const (
	// SplitFirstSpace: first token is the first name, the trimmed remainder
	// the last name.
	SplitFirstSpace SplitStrategy = "first_space"
	// SplitLastSpace: everything before the last space is the first name,
	// the final token the last name.
	SplitLastSpace SplitStrategy = "last_space"
)

// ParseSplitStrategy validates a configured strategy name.
func ParseSplitStrategy(s string) (SplitStrategy, error) {
	switch SplitStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case SplitFirstSpace:
		return SplitFirstSpace, nil
	case SplitLastSpace:
		return SplitLastSpace, nil
	default:
		return "", fmt.Errorf("unknown name split strategy %q", s)
	}
}

// Split applies the strategy. A nil or blank name yields an empty PersonName.
func (s SplitStrategy) Split(full *string) PersonName {
	if full == nil {
		return PersonName{}
	}
	name := strings.TrimSpace(*full)
	if name == "" {
		return PersonName{}
	}

	var first, rest string
	switch s {
	case SplitLastSpace:
		i := strings.LastIndex(name, " ")
		if i < 0 {
			return PersonName{First: &name}
		}
		first, rest = name[:i], name[i+1:]
	default:
		i := strings.Index(name, " ")
		if i < 0 {
			return PersonName{First: &name}
		}
		first, rest = name[:i], strings.TrimSpace(name[i+1:])
	}

	out := PersonName{First: &first}
	if rest != "" {
		out.Last = &rest
	}
	return out
}

// FirstToken returns the text before the first space.
func FirstToken(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, " "); i >= 0 {
		return s[:i]
	}
	return s
}
