package team

import "strings"

// Team is a Premier League club as listed in the bootstrap dataset.
type Team struct {
	ID        int
	Name      string
	ShortName string
	Code      int
	Strength  int
}

// MatchesQuery reports whether a normalized query is a substring of the full
// name or the short name.
func (t Team) MatchesQuery(normalized string) bool {
	return strings.Contains(strings.ToLower(t.Name), normalized) ||
		strings.Contains(strings.ToLower(t.ShortName), normalized)
}
