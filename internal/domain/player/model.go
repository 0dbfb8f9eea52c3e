package player

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Player is one FPL element as published in the bootstrap dataset.
type Player struct {
	ID                int
	WebName           string
	FirstName         string
	SecondName        string
	TeamID            int
	ElementType       int
	NowCost           int64
	TotalPoints       int
	GoalsScored       int
	Assists           int
	Minutes           int
	CleanSheets       int
	Bonus             int
	Status            string
	News              string
	SelectedByPercent decimal.Decimal
	Form              decimal.Decimal
	PointsPerGame     decimal.Decimal
}

// FullName joins first and second name the way FPL displays it.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// DisplayName prefers the web name and falls back to the full name.
func (p Player) DisplayName() string {
	if name := strings.TrimSpace(p.WebName); name != "" {
		return name
	}
	return p.FullName()
}

// Price converts NowCost (tenths of a million) into millions.
func (p Player) Price() decimal.Decimal {
	return decimal.New(p.NowCost, -1)
}

// MatchesQuery reports whether an already normalized query is a substring of any
// searchable name form.
func (p Player) MatchesQuery(normalized string) bool {
	candidates := [...]string{
		p.WebName,
		p.FirstName + " " + p.SecondName,
		p.FirstName,
		p.SecondName,
	}
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), normalized) {
			return true
		}
	}
	return false
}

// ParseDecimal parses the string-encoded decimals FPL uses for form and ownership.
// Empty or malformed values yield zero.
func ParseDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}
