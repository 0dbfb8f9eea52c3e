package manager

import (
	"errors"
	"strings"
)

const (
	StartingSlots = 11
	SquadSlots    = 15
)

var (
	ErrManagerNotFound = errors.New("manager not found")
	ErrPicksNotFound   = errors.New("picks not found")
)

// Summary is the public profile of an FPL entry.
type Summary struct {
	ID                   int
	Name                 string
	PlayerFirstName      string
	PlayerLastName       string
	CurrentEvent         *int
	SummaryOverallPoints int
	SummaryOverallRank   *int
	SummaryEventPoints   int
}

func (s Summary) PlayerName() string {
	return strings.TrimSpace(s.PlayerFirstName + " " + s.PlayerLastName)
}

// Pick is one squad slot for a gameweek.
type Pick struct {
	Element       int
	Position      int
	Multiplier    int
	IsCaptain     bool
	IsViceCaptain bool
}

// IsStarter reports whether the pick occupies one of the first eleven slots.
func (p Pick) IsStarter() bool {
	return p.Position >= 1 && p.Position <= StartingSlots
}

// IsBench reports whether the pick occupies a substitute slot.
func (p Pick) IsBench() bool {
	return p.Position > StartingSlots && p.Position <= SquadSlots
}

// History is the entry's per-gameweek summary attached to picks.
type History struct {
	Event              int
	Points             int
	TotalPoints        int
	Bank               int64
	Value              int64
	PointsOnBench      int
	EventTransfers     int
	EventTransfersCost int
}

// Picks is a manager's squad for one gameweek.
type Picks struct {
	ActiveChip   string
	EntryHistory History
	Picks        []Pick
}
