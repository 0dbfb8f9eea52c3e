package fixture

import (
	"sort"
	"time"
)

// Fixture represents one Premier League match.
type Fixture struct {
	ID              int
	Event           *int
	KickoffTime     *time.Time
	TeamH           int
	TeamA           int
	TeamHScore      *int
	TeamAScore      *int
	Finished        bool
	Started         bool
	TeamHDifficulty int
	TeamADifficulty int
}

// InGameweek reports whether the fixture is scheduled in gameweek gw.
func (f Fixture) InGameweek(gw int) bool {
	return f.Event != nil && *f.Event == gw
}

// SortByKickoff orders fixtures by kickoff ascending; fixtures without a kickoff
// time (TBD) go last, ties broken by fixture id.
func SortByKickoff(items []Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		left, right := items[i].KickoffTime, items[j].KickoffTime
		switch {
		case left == nil && right == nil:
			return items[i].ID < items[j].ID
		case left == nil:
			return false
		case right == nil:
			return true
		case !left.Equal(*right):
			return left.Before(*right)
		default:
			return items[i].ID < items[j].ID
		}
	})
}
