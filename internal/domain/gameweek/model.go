package gameweek

import (
	"errors"
	"time"
)

const (
	First = 1
	Last  = 38
)

var ErrNoActiveGameweek = errors.New("neither a current nor a next gameweek is flagged")

// Event is one gameweek of the season.
type Event struct {
	ID           int
	Name         string
	DeadlineTime *time.Time
	Finished     bool
	IsCurrent    bool
	IsNext       bool
	AverageScore int
	HighestScore int
}

// ResolveCurrent returns the event flagged current. Before the first deadline of a
// gameweek there is no current event, so the next one is reported instead with
// Finished forced to false. fromNext tells the caller which branch was taken.
func ResolveCurrent(events []Event) (event Event, fromNext bool, err error) {
	for _, e := range events {
		if e.IsCurrent {
			return e, false, nil
		}
	}
	for _, e := range events {
		if e.IsNext {
			e.Finished = false
			return e, true, nil
		}
	}
	return Event{}, false, ErrNoActiveGameweek
}
