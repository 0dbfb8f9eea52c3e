package gameweek

import (
	"errors"
	"testing"
)

func TestResolveCurrent(t *testing.T) {
	t.Run("current wins", func(t *testing.T) {
		got, fromNext, err := ResolveCurrent([]Event{
			{ID: 4, Finished: true},
			{ID: 5, IsCurrent: true, Finished: true},
			{ID: 6, IsNext: true},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != 5 || fromNext || !got.Finished {
			t.Fatalf("unexpected resolution: %+v fromNext=%v", got, fromNext)
		}
	})

	t.Run("falls back to next", func(t *testing.T) {
		got, fromNext, err := ResolveCurrent([]Event{
			{ID: 1, IsNext: true, Finished: true},
			{ID: 2},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != 1 || !fromNext || got.Finished {
			t.Fatalf("unexpected resolution: %+v fromNext=%v", got, fromNext)
		}
	})

	t.Run("season boundary", func(t *testing.T) {
		_, _, err := ResolveCurrent([]Event{{ID: 38, Finished: true}})
		if !errors.Is(err, ErrNoActiveGameweek) {
			t.Fatalf("expected ErrNoActiveGameweek, got %v", err)
		}
	})
}
