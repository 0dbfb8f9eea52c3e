package usecase

import (
	"context"
	"fmt"
	"strings"
)

type PlayerService struct {
	cache *BootstrapCache
}

func NewPlayerService(cache *BootstrapCache) *PlayerService {
	return &PlayerService{cache: cache}
}

func (s *PlayerService) SearchPlayers(ctx context.Context, query string) (PlayerSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.SearchPlayers")
	defer span.End()

	query = strings.TrimSpace(query)
	players, err := s.cache.SearchPlayers(ctx, query)
	if err != nil {
		return PlayerSearchResult{}, err
	}

	out := PlayerSearchResult{Query: query, Count: len(players), Players: players}
	if len(players) == 0 {
		out.Message = fmt.Sprintf("No players found matching %q", query)
	}
	return out, nil
}

func (s *PlayerService) GetPlayerStats(ctx context.Context, playerID int) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerStats")
	defer span.End()

	snapshot, err := s.cache.Snapshot(ctx)
	if err != nil {
		return PlayerStats{}, err
	}

	p, ok := snapshot.Player(playerID)
	if !ok {
		return PlayerStats{}, NewErrorf(CodePlayerNotFound, "player with id %d not found", playerID).
			WithDetails(map[string]any{"playerId": playerID})
	}
	return newPlayerStats(snapshot, p), nil
}

// ComparePlayers resolves every id it can. Unknown ids are reported in
// InvalidPlayerIDs; the call fails only when none resolve.
func (s *PlayerService) ComparePlayers(ctx context.Context, playerIDs []int) (PlayerComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ComparePlayers")
	defer span.End()

	snapshot, err := s.cache.Snapshot(ctx)
	if err != nil {
		return PlayerComparison{}, err
	}

	out := PlayerComparison{
		ValidPlayers:     make([]PlayerStats, 0, len(playerIDs)),
		InvalidPlayerIDs: make([]int, 0),
	}
	for _, id := range playerIDs {
		p, ok := snapshot.Player(id)
		if !ok {
			out.InvalidPlayerIDs = append(out.InvalidPlayerIDs, id)
			continue
		}
		out.ValidPlayers = append(out.ValidPlayers, newPlayerStats(snapshot, p))
	}

	if len(out.ValidPlayers) == 0 {
		return PlayerComparison{}, NewError(CodePlayerNotFound, "none of the requested players were found").
			WithDetails(map[string]any{"invalidPlayerIds": out.InvalidPlayerIDs})
	}

	out.Leaders = comparisonLeaders(out.ValidPlayers)
	return out, nil
}

func comparisonLeaders(players []PlayerStats) ComparisonLeaders {
	best := players[0]
	leaders := ComparisonLeaders{
		TotalPoints: best.ID,
		Form:        best.ID,
		GoalsScored: best.ID,
		Assists:     best.ID,
		LowestPrice: best.ID,
	}
	top := struct {
		points, goals, assists int
		form, price            float64
	}{best.TotalPoints, best.GoalsScored, best.Assists, best.Form, best.Price}

	for _, p := range players[1:] {
		if p.TotalPoints > top.points {
			top.points, leaders.TotalPoints = p.TotalPoints, p.ID
		}
		if p.Form > top.form {
			top.form, leaders.Form = p.Form, p.ID
		}
		if p.GoalsScored > top.goals {
			top.goals, leaders.GoalsScored = p.GoalsScored, p.ID
		}
		if p.Assists > top.assists {
			top.assists, leaders.Assists = p.Assists, p.ID
		}
		if p.Price < top.price {
			top.price, leaders.LowestPrice = p.Price, p.ID
		}
	}
	return leaders
}
