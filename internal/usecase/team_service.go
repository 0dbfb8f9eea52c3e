package usecase

import (
	"context"
	"fmt"
	"strings"
)

type TeamService struct {
	cache *BootstrapCache
}

func NewTeamService(cache *BootstrapCache) *TeamService {
	return &TeamService{cache: cache}
}

func (s *TeamService) SearchTeams(ctx context.Context, query string) (TeamSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SearchTeams")
	defer span.End()

	query = strings.TrimSpace(query)
	teams, err := s.cache.SearchTeams(ctx, query)
	if err != nil {
		return TeamSearchResult{}, err
	}

	out := TeamSearchResult{Query: query, Count: len(teams), Teams: teams}
	if len(teams) == 0 {
		out.Message = fmt.Sprintf("No teams found matching %q", query)
	}
	return out, nil
}

// GetTeamInfo returns the team with every player currently registered to it.
func (s *TeamService) GetTeamInfo(ctx context.Context, teamID int) (TeamInfo, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamInfo")
	defer span.End()

	snapshot, err := s.cache.Snapshot(ctx)
	if err != nil {
		return TeamInfo{}, err
	}

	t, ok := snapshot.Team(teamID)
	if !ok {
		return TeamInfo{}, NewErrorf(CodeTeamNotFound, "team with id %d not found", teamID).
			WithDetails(map[string]any{"teamId": teamID})
	}

	out := TeamInfo{
		ID:             t.ID,
		Name:           t.Name,
		ShortName:      t.ShortName,
		Strength:       t.Strength,
		PositionCounts: make(map[string]int, len(snapshot.PositionTypes)),
		Squad:          make([]SquadPlayer, 0, 32),
	}
	for _, p := range snapshot.Players {
		if p.TeamID != teamID {
			continue
		}
		positionName := snapshot.PositionName(p.ElementType)
		out.PositionCounts[positionName]++
		out.SquadPoints += p.TotalPoints
		out.Squad = append(out.Squad, SquadPlayer{
			ID:          p.ID,
			Name:        p.DisplayName(),
			Position:    positionName,
			Price:       toFloat(p.Price()),
			TotalPoints: p.TotalPoints,
			Form:        toFloat(p.Form),
			Status:      p.Status,
		})
	}
	out.SquadSize = len(out.Squad)

	return out, nil
}
