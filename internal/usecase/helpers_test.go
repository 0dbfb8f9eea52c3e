package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
	bootstrapmock "github.com/riskibarqy/fpl-mcp/internal/mocks/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/platform/cache"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func testPositionTypes() []position.Type {
	return []position.Type{
		{ID: position.Goalkeeper, SingularName: "Goalkeeper", SingularNameShort: "GKP", PluralName: "Goalkeepers"},
		{ID: position.Defender, SingularName: "Defender", SingularNameShort: "DEF", PluralName: "Defenders"},
		{ID: position.Midfielder, SingularName: "Midfielder", SingularNameShort: "MID", PluralName: "Midfielders"},
		{ID: position.Forward, SingularName: "Forward", SingularNameShort: "FWD", PluralName: "Forwards"},
	}
}

func testTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", Code: 3, Strength: 5},
		{ID: 12, Name: "Liverpool", ShortName: "LIV", Code: 14, Strength: 5},
		{ID: 13, Name: "Man City", ShortName: "MCI", Code: 43, Strength: 5},
		{ID: 14, Name: "Man Utd", ShortName: "MUN", Code: 1, Strength: 4},
	}
}

func testPlayers() []player.Player {
	return []player.Player{
		{ID: 1, WebName: "Raya", FirstName: "David", SecondName: "Raya Martin", TeamID: 1, ElementType: position.Goalkeeper, NowCost: 55, TotalPoints: 120, CleanSheets: 14, Status: "a", Form: decimal.RequireFromString("4.5")},
		{ID: 2, WebName: "Saka", FirstName: "Bukayo", SecondName: "Saka", TeamID: 1, ElementType: position.Midfielder, NowCost: 101, TotalPoints: 180, GoalsScored: 14, Assists: 11, Status: "a", Form: decimal.RequireFromString("6.2"), SelectedByPercent: decimal.RequireFromString("45.1")},
		{ID: 3, WebName: "Salah", FirstName: "Mohamed", SecondName: "Salah", TeamID: 12, ElementType: position.Midfielder, NowCost: 130, TotalPoints: 250, GoalsScored: 22, Assists: 13, Status: "a", Form: decimal.RequireFromString("8.0")},
		{ID: 4, WebName: "Haaland", FirstName: "Erling", SecondName: "Haaland", TeamID: 13, ElementType: position.Forward, NowCost: 145, TotalPoints: 230, GoalsScored: 27, Assists: 5, Status: "a", Form: decimal.RequireFromString("7.1")},
		{ID: 5, WebName: "Gabriel", FirstName: "Gabriel", SecondName: "dos Santos Magalhães", TeamID: 1, ElementType: position.Defender, NowCost: 60, TotalPoints: 140, GoalsScored: 4, Status: "d", News: "Hamstring"},
		{ID: 6, WebName: "Ghost", FirstName: "No", SecondName: "Club", TeamID: 99, ElementType: 9, NowCost: 40},
	}
}

func testEvents() []gameweek.Event {
	deadline := time.Date(2025, 9, 19, 17, 30, 0, 0, time.UTC)
	return []gameweek.Event{
		{ID: 4, Name: "Gameweek 4", Finished: true},
		{ID: 5, Name: "Gameweek 5", DeadlineTime: &deadline, IsCurrent: true, AverageScore: 51, HighestScore: 118},
		{ID: 6, Name: "Gameweek 6", IsNext: true},
	}
}

func testSnapshot() *bootstrap.Snapshot {
	return bootstrap.NewSnapshot(testPlayers(), testTeams(), testPositionTypes(), testEvents())
}

// manyPlayersSnapshot holds count players whose web names all contain "son".
func manyPlayersSnapshot(count int) *bootstrap.Snapshot {
	players := make([]player.Player, 0, count)
	for i := 1; i <= count; i++ {
		players = append(players, player.Player{
			ID:          i,
			WebName:     fmt.Sprintf("Johnson%d", i),
			FirstName:   "Player",
			SecondName:  fmt.Sprintf("Johnson%d", i),
			TeamID:      1,
			ElementType: position.Defender,
			NowCost:     45,
		})
	}
	return bootstrap.NewSnapshot(players, testTeams(), testPositionTypes(), testEvents())
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestCache(t *testing.T, snapshot *bootstrap.Snapshot) (*BootstrapCache, *bootstrapmock.Repository) {
	t.Helper()

	repo := bootstrapmock.NewRepository(t)
	repo.On("FetchBootstrap", mock.Anything).Return(snapshot, nil).Maybe()

	return NewBootstrapCache(repo, cache.NewStore(BootstrapTTL), logging.NewNop()), repo
}
