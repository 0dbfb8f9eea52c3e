package usecase

import (
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
	"github.com/shopspring/decimal"
)

// Views below are the payloads placed under "data" in success envelopes.

type PlayerSummary struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	FullName string  `json:"fullName"`
	Team     string  `json:"team"`
	TeamID   int     `json:"teamId"`
	Position string  `json:"position"`
	Price    float64 `json:"price"`
}

type PlayerSearchResult struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Players []PlayerSummary `json:"players"`
	Message string          `json:"message,omitempty"`
}

type TeamSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Strength  int    `json:"strength"`
}

type TeamSearchResult struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Teams   []TeamSummary `json:"teams"`
	Message string        `json:"message,omitempty"`
}

type PlayerStats struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	FullName          string  `json:"fullName"`
	Team              string  `json:"team"`
	TeamID            int     `json:"teamId"`
	Position          string  `json:"position"`
	Price             float64 `json:"price"`
	TotalPoints       int     `json:"totalPoints"`
	GoalsScored       int     `json:"goalsScored"`
	Assists           int     `json:"assists"`
	Minutes           int     `json:"minutes"`
	CleanSheets       int     `json:"cleanSheets"`
	Bonus             int     `json:"bonus"`
	Form              float64 `json:"form"`
	SelectedByPercent float64 `json:"selectedByPercent"`
	PointsPerGame     float64 `json:"pointsPerGame"`
	Status            string  `json:"status"`
	News              string  `json:"news,omitempty"`
}

// ComparisonLeaders names, per metric, the player id that leads it. Ties go to
// the player requested first.
type ComparisonLeaders struct {
	TotalPoints int `json:"totalPoints"`
	Form        int `json:"form"`
	GoalsScored int `json:"goalsScored"`
	Assists     int `json:"assists"`
	LowestPrice int `json:"lowestPrice"`
}

type PlayerComparison struct {
	ValidPlayers     []PlayerStats     `json:"validPlayers"`
	InvalidPlayerIDs []int             `json:"invalidPlayerIds"`
	Leaders          ComparisonLeaders `json:"leaders"`
}

type GameweekView struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DeadlineTime *time.Time `json:"deadlineTime"`
	Finished     bool       `json:"finished"`
	IsCurrent    bool       `json:"isCurrent"`
	AverageScore int        `json:"averageScore"`
	HighestScore int        `json:"highestScore"`
}

type FixtureView struct {
	ID             int    `json:"id"`
	HomeTeam       string `json:"homeTeam"`
	HomeTeamID     int    `json:"homeTeamId"`
	AwayTeam       string `json:"awayTeam"`
	AwayTeamID     int    `json:"awayTeamId"`
	KickoffTime    string `json:"kickoffTime"`
	HomeScore      *int   `json:"homeScore"`
	AwayScore      *int   `json:"awayScore"`
	Started        bool   `json:"started"`
	Finished       bool   `json:"finished"`
	HomeDifficulty int    `json:"homeDifficulty"`
	AwayDifficulty int    `json:"awayDifficulty"`
}

type GameweekFixtures struct {
	Gameweek int           `json:"gameweek"`
	Count    int           `json:"count"`
	Fixtures []FixtureView `json:"fixtures"`
	Message  string        `json:"message,omitempty"`
}

type SquadPlayer struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Price       float64 `json:"price"`
	TotalPoints int     `json:"totalPoints"`
	Form        float64 `json:"form"`
	Status      string  `json:"status"`
}

type TeamInfo struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	ShortName      string         `json:"shortName"`
	Strength       int            `json:"strength"`
	SquadSize      int            `json:"squadSize"`
	SquadPoints    int            `json:"squadTotalPoints"`
	PositionCounts map[string]int `json:"positionCounts"`
	Squad          []SquadPlayer  `json:"squad"`
}

type PickView struct {
	PlayerID      int     `json:"playerId"`
	Name          string  `json:"name"`
	Team          string  `json:"team"`
	Position      string  `json:"position"`
	SquadPosition int     `json:"squadPosition"`
	Multiplier    int     `json:"multiplier"`
	IsCaptain     bool    `json:"isCaptain"`
	IsViceCaptain bool    `json:"isViceCaptain"`
	Price         float64 `json:"price"`
	TotalPoints   int     `json:"totalPoints"`
}

type ManagerTeam struct {
	ManagerID      int        `json:"managerId"`
	TeamName       string     `json:"teamName"`
	ManagerName    string     `json:"managerName"`
	Gameweek       int        `json:"gameweek"`
	OverallPoints  int        `json:"overallPoints"`
	OverallRank    *int       `json:"overallRank"`
	GameweekPoints int        `json:"gameweekPoints"`
	PointsOnBench  int        `json:"pointsOnBench"`
	Transfers      int        `json:"transfers"`
	TransfersCost  int        `json:"transfersCost"`
	Bank           float64    `json:"bank"`
	TeamValue      float64    `json:"teamValue"`
	ActiveChip     string     `json:"activeChip,omitempty"`
	Formation      string     `json:"formation"`
	Captain        *PickView  `json:"captain"`
	ViceCaptain    *PickView  `json:"viceCaptain"`
	StartingXI     []PickView `json:"startingXI"`
	Bench          []PickView `json:"bench"`
}

func newPlayerSummary(snapshot *bootstrap.Snapshot, p player.Player) PlayerSummary {
	return PlayerSummary{
		ID:       p.ID,
		Name:     p.DisplayName(),
		FullName: p.FullName(),
		Team:     snapshot.TeamName(p.TeamID),
		TeamID:   p.TeamID,
		Position: snapshot.PositionName(p.ElementType),
		Price:    toFloat(p.Price()),
	}
}

func newPlayerStats(snapshot *bootstrap.Snapshot, p player.Player) PlayerStats {
	return PlayerStats{
		ID:                p.ID,
		Name:              p.DisplayName(),
		FullName:          p.FullName(),
		Team:              snapshot.TeamName(p.TeamID),
		TeamID:            p.TeamID,
		Position:          snapshot.PositionName(p.ElementType),
		Price:             toFloat(p.Price()),
		TotalPoints:       p.TotalPoints,
		GoalsScored:       p.GoalsScored,
		Assists:           p.Assists,
		Minutes:           p.Minutes,
		CleanSheets:       p.CleanSheets,
		Bonus:             p.Bonus,
		Form:              toFloat(p.Form),
		SelectedByPercent: toFloat(p.SelectedByPercent),
		PointsPerGame:     toFloat(p.PointsPerGame),
		Status:            p.Status,
		News:              p.News,
	}
}

func newTeamSummary(t team.Team) TeamSummary {
	return TeamSummary{ID: t.ID, Name: t.Name, ShortName: t.ShortName, Strength: t.Strength}
}

// tenths converts FPL money fields (bank, value) from tenths of a million.
func tenths(v int64) float64 {
	return toFloat(decimal.New(v, -1))
}

func toFloat(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
