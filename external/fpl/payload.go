package fpl

import (
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/domain/fixture"
	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/domain/manager"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
)

type bootstrapPayload struct {
	Elements     []elementPayload     `json:"elements"`
	Teams        []teamPayload        `json:"teams"`
	ElementTypes []elementTypePayload `json:"element_types"`
	Events       []eventPayload       `json:"events"`
}

type elementPayload struct {
	ID                int    `json:"id"`
	WebName           string `json:"web_name"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int64  `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	GoalsScored       int    `json:"goals_scored"`
	Assists           int    `json:"assists"`
	Minutes           int    `json:"minutes"`
	CleanSheets       int    `json:"clean_sheets"`
	Bonus             int    `json:"bonus"`
	Status            string `json:"status"`
	News              string `json:"news"`
	SelectedByPercent string `json:"selected_by_percent"`
	Form              string `json:"form"`
	PointsPerGame     string `json:"points_per_game"`
}

type teamPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Code      int    `json:"code"`
	Strength  int    `json:"strength"`
}

type elementTypePayload struct {
	ID                int    `json:"id"`
	SingularName      string `json:"singular_name"`
	SingularNameShort string `json:"singular_name_short"`
	PluralName        string `json:"plural_name"`
}

type eventPayload struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	DeadlineTime *time.Time `json:"deadline_time"`
	Finished     bool       `json:"finished"`
	IsCurrent    bool       `json:"is_current"`
	IsNext       bool       `json:"is_next"`
	AverageScore int        `json:"average_entry_score"`
	HighestScore int        `json:"highest_score"`
}

type fixturePayload struct {
	ID              int        `json:"id"`
	Event           *int       `json:"event"`
	KickoffTime     *time.Time `json:"kickoff_time"`
	TeamH           int        `json:"team_h"`
	TeamA           int        `json:"team_a"`
	TeamHScore      *int       `json:"team_h_score"`
	TeamAScore      *int       `json:"team_a_score"`
	Finished        bool       `json:"finished"`
	Started         *bool      `json:"started"`
	TeamHDifficulty int        `json:"team_h_difficulty"`
	TeamADifficulty int        `json:"team_a_difficulty"`
}

type entryPayload struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	CurrentEvent         *int   `json:"current_event"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   *int   `json:"summary_overall_rank"`
	SummaryEventPoints   int    `json:"summary_event_points"`
}

type picksPayload struct {
	ActiveChip   *string             `json:"active_chip"`
	EntryHistory entryHistoryPayload `json:"entry_history"`
	Picks        []pickPayload       `json:"picks"`
}

type entryHistoryPayload struct {
	Event              int   `json:"event"`
	Points             int   `json:"points"`
	TotalPoints        int   `json:"total_points"`
	Bank               int64 `json:"bank"`
	Value              int64 `json:"value"`
	PointsOnBench      int   `json:"points_on_bench"`
	EventTransfers     int   `json:"event_transfers"`
	EventTransfersCost int   `json:"event_transfers_cost"`
}

type pickPayload struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

func (p elementPayload) toDomain() player.Player {
	return player.Player{
		ID:                p.ID,
		WebName:           p.WebName,
		FirstName:         p.FirstName,
		SecondName:        p.SecondName,
		TeamID:            p.Team,
		ElementType:       p.ElementType,
		NowCost:           p.NowCost,
		TotalPoints:       p.TotalPoints,
		GoalsScored:       p.GoalsScored,
		Assists:           p.Assists,
		Minutes:           p.Minutes,
		CleanSheets:       p.CleanSheets,
		Bonus:             p.Bonus,
		Status:            p.Status,
		News:              p.News,
		SelectedByPercent: player.ParseDecimal(p.SelectedByPercent),
		Form:              player.ParseDecimal(p.Form),
		PointsPerGame:     player.ParseDecimal(p.PointsPerGame),
	}
}

func (p teamPayload) toDomain() team.Team {
	return team.Team{ID: p.ID, Name: p.Name, ShortName: p.ShortName, Code: p.Code, Strength: p.Strength}
}

func (p elementTypePayload) toDomain() position.Type {
	return position.Type{
		ID:                p.ID,
		SingularName:      p.SingularName,
		SingularNameShort: p.SingularNameShort,
		PluralName:        p.PluralName,
	}
}

func (p eventPayload) toDomain() gameweek.Event {
	return gameweek.Event{
		ID:           p.ID,
		Name:         p.Name,
		DeadlineTime: p.DeadlineTime,
		Finished:     p.Finished,
		IsCurrent:    p.IsCurrent,
		IsNext:       p.IsNext,
		AverageScore: p.AverageScore,
		HighestScore: p.HighestScore,
	}
}

func (p fixturePayload) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:              p.ID,
		Event:           p.Event,
		KickoffTime:     p.KickoffTime,
		TeamH:           p.TeamH,
		TeamA:           p.TeamA,
		TeamHScore:      p.TeamHScore,
		TeamAScore:      p.TeamAScore,
		Finished:        p.Finished,
		Started:         p.Started != nil && *p.Started,
		TeamHDifficulty: p.TeamHDifficulty,
		TeamADifficulty: p.TeamADifficulty,
	}
}

func (p entryPayload) toDomain() manager.Summary {
	return manager.Summary{
		ID:                   p.ID,
		Name:                 p.Name,
		PlayerFirstName:      p.PlayerFirstName,
		PlayerLastName:       p.PlayerLastName,
		CurrentEvent:         p.CurrentEvent,
		SummaryOverallPoints: p.SummaryOverallPoints,
		SummaryOverallRank:   p.SummaryOverallRank,
		SummaryEventPoints:   p.SummaryEventPoints,
	}
}

func (p picksPayload) toDomain() manager.Picks {
	out := manager.Picks{
		EntryHistory: manager.History(p.EntryHistory),
		Picks:        make([]manager.Pick, 0, len(p.Picks)),
	}
	if p.ActiveChip != nil {
		out.ActiveChip = *p.ActiveChip
	}
	for _, item := range p.Picks {
		out.Picks = append(out.Picks, manager.Pick(item))
	}
	return out
}
