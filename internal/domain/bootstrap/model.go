package bootstrap

import (
	"sync"

	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
)

// Snapshot is the reference dataset at one point in time. It is never mutated
// after construction; a refresh replaces it.
type Snapshot struct {
	Players       []player.Player
	Teams         []team.Team
	PositionTypes []position.Type
	Events        []gameweek.Event

	indexOnce   sync.Once
	playersByID map[int]int
	teamsByID   map[int]int
	typesByID   map[int]int
}

func NewSnapshot(players []player.Player, teams []team.Team, types []position.Type, events []gameweek.Event) *Snapshot {
	return &Snapshot{
		Players:       players,
		Teams:         teams,
		PositionTypes: types,
		Events:        events,
	}
}

// Complete reports whether the collections every lookup depends on are present.
func (s *Snapshot) Complete() bool {
	return s != nil && len(s.Players) > 0 && len(s.Teams) > 0 && len(s.PositionTypes) > 0
}

func (s *Snapshot) buildIndex() {
	s.indexOnce.Do(func() {
		s.playersByID = make(map[int]int, len(s.Players))
		for i, p := range s.Players {
			s.playersByID[p.ID] = i
		}
		s.teamsByID = make(map[int]int, len(s.Teams))
		for i, t := range s.Teams {
			s.teamsByID[t.ID] = i
		}
		s.typesByID = make(map[int]int, len(s.PositionTypes))
		for i, pt := range s.PositionTypes {
			s.typesByID[pt.ID] = i
		}
	})
}

func (s *Snapshot) Player(id int) (player.Player, bool) {
	s.buildIndex()
	idx, ok := s.playersByID[id]
	if !ok {
		return player.Player{}, false
	}
	return s.Players[idx], true
}

func (s *Snapshot) Team(id int) (team.Team, bool) {
	s.buildIndex()
	idx, ok := s.teamsByID[id]
	if !ok {
		return team.Team{}, false
	}
	return s.Teams[idx], true
}

func (s *Snapshot) PositionType(id int) (position.Type, bool) {
	s.buildIndex()
	idx, ok := s.typesByID[id]
	if !ok {
		return position.Type{}, false
	}
	return s.PositionTypes[idx], true
}

// TeamName returns the team's full name or "Unknown".
func (s *Snapshot) TeamName(id int) string {
	if t, ok := s.Team(id); ok {
		return t.Name
	}
	return Unknown
}

// PositionName returns the singular position name or "Unknown".
func (s *Snapshot) PositionName(id int) string {
	if pt, ok := s.PositionType(id); ok {
		return pt.SingularName
	}
	return Unknown
}

// Unknown labels a foreign key that does not resolve inside the snapshot.
const Unknown = "Unknown"
