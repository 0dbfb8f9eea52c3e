package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/fixture"
	"github.com/sourcegraph/conc/pool"
)

const kickoffTBD = "TBD"

type FixtureService struct {
	cache       *BootstrapCache
	fixtureRepo fixture.Repository
}

func NewFixtureService(cache *BootstrapCache, fixtureRepo fixture.Repository) *FixtureService {
	return &FixtureService{
		cache:       cache,
		fixtureRepo: fixtureRepo,
	}
}

// ListByGameweek returns the gameweek's fixtures by kickoff, unscheduled last.
// A gameweek with no fixtures yet is an empty result, not an error.
func (s *FixtureService) ListByGameweek(ctx context.Context, gw int) (GameweekFixtures, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByGameweek")
	defer span.End()

	var (
		snapshot *bootstrap.Snapshot
		all      []fixture.Fixture
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		snapshot, err = s.cache.Snapshot(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		all, err = s.fixtureRepo.ListAll(ctx)
		if err != nil {
			return errors.Wrap(err, "list fixtures")
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return GameweekFixtures{}, err
	}

	selected := make([]fixture.Fixture, 0, 10)
	for _, item := range all {
		if item.InGameweek(gw) {
			selected = append(selected, item)
		}
	}
	fixture.SortByKickoff(selected)

	out := GameweekFixtures{
		Gameweek: gw,
		Count:    len(selected),
		Fixtures: make([]FixtureView, 0, len(selected)),
	}
	for _, item := range selected {
		out.Fixtures = append(out.Fixtures, newFixtureView(snapshot, item))
	}
	if len(selected) == 0 {
		out.Message = fmt.Sprintf("No fixtures scheduled for gameweek %d yet", gw)
	}
	return out, nil
}

func newFixtureView(snapshot *bootstrap.Snapshot, item fixture.Fixture) FixtureView {
	kickoff := kickoffTBD
	if item.KickoffTime != nil {
		kickoff = item.KickoffTime.UTC().Format(time.RFC3339)
	}
	return FixtureView{
		ID:             item.ID,
		HomeTeam:       snapshot.TeamName(item.TeamH),
		HomeTeamID:     item.TeamH,
		AwayTeam:       snapshot.TeamName(item.TeamA),
		AwayTeamID:     item.TeamA,
		KickoffTime:    kickoff,
		HomeScore:      item.TeamHScore,
		AwayScore:      item.TeamAScore,
		Started:        item.Started,
		Finished:       item.Finished,
		HomeDifficulty: item.TeamHDifficulty,
		AwayDifficulty: item.TeamADifficulty,
	}
}
