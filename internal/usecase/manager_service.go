package usecase

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/manager"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type ManagerService struct {
	cache       *BootstrapCache
	managerRepo manager.Repository
	logger      *logging.Logger
}

func NewManagerService(cache *BootstrapCache, managerRepo manager.Repository, logger *logging.Logger) *ManagerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ManagerService{
		cache:       cache,
		managerRepo: managerRepo,
		logger:      logger,
	}
}

// GetManagerTeam returns a manager's squad for a gameweek. A nil gameweek means
// the manager's current one.
func (s *ManagerService) GetManagerTeam(ctx context.Context, managerID int, gw *int) (ManagerTeam, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.GetManagerTeam")
	defer span.End()

	summary, err := s.managerRepo.GetSummary(ctx, managerID)
	if err != nil {
		if errors.Is(err, manager.ErrManagerNotFound) {
			return ManagerTeam{}, WrapError(err, CodeNoDataAvailable, fmt.Sprintf("manager %d not found", managerID)).
				WithDetails(map[string]any{"managerId": managerID})
		}
		return ManagerTeam{}, errors.Wrap(err, "get manager summary")
	}

	target := summary.CurrentEvent
	if gw != nil {
		target = gw
	}
	if target == nil {
		return ManagerTeam{}, NewErrorf(CodeGameweekNotFound, "manager %d has no current gameweek", managerID).
			WithDetails(map[string]any{"managerId": managerID})
	}
	gameweekID := *target

	var (
		snapshot *bootstrap.Snapshot
		picks    manager.Picks
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		snapshot, err = s.cache.Snapshot(ctx)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		picks, err = s.managerRepo.GetPicks(ctx, managerID, gameweekID)
		if err == nil {
			return nil
		}
		if errors.Is(err, manager.ErrPicksNotFound) {
			return WrapError(err, CodeGameweekNotFound, fmt.Sprintf("no picks for manager %d in gameweek %d", managerID, gameweekID)).
				WithDetails(map[string]any{"managerId": managerID, "gameweek": gameweekID})
		}
		return errors.Wrap(err, "get manager picks")
	})
	if err := p.Wait(); err != nil {
		return ManagerTeam{}, err
	}

	out := ManagerTeam{
		ManagerID:      summary.ID,
		TeamName:       summary.Name,
		ManagerName:    summary.PlayerName(),
		Gameweek:       gameweekID,
		OverallPoints:  summary.SummaryOverallPoints,
		OverallRank:    summary.SummaryOverallRank,
		GameweekPoints: picks.EntryHistory.Points,
		PointsOnBench:  picks.EntryHistory.PointsOnBench,
		Transfers:      picks.EntryHistory.EventTransfers,
		TransfersCost:  picks.EntryHistory.EventTransfersCost,
		Bank:           tenths(picks.EntryHistory.Bank),
		TeamValue:      tenths(picks.EntryHistory.Value),
		ActiveChip:     picks.ActiveChip,
		StartingXI:     make([]PickView, 0, manager.StartingSlots),
		Bench:          make([]PickView, 0, manager.SquadSlots-manager.StartingSlots),
	}

	starterTypes := make([]int, 0, manager.StartingSlots)
	for _, pick := range picks.Picks {
		view := newPickView(snapshot, pick)
		switch {
		case pick.IsStarter():
			out.StartingXI = append(out.StartingXI, view)
			if pl, ok := snapshot.Player(pick.Element); ok {
				starterTypes = append(starterTypes, pl.ElementType)
			}
		case pick.IsBench():
			out.Bench = append(out.Bench, view)
		}
		if pick.IsCaptain {
			captain := view
			out.Captain = &captain
		}
		if pick.IsViceCaptain {
			vice := view
			out.ViceCaptain = &vice
		}
	}
	if out.Captain == nil {
		s.logger.WarnContext(ctx, "manager picks have no captain", "manager_id", managerID, "gameweek", gameweekID)
	}
	if out.ViceCaptain == nil {
		s.logger.WarnContext(ctx, "manager picks have no vice captain", "manager_id", managerID, "gameweek", gameweekID)
	}
	out.Formation = Formation(starterTypes)

	return out, nil
}

// Formation renders defenders-midfielders-forwards for the given position type
// ids. Goalkeepers and unknown types are not counted.
func Formation(elementTypes []int) string {
	var defenders, midfielders, forwards int
	for _, t := range elementTypes {
		switch t {
		case position.Defender:
			defenders++
		case position.Midfielder:
			midfielders++
		case position.Forward:
			forwards++
		}
	}
	return fmt.Sprintf("%d-%d-%d", defenders, midfielders, forwards)
}

func newPickView(snapshot *bootstrap.Snapshot, pick manager.Pick) PickView {
	view := PickView{
		PlayerID:      pick.Element,
		Name:          bootstrap.Unknown,
		Team:          bootstrap.Unknown,
		Position:      bootstrap.Unknown,
		SquadPosition: pick.Position,
		Multiplier:    pick.Multiplier,
		IsCaptain:     pick.IsCaptain,
		IsViceCaptain: pick.IsViceCaptain,
	}
	if p, ok := snapshot.Player(pick.Element); ok {
		view.Name = p.DisplayName()
		view.Team = snapshot.TeamName(p.TeamID)
		view.Position = snapshot.PositionName(p.ElementType)
		view.Price = toFloat(p.Price())
		view.TotalPoints = p.TotalPoints
	}
	return view
}
