package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
)

type GameweekService struct {
	cache  *BootstrapCache
	logger *logging.Logger
}

func NewGameweekService(cache *BootstrapCache, logger *logging.Logger) *GameweekService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameweekService{cache: cache, logger: logger}
}

// GetCurrentGameweek reports the current gameweek, or the next one between
// gameweeks. A season boundary with neither flagged is GAMEWEEK_NOT_FOUND.
func (s *GameweekService) GetCurrentGameweek(ctx context.Context) (GameweekView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.GetCurrentGameweek")
	defer span.End()

	snapshot, err := s.cache.Snapshot(ctx)
	if err != nil {
		return GameweekView{}, err
	}

	event, fromNext, err := gameweek.ResolveCurrent(snapshot.Events)
	if err != nil {
		if errors.Is(err, gameweek.ErrNoActiveGameweek) {
			return GameweekView{}, WrapError(err, CodeGameweekNotFound, "no current or upcoming gameweek is available")
		}
		return GameweekView{}, WrapError(err, CodeInternalError, "resolve current gameweek")
	}
	if fromNext {
		s.logger.DebugContext(ctx, "no current gameweek flagged, reporting next", "gameweek", event.ID)
	}

	return GameweekView{
		ID:           event.ID,
		Name:         event.Name,
		DeadlineTime: event.DeadlineTime,
		Finished:     event.Finished,
		IsCurrent:    true,
		AverageScore: event.AverageScore,
		HighestScore: event.HighestScore,
	}, nil
}
