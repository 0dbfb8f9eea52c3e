package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
	"github.com/riskibarqy/fpl-mcp/internal/platform/cache"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
)

const (
	BootstrapTTL           = time.Hour
	MaxPlayerSearchResults = 10

	bootstrapCacheKey = "bootstrap"
)

var errIncompleteSnapshot = errors.New("bootstrap snapshot is missing players, teams or position types")

// BootstrapCache holds the one shared reference snapshot. It is constructed at
// startup and handed to every service that reads reference data.
type BootstrapCache struct {
	repo   bootstrap.Repository
	store  *cache.Store
	logger *logging.Logger
}

func NewBootstrapCache(repo bootstrap.Repository, store *cache.Store, logger *logging.Logger) *BootstrapCache {
	if store == nil {
		store = cache.NewStore(BootstrapTTL)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BootstrapCache{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// Snapshot returns the cached snapshot while it is younger than the TTL and
// otherwise fetches a replacement. Concurrent refreshes share one fetch.
func (c *BootstrapCache) Snapshot(ctx context.Context) (*bootstrap.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BootstrapCache.Snapshot")
	defer span.End()

	value, err := c.store.GetOrLoad(ctx, bootstrapCacheKey, func(ctx context.Context) (any, error) {
		started := time.Now()
		snapshot, err := c.repo.FetchBootstrap(ctx)
		if err != nil {
			return nil, err
		}
		if !snapshot.Complete() {
			return nil, errIncompleteSnapshot
		}
		c.logger.InfoContext(ctx, "bootstrap snapshot refreshed",
			"players", len(snapshot.Players),
			"teams", len(snapshot.Teams),
			"events", len(snapshot.Events),
			"duration", time.Since(started),
		)
		return snapshot, nil
	})
	if err != nil {
		upstream := Classify(err).Code
		c.logger.WarnContext(ctx, "bootstrap snapshot unavailable", "upstream_code", upstream, "error", err)
		return nil, WrapError(err, CodeNoDataAvailable, "FPL reference data is currently unavailable").
			WithDetails(map[string]any{"upstreamCode": upstream, "retryable": IsRetryable(upstream)})
	}

	snapshot, ok := value.(*bootstrap.Snapshot)
	if !ok {
		return nil, NewErrorf(CodeInternalError, "unexpected cached value type %T", value)
	}
	return snapshot, nil
}

// Invalidate drops the snapshot so the next read refetches.
func (c *BootstrapCache) Invalidate(ctx context.Context) {
	c.store.Delete(ctx, bootstrapCacheKey)
}

// SearchPlayers returns at most MaxPlayerSearchResults players in snapshot order.
func (c *BootstrapCache) SearchPlayers(ctx context.Context, query string) ([]PlayerSummary, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	normalized := normalizeQuery(query)
	out := make([]PlayerSummary, 0, MaxPlayerSearchResults)
	for _, p := range snapshot.Players {
		if !p.MatchesQuery(normalized) {
			continue
		}
		out = append(out, newPlayerSummary(snapshot, p))
		if len(out) == MaxPlayerSearchResults {
			break
		}
	}
	return out, nil
}

func (c *BootstrapCache) PlayerByID(ctx context.Context, id int) (player.Player, bool, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return player.Player{}, false, err
	}
	p, ok := snapshot.Player(id)
	return p, ok, nil
}

// SearchTeams matches full and short names. There is no result cap.
func (c *BootstrapCache) SearchTeams(ctx context.Context, query string) ([]TeamSummary, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	normalized := normalizeQuery(query)
	out := make([]TeamSummary, 0)
	for _, t := range snapshot.Teams {
		if t.MatchesQuery(normalized) {
			out = append(out, newTeamSummary(t))
		}
	}
	return out, nil
}

func (c *BootstrapCache) TeamByID(ctx context.Context, id int) (team.Team, bool, error) {
	snapshot, err := c.Snapshot(ctx)
	if err != nil {
		return team.Team{}, false, err
	}
	t, ok := snapshot.Team(id)
	return t, ok, nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
