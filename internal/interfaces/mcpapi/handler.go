package mcpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-mcp/internal/platform/id"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
)

type toolFunc func(ctx context.Context, args json.RawMessage) (any, error)

type Handler struct {
	playerService   *usecase.PlayerService
	teamService     *usecase.TeamService
	gameweekService *usecase.GameweekService
	fixtureService  *usecase.FixtureService
	managerService  *usecase.ManagerService
	validator       *Validator
	ids             id.Generator
	logger          *logging.Logger
	exposeInternal  bool
}

// NewHandler wires the tool handlers. exposeInternal adds panic values to
// INTERNAL_ERROR details and must be false in production.
func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	gameweekService *usecase.GameweekService,
	fixtureService *usecase.FixtureService,
	managerService *usecase.ManagerService,
	ids id.Generator,
	logger *logging.Logger,
	exposeInternal bool,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &Handler{
		playerService:   playerService,
		teamService:     teamService,
		gameweekService: gameweekService,
		fixtureService:  fixtureService,
		managerService:  managerService,
		validator:       NewValidator(),
		ids:             ids,
		logger:          logger,
		exposeInternal:  exposeInternal,
	}
}

// wrap turns a tool function into an MCP handler that always answers with an
// envelope: failures are classified and panics become INTERNAL_ERROR.
func (h *Handler) wrap(name string, fn toolFunc) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		ctx, span := startSpan(ctx, "mcpapi.Handler."+name)
		defer span.End()

		invocationID, idErr := h.ids.NewID()
		if idErr != nil {
			h.logger.WarnContext(ctx, "generate invocation id", "error", idErr)
		}
		logger := h.logger.With("tool", name, "invocation_id", invocationID)
		started := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "tool handler panicked", "panic", rec, "stack", string(debug.Stack()))
				result, err = errorResult(h.panicError(rec)), nil
			}
		}()

		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}

		data, callErr := fn(ctx, raw)
		if callErr != nil {
			classified := usecase.Classify(callErr)
			fields := []any{"code", classified.Code, "duration", time.Since(started)}
			if classified.Code == usecase.CodeInternalError && h.exposeInternal {
				fields = append(fields, "error", fmt.Sprintf("%+v", callErr))
			} else {
				fields = append(fields, "error", callErr.Error())
			}
			logger.WarnContext(ctx, "tool call failed", fields...)
			return errorResult(classified), nil
		}

		logger.InfoContext(ctx, "tool call completed", "duration", time.Since(started))
		return successResult(data)
	}
}

func (h *Handler) panicError(rec any) *usecase.Error {
	out := usecase.NewError(usecase.CodeInternalError, "an unexpected internal error occurred")
	if h.exposeInternal {
		out = out.WithDetails(map[string]any{"panic": fmt.Sprint(rec)})
	}
	return out
}

func (h *Handler) searchPlayers(ctx context.Context, args json.RawMessage) (any, error) {
	var req queryRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.playerService.SearchPlayers(ctx, req.Query)
}

func (h *Handler) searchTeams(ctx context.Context, args json.RawMessage) (any, error) {
	var req queryRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.teamService.SearchTeams(ctx, req.Query)
}

func (h *Handler) getCurrentGameweek(ctx context.Context, args json.RawMessage) (any, error) {
	var req emptyRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.gameweekService.GetCurrentGameweek(ctx)
}

func (h *Handler) getPlayerStats(ctx context.Context, args json.RawMessage) (any, error) {
	var req playerRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.playerService.GetPlayerStats(ctx, *req.PlayerID)
}

func (h *Handler) getGameweekFixtures(ctx context.Context, args json.RawMessage) (any, error) {
	var req gameweekRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.fixtureService.ListByGameweek(ctx, *req.Gameweek)
}

func (h *Handler) comparePlayers(ctx context.Context, args json.RawMessage) (any, error) {
	var req comparePlayersRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.playerService.ComparePlayers(ctx, req.PlayerIDs)
}

func (h *Handler) getTeamInfo(ctx context.Context, args json.RawMessage) (any, error) {
	var req teamRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.teamService.GetTeamInfo(ctx, *req.TeamID)
}

func (h *Handler) getManagerTeam(ctx context.Context, args json.RawMessage) (any, error) {
	var req managerTeamRequest
	if err := h.validator.Bind(ctx, args, &req); err != nil {
		return nil, err
	}
	return h.managerService.GetManagerTeam(ctx, *req.ManagerID, req.Gameweek)
}
