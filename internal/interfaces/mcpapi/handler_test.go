package mcpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-mcp/internal/domain/bootstrap"
	"github.com/riskibarqy/fpl-mcp/internal/domain/fixture"
	"github.com/riskibarqy/fpl-mcp/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-mcp/internal/domain/player"
	"github.com/riskibarqy/fpl-mcp/internal/domain/position"
	"github.com/riskibarqy/fpl-mcp/internal/domain/team"
	bootstrapmock "github.com/riskibarqy/fpl-mcp/internal/mocks/domain/bootstrap"
	fixturemock "github.com/riskibarqy/fpl-mcp/internal/mocks/domain/fixture"
	managermock "github.com/riskibarqy/fpl-mcp/internal/mocks/domain/manager"
	"github.com/riskibarqy/fpl-mcp/internal/platform/cache"
	"github.com/riskibarqy/fpl-mcp/internal/platform/id"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

func handlerSnapshot() *bootstrap.Snapshot {
	return bootstrap.NewSnapshot(
		[]player.Player{
			{ID: 7, WebName: "Saka", FirstName: "Bukayo", SecondName: "Saka", TeamID: 1, ElementType: position.Midfielder, NowCost: 101, TotalPoints: 180, Form: decimal.RequireFromString("6.2"), Status: "a"},
			{ID: 8, WebName: "Salah", FirstName: "Mohamed", SecondName: "Salah", TeamID: 12, ElementType: position.Midfielder, NowCost: 130, TotalPoints: 250, Form: decimal.RequireFromString("8.0"), Status: "a"},
		},
		[]team.Team{
			{ID: 1, Name: "Arsenal", ShortName: "ARS", Strength: 5},
			{ID: 12, Name: "Liverpool", ShortName: "LIV", Strength: 5},
		},
		[]position.Type{
			{ID: position.Goalkeeper, SingularName: "Goalkeeper", SingularNameShort: "GKP"},
			{ID: position.Defender, SingularName: "Defender", SingularNameShort: "DEF"},
			{ID: position.Midfielder, SingularName: "Midfielder", SingularNameShort: "MID"},
			{ID: position.Forward, SingularName: "Forward", SingularNameShort: "FWD"},
		},
		[]gameweek.Event{
			{ID: 5, Name: "Gameweek 5", IsCurrent: true},
			{ID: 6, Name: "Gameweek 6", IsNext: true},
		},
	)
}

type handlerDeps struct {
	bootstrapRepo *bootstrapmock.Repository
	fixtureRepo   *fixturemock.Repository
	managerRepo   *managermock.Repository
}

func newTestHandler(t *testing.T, exposeInternal bool) (*Handler, handlerDeps) {
	t.Helper()

	deps := handlerDeps{
		bootstrapRepo: bootstrapmock.NewRepository(t),
		fixtureRepo:   fixturemock.NewRepository(t),
		managerRepo:   managermock.NewRepository(t),
	}
	logger := logging.NewNop()
	snapshots := usecase.NewBootstrapCache(deps.bootstrapRepo, cache.NewStore(usecase.BootstrapTTL), logger)

	handler := NewHandler(
		usecase.NewPlayerService(snapshots),
		usecase.NewTeamService(snapshots),
		usecase.NewGameweekService(snapshots, logger),
		usecase.NewFixtureService(snapshots, deps.fixtureRepo),
		usecase.NewManagerService(snapshots, deps.managerRepo, logger),
		id.Static("inv-1"),
		logger,
		exposeInternal,
	)
	return handler, deps
}

func connect(t *testing.T, handler *Handler) *mcp.ClientSession {
	t.Helper()

	ctx := context.Background()
	server := NewServer("fpl-mcp-test", "v0.0.0", handler)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, envelope) {
	t.Helper()

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "tool results are text content")

	var out envelope
	require.NoError(t, sonic.UnmarshalString(text.Text, &out))
	return res, out
}

func TestServer_ListsEveryTool(t *testing.T) {
	handler, _ := newTestHandler(t, false)
	session := connect(t, handler)

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
	assert.ElementsMatch(t, []string{
		ToolSearchPlayers, ToolSearchTeams, ToolGetCurrentGameweek, ToolGetPlayerStats,
		ToolGetGameweekFixtures, ToolComparePlayers, ToolGetTeamInfo, ToolGetManagerTeam,
	}, names)
}

func TestServer_SearchPlayersSuccessEnvelope(t *testing.T) {
	handler, deps := newTestHandler(t, false)
	deps.bootstrapRepo.On("FetchBootstrap", mock.Anything).Return(handlerSnapshot(), nil).Once()
	session := connect(t, handler)

	res, out := callTool(t, session, ToolSearchPlayers, map[string]any{"query": "  SAKA "})

	assert.False(t, res.IsError)
	assert.True(t, out.Success)
	assert.False(t, out.Error)

	var data usecase.PlayerSearchResult
	require.NoError(t, sonic.Unmarshal(out.Data, &data))
	require.Equal(t, 1, data.Count)
	assert.Equal(t, 7, data.Players[0].ID)
	assert.Equal(t, "Arsenal", data.Players[0].Team)
	assert.Equal(t, 10.1, data.Players[0].Price)
}

func TestServer_ValidationFailureSkipsUpstream(t *testing.T) {
	handler, deps := newTestHandler(t, false)
	session := connect(t, handler)

	res, out := callTool(t, session, ToolGetGameweekFixtures, map[string]any{"gameweek": 39})

	assert.True(t, res.IsError)
	assert.True(t, out.Error)
	assert.Equal(t, string(usecase.CodeValidationError), out.Code)

	var violations []FieldViolation
	require.NoError(t, sonic.Unmarshal(out.Details, &violations))
	require.Len(t, violations, 1)
	assert.Equal(t, "gameweek", violations[0].Path)

	deps.bootstrapRepo.AssertNotCalled(t, "FetchBootstrap", mock.Anything)
	deps.fixtureRepo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestServer_DomainErrorEnvelope(t *testing.T) {
	handler, deps := newTestHandler(t, false)
	deps.bootstrapRepo.On("FetchBootstrap", mock.Anything).Return(handlerSnapshot(), nil).Once()
	session := connect(t, handler)

	res, out := callTool(t, session, ToolGetPlayerStats, map[string]any{"playerId": 999})

	assert.True(t, res.IsError)
	assert.Equal(t, string(usecase.CodePlayerNotFound), out.Code)
	assert.NotEmpty(t, out.Message)
}

func TestServer_UpstreamFailureIsNoData(t *testing.T) {
	handler, deps := newTestHandler(t, false)
	upstream := errors.WithStack(&usecase.UpstreamError{Endpoint: "/bootstrap-static/", StatusCode: http.StatusServiceUnavailable})
	deps.bootstrapRepo.On("FetchBootstrap", mock.Anything).Return(nil, upstream).Once()
	session := connect(t, handler)

	res, out := callTool(t, session, ToolSearchTeams, map[string]any{"query": "ars"})

	assert.True(t, res.IsError)
	assert.Equal(t, string(usecase.CodeNoDataAvailable), out.Code)

	var details map[string]any
	require.NoError(t, sonic.Unmarshal(out.Details, &details))
	assert.Equal(t, string(usecase.CodeAPIUnavailable), details["upstreamCode"])
	assert.Equal(t, true, details["retryable"])
}

func TestServer_FixturesForGameweek(t *testing.T) {
	handler, deps := newTestHandler(t, false)
	deps.bootstrapRepo.On("FetchBootstrap", mock.Anything).Return(handlerSnapshot(), nil).Once()

	gw := 5
	kickoff := time.Date(2025, 9, 20, 14, 0, 0, 0, time.UTC)
	deps.fixtureRepo.On("ListAll", mock.Anything).Return([]fixture.Fixture{
		{ID: 41, Event: &gw, KickoffTime: &kickoff, TeamH: 1, TeamA: 12, TeamHDifficulty: 4, TeamADifficulty: 4},
	}, nil).Once()
	session := connect(t, handler)

	res, out := callTool(t, session, ToolGetGameweekFixtures, map[string]any{"gameweek": 5})

	require.False(t, res.IsError, out.Message)
	var data usecase.GameweekFixtures
	require.NoError(t, sonic.Unmarshal(out.Data, &data))
	assert.Equal(t, 1, data.Count)
	assert.Equal(t, "2025-09-20T14:00:00Z", data.Fixtures[0].KickoffTime)
}

func TestWrap_PanicBecomesInternalError(t *testing.T) {
	boom := func(context.Context, json.RawMessage) (any, error) {
		panic("nil map write")
	}

	t.Run("details hidden", func(t *testing.T) {
		handler, _ := newTestHandler(t, false)
		res, err := handler.wrap("boom", boom)(context.Background(), &mcp.CallToolRequest{})
		require.NoError(t, err)
		require.True(t, res.IsError)

		var out envelope
		require.NoError(t, sonic.UnmarshalString(res.Content[0].(*mcp.TextContent).Text, &out))
		assert.Equal(t, string(usecase.CodeInternalError), out.Code)
		assert.Empty(t, out.Details)
	})

	t.Run("details exposed", func(t *testing.T) {
		handler, _ := newTestHandler(t, true)
		res, err := handler.wrap("boom", boom)(context.Background(), &mcp.CallToolRequest{})
		require.NoError(t, err)

		var out envelope
		require.NoError(t, sonic.UnmarshalString(res.Content[0].(*mcp.TextContent).Text, &out))
		assert.Equal(t, string(usecase.CodeInternalError), out.Code)
		assert.JSONEq(t, `{"panic":"nil map write"}`, string(out.Details))
	})
}

func TestWrap_UnclassifiedErrorIsInternal(t *testing.T) {
	handler, _ := newTestHandler(t, false)
	fn := func(context.Context, json.RawMessage) (any, error) {
		return nil, usecase.NewError(usecase.CodeInternalError, "broken invariant")
	}

	res, err := handler.wrap("broken", fn)(context.Background(), nil)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, sonic.UnmarshalString(res.Content[0].(*mcp.TextContent).Text, &out))
	assert.True(t, out.Error)
	assert.Equal(t, "broken invariant", out.Message)
	assert.Equal(t, string(usecase.CodeInternalError), out.Code)
}

func TestErrorResult_UpstreamCodesCarryRetryable(t *testing.T) {
	res := errorResult(usecase.NewError(usecase.CodeAPIRateLimited, "slow down"))

	var out envelope
	require.NoError(t, sonic.UnmarshalString(res.Content[0].(*mcp.TextContent).Text, &out))
	assert.JSONEq(t, `{"retryable":false}`, string(out.Details))

	res = errorResult(usecase.NewError(usecase.CodeAPITimeout, "too slow"))
	require.NoError(t, sonic.UnmarshalString(res.Content[0].(*mcp.TextContent).Text, &out))
	assert.JSONEq(t, `{"retryable":true}`, string(out.Details))
}

func TestRouter_HealthAndCatalog(t *testing.T) {
	handler, _ := newTestHandler(t, false)
	router := NewRouter(NewServer("fpl-mcp-test", "v0.0.0", handler), handler, "/mcp", logging.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tools []ToolInfo `json:"tools"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Tools, 8)
	assert.Equal(t, ToolSearchPlayers, body.Tools[0].Name)
}
