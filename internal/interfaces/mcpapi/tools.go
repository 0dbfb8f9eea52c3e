package mcpapi

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolSearchPlayers       = "search_players"
	ToolSearchTeams         = "search_teams"
	ToolGetCurrentGameweek  = "get_current_gameweek"
	ToolGetPlayerStats      = "get_player_stats"
	ToolGetGameweekFixtures = "get_gameweek_fixtures"
	ToolComparePlayers      = "compare_players"
	ToolGetTeamInfo         = "get_team_info"
	ToolGetManagerTeam      = "get_manager_team"
)

// ToolInfo is the catalogue entry served on /tools.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type toolDefinition struct {
	tool   *mcp.Tool
	handle toolFunc
}

func ptr[T any](v T) *T {
	return &v
}

func integerSchema(description string, minimum, maximum float64) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: description,
		Minimum:     ptr(minimum),
		Maximum:     ptr(maximum),
	}
}

func objectSchema(properties map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	if properties == nil {
		properties = map[string]*jsonschema.Schema{}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func querySchema(description string) *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"query": {
			Type:        "string",
			Description: description,
			MinLength:   ptr(1),
			MaxLength:   ptr(100),
		},
	}, "query")
}

func (h *Handler) definitions() []toolDefinition {
	return []toolDefinition{
		{
			tool: &mcp.Tool{
				Name:        ToolSearchPlayers,
				Description: "Search Premier League players by name. Returns up to 10 matches with team, position and price.",
				InputSchema: querySchema("Player name or part of it"),
			},
			handle: h.searchPlayers,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolSearchTeams,
				Description: "Search Premier League teams by full or short name.",
				InputSchema: querySchema("Team name or short code"),
			},
			handle: h.searchTeams,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolGetCurrentGameweek,
				Description: "Get the current gameweek, or the next one when no gameweek is in progress.",
				InputSchema: objectSchema(nil),
			},
			handle: h.getCurrentGameweek,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolGetPlayerStats,
				Description: "Get season statistics for a player: points, goals, assists, minutes, form, ownership and availability.",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"playerId": integerSchema("FPL player id", 1, 1000),
				}, "playerId"),
			},
			handle: h.getPlayerStats,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolGetGameweekFixtures,
				Description: "List a gameweek's fixtures in kickoff order with scores and difficulty ratings.",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"gameweek": integerSchema("Gameweek number", 1, 38),
				}, "gameweek"),
			},
			handle: h.getGameweekFixtures,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolComparePlayers,
				Description: "Compare 2 to 10 players side by side. Unknown ids are reported separately instead of failing the call.",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"playerIds": {
						Type:        "array",
						Description: "Distinct FPL player ids",
						Items:       integerSchema("FPL player id", 1, 1000),
						MinItems:    ptr(2),
						MaxItems:    ptr(10),
						UniqueItems: true,
					},
				}, "playerIds"),
			},
			handle: h.comparePlayers,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolGetTeamInfo,
				Description: "Get a team's details and full squad with position counts.",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"teamId": integerSchema("FPL team id", 1, 20),
				}, "teamId"),
			},
			handle: h.getTeamInfo,
		},
		{
			tool: &mcp.Tool{
				Name:        ToolGetManagerTeam,
				Description: "Get a manager's picks for a gameweek: starting XI, bench, captaincy and formation. Defaults to the manager's current gameweek.",
				InputSchema: objectSchema(map[string]*jsonschema.Schema{
					"managerId": integerSchema("FPL manager (entry) id", 1, 10000000),
					"gameweek":  integerSchema("Gameweek number", 1, 38),
				}, "managerId"),
			},
			handle: h.getManagerTeam,
		},
	}
}

// Register adds every tool to the MCP server.
func (h *Handler) Register(server *mcp.Server) {
	for _, def := range h.definitions() {
		server.AddTool(def.tool, h.wrap(def.tool.Name, def.handle))
	}
}

func (h *Handler) Catalog() []ToolInfo {
	defs := h.definitions()
	out := make([]ToolInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, ToolInfo{Name: def.tool.Name, Description: def.tool.Description})
	}
	return out
}
