package mcpapi

// Argument shapes for each tool. Bounds are inclusive and mirrored in schemas.go.

type queryRequest struct {
	Query string `json:"query" validate:"required,min=1,max=100"`
}

type playerRequest struct {
	PlayerID *int `json:"playerId" validate:"required,min=1,max=1000"`
}

type gameweekRequest struct {
	Gameweek *int `json:"gameweek" validate:"required,min=1,max=38"`
}

type comparePlayersRequest struct {
	PlayerIDs []int `json:"playerIds" validate:"required,min=2,max=10,unique,dive,min=1,max=1000"`
}

type teamRequest struct {
	TeamID *int `json:"teamId" validate:"required,min=1,max=20"`
}

type managerTeamRequest struct {
	ManagerID *int `json:"managerId" validate:"required,min=1,max=10000000"`
	Gameweek  *int `json:"gameweek" validate:"omitempty,min=1,max=38"`
}

type emptyRequest struct{}
