package manager

import "context"

// Repository reads manager data from the upstream API.
// Implementations return ErrManagerNotFound / ErrPicksNotFound (possibly wrapped)
// when the upstream reports a missing resource.
type Repository interface {
	GetSummary(ctx context.Context, managerID int) (Summary, error)
	GetPicks(ctx context.Context, managerID, gameweek int) (Picks, error)
}
