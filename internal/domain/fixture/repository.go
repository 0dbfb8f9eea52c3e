package fixture

import "context"

// Repository exposes fixture read operations.
type Repository interface {
	ListAll(ctx context.Context) ([]Fixture, error)
}
