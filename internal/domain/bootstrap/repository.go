package bootstrap

import "context"

// Repository fetches a fresh snapshot from the upstream source.
type Repository interface {
	FetchBootstrap(ctx context.Context) (*Snapshot, error)
}
