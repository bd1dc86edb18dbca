package player

import "context"

// Repository describes player reads from the backend.
type Repository interface {
	// ListAll returns every player joined with its club, ordered by name.
	ListAll(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
