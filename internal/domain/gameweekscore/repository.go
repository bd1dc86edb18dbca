package gameweekscore

import "context"

type Repository interface {
	// ListByPlayer returns every score of the player, gameweek descending.
	ListByPlayer(ctx context.Context, playerID string) ([]Score, error)
}
