package roster

import "context"

// Repository is the backend boundary for roster entries. Writes report
// ErrEntryNotFound when the entry does not belong to the team.
type Repository interface {
	// ListByTeam returns entries joined with player and club, ordered by squad position.
	ListByTeam(ctx context.Context, teamID string) ([]Entry, error)
	ReplacePlayer(ctx context.Context, teamID, entryID, playerID string) error
	// SetCaptain atomically clears any previous captain of the team and marks
	// entryID. The target loses its vice-captain flag in the same write.
	SetCaptain(ctx context.Context, teamID, entryID string) error
	// SetViceCaptain mirrors SetCaptain for the vice-captain flag.
	SetViceCaptain(ctx context.Context, teamID, entryID string) error
	// SwapStarter flips the starter flag of a bench entry and a starter in one write.
	SwapStarter(ctx context.Context, teamID, benchEntryID, starterEntryID string) error
}
