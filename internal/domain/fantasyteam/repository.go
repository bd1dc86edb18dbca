package fantasyteam

import "context"

// Repository exposes fantasy team reads. A missing team is reported with
// exists=false and a nil error.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Team, bool, error)
}
