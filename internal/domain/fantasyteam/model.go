package fantasyteam

import "time"

// Team is a user's fantasy team. Points and rank are maintained by external
// aggregation jobs; this service only reads them.
type Team struct {
	ID              string
	UserID          string
	Name            string
	TotalPoints     int
	GameweekPoints  int
	BudgetRemaining int64
	Rank            int
	CreatedAt       time.Time
}
