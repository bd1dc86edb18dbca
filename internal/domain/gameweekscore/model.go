package gameweekscore

import "fmt"

// Score is one player's stat line for one gameweek. Rows are append-only.
type Score struct {
	PlayerID    string
	Gameweek    int
	Minutes     int
	Goals       int
	Assists     int
	CleanSheet  bool
	YellowCards int
	RedCards    int
	BonusPoints int
	TotalPoints int
}

func (s Score) Validate() error {
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if s.Gameweek <= 0 {
		return fmt.Errorf("gameweek must be greater than zero")
	}
	if s.Minutes < 0 {
		return fmt.Errorf("minutes must be >= 0")
	}

	return nil
}
