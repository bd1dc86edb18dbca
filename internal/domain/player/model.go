package player

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
	return pos, nil
}

// Player is a selectable athlete. Price is stored in tenths (55 = 5.5).
type Player struct {
	ID          string
	Name        string
	Position    Position
	Price       int64
	TotalPoints int
	GamesPlayed int
	ClubID      string
	Club        club.Club
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}

	return nil
}

// FilterByPosition keeps the input order.
func FilterByPosition(players []Player, pos Position) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.Position == pos {
			out = append(out, p)
		}
	}
	return out
}
