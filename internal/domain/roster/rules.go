package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

var (
	ErrEntryNotFound    = errors.New("roster entry not found")
	ErrInvalidFormation = errors.New("invalid formation")
	ErrCaptainConflict  = errors.New("captain and vice captain must be different entries")
	ErrPositionMismatch = errors.New("replacement player position does not match slot")
	ErrDuplicatePlayer  = errors.New("player already in roster")
	ErrIncompatibleSwap = errors.New("incompatible starter swap")
	ErrMultipleArmbands = errors.New("more than one captain or vice captain")
)

// Rules stores starting-lineup constraints.
type Rules struct {
	StarterCount         int                     `yaml:"starter_count"`
	Goalkeepers          int                     `yaml:"goalkeepers"`
	MinByPosition        map[player.Position]int `yaml:"min_by_position"`
	MaxByPosition        map[player.Position]int `yaml:"max_by_position"`
	EnforcePositionMatch bool                    `yaml:"enforce_position_match"`
}

func DefaultRules() Rules {
	return Rules{
		StarterCount: 11,
		Goalkeepers:  1,
		MinByPosition: map[player.Position]int{
			player.PositionDefender:   3,
			player.PositionMidfielder: 2,
			player.PositionForward:    1,
		},
		MaxByPosition: map[player.Position]int{
			player.PositionDefender:   5,
			player.PositionMidfielder: 5,
			player.PositionForward:    3,
		},
	}
}

func (r Rules) ValidateFormation(f Formation) error {
	if f.Goalkeepers != r.Goalkeepers {
		return fmt.Errorf("%w: expected %d goalkeeper, got %d", ErrInvalidFormation, r.Goalkeepers, f.Goalkeepers)
	}
	if f.Goalkeepers+f.Outfield() != r.StarterCount {
		return fmt.Errorf("%w: expected %d starters, got %d", ErrInvalidFormation, r.StarterCount, f.Goalkeepers+f.Outfield())
	}
	for pos, minRequired := range r.MinByPosition {
		if f.Count(pos) < minRequired {
			return fmt.Errorf("%w: pos=%s min=%d current=%d", ErrInvalidFormation, pos, minRequired, f.Count(pos))
		}
	}
	for pos, maxAllowed := range r.MaxByPosition {
		if f.Count(pos) > maxAllowed {
			return fmt.Errorf("%w: pos=%s max=%d current=%d", ErrInvalidFormation, pos, maxAllowed, f.Count(pos))
		}
	}

	return nil
}

// ValidateArmbands checks that at most one captain and one vice captain
// exist and that they are different entries.
func ValidateArmbands(entries []Entry) error {
	captains, vices := 0, 0
	for _, e := range entries {
		if e.IsCaptain {
			captains++
		}
		if e.IsViceCaptain {
			vices++
		}
		if e.IsCaptain && e.IsViceCaptain {
			return fmt.Errorf("%w: entry=%s", ErrCaptainConflict, e.ID)
		}
	}
	if captains > 1 || vices > 1 {
		return fmt.Errorf("%w: captains=%d vice_captains=%d", ErrMultipleArmbands, captains, vices)
	}
	return nil
}

// ValidateReplacement checks a player swap-in for one slot. Position match is
// only enforced when the rules ask for it.
func ValidateReplacement(entries []Entry, entryID string, replacement player.Player, rules Rules) error {
	target, ok := Find(entries, entryID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	if target.PlayerID == replacement.ID {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, replacement.ID)
	}
	for _, e := range entries {
		if e.ID != entryID && e.PlayerID == replacement.ID {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, replacement.ID)
		}
	}
	if rules.EnforcePositionMatch && replacement.Position != target.Position {
		return fmt.Errorf("%w: slot=%s player=%s", ErrPositionMismatch, target.Position, replacement.Position)
	}

	return nil
}

// ApplySwap returns a copy of entries with the starter flags of the two
// entries exchanged.
func ApplySwap(entries []Entry, benchEntryID, starterEntryID string) ([]Entry, error) {
	out := CloneEntries(entries)
	benchIdx, starterIdx := -1, -1
	for i, e := range out {
		switch e.ID {
		case benchEntryID:
			benchIdx = i
		case starterEntryID:
			starterIdx = i
		}
	}
	if benchIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, benchEntryID)
	}
	if starterIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, starterEntryID)
	}
	if out[benchIdx].IsStarter {
		return nil, fmt.Errorf("%w: entry %s is not on the bench", ErrIncompatibleSwap, benchEntryID)
	}
	if !out[starterIdx].IsStarter {
		return nil, fmt.Errorf("%w: entry %s is not a starter", ErrIncompatibleSwap, starterEntryID)
	}

	out[benchIdx].IsStarter = true
	out[starterIdx].IsStarter = false
	return out, nil
}

// ValidateSwap accepts a swap when goalkeepers only trade with goalkeepers and
// the resulting starting eleven still forms a valid formation.
func ValidateSwap(entries []Entry, benchEntryID, starterEntryID string, rules Rules) error {
	swapped, err := ApplySwap(entries, benchEntryID, starterEntryID)
	if err != nil {
		return err
	}

	bench, _ := Find(entries, benchEntryID)
	starter, _ := Find(entries, starterEntryID)
	benchIsGK := bench.Position == player.PositionGoalkeeper
	starterIsGK := starter.Position == player.PositionGoalkeeper
	if benchIsGK != starterIsGK {
		return fmt.Errorf("%w: %s cannot replace %s", ErrIncompatibleSwap, bench.Position, starter.Position)
	}

	return rules.ValidateFormation(FormationCounts(swapped))
}
