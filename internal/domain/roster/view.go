package roster

import (
	"fmt"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// Formation counts starters by position.
type Formation struct {
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

func (f Formation) Outfield() int {
	return f.Defenders + f.Midfielders + f.Forwards
}

func (f Formation) Count(pos player.Position) int {
	switch pos {
	case player.PositionGoalkeeper:
		return f.Goalkeepers
	case player.PositionDefender:
		return f.Defenders
	case player.PositionMidfielder:
		return f.Midfielders
	case player.PositionForward:
		return f.Forwards
	default:
		return 0
	}
}

// String renders the outfield shape, e.g. "4-4-2".
func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d", f.Defenders, f.Midfielders, f.Forwards)
}

// PlayersByPosition keeps the order the entries arrived in.
func PlayersByPosition(entries []Entry, pos player.Position, isStarter bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Position == pos && e.IsStarter == isStarter {
			out = append(out, e)
		}
	}
	return out
}

func FormationCounts(entries []Entry) Formation {
	var f Formation
	for _, e := range entries {
		if !e.IsStarter {
			continue
		}
		switch e.Position {
		case player.PositionGoalkeeper:
			f.Goalkeepers++
		case player.PositionDefender:
			f.Defenders++
		case player.PositionMidfielder:
			f.Midfielders++
		case player.PositionForward:
			f.Forwards++
		}
	}
	return f
}

func Captain(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.IsCaptain {
			return e, true
		}
	}
	return Entry{}, false
}

func ViceCaptain(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.IsViceCaptain {
			return e, true
		}
	}
	return Entry{}, false
}

func Starters(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsStarter {
			out = append(out, e)
		}
	}
	return out
}

func Bench(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.IsStarter {
			out = append(out, e)
		}
	}
	return out
}

func Find(entries []Entry, entryID string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return Entry{}, false
}

func PlayerIDs(entries []Entry) map[string]struct{} {
	out := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		out[e.PlayerID] = struct{}{}
	}
	return out
}
