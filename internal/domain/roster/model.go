package roster

import "github.com/riskibarqy/fantasy-roster/internal/domain/player"

// Entry assigns one player to one slot in a fantasy squad. Position is
// inherited from the referenced player.
type Entry struct {
	ID            string
	TeamID        string
	PlayerID      string
	Position      player.Position
	IsStarter     bool
	IsCaptain     bool
	IsViceCaptain bool
	SquadPosition int
	Player        player.Player
}

func CloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	return append([]Entry(nil), entries...)
}
