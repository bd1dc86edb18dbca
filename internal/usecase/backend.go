package usecase

import (
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

// Backend bundles the repositories one backend driver provides.
type Backend struct {
	Teams   fantasyteam.Repository
	Rosters roster.Repository
	Players player.Repository
	Scores  gameweekscore.Repository
}
