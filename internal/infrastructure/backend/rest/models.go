package rest

import (
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

const (
	clubEmbed    = "club:clubs(id,name,short_name,logo_url,jersey_url)"
	playerFields = "id,name,position,price,total_points,games_played,club_id"
)

var (
	playerSelect = playerFields + "," + clubEmbed
	rosterSelect = "id,team_id,player_id,is_starter,is_captain,is_vice_captain,squad_position,player:players(" + playerSelect + ")"
)

type fantasyTeamPayload struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	TotalPoints     int       `json:"total_points"`
	GameweekPoints  int       `json:"gameweek_points"`
	BudgetRemaining int64     `json:"budget_remaining"`
	Rank            int       `json:"rank"`
	CreatedAt       time.Time `json:"created_at"`
}

func (p fantasyTeamPayload) toDomain() fantasyteam.Team {
	return fantasyteam.Team{
		ID:              p.ID,
		UserID:          p.UserID,
		Name:            p.Name,
		TotalPoints:     p.TotalPoints,
		GameweekPoints:  p.GameweekPoints,
		BudgetRemaining: p.BudgetRemaining,
		Rank:            p.Rank,
		CreatedAt:       p.CreatedAt,
	}
}

type clubPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url"`
	JerseyURL string `json:"jersey_url"`
}

type playerPayload struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Position    string       `json:"position"`
	Price       int64        `json:"price"`
	TotalPoints int          `json:"total_points"`
	GamesPlayed int          `json:"games_played"`
	ClubID      string       `json:"club_id"`
	Club        *clubPayload `json:"club"`
}

func (p playerPayload) toDomain() player.Player {
	out := player.Player{
		ID:          p.ID,
		Name:        p.Name,
		Position:    player.Position(p.Position),
		Price:       p.Price,
		TotalPoints: p.TotalPoints,
		GamesPlayed: p.GamesPlayed,
		ClubID:      p.ClubID,
		Club:        club.Club{ID: p.ClubID},
	}
	if p.Club != nil {
		out.Club = club.Club{
			ID:        p.Club.ID,
			Name:      p.Club.Name,
			ShortName: p.Club.ShortName,
			LogoURL:   p.Club.LogoURL,
			JerseyURL: p.Club.JerseyURL,
		}
	}
	return out
}

type rosterEntryPayload struct {
	ID            string        `json:"id"`
	TeamID        string        `json:"team_id"`
	PlayerID      string        `json:"player_id"`
	IsStarter     bool          `json:"is_starter"`
	IsCaptain     bool          `json:"is_captain"`
	IsViceCaptain bool          `json:"is_vice_captain"`
	SquadPosition int           `json:"squad_position"`
	Player        playerPayload `json:"player"`
}

func (p rosterEntryPayload) toDomain() roster.Entry {
	pl := p.Player.toDomain()
	if pl.ID == "" {
		pl.ID = p.PlayerID
	}
	return roster.Entry{
		ID:            p.ID,
		TeamID:        p.TeamID,
		PlayerID:      p.PlayerID,
		Position:      pl.Position,
		IsStarter:     p.IsStarter,
		IsCaptain:     p.IsCaptain,
		IsViceCaptain: p.IsViceCaptain,
		SquadPosition: p.SquadPosition,
		Player:        pl,
	}
}

type scorePayload struct {
	PlayerID    string `json:"player_id"`
	Gameweek    int    `json:"gameweek"`
	Minutes     int    `json:"minutes"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	CleanSheet  bool   `json:"clean_sheet"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
	BonusPoints int    `json:"bonus_points"`
	TotalPoints int    `json:"total_points"`
}

func (p scorePayload) toDomain() gameweekscore.Score {
	return gameweekscore.Score{
		PlayerID:    p.PlayerID,
		Gameweek:    p.Gameweek,
		Minutes:     p.Minutes,
		Goals:       p.Goals,
		Assists:     p.Assists,
		CleanSheet:  p.CleanSheet,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
		BonusPoints: p.BonusPoints,
		TotalPoints: p.TotalPoints,
	}
}

type replacePlayerPayload struct {
	PlayerID string `json:"player_id"`
}

type armbandRPCPayload struct {
	TeamID  string `json:"p_team_id"`
	EntryID string `json:"p_entry_id"`
}

type swapRPCPayload struct {
	TeamID         string `json:"p_team_id"`
	BenchEntryID   string `json:"p_bench_entry_id"`
	StarterEntryID string `json:"p_starter_entry_id"`
}
