package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

type fantasyTeamTableModel struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	Name            string    `db:"name"`
	TotalPoints     int       `db:"total_points"`
	GameweekPoints  int       `db:"gameweek_points"`
	BudgetRemaining int64     `db:"budget_remaining"`
	Rank            int       `db:"rank"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m fantasyTeamTableModel) toDomain() fantasyteam.Team {
	return fantasyteam.Team{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		TotalPoints:     m.TotalPoints,
		GameweekPoints:  m.GameweekPoints,
		BudgetRemaining: m.BudgetRemaining,
		Rank:            m.Rank,
		CreatedAt:       m.CreatedAt,
	}
}

// playerRow is a player joined with its club. Club columns are nullable
// because the join is a LEFT JOIN.
type playerRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Position      string         `db:"position"`
	Price         int64          `db:"price"`
	TotalPoints   int            `db:"total_points"`
	GamesPlayed   int            `db:"games_played"`
	ClubID        string         `db:"club_id"`
	ClubName      sql.NullString `db:"club_name"`
	ClubShortName sql.NullString `db:"club_short_name"`
	ClubLogoURL   sql.NullString `db:"club_logo_url"`
	ClubJerseyURL sql.NullString `db:"club_jersey_url"`
}

func (m playerRow) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		Name:        m.Name,
		Position:    player.Position(m.Position),
		Price:       m.Price,
		TotalPoints: m.TotalPoints,
		GamesPlayed: m.GamesPlayed,
		ClubID:      m.ClubID,
		Club: club.Club{
			ID:        m.ClubID,
			Name:      m.ClubName.String,
			ShortName: m.ClubShortName.String,
			LogoURL:   m.ClubLogoURL.String,
			JerseyURL: m.ClubJerseyURL.String,
		},
	}
}

type rosterEntryRow struct {
	EntryID       string `db:"entry_id"`
	TeamID        string `db:"team_id"`
	IsStarter     bool   `db:"is_starter"`
	IsCaptain     bool   `db:"is_captain"`
	IsViceCaptain bool   `db:"is_vice_captain"`
	SquadPosition int    `db:"squad_position"`
	playerRow
}

func (m rosterEntryRow) toDomain() roster.Entry {
	p := m.playerRow.toDomain()
	return roster.Entry{
		ID:            m.EntryID,
		TeamID:        m.TeamID,
		PlayerID:      p.ID,
		Position:      p.Position,
		IsStarter:     m.IsStarter,
		IsCaptain:     m.IsCaptain,
		IsViceCaptain: m.IsViceCaptain,
		SquadPosition: m.SquadPosition,
		Player:        p,
	}
}

type gameweekScoreTableModel struct {
	PlayerID    string `db:"player_id"`
	Gameweek    int    `db:"gameweek"`
	Minutes     int    `db:"minutes"`
	Goals       int    `db:"goals"`
	Assists     int    `db:"assists"`
	CleanSheet  bool   `db:"clean_sheet"`
	YellowCards int    `db:"yellow_cards"`
	RedCards    int    `db:"red_cards"`
	BonusPoints int    `db:"bonus_points"`
	TotalPoints int    `db:"total_points"`
}

func (m gameweekScoreTableModel) toDomain() gameweekscore.Score {
	return gameweekscore.Score{
		PlayerID:    m.PlayerID,
		Gameweek:    m.Gameweek,
		Minutes:     m.Minutes,
		Goals:       m.Goals,
		Assists:     m.Assists,
		CleanSheet:  m.CleanSheet,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
		BonusPoints: m.BonusPoints,
		TotalPoints: m.TotalPoints,
	}
}
