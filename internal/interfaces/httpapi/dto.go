package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/transfer"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

type entryRequest struct {
	EntryID string `json:"entry_id" validate:"required"`
}

type swapRequest struct {
	BenchEntryID   string `json:"bench_entry_id" validate:"required"`
	StarterEntryID string `json:"starter_entry_id" validate:"required,nefield=BenchEntryID"`
}

type replacePlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type clubDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url,omitempty"`
	JerseyURL string `json:"jersey_url,omitempty"`
}

type playerDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Price       float64 `json:"price"`
	TotalPoints int     `json:"total_points"`
	GamesPlayed int     `json:"games_played"`
	Club        clubDTO `json:"club"`
}

type entryDTO struct {
	EntryID       string    `json:"entry_id"`
	SquadPosition int       `json:"squad_position"`
	IsStarter     bool      `json:"is_starter"`
	IsCaptain     bool      `json:"is_captain"`
	IsViceCaptain bool      `json:"is_vice_captain"`
	Player        playerDTO `json:"player"`
}

type teamDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	TotalPoints     int     `json:"total_points"`
	GameweekPoints  int     `json:"gameweek_points"`
	BudgetRemaining float64 `json:"budget_remaining"`
	Rank            int     `json:"rank"`
}

type formationDTO struct {
	Shape       string `json:"shape"`
	Goalkeepers int    `json:"goalkeepers"`
	Defenders   int    `json:"defenders"`
	Midfielders int    `json:"midfielders"`
	Forwards    int    `json:"forwards"`
}

type pitchDTO struct {
	Goalkeepers []entryDTO `json:"goalkeepers"`
	Defenders   []entryDTO `json:"defenders"`
	Midfielders []entryDTO `json:"midfielders"`
	Forwards    []entryDTO `json:"forwards"`
}

type transferWindowDTO struct {
	Open     bool   `json:"open"`
	Deadline string `json:"deadline,omitempty"`
}

type editStatusDTO struct {
	State          string `json:"state"`
	StartedAt      string `json:"started_at,omitempty"`
	AvailableCount int    `json:"available_count"`
}

type myTeamDTO struct {
	Status      string            `json:"status"`
	LoadedAt    string            `json:"loaded_at,omitempty"`
	Team        *teamDTO          `json:"team,omitempty"`
	Formation   *formationDTO     `json:"formation,omitempty"`
	Captain     *entryDTO         `json:"captain,omitempty"`
	ViceCaptain *entryDTO         `json:"vice_captain,omitempty"`
	Starters    *pitchDTO         `json:"starters,omitempty"`
	Bench       []entryDTO        `json:"bench,omitempty"`
	Transfers   transferWindowDTO `json:"transfers"`
	Edit        editStatusDTO     `json:"edit"`
}

type candidatesDTO struct {
	Slot    entryDTO    `json:"slot"`
	Players []playerDTO `json:"players"`
}

type playerFormDTO struct {
	EntryID        string  `json:"entry_id"`
	PlayerID       string  `json:"player_id"`
	PlayerName     string  `json:"player_name"`
	Position       string  `json:"position"`
	IsStarter      bool    `json:"is_starter"`
	Form           float64 `json:"form"`
	PointsPerMatch float64 `json:"points_per_match"`
	TotalBonus     int     `json:"total_bonus"`
}

type scoreDTO struct {
	Gameweek    int  `json:"gameweek"`
	Minutes     int  `json:"minutes"`
	Goals       int  `json:"goals"`
	Assists     int  `json:"assists"`
	CleanSheet  bool `json:"clean_sheet"`
	YellowCards int  `json:"yellow_cards"`
	RedCards    int  `json:"red_cards"`
	BonusPoints int  `json:"bonus_points"`
	TotalPoints int  `json:"total_points"`
}

// playerProfileDTO leaves fields without a data source null and names them
// in Unavailable.
type playerProfileDTO struct {
	Player           playerDTO  `json:"player"`
	Form             float64    `json:"form"`
	PointsPerMatch   float64    `json:"points_per_match"`
	TotalBonus       int        `json:"total_bonus"`
	History          []scoreDTO `json:"history"`
	UpcomingFixtures []string   `json:"upcoming_fixtures"`
	OwnershipPercent *float64   `json:"ownership_percent"`
	ICTIndex         *float64   `json:"ict_index"`
	Unavailable      []string   `json:"unavailable"`
}

func priceToDisplay(tenths int64) float64 {
	return float64(tenths) / 10
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:        c.ID,
		Name:      c.Name,
		ShortName: c.ShortName,
		LogoURL:   c.LogoURL,
		JerseyURL: c.JerseyURL,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		Name:        p.Name,
		Position:    string(p.Position),
		Price:       priceToDisplay(p.Price),
		TotalPoints: p.TotalPoints,
		GamesPlayed: p.GamesPlayed,
		Club:        clubToDTO(p.Club),
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

func entryToDTO(e roster.Entry) entryDTO {
	return entryDTO{
		EntryID:       e.ID,
		SquadPosition: e.SquadPosition,
		IsStarter:     e.IsStarter,
		IsCaptain:     e.IsCaptain,
		IsViceCaptain: e.IsViceCaptain,
		Player:        playerToDTO(e.Player),
	}
}

func entriesToDTO(entries []roster.Entry) []entryDTO {
	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryToDTO(e))
	}
	return out
}

func teamToDTO(t fantasyteam.Team) *teamDTO {
	return &teamDTO{
		ID:              t.ID,
		Name:            t.Name,
		TotalPoints:     t.TotalPoints,
		GameweekPoints:  t.GameweekPoints,
		BudgetRemaining: priceToDisplay(t.BudgetRemaining),
		Rank:            t.Rank,
	}
}

func transferWindowToDTO(w transfer.Window, now time.Time) transferWindowDTO {
	return transferWindowDTO{
		Open:     w.IsOpen(now),
		Deadline: formatTime(w.Deadline),
	}
}

func editStatusToDTO(s usecase.EditStatus) editStatusDTO {
	return editStatusDTO{
		State:          string(s.State),
		StartedAt:      formatTime(s.StartedAt),
		AvailableCount: s.AvailableCount,
	}
}

// myTeamToDTO derives the roster view model from a snapshot. Only a ready
// snapshot carries team and pitch data.
func myTeamToDTO(snapshot usecase.RosterSnapshot, window transfer.Window, edit usecase.EditStatus, now time.Time) myTeamDTO {
	out := myTeamDTO{
		Status:    string(snapshot.Status),
		LoadedAt:  formatTime(snapshot.LoadedAt),
		Transfers: transferWindowToDTO(window, now),
		Edit:      editStatusToDTO(edit),
	}
	if snapshot.Status != usecase.RosterStatusReady {
		return out
	}

	entries := snapshot.Entries
	formation := roster.FormationCounts(entries)
	out.Team = teamToDTO(snapshot.Team)
	out.Formation = &formationDTO{
		Shape:       formation.String(),
		Goalkeepers: formation.Goalkeepers,
		Defenders:   formation.Defenders,
		Midfielders: formation.Midfielders,
		Forwards:    formation.Forwards,
	}
	if captain, ok := roster.Captain(entries); ok {
		dto := entryToDTO(captain)
		out.Captain = &dto
	}
	if vice, ok := roster.ViceCaptain(entries); ok {
		dto := entryToDTO(vice)
		out.ViceCaptain = &dto
	}
	out.Starters = &pitchDTO{
		Goalkeepers: entriesToDTO(roster.PlayersByPosition(entries, player.PositionGoalkeeper, true)),
		Defenders:   entriesToDTO(roster.PlayersByPosition(entries, player.PositionDefender, true)),
		Midfielders: entriesToDTO(roster.PlayersByPosition(entries, player.PositionMidfielder, true)),
		Forwards:    entriesToDTO(roster.PlayersByPosition(entries, player.PositionForward, true)),
	}
	out.Bench = entriesToDTO(roster.Bench(entries))
	return out
}

func playerFormsToDTO(items []usecase.PlayerForm) []playerFormDTO {
	out := make([]playerFormDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerFormDTO{
			EntryID:        item.EntryID,
			PlayerID:       item.PlayerID,
			PlayerName:     item.PlayerName,
			Position:       string(item.Position),
			IsStarter:      item.IsStarter,
			Form:           item.Form,
			PointsPerMatch: item.PointsPerMatch,
			TotalBonus:     item.TotalBonus,
		})
	}
	return out
}

func scoresToDTO(scores []gameweekscore.Score) []scoreDTO {
	out := make([]scoreDTO, 0, len(scores))
	for _, s := range scores {
		out = append(out, scoreDTO{
			Gameweek:    s.Gameweek,
			Minutes:     s.Minutes,
			Goals:       s.Goals,
			Assists:     s.Assists,
			CleanSheet:  s.CleanSheet,
			YellowCards: s.YellowCards,
			RedCards:    s.RedCards,
			BonusPoints: s.BonusPoints,
			TotalPoints: s.TotalPoints,
		})
	}
	return out
}

func profileToDTO(p usecase.PlayerProfile) playerProfileDTO {
	return playerProfileDTO{
		Player:           playerToDTO(p.Player),
		Form:             p.Form,
		PointsPerMatch:   p.PointsPerMatch,
		TotalBonus:       p.TotalBonus,
		History:          scoresToDTO(p.Scores),
		UpcomingFixtures: p.UpcomingFixtures,
		OwnershipPercent: p.OwnershipPercent,
		ICTIndex:         p.ICTIndex,
		Unavailable:      p.Unavailable(),
	}
}
