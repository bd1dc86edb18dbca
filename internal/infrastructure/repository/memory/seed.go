package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/club"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-roster/internal/domain/gameweekscore"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
)

const (
	DemoUserID = "demo-user"
	DemoTeamID = "team-demo"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: "idn-persija", Name: "Persija Jakarta", ShortName: "PSJ", LogoURL: "/assets/clubs/psj.png", JerseyURL: "/assets/jerseys/psj.png"},
		{ID: "idn-persib", Name: "Persib Bandung", ShortName: "PSB", LogoURL: "/assets/clubs/psb.png", JerseyURL: "/assets/jerseys/psb.png"},
		{ID: "idn-persebaya", Name: "Persebaya Surabaya", ShortName: "PRB", LogoURL: "/assets/clubs/prb.png", JerseyURL: "/assets/jerseys/prb.png"},
		{ID: "idn-bali-united", Name: "Bali United", ShortName: "BAL", LogoURL: "/assets/clubs/bal.png", JerseyURL: "/assets/jerseys/bal.png"},
		{ID: "idn-psm", Name: "PSM Makassar", ShortName: "PSM", LogoURL: "/assets/clubs/psm.png", JerseyURL: "/assets/jerseys/psm.png"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "idn-gk-01", Name: "Andritany Ardhiyasa", Position: player.PositionGoalkeeper, Price: 55, TotalPoints: 62, GamesPlayed: 14, ClubID: "idn-persija"},
		{ID: "idn-gk-02", Name: "Teja Paku Alam", Position: player.PositionGoalkeeper, Price: 50, TotalPoints: 48, GamesPlayed: 13, ClubID: "idn-persib"},
		{ID: "idn-gk-03", Name: "Ernando Ari", Position: player.PositionGoalkeeper, Price: 45, TotalPoints: 41, GamesPlayed: 12, ClubID: "idn-persebaya"},
		{ID: "idn-gk-04", Name: "Reza Arya", Position: player.PositionGoalkeeper, Price: 45, TotalPoints: 35, GamesPlayed: 11, ClubID: "idn-psm"},

		{ID: "idn-def-01", Name: "Rizky Ridho", Position: player.PositionDefender, Price: 60, TotalPoints: 70, GamesPlayed: 14, ClubID: "idn-persija"},
		{ID: "idn-def-02", Name: "Nick Kuipers", Position: player.PositionDefender, Price: 55, TotalPoints: 58, GamesPlayed: 14, ClubID: "idn-persib"},
		{ID: "idn-def-03", Name: "Rachmat Irianto", Position: player.PositionDefender, Price: 50, TotalPoints: 52, GamesPlayed: 13, ClubID: "idn-persib"},
		{ID: "idn-def-04", Name: "Dusan Stevanovic", Position: player.PositionDefender, Price: 50, TotalPoints: 44, GamesPlayed: 12, ClubID: "idn-persebaya"},
		{ID: "idn-def-05", Name: "Ricky Fajrin", Position: player.PositionDefender, Price: 45, TotalPoints: 40, GamesPlayed: 13, ClubID: "idn-bali-united"},
		{ID: "idn-def-06", Name: "Yuran Fernandes", Position: player.PositionDefender, Price: 50, TotalPoints: 46, GamesPlayed: 14, ClubID: "idn-psm"},
		{ID: "idn-def-07", Name: "Ondrej Kudela", Position: player.PositionDefender, Price: 45, TotalPoints: 37, GamesPlayed: 11, ClubID: "idn-persija"},

		{ID: "idn-mid-01", Name: "Marc Klok", Position: player.PositionMidfielder, Price: 80, TotalPoints: 88, GamesPlayed: 14, ClubID: "idn-persib"},
		{ID: "idn-mid-02", Name: "Witan Sulaeman", Position: player.PositionMidfielder, Price: 75, TotalPoints: 81, GamesPlayed: 14, ClubID: "idn-persija"},
		{ID: "idn-mid-03", Name: "Bruno Moreira", Position: player.PositionMidfielder, Price: 70, TotalPoints: 76, GamesPlayed: 13, ClubID: "idn-persebaya"},
		{ID: "idn-mid-04", Name: "Eber Bessa", Position: player.PositionMidfielder, Price: 65, TotalPoints: 60, GamesPlayed: 14, ClubID: "idn-bali-united"},
		{ID: "idn-mid-05", Name: "Ananda Raehan", Position: player.PositionMidfielder, Price: 55, TotalPoints: 49, GamesPlayed: 12, ClubID: "idn-psm"},
		{ID: "idn-mid-06", Name: "Beckham Putra", Position: player.PositionMidfielder, Price: 60, TotalPoints: 55, GamesPlayed: 13, ClubID: "idn-persib"},
		{ID: "idn-mid-07", Name: "Hanif Sjahbandi", Position: player.PositionMidfielder, Price: 50, TotalPoints: 38, GamesPlayed: 10, ClubID: "idn-persija"},

		{ID: "idn-fwd-01", Name: "David da Silva", Position: player.PositionForward, Price: 95, TotalPoints: 102, GamesPlayed: 14, ClubID: "idn-persib"},
		{ID: "idn-fwd-02", Name: "Gustavo Almeida", Position: player.PositionForward, Price: 85, TotalPoints: 90, GamesPlayed: 14, ClubID: "idn-persija"},
		{ID: "idn-fwd-03", Name: "Spasojevic Ilija", Position: player.PositionForward, Price: 75, TotalPoints: 68, GamesPlayed: 13, ClubID: "idn-bali-united"},
		{ID: "idn-fwd-04", Name: "Flavio Silva", Position: player.PositionForward, Price: 70, TotalPoints: 57, GamesPlayed: 12, ClubID: "idn-persebaya"},
		{ID: "idn-fwd-05", Name: "Ramadhan Sananta", Position: player.PositionForward, Price: 60, TotalPoints: 42, GamesPlayed: 11, ClubID: "idn-psm"},
	}
}

func SeedFantasyTeams() []fantasyteam.Team {
	return []fantasyteam.Team{
		{
			ID:              DemoTeamID,
			UserID:          DemoUserID,
			Name:            "Garuda FC",
			TotalPoints:     412,
			GameweekPoints:  58,
			BudgetRemaining: 15,
			Rank:            1204,
			CreatedAt:       time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

// SeedRosterEntries builds a 15-man squad for the demo team starting 4-4-2.
func SeedRosterEntries() []roster.Entry {
	squad := []struct {
		playerID string
		starter  bool
	}{
		{"idn-gk-01", true},
		{"idn-def-01", true},
		{"idn-def-02", true},
		{"idn-def-03", true},
		{"idn-def-06", true},
		{"idn-mid-01", true},
		{"idn-mid-02", true},
		{"idn-mid-03", true},
		{"idn-mid-04", true},
		{"idn-fwd-01", true},
		{"idn-fwd-02", true},
		{"idn-gk-02", false},
		{"idn-def-05", false},
		{"idn-mid-05", false},
		{"idn-fwd-03", false},
	}

	out := make([]roster.Entry, 0, len(squad))
	for i, s := range squad {
		out = append(out, roster.Entry{
			ID:            fmt.Sprintf("entry-%02d", i+1),
			TeamID:        DemoTeamID,
			PlayerID:      s.playerID,
			IsStarter:     s.starter,
			IsCaptain:     s.playerID == "idn-fwd-01",
			IsViceCaptain: s.playerID == "idn-mid-01",
			SquadPosition: i + 1,
		})
	}
	return out
}

// SeedScores gives every player six gameweeks of history.
func SeedScores() []gameweekscore.Score {
	pattern := [][]int{
		{10, 0, 6, 4, 2, 8},
		{2, 6, 1, 3, 9, 2},
		{7, 2, 2, 12, 1, 5},
		{1, 1, 6, 2, 2, 3},
	}

	players := SeedPlayers()
	out := make([]gameweekscore.Score, 0, len(players)*6)
	for i, p := range players {
		points := pattern[i%len(pattern)]
		for gw := 1; gw <= len(points); gw++ {
			total := points[len(points)-gw]
			out = append(out, gameweekscore.Score{
				PlayerID:    p.ID,
				Gameweek:    gw,
				Minutes:     90,
				Goals:       total / 6,
				Assists:     (total / 3) % 2,
				CleanSheet:  p.Position != player.PositionForward && total >= 6,
				BonusPoints: total / 4,
				TotalPoints: total,
			})
		}
	}
	return out
}
