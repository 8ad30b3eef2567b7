package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/store/repository"
	"github.com/fortuna/hardwood/internal/teams"
)

// StatsService assembles read views that span several repositories.
type StatsService struct {
	games     *repository.GameRepository
	boxscores *repository.BoxscoreRepository
	resolver  *teams.Resolver
}

// NewStatsService creates a stats service over the store.
func NewStatsService(db *store.Database, resolver *teams.Resolver) *StatsService {
	return &StatsService{
		games:     repository.NewGameRepository(db),
		boxscores: repository.NewBoxscoreRepository(db),
		resolver:  resolver,
	}
}

// GameSummary is the full view of one game: the schedule row, both franchise
// entries, the player lines split by side, and the two totals lines.
type GameSummary struct {
	Game        *store.Game               `json:"game"`
	HomeTeam    teams.Franchise           `json:"home_team"`
	AwayTeam    teams.Franchise           `json:"away_team"`
	HomePlayers []store.PlayerBoxscoreRow `json:"home_players"`
	AwayPlayers []store.PlayerBoxscoreRow `json:"away_players"`
	Totals      []store.TeamTotalsRow     `json:"totals"`
}

// GetGameSummary builds the summary view for one game.
func (s *StatsService) GetGameSummary(ctx context.Context, gameID int) (*GameSummary, error) {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	homeAbbr, err := s.resolver.Abbreviation(game.HomeTeamID)
	if err != nil {
		return nil, err
	}
	home, err := s.resolver.Resolve(homeAbbr)
	if err != nil {
		return nil, err
	}
	awayAbbr, err := s.resolver.Abbreviation(game.AwayTeamID)
	if err != nil {
		return nil, err
	}
	away, err := s.resolver.Resolve(awayAbbr)
	if err != nil {
		return nil, err
	}

	players, err := s.boxscores.GetPlayerRowsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching boxscore: %w", err)
	}
	totals, err := s.boxscores.GetTeamTotalsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching totals: %w", err)
	}

	summary := &GameSummary{
		Game:     game,
		HomeTeam: home,
		AwayTeam: away,
		Totals:   totals,
	}
	for _, row := range players {
		if row.Team == homeAbbr {
			summary.HomePlayers = append(summary.HomePlayers, row)
		} else {
			summary.AwayPlayers = append(summary.AwayPlayers, row)
		}
	}
	return summary, nil
}

// GetTeamSeasonAverages computes a team's per-game averages across one season,
// identified by its closing year.
func (s *StatsService) GetTeamSeasonAverages(ctx context.Context, identifier string, seasonYear int) (*store.TeamAverages, error) {
	franchise, err := s.resolver.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	from, to := SeasonWindow(seasonYear)
	return s.boxscores.TeamAverages(ctx, franchise.Abbreviation, from, to)
}

// SeasonWindow bounds a season by its closing year. The window runs from the
// first of August before the season to the end of July after it, wide enough
// for lockout-shifted schedules and the full playoffs.
func SeasonWindow(year int) (from, to time.Time) {
	from = time.Date(year-1, time.August, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(year, time.July, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}
