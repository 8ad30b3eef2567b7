package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fortuna/hardwood/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// ExistingIDs returns the set of game identifiers already persisted. The
// schedule normalizer consults this once per batch so new ids never collide.
func (r *GameRepository) ExistingIDs(ctx context.Context) (map[int]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT id FROM games`)
	if err != nil {
		return nil, fmt.Errorf("querying game ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// ExistingKeys returns the natural keys (date + home + away) of persisted
// games. Re-imported schedules are anti-joined against this set so a game
// never gets a second identifier.
func (r *GameRepository) ExistingKeys(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, `SELECT date, home_team_id, away_team_id FROM games`)
	if err != nil {
		return nil, fmt.Errorf("querying game keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var date time.Time
		var home, away int
		if err := rows.Scan(&date, &home, &away); err != nil {
			return nil, fmt.Errorf("scanning game key: %w", err)
		}
		keys[GameKey(date, home, away)] = struct{}{}
	}
	return keys, rows.Err()
}

// GameKey builds the natural key used for schedule dedup.
func GameKey(date time.Time, homeTeamID, awayTeamID int) string {
	return fmt.Sprintf("%s:%d:%d", date.Format("20060102"), homeTeamID, awayTeamID)
}

// InsertGames writes a normalized batch. Conflicting ids are left untouched;
// dedup of re-scraped schedules happens by id before this call.
func (r *GameRepository) InsertGames(ctx context.Context, games []store.Game) error {
	query := `
		INSERT INTO games (id, home_team_id, home_team_score, away_team_id, away_team_score, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, g := range games {
		if _, err := tx.ExecContext(ctx, query,
			g.ID, g.HomeTeamID, g.HomeTeamScore, g.AwayTeamID, g.AwayTeamScore, g.Date,
		); err != nil {
			return fmt.Errorf("inserting game %d: %w", g.ID, err)
		}
	}
	return tx.Commit()
}

// GetByID finds a game by its identifier.
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `
		SELECT id, home_team_id, home_team_score, away_team_id, away_team_score, date
		FROM games
		WHERE id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.ID, &game.HomeTeamID, &game.HomeTeamScore,
		&game.AwayTeamID, &game.AwayTeamScore, &game.Date,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}

// GetByDate returns all games on a calendar date.
func (r *GameRepository) GetByDate(ctx context.Context, date time.Time) ([]*store.Game, error) {
	query := `
		SELECT id, home_team_id, home_team_score, away_team_id, away_team_score, date
		FROM games
		WHERE date = $1
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := rows.Scan(
			&game.ID, &game.HomeTeamID, &game.HomeTeamScore,
			&game.AwayTeamID, &game.AwayTeamScore, &game.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// UnscrapedGames returns persisted games with no boxscore rows yet, in id
// order, so interrupted runs resume where they left off.
func (r *GameRepository) UnscrapedGames(ctx context.Context) ([]store.Game, error) {
	query := `
		SELECT g.id, g.home_team_id, g.home_team_score, g.away_team_id, g.away_team_score, g.date
		FROM games g
		WHERE NOT EXISTS (SELECT 1 FROM player_boxscores pb WHERE pb.game_id = g.id)
		ORDER BY g.id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying unscraped games: %w", err)
	}
	defer rows.Close()

	var games []store.Game
	for rows.Next() {
		var game store.Game
		if err := rows.Scan(
			&game.ID, &game.HomeTeamID, &game.HomeTeamScore,
			&game.AwayTeamID, &game.AwayTeamScore, &game.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
