package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/hardwood/internal/store"
)

// BoxscoreRepository persists normalized player and team-total rows.
type BoxscoreRepository struct {
	db *store.Database
}

// NewBoxscoreRepository creates a new boxscore repository.
func NewBoxscoreRepository(db *store.Database) *BoxscoreRepository {
	return &BoxscoreRepository{db: db}
}

// InsertPlayerRows writes one game's player rows in a single transaction so
// a failed game never leaves a partial boxscore behind.
func (r *BoxscoreRepository) InsertPlayerRows(ctx context.Context, rows []store.PlayerBoxscoreRow) error {
	query := `
		INSERT INTO player_boxscores (
			game_id, team, opponent, outcome, starter, player_id, seconds_played,
			made_field_goal, attempted_field_goal, field_goal_percent,
			made_three_point, attempted_three_point, three_point_percent,
			made_free_throw, attempted_free_throw, free_throw_percent,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, personal_fouls, points, plus_minus
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
	`

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query,
			row.GameID, row.Team, row.Opponent, row.Outcome, row.Starter, row.PlayerID, row.SecondsPlayed,
			row.MadeFieldGoal, row.AttemptedFieldGoal, row.FieldGoalPercent,
			row.MadeThreePoint, row.AttemptedThreePoint, row.ThreePointPercent,
			row.MadeFreeThrow, row.AttemptedFreeThrow, row.FreeThrowPercent,
			row.OffensiveRebounds, row.DefensiveRebounds, row.TotalRebounds,
			row.Assists, row.Steals, row.Blocks, row.Turnovers, row.PersonalFouls, row.Points, row.PlusMinus,
		); err != nil {
			return fmt.Errorf("inserting player row %s/%d: %w", row.PlayerID, row.GameID, err)
		}
	}
	return tx.Commit()
}

// InsertTeamTotals writes one game's two aggregate rows.
func (r *BoxscoreRepository) InsertTeamTotals(ctx context.Context, rows []store.TeamTotalsRow) error {
	query := `
		INSERT INTO team_totals (
			game_id, team, opponent, outcome, location, seconds_played,
			made_field_goal, attempted_field_goal, field_goal_percent,
			made_three_point, attempted_three_point, three_point_percent,
			made_free_throw, attempted_free_throw, free_throw_percent,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, personal_fouls, points
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
	`

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query,
			row.GameID, row.Team, row.Opponent, row.Outcome, row.Location, row.SecondsPlayed,
			row.MadeFieldGoal, row.AttemptedFieldGoal, row.FieldGoalPercent,
			row.MadeThreePoint, row.AttemptedThreePoint, row.ThreePointPercent,
			row.MadeFreeThrow, row.AttemptedFreeThrow, row.FreeThrowPercent,
			row.OffensiveRebounds, row.DefensiveRebounds, row.TotalRebounds,
			row.Assists, row.Steals, row.Blocks, row.Turnovers, row.PersonalFouls, row.Points,
		); err != nil {
			return fmt.Errorf("inserting totals row %s/%d: %w", row.Team, row.GameID, err)
		}
	}
	return tx.Commit()
}

// TeamAverages aggregates a team's per-game means over a date range from its
// totals rows. A team with no games in the range comes back with Games == 0
// and null averages.
func (r *BoxscoreRepository) TeamAverages(ctx context.Context, team string, from, to time.Time) (*store.TeamAverages, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(t.outcome), 0),
			AVG(t.points), AVG(t.total_rebounds), AVG(t.assists),
			AVG(t.steals), AVG(t.blocks), AVG(t.turnovers), AVG(t.field_goal_percent)
		FROM team_totals t
		JOIN games g ON g.id = t.game_id
		WHERE t.team = $1 AND g.date BETWEEN $2 AND $3
	`

	avg := &store.TeamAverages{Team: team}
	err := r.db.DB().QueryRowContext(ctx, query, team, from, to).Scan(
		&avg.Games, &avg.Wins,
		&avg.Points, &avg.TotalRebounds, &avg.Assists,
		&avg.Steals, &avg.Blocks, &avg.Turnovers, &avg.FieldGoalPercent,
	)
	if err != nil {
		return nil, fmt.Errorf("querying team averages: %w", err)
	}
	return avg, nil
}

// GetPlayerRowsByGame returns one game's player rows, home team first.
func (r *BoxscoreRepository) GetPlayerRowsByGame(ctx context.Context, gameID int) ([]store.PlayerBoxscoreRow, error) {
	query := `
		SELECT game_id, team, opponent, outcome, starter, player_id, seconds_played,
			made_field_goal, attempted_field_goal, field_goal_percent,
			made_three_point, attempted_three_point, three_point_percent,
			made_free_throw, attempted_free_throw, free_throw_percent,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, personal_fouls, points, plus_minus
		FROM player_boxscores
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying player boxscores: %w", err)
	}
	defer rows.Close()

	var out []store.PlayerBoxscoreRow
	for rows.Next() {
		var row store.PlayerBoxscoreRow
		if err := rows.Scan(
			&row.GameID, &row.Team, &row.Opponent, &row.Outcome, &row.Starter, &row.PlayerID, &row.SecondsPlayed,
			&row.MadeFieldGoal, &row.AttemptedFieldGoal, &row.FieldGoalPercent,
			&row.MadeThreePoint, &row.AttemptedThreePoint, &row.ThreePointPercent,
			&row.MadeFreeThrow, &row.AttemptedFreeThrow, &row.FreeThrowPercent,
			&row.OffensiveRebounds, &row.DefensiveRebounds, &row.TotalRebounds,
			&row.Assists, &row.Steals, &row.Blocks, &row.Turnovers, &row.PersonalFouls, &row.Points, &row.PlusMinus,
		); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetTeamTotalsByGame returns one game's two aggregate rows.
func (r *BoxscoreRepository) GetTeamTotalsByGame(ctx context.Context, gameID int) ([]store.TeamTotalsRow, error) {
	query := `
		SELECT game_id, team, opponent, outcome, location, seconds_played,
			made_field_goal, attempted_field_goal, field_goal_percent,
			made_three_point, attempted_three_point, three_point_percent,
			made_free_throw, attempted_free_throw, free_throw_percent,
			offensive_rebounds, defensive_rebounds, total_rebounds,
			assists, steals, blocks, turnovers, personal_fouls, points
		FROM team_totals
		WHERE game_id = $1
		ORDER BY location DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying team totals: %w", err)
	}
	defer rows.Close()

	var out []store.TeamTotalsRow
	for rows.Next() {
		var row store.TeamTotalsRow
		if err := rows.Scan(
			&row.GameID, &row.Team, &row.Opponent, &row.Outcome, &row.Location, &row.SecondsPlayed,
			&row.MadeFieldGoal, &row.AttemptedFieldGoal, &row.FieldGoalPercent,
			&row.MadeThreePoint, &row.AttemptedThreePoint, &row.ThreePointPercent,
			&row.MadeFreeThrow, &row.AttemptedFreeThrow, &row.FreeThrowPercent,
			&row.OffensiveRebounds, &row.DefensiveRebounds, &row.TotalRebounds,
			&row.Assists, &row.Steals, &row.Blocks, &row.Turnovers, &row.PersonalFouls, &row.Points,
		); err != nil {
			return nil, fmt.Errorf("scanning totals row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
