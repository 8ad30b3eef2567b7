package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/teams"
)

// TeamRepository persists the static franchise reference table.
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// Seed inserts the canonical franchise list. Existing rows are left alone so
// ids assigned at first seed never change.
func (r *TeamRepository) Seed(ctx context.Context, franchises []teams.Franchise) error {
	query := `
		INSERT INTO teams (id, abbreviation, full_name, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, f := range franchises {
		if _, err := tx.ExecContext(ctx, query, f.ID, f.Abbreviation, f.FullName, f.IsActive); err != nil {
			return fmt.Errorf("seeding team %s: %w", f.Abbreviation, err)
		}
	}
	return tx.Commit()
}

// GetAll returns every franchise in id order.
func (r *TeamRepository) GetAll(ctx context.Context) ([]teams.Franchise, error) {
	query := `
		SELECT id, abbreviation, full_name, is_active
		FROM teams
		ORDER BY id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var out []teams.Franchise
	for rows.Next() {
		var f teams.Franchise
		if err := rows.Scan(&f.ID, &f.Abbreviation, &f.FullName, &f.IsActive); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
