package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"mmbot/core"
	"mmbot/models"
)

type PostgresEditsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresEditsRepository(db *sqlx.DB, schema string) *PostgresEditsRepository {
	return &PostgresEditsRepository{db: db, schema: schema}
}

func (r *PostgresEditsRepository) List(ctx context.Context, teamID string) ([]*models.Edit, error) {
	query := fmt.Sprintf(`
		SELECT id, edit, replace_with_text, team_id, user_id, created_at
		FROM %s.edits
		WHERE team_id = $1
		ORDER BY user_id NULLS LAST, edit`, r.schema)

	edits := []*models.Edit{}
	if err := r.db.SelectContext(ctx, &edits, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list edits: %w", err)
	}
	return edits, nil
}

// Find returns the best edit for the name: the user's own edit when one
// exists, the team edit otherwise.
func (r *PostgresEditsRepository) Find(ctx context.Context, userID, teamID, edit string) (mo.Option[*models.Edit], error) {
	query := fmt.Sprintf(`
		SELECT id, edit, replace_with_text, team_id, user_id, created_at
		FROM %s.edits
		WHERE (team_id = $2 OR user_id = $1) AND edit = TRIM($3)
		ORDER BY user_id NULLS LAST
		LIMIT 1`, r.schema)

	found := &models.Edit{}
	err := r.db.GetContext(ctx, found, query, userID, teamID, edit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Edit](), nil
		}
		return mo.None[*models.Edit](), fmt.Errorf("failed to find edit: %w", err)
	}
	return mo.Some(found), nil
}

func (r *PostgresEditsRepository) AddTeam(ctx context.Context, teamID, edit, replaceWith string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.edits (id, edit, replace_with_text, team_id)
		VALUES ($1, $2, $3, $4)`, r.schema)

	if _, err := r.db.ExecContext(ctx, query, core.NewID("edt"), edit, replaceWith, teamID); err != nil {
		return fmt.Errorf("failed to add edit: %w", err)
	}
	return nil
}

func (r *PostgresEditsRepository) DeleteTeam(ctx context.Context, teamID, edit string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s.edits
		WHERE team_id = $1 AND edit = $2`, r.schema)

	if _, err := r.db.ExecContext(ctx, query, teamID, edit); err != nil {
		return fmt.Errorf("failed to delete edit: %w", err)
	}
	return nil
}
