package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mmbot/core"
	"mmbot/models"
)

type PostgresTriggersRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresTriggersRepository(db *sqlx.DB, schema string) *PostgresTriggersRepository {
	return &PostgresTriggersRepository{db: db, schema: schema}
}

// List returns every trigger of the team, ordered by pattern for stable
// listings.
func (r *PostgresTriggersRepository) List(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	query := fmt.Sprintf(`
		SELECT id, team_id, triggered_by, text_rep, emoji_rep, created_at
		FROM %s.triggers
		WHERE team_id = $1
		ORDER BY triggered_by`, r.schema)

	triggers := []*models.Trigger{}
	if err := r.db.SelectContext(ctx, &triggers, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	return triggers, nil
}

// Search returns the team's triggers in dispatch order: text triggers come
// first so a text match can suppress emoji triggers for the same message.
func (r *PostgresTriggersRepository) Search(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	query := fmt.Sprintf(`
		SELECT id, team_id, triggered_by, text_rep, emoji_rep, created_at
		FROM %s.triggers
		WHERE team_id = $1
		ORDER BY (text_rep IS NULL), triggered_by`, r.schema)

	triggers := []*models.Trigger{}
	if err := r.db.SelectContext(ctx, &triggers, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to search triggers: %w", err)
	}
	return triggers, nil
}

func (r *PostgresTriggersRepository) AddText(ctx context.Context, teamID, trigger, text string) error {
	return r.add(ctx, teamID, trigger, &text, nil)
}

func (r *PostgresTriggersRepository) AddEmoji(ctx context.Context, teamID, trigger, emoji string) error {
	return r.add(ctx, teamID, trigger, nil, &emoji)
}

func (r *PostgresTriggersRepository) add(ctx context.Context, teamID, trigger string, text, emoji *string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.triggers (id, team_id, triggered_by, text_rep, emoji_rep)
		VALUES ($1, $2, $3, $4, $5)`, r.schema)

	if _, err := r.db.ExecContext(ctx, query, core.NewID("trg"), teamID, trigger, text, emoji); err != nil {
		return fmt.Errorf("failed to add trigger: %w", err)
	}
	return nil
}

func (r *PostgresTriggersRepository) Delete(ctx context.Context, teamID, trigger string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s.triggers
		WHERE team_id = $1 AND triggered_by = $2`, r.schema)

	// deleting an unknown trigger is not an error; the handler acks either way
	if _, err := r.db.ExecContext(ctx, query, teamID, trigger); err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}
	return nil
}
