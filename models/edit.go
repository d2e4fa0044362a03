package models

import "time"

// Edit is a stored word substitution. Team edits apply to everyone on the
// team; user edits apply to one user and shadow team edits with the same
// name.
type Edit struct {
	ID              string    `db:"id"`
	Edit            string    `db:"edit"`
	ReplaceWithText *string   `db:"replace_with_text"`
	TeamID          *string   `db:"team_id"`
	UserID          *string   `db:"user_id"`
	CreatedAt       time.Time `db:"created_at"`
}
