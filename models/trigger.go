package models

import "time"

// Trigger is a stored (pattern, reaction) pair for one team. Exactly one of
// Text or Emoji is set: Text makes the bot reply with that text, Emoji makes
// it react with that emoji.
type Trigger struct {
	ID          string    `db:"id"`
	TeamID      string    `db:"team_id"`
	TriggeredBy string    `db:"triggered_by"`
	Text        *string   `db:"text_rep"`
	Emoji       *string   `db:"emoji_rep"`
	CreatedAt   time.Time `db:"created_at"`
}

// IsText reports whether the trigger replies with text. Text triggers take
// precedence over emoji triggers when both match the same message.
func (t *Trigger) IsText() bool {
	return t.Text != nil
}
