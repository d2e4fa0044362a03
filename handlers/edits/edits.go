// Package edits implements stored word substitutions: posting "!e name"
// makes the bot reply with the replacement registered under that name.
// Edits are team-scoped; a user-scoped edit with the same name shadows the
// team one.
package edits

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/mo"

	"mmbot/clients"
	"mmbot/models"
)

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, teamID string) ([]*models.Edit, error)
	Find(ctx context.Context, userID, teamID, edit string) (mo.Option[*models.Edit], error)
	AddTeam(ctx context.Context, teamID, edit, replaceWith string) error
	DeleteTeam(ctx context.Context, teamID, edit string) error
}

// Edits is the handler.
type Edits struct {
	store  Store
	sender clients.Sender

	matchList *regexp.Regexp
	matchAdd  *regexp.Regexp
	matchDel  *regexp.Regexp
}

func New(store Store, sender clients.Sender) *Edits {
	return &Edits{
		store:     store,
		sender:    sender,
		matchList: regexp.MustCompile(`^!edits list.*$`),
		matchAdd:  regexp.MustCompile(`^!edits add "([^"]+)" "([^"]+)".*$`),
		matchDel:  regexp.MustCompile(`^!edits del "(.+)".*`),
	}
}

func (e *Edits) Name() string {
	return "edits"
}

func (e *Edits) Help() mo.Option[string] {
	return mo.Some("```" + `
Reply with a stored text when someone posts !e <name>.

!e <name>
!edits list
!edits add "<name>" "<replacement>"
!edits del "<name>"
` + "```")
}

func (e *Edits) Handle(post *models.Post) error {
	message := post.Message
	ctx := context.Background()

	if name, ok := strings.CutPrefix(message, "!e "); ok {
		return e.expand(ctx, post, name)
	}

	if e.matchList.MatchString(message) {
		return e.list(ctx, post)
	}

	if captures := e.matchAdd.FindStringSubmatch(message); captures != nil {
		if err := e.store.AddTeam(ctx, post.TeamID, captures[1], captures[2]); err != nil {
			return fmt.Errorf("failed to add edit: %w", err)
		}
		return e.sender.Reaction(post, "ok_hand")
	}

	if captures := e.matchDel.FindStringSubmatch(message); captures != nil {
		if err := e.store.DeleteTeam(ctx, post.TeamID, captures[1]); err != nil {
			return fmt.Errorf("failed to delete edit: %w", err)
		}
		return e.sender.Reaction(post, "ok_hand")
	}

	return nil
}

func (e *Edits) expand(ctx context.Context, post *models.Post, name string) error {
	maybeEdit, err := e.store.Find(ctx, post.UserID, post.TeamID, name)
	if err != nil {
		return fmt.Errorf("failed to find edit: %w", err)
	}

	edit, ok := maybeEdit.Get()
	if !ok || edit.ReplaceWithText == nil {
		return nil
	}
	return e.sender.Reply(post, *edit.ReplaceWithText)
}

func (e *Edits) list(ctx context.Context, post *models.Post) error {
	edits, err := e.store.List(ctx, post.TeamID)
	if err != nil {
		return fmt.Errorf("failed to list edits: %w", err)
	}

	var sb strings.Builder
	for _, edit := range edits {
		if edit.ReplaceWithText != nil {
			fmt.Fprintf(&sb, "`%s`: %s\n", edit.Edit, *edit.ReplaceWithText)
		}
	}
	if sb.Len() == 0 {
		return e.sender.Reply(post, "no edits stored for this team")
	}
	return e.sender.Reply(post, sb.String())
}
