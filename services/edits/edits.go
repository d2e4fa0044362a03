// Package edits wraps the edits repository with input validation and
// logging.
package edits

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"mmbot/models"
)

// Repository is the storage surface the service delegates to.
type Repository interface {
	List(ctx context.Context, teamID string) ([]*models.Edit, error)
	Find(ctx context.Context, userID, teamID, edit string) (mo.Option[*models.Edit], error)
	AddTeam(ctx context.Context, teamID, edit, replaceWith string) error
	DeleteTeam(ctx context.Context, teamID, edit string) error
}

type EditsService struct {
	repo Repository
}

func NewEditsService(repo Repository) *EditsService {
	return &EditsService{repo: repo}
}

func (s *EditsService) List(ctx context.Context, teamID string) ([]*models.Edit, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team_id cannot be empty")
	}
	return s.repo.List(ctx, teamID)
}

func (s *EditsService) Find(ctx context.Context, userID, teamID, edit string) (mo.Option[*models.Edit], error) {
	if teamID == "" {
		return mo.None[*models.Edit](), fmt.Errorf("team_id cannot be empty")
	}
	if edit == "" {
		return mo.None[*models.Edit](), fmt.Errorf("edit cannot be empty")
	}
	return s.repo.Find(ctx, userID, teamID, edit)
}

func (s *EditsService) AddTeam(ctx context.Context, teamID, edit, replaceWith string) error {
	if teamID == "" {
		return fmt.Errorf("team_id cannot be empty")
	}
	if edit == "" {
		return fmt.Errorf("edit cannot be empty")
	}
	if replaceWith == "" {
		return fmt.Errorf("replacement cannot be empty")
	}

	log.Printf("💾 Adding edit %q for team %s", edit, teamID)
	return s.repo.AddTeam(ctx, teamID, edit, replaceWith)
}

func (s *EditsService) DeleteTeam(ctx context.Context, teamID, edit string) error {
	if teamID == "" {
		return fmt.Errorf("team_id cannot be empty")
	}
	if edit == "" {
		return fmt.Errorf("edit cannot be empty")
	}

	log.Printf("🗑️ Deleting edit %q for team %s", edit, teamID)
	return s.repo.DeleteTeam(ctx, teamID, edit)
}
