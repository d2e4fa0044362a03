// Package triggers wraps the triggers repository with input validation and
// logging. The trigger handler consumes this service, never the repository
// directly.
package triggers

import (
	"context"
	"fmt"
	"log"

	"mmbot/models"
)

// Repository is the storage surface the service delegates to.
type Repository interface {
	List(ctx context.Context, teamID string) ([]*models.Trigger, error)
	Search(ctx context.Context, teamID string) ([]*models.Trigger, error)
	AddText(ctx context.Context, teamID, trigger, text string) error
	AddEmoji(ctx context.Context, teamID, trigger, emoji string) error
	Delete(ctx context.Context, teamID, trigger string) error
}

type TriggersService struct {
	repo Repository
}

func NewTriggersService(repo Repository) *TriggersService {
	return &TriggersService{repo: repo}
}

func (s *TriggersService) List(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team_id cannot be empty")
	}
	return s.repo.List(ctx, teamID)
}

func (s *TriggersService) Search(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	if teamID == "" {
		return nil, fmt.Errorf("team_id cannot be empty")
	}
	return s.repo.Search(ctx, teamID)
}

func (s *TriggersService) AddText(ctx context.Context, teamID, trigger, text string) error {
	if err := validateAdd(teamID, trigger); err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	log.Printf("💾 Adding text trigger %q for team %s", trigger, teamID)
	return s.repo.AddText(ctx, teamID, trigger, text)
}

func (s *TriggersService) AddEmoji(ctx context.Context, teamID, trigger, emoji string) error {
	if err := validateAdd(teamID, trigger); err != nil {
		return err
	}
	if emoji == "" {
		return fmt.Errorf("emoji cannot be empty")
	}

	log.Printf("💾 Adding emoji trigger %q for team %s", trigger, teamID)
	return s.repo.AddEmoji(ctx, teamID, trigger, emoji)
}

func (s *TriggersService) Delete(ctx context.Context, teamID, trigger string) error {
	if err := validateAdd(teamID, trigger); err != nil {
		return err
	}

	log.Printf("🗑️ Deleting trigger %q for team %s", trigger, teamID)
	return s.repo.Delete(ctx, teamID, trigger)
}

func validateAdd(teamID, trigger string) error {
	if teamID == "" {
		return fmt.Errorf("team_id cannot be empty")
	}
	if trigger == "" {
		return fmt.Errorf("trigger cannot be empty")
	}
	return nil
}
