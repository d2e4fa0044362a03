package triggers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mmbot/models"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trigger), args.Error(1)
}

func (m *MockRepository) Search(ctx context.Context, teamID string) ([]*models.Trigger, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trigger), args.Error(1)
}

func (m *MockRepository) AddText(ctx context.Context, teamID, trigger, text string) error {
	args := m.Called(ctx, teamID, trigger, text)
	return args.Error(0)
}

func (m *MockRepository) AddEmoji(ctx context.Context, teamID, trigger, emoji string) error {
	args := m.Called(ctx, teamID, trigger, emoji)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, teamID, trigger string) error {
	args := m.Called(ctx, teamID, trigger)
	return args.Error(0)
}
