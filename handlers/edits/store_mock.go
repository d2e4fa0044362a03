package edits

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"mmbot/models"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context, teamID string) ([]*models.Edit, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Edit), args.Error(1)
}

func (m *MockStore) Find(ctx context.Context, userID, teamID, edit string) (mo.Option[*models.Edit], error) {
	args := m.Called(ctx, userID, teamID, edit)
	return args.Get(0).(mo.Option[*models.Edit]), args.Error(1)
}

func (m *MockStore) AddTeam(ctx context.Context, teamID, edit, replaceWith string) error {
	args := m.Called(ctx, teamID, edit, replaceWith)
	return args.Error(0)
}

func (m *MockStore) DeleteTeam(ctx context.Context, teamID, edit string) error {
	args := m.Called(ctx, teamID, edit)
	return args.Error(0)
}
