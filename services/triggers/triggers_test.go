package triggers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mmbot/models"
)

func TestTriggersService(t *testing.T) {
	ctx := context.Background()

	t.Run("ListDelegates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewTriggersService(repo)

		teamID := uuid.NewString()
		expected := []*models.Trigger{{TeamID: teamID, TriggeredBy: "trig"}}
		repo.On("List", ctx, teamID).Return(expected, nil)

		got, err := service.List(ctx, teamID)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("EmptyTeamIsRejected", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewTriggersService(repo)

		_, err := service.List(ctx, "")
		assert.Error(t, err)

		_, err = service.Search(ctx, "")
		assert.Error(t, err)

		assert.Error(t, service.AddText(ctx, "", "trig", "text"))
		assert.Error(t, service.Delete(ctx, "", "trig"))
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("AddTextValidatesFields", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewTriggersService(repo)

		assert.Error(t, service.AddText(ctx, "team", "", "text"))
		assert.Error(t, service.AddText(ctx, "team", "trig", ""))
		repo.AssertNotCalled(t, "AddText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		repo.On("AddText", ctx, "team", "trig", "text").Return(nil)
		assert.NoError(t, service.AddText(ctx, "team", "trig", "text"))
		repo.AssertExpectations(t)
	})

	t.Run("AddEmojiValidatesFields", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewTriggersService(repo)

		assert.Error(t, service.AddEmoji(ctx, "team", "trig", ""))

		repo.On("AddEmoji", ctx, "team", "trig", "wave").Return(nil)
		assert.NoError(t, service.AddEmoji(ctx, "team", "trig", "wave"))
		repo.AssertExpectations(t)
	})

	t.Run("DeleteDelegates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewTriggersService(repo)

		repo.On("Delete", ctx, "team", "trig").Return(nil)
		assert.NoError(t, service.Delete(ctx, "team", "trig"))
		repo.AssertExpectations(t)
	})
}
