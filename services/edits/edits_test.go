package edits

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mmbot/models"
)

func TestEditsService(t *testing.T) {
	ctx := context.Background()

	t.Run("FindDelegates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewEditsService(repo)

		stored := &models.Edit{Edit: "brb"}
		repo.On("Find", ctx, "user", "team", "brb").Return(mo.Some(stored), nil)

		got, err := service.Find(ctx, "user", "team", "brb")
		require.NoError(t, err)
		edit, ok := got.Get()
		require.True(t, ok)
		assert.Equal(t, stored, edit)
	})

	t.Run("FindValidates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewEditsService(repo)

		_, err := service.Find(ctx, "user", "", "brb")
		assert.Error(t, err)

		_, err = service.Find(ctx, "user", "team", "")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AddTeamValidates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewEditsService(repo)

		assert.Error(t, service.AddTeam(ctx, "", "brb", "be right back"))
		assert.Error(t, service.AddTeam(ctx, "team", "", "be right back"))
		assert.Error(t, service.AddTeam(ctx, "team", "brb", ""))

		repo.On("AddTeam", ctx, "team", "brb", "be right back").Return(nil)
		assert.NoError(t, service.AddTeam(ctx, "team", "brb", "be right back"))
		repo.AssertExpectations(t)
	})

	t.Run("DeleteTeamDelegates", func(t *testing.T) {
		repo := &MockRepository{}
		service := NewEditsService(repo)

		repo.On("DeleteTeam", ctx, "team", "brb").Return(nil)
		assert.NoError(t, service.DeleteTeam(ctx, "team", "brb"))
		repo.AssertExpectations(t)
	})
}
