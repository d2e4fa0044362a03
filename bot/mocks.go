package bot

import (
	"github.com/stretchr/testify/mock"

	"mmbot/models"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Reply(post *models.Post, message string) error {
	args := m.Called(post, message)
	return args.Error(0)
}

func (m *MockClient) Reaction(post *models.Post, emojiName string) error {
	args := m.Called(post, emojiName)
	return args.Error(0)
}

func (m *MockClient) SendTriggerList(triggers []*models.Trigger, post *models.Post) error {
	args := m.Called(triggers, post)
	return args.Error(0)
}

func (m *MockClient) Debug(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockClient) Startup(message string) error {
	args := m.Called(message)
	return args.Error(0)
}
