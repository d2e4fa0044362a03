package clients

import (
	"github.com/stretchr/testify/mock"

	"mmbot/models"
)

// MockSender is a mock implementation of the Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Reply(post *models.Post, message string) error {
	args := m.Called(post, message)
	return args.Error(0)
}

func (m *MockSender) Reaction(post *models.Post, emojiName string) error {
	args := m.Called(post, emojiName)
	return args.Error(0)
}

func (m *MockSender) SendTriggerList(triggers []*models.Trigger, post *models.Post) error {
	args := m.Called(triggers, post)
	return args.Error(0)
}

// MockNotifier is a mock implementation of the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Debug(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockNotifier) Startup(message string) error {
	args := m.Called(message)
	return args.Error(0)
}
