package trigger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mmbot/clients"
	"mmbot/models"
	"mmbot/tempo"
)

func TestValidMatch(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{"AtStartFollowedBySpace", "trig ", true},
		{"AtStartFollowedByWord", "trig yes", true},
		{"GluedSuffix", "trigno", false},
		{"AtEndPrecededBySpace", " trig", true},
		{"AtEndPrecededByWord", "ye trig", true},
		{"GluedPrefix", "notrig", false},
		{"ExactMessage", "trig", true},
		{"SpacedBothSides", " trig ", true},
		{"WordInSentence", "yes trig yes", true},
		{"GluedBothSides", "notrigno", false},
		{"TabBoundary", "a\ttrig\tb", true},
		{"NewlineBoundary", "a\ntrig\nb", true},
		{"Absent", "nothing here", false},
		// non-breaking space is not an ASCII boundary
		{"NonBreakingSpace", "no trig no", false},
		// only the first raw occurrence is inspected: the glued first
		// occurrence hides the well-bounded second one
		{"FirstOccurrenceWins", "notrigno trig yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidMatch("trig", tt.message))
		})
	}
}

func TestCompileTrigger(t *testing.T) {
	t.Run("EscapesMetaCharacters", func(t *testing.T) {
		re, err := CompileTrigger("a+b (c)")
		require.NoError(t, err)
		assert.True(t, re.MatchString("say a+b (c) now"))
		assert.False(t, re.MatchString("say aab c now"))
	})

	t.Run("MultilineMessage", func(t *testing.T) {
		re, err := CompileTrigger("trig")
		require.NoError(t, err)
		assert.True(t, re.MatchString("first line\nthen trig here"))
	})
}

func strPtr(s string) *string { return &s }

func textTrigger(triggeredBy, text string) *models.Trigger {
	return &models.Trigger{TeamID: "team", TriggeredBy: triggeredBy, Text: strPtr(text)}
}

func emojiTrigger(triggeredBy, emoji string) *models.Trigger {
	return &models.Trigger{TeamID: "team", TriggeredBy: triggeredBy, Emoji: strPtr(emoji)}
}

func testPost(message string) *models.Post {
	return &models.Post{
		ID:        "post-id",
		ChannelID: "chan",
		TeamID:    "team",
		UserID:    "user",
		Message:   message,
	}
}

// testClock drives the tempo store in tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTrigger(store *MockStore, sender *clients.MockSender, clock *testClock) *Trigger {
	return New(store, sender, tempo.NewWithClock[string](clock.Now), 120*time.Second)
}

func TestTriggerFiring(t *testing.T) {
	t.Run("TextTriggerReplies", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Search", mock.Anything, "team").
			Return([]*models.Trigger{textTrigger("trig", "gotcha")}, nil)
		sender.On("Reply", mock.Anything, "gotcha").Return(nil)

		require.NoError(t, h.Handle(testPost("hello trig world")))
		sender.AssertExpectations(t)
	})

	t.Run("NoMatchNoAction", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Search", mock.Anything, "team").
			Return([]*models.Trigger{textTrigger("trig", "gotcha")}, nil)

		require.NoError(t, h.Handle(testPost("nothing to see")))
		sender.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "Reaction", mock.Anything, mock.Anything)
	})

	t.Run("TextSuppressesLaterEmoji", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Search", mock.Anything, "team").Return([]*models.Trigger{
			textTrigger("trig", "gotcha"),
			emojiTrigger("trig", "wave"),
		}, nil)
		sender.On("Reply", mock.Anything, "gotcha").Return(nil)

		require.NoError(t, h.Handle(testPost("hello trig world")))
		sender.AssertExpectations(t)
		sender.AssertNotCalled(t, "Reaction", mock.Anything, mock.Anything)
	})

	t.Run("AllEmojiTriggersFire", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Search", mock.Anything, "team").Return([]*models.Trigger{
			emojiTrigger("trig", "wave"),
			emojiTrigger("world", "tada"),
		}, nil)
		sender.On("Reaction", mock.Anything, "wave").Return(nil).Once()
		sender.On("Reaction", mock.Anything, "tada").Return(nil).Once()

		require.NoError(t, h.Handle(testPost("hello trig world")))
		sender.AssertExpectations(t)
	})

	t.Run("ChannelRateLimitSkipsSearch", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		clock := newTestClock()
		h := newTestTrigger(store, sender, clock)

		store.On("Search", mock.Anything, "team").
			Return([]*models.Trigger{emojiTrigger("trig", "wave")}, nil).Once()
		sender.On("Reaction", mock.Anything, "wave").Return(nil).Once()

		require.NoError(t, h.Handle(testPost("trig")))
		// second message lands inside the 3s channel window: no search at all
		clock.Advance(time.Second)
		require.NoError(t, h.Handle(testPost("trig")))

		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("RepeatDelaySilencesTrigger", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		clock := newTestClock()
		h := newTestTrigger(store, sender, clock)

		store.On("Search", mock.Anything, "team").
			Return([]*models.Trigger{emojiTrigger("trig", "wave")}, nil).Twice()
		sender.On("Reaction", mock.Anything, "wave").Return(nil).Once()

		require.NoError(t, h.Handle(testPost("trig")))
		// past the channel window but inside the 120s repeat delay: the
		// search runs again, the trigger stays quiet
		clock.Advance(5 * time.Second)
		require.NoError(t, h.Handle(testPost("trig")))

		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("SearchErrorPropagates", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Search", mock.Anything, "team").Return(nil, errors.New("db down"))

		assert.Error(t, h.Handle(testPost("trig")))
	})
}

func TestTriggerCommands(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		triggers := []*models.Trigger{textTrigger("trig", "gotcha")}
		store.On("List", mock.Anything, "team").Return(triggers, nil)
		sender.On("SendTriggerList", triggers, mock.Anything).Return(nil)

		require.NoError(t, h.Handle(testPost("!trigger list")))
		sender.AssertExpectations(t)
	})

	t.Run("AddText", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("AddText", mock.Anything, "team", "trig", "gotcha").Return(nil)
		sender.On("Reaction", mock.Anything, "ok_hand").Return(nil)

		require.NoError(t, h.Handle(testPost(`!trigger text "trig" "gotcha"`)))
		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("AddTextFailureStillAcks", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("AddText", mock.Anything, "team", "trig", "gotcha").
			Return(errors.New("unique violation"))
		sender.On("Reaction", mock.Anything, "ok_hand").Return(nil)

		require.NoError(t, h.Handle(testPost(`!trigger text "trig" "gotcha"`)))
		sender.AssertExpectations(t)
	})

	t.Run("AddReactionWithColons", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("AddEmoji", mock.Anything, "team", "trig", "wave").Return(nil)
		sender.On("Reaction", mock.Anything, "ok_hand").Return(nil)

		require.NoError(t, h.Handle(testPost(`!trigger reaction "trig" :wave:`)))
		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("Delete", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Delete", mock.Anything, "team", "trig").Return(nil)
		sender.On("Reaction", mock.Anything, "ok_hand").Return(nil)

		require.NoError(t, h.Handle(testPost(`!trigger del "trig"`)))
		store.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("DeleteErrorPropagates", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		store.On("Delete", mock.Anything, "team", "trig").Return(errors.New("db down"))

		assert.Error(t, h.Handle(testPost(`!trigger del "trig"`)))
		sender.AssertNotCalled(t, "Reaction", mock.Anything, mock.Anything)
	})

	t.Run("UnparsableCommandIsIgnored", func(t *testing.T) {
		store := &MockStore{}
		sender := &clients.MockSender{}
		h := newTestTrigger(store, sender, newTestClock())

		require.NoError(t, h.Handle(testPost("!trigger frobnicate")))
		store.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		sender.AssertNotCalled(t, "Reply", mock.Anything, mock.Anything)
	})
}

func TestHelp(t *testing.T) {
	h := newTestTrigger(&MockStore{}, &clients.MockSender{}, newTestClock())
	help, ok := h.Help().Get()
	require.True(t, ok)
	assert.Contains(t, help, "!trigger list")
	assert.Contains(t, help, "120 seconds")
}
