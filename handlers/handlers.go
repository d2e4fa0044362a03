// Package handlers defines the contract every command handler implements.
// Handlers are registered once at startup and invoked sequentially for every
// chat message that survives the middleware chain; they are expected to
// no-op on messages they don't recognize.
package handlers

import (
	"sync"

	"github.com/samber/mo"

	"mmbot/models"
)

// Handler reacts to chat messages. Help text, when present, is served by the
// built-in !help command under the handler's name.
type Handler interface {
	Name() string
	Help() mo.Option[string]
	Handle(post *models.Post) error
}

// Synchronized wraps a handler so only one invocation runs at a time. Use it
// for handlers with internal state that is not safe for reentrant use.
func Synchronized(h Handler) Handler {
	return &synchronized{inner: h}
}

type synchronized struct {
	mu    sync.Mutex
	inner Handler
}

func (s *synchronized) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Name()
}

func (s *synchronized) Help() mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Help()
}

func (s *synchronized) Handle(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Handle(post)
}
