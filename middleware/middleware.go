// Package middleware holds the chain stages that run before handler
// dispatch. A middleware may transform an event or veto it entirely.
package middleware

import (
	"log"

	"mmbot/models"
)

// Middleware is one stage of the pre-dispatch chain. Process returns the
// (possibly transformed) event and whether processing should continue; a
// false continue drops the event silently. Errors are fatal to the dispatch
// loop.
type Middleware interface {
	Name() string
	Process(event models.Event) (models.Event, bool, error)
}

// IgnoreSelf drops posts authored by the bot itself, preventing feedback
// loops where the bot reacts to its own replies. It learns the bot's user id
// from the Hello event the backend sends after the handshake.
type IgnoreSelf struct {
	myUserID string
}

func NewIgnoreSelf() *IgnoreSelf {
	return &IgnoreSelf{}
}

func (m *IgnoreSelf) Name() string {
	return "ignore-self"
}

func (m *IgnoreSelf) Process(event models.Event) (models.Event, bool, error) {
	switch ev := event.(type) {
	case models.Hello:
		m.myUserID = ev.MyUserID
	case models.PostEvent:
		if m.myUserID != "" && ev.Post.UserID == m.myUserID {
			return event, false, nil
		}
	}
	return event, true, nil
}

// Debug logs every event passing through and always continues. Useful while
// developing a new handler.
type Debug struct {
	name string
}

func NewDebug(name string) *Debug {
	return &Debug{name: name}
}

func (m *Debug) Name() string {
	return m.name
}

func (m *Debug) Process(event models.Event) (models.Event, bool, error) {
	log.Printf("🔍 middleware %s: %#v", m.name, event)
	return event, true, nil
}
