// Package clients defines the interfaces the bot core uses to talk to the
// chat backend, plus the error taxonomy backend implementations report
// through.
package clients

import (
	"errors"
	"fmt"

	"mmbot/models"
)

// Sender covers the chat-visible operations handlers perform.
type Sender interface {
	// Reply posts message in the same channel as post, threading onto the
	// post's root when it is part of a thread.
	Reply(post *models.Post, message string) error
	// Reaction attaches the named emoji to post.
	Reaction(post *models.Post, emojiName string) error
	// SendTriggerList replies to post with a formatted listing of triggers.
	SendTriggerList(triggers []*models.Trigger, post *models.Post) error
}

// Notifier covers the out-of-band operations of the dispatch loop: startup
// announcements and handler-error reports, both sent to the bot's debug
// channel.
type Notifier interface {
	Debug(message string) error
	Startup(message string) error
}

// ErrorKind classifies backend failures.
type ErrorKind int

const (
	// ErrKindTimeout: the backend did not answer in time.
	ErrKindTimeout ErrorKind = iota
	// ErrKindStatus: the backend answered with a non-2xx status.
	ErrKindStatus
	// ErrKindBody: the backend's response body could not be decoded.
	ErrKindBody
	// ErrKindOther: transport or protocol failures not covered above.
	ErrKindOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindTimeout:
		return "timeout"
	case ErrKindStatus:
		return "status"
	case ErrKindBody:
		return "body"
	default:
		return "other"
	}
}

// Error is a backend failure tagged with its kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a tagged backend error wrapping err (err may be nil).
func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsErrorKind reports whether err is a backend Error of the given kind.
func IsErrorKind(err error, kind ErrorKind) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == kind
}
