package models

// Event is one decoded unit of activity from the chat backend. The concrete
// types below form a closed set; the dispatch loop switches over them.
type Event interface {
	isEvent()
}

// Hello is sent by the backend right after the websocket handshake. It tells
// the bot which user it is connected as, which the IgnoreSelf middleware
// needs to filter out the bot's own posts.
type Hello struct {
	ServerString string
	MyUserID     string
}

// PostEvent wraps a newly posted chat message.
type PostEvent struct {
	Post *Post
}

// PostEditedEvent wraps an edit to an existing message. Edited posts are
// currently logged and dropped by the dispatch loop.
type PostEditedEvent struct {
	Post *PostEdited
}

// StatusEvent carries a protocol-level status frame from the backend.
type StatusEvent struct {
	Status *Status
}

// UnsupportedEvent carries the raw payload of an event type the adapter does
// not understand.
type UnsupportedEvent struct {
	Raw string
}

// ShutdownEvent asks the dispatch loop to return cleanly.
type ShutdownEvent struct{}

func (Hello) isEvent()            {}
func (PostEvent) isEvent()        {}
func (PostEditedEvent) isEvent()  {}
func (StatusEvent) isEvent()      {}
func (UnsupportedEvent) isEvent() {}
func (ShutdownEvent) isEvent()    {}

// Post is one chat message. Handlers must not mutate it; middlewares may
// replace it with a transformed copy.
type Post struct {
	ID        string
	ChannelID string
	Message   string
	UserID    string
	RootID    string
	ParentID  string
	TeamID    string
}

// NewPost returns an empty post, useful as a base for test fixtures.
func NewPost() *Post {
	return &Post{}
}

// PostWithMessage returns a post carrying only a message body.
func PostWithMessage(message string) *Post {
	return &Post{Message: message}
}

// PostEdited mirrors Post for edited messages. Edits carry no team id on the
// wire.
type PostEdited struct {
	ID        string
	ChannelID string
	Message   string
	UserID    string
	RootID    string
	ParentID  string
}

// StatusCode classifies a backend status frame.
type StatusCode int

const (
	StatusOK StatusCode = iota
	StatusErr
	StatusUnknown
	StatusUnsupported
)

func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "ok"
	case StatusErr:
		return "error"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Status is a backend-reported protocol status. A non-OK code that is not
// recognized as benign terminates the event loop.
type Status struct {
	Code  StatusCode
	Error *StatusError
}

// StatusError details a failed status frame.
type StatusError struct {
	Message       string
	DetailedError string
	RequestID     string
	StatusCode    int
}

// Message returns the error message of a status, or "none" when the backend
// sent a failure without details.
func (s *Status) ErrorMessage() string {
	if s.Error == nil {
		return "none"
	}
	return s.Error.Message
}
