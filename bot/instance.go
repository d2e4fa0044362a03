// Package bot contains the dispatch instance: the event loop that feeds
// backend events through the middleware chain and into the registered
// handlers.
package bot

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"mmbot/clients"
	"mmbot/core"
	"mmbot/handlers"
	"mmbot/middleware"
	"mmbot/models"
)

// tickInterval bounds how long the loop blocks on the event channel, so it
// periodically wakes up even on a silent backend.
const tickInterval = 5 * time.Second

const helpNotFoundReply = "no help found for that one"

var helpPattern = regexp.MustCompile(`^!help ([a-zA-Z0-9_-]+).*`)

// Client is the backend surface the instance itself needs: replying to
// !help, reporting handler errors, and announcing startup.
type Client interface {
	clients.Sender
	clients.Notifier
}

// Instance owns the middleware chain and handler registry. Register
// everything before calling Run; registration order is dispatch order.
type Instance struct {
	client      Client
	middlewares []middleware.Middleware
	handlers    []handlers.Handler
	helps       map[string]string
}

func New(client Client) *Instance {
	return &Instance{
		client: client,
		helps:  make(map[string]string),
	}
}

// AddMiddleware appends a middleware to the chain.
func (i *Instance) AddMiddleware(m middleware.Middleware) *Instance {
	i.middlewares = append(i.middlewares, m)
	return i
}

// AddHandler appends a handler to the registry and records its help text.
// On a name collision the last registration wins.
func (i *Instance) AddHandler(h handlers.Handler) *Instance {
	if help, ok := h.Help().Get(); ok {
		i.helps[h.Name()] = help
	}
	i.handlers = append(i.handlers, h)
	return i
}

// Run announces the loaded middlewares and handlers, then consumes events
// until a Shutdown event (nil return), the channel closes (fatal), or a
// fatal event error occurs. Handler errors never reach this level; they are
// reported to the debug channel inside the loop.
func (i *Instance) Run(events <-chan models.Event) error {
	if err := i.client.Startup(i.startupSummary()); err != nil {
		return fmt.Errorf("startup announcement failed: %w", err)
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("consumer disconnected: %w", core.ErrStreamClosed)
			}
			if _, shutdown := event.(models.ShutdownEvent); shutdown {
				return nil
			}
			if err := i.process(event); err != nil {
				return err
			}
		case <-ticker.C:
			// liveness tick, nothing to do
		}
	}
}

func (i *Instance) startupSummary() string {
	var sb strings.Builder
	sb.WriteString("## Loaded middlewares\n")
	for _, m := range i.middlewares {
		fmt.Fprintf(&sb, " * `%s`\n", m.Name())
	}
	sb.WriteString("## Loaded post handlers\n")
	for _, h := range i.handlers {
		fmt.Fprintf(&sb, " * `%s`\n", h.Name())
	}
	return sb.String()
}

func (i *Instance) process(event models.Event) error {
	event, ok, err := i.processMiddlewares(event)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return i.processEvent(event)
}

// processMiddlewares feeds the event through the chain in registration
// order. Any middleware can veto (silent drop) or transform the event seen
// by later middlewares and the handlers.
func (i *Instance) processMiddlewares(event models.Event) (models.Event, bool, error) {
	for _, m := range i.middlewares {
		next, cont, err := m.Process(event)
		if err != nil {
			return nil, false, fmt.Errorf("middleware %s failed: %w", m.Name(), err)
		}
		if !cont {
			return nil, false, nil
		}
		event = next
	}
	return event, true, nil
}

func (i *Instance) processEvent(event models.Event) error {
	switch ev := event.(type) {
	case models.PostEvent:
		return i.processPost(ev.Post)
	case models.PostEditedEvent:
		log.Printf("📝 edits are unsupported for now")
		return nil
	case models.UnsupportedEvent:
		return nil
	case models.Hello:
		log.Printf("👋 hello server %s", ev.ServerString)
		return nil
	case models.StatusEvent:
		return i.processStatus(ev.Status)
	case models.ShutdownEvent:
		// handled by the loop before dispatch
		return nil
	default:
		return nil
	}
}

// processStatus interprets backend status frames as loop-control signals.
func (i *Instance) processStatus(status *models.Status) error {
	switch status.Code {
	case models.StatusOK:
		return nil
	case models.StatusErr:
		return fmt.Errorf("backend status error: %s", status.ErrorMessage())
	case models.StatusUnsupported:
		log.Printf("⚠️ unsupported status: %+v", status)
		return nil
	default:
		return fmt.Errorf("unknown backend status: %s", status.ErrorMessage())
	}
}

func (i *Instance) processPost(post *models.Post) error {
	if err := i.processHelp(post); err != nil {
		return err
	}

	for _, h := range i.handlers {
		if err := h.Handle(post); err != nil {
			// handler failures are isolated: report and keep dispatching
			if derr := i.client.Debug(fmt.Sprintf("handler %s error: %v", h.Name(), err)); derr != nil {
				log.Printf("❌ debug notification failed: %v", derr)
			}
		}
	}
	return nil
}

// processHelp serves the built-in !help command. Reply failures here are
// fatal: unlike handlers, the help surface belongs to the loop itself.
func (i *Instance) processHelp(post *models.Post) error {
	if post.Message == "!help" {
		names := make([]string, 0, len(i.helps))
		for name := range i.helps {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "`%s`\n", name)
		}
		return i.client.Reply(post, sb.String())
	}

	captures := helpPattern.FindStringSubmatch(post.Message)
	if captures == nil {
		return nil
	}

	if help, ok := i.helps[captures[1]]; ok {
		return i.client.Reply(post, help)
	}
	return i.client.Reply(post, helpNotFoundReply)
}
