package mattermost

import (
	"context"
	"log"

	"github.com/gorilla/websocket"

	"mmbot/clients"
	"mmbot/models"
)

type authChallenge struct {
	Seq    int64             `json:"seq"`
	Action string            `json:"action"`
	Data   map[string]string `json:"data"`
}

// Listen connects to the websocket endpoint, authenticates, and pushes every
// decoded event into events until the connection drops or ctx is canceled.
// The caller owns the channel: closing it (after Listen returns) is how the
// dispatch loop learns the producer is gone.
func (c *Client) Listen(ctx context.Context, events chan<- models.Event) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL+"/api/v4/websocket", nil)
	if err != nil {
		return clients.NewError(clients.ErrKindOther, "websocket dial", err)
	}
	defer conn.Close()

	challenge := authChallenge{
		Seq:    1,
		Action: "authentication_challenge",
		Data:   map[string]string{"token": c.token},
	}
	if err := conn.WriteJSON(challenge); err != nil {
		return clients.NewError(clients.ErrKindOther, "websocket auth", err)
	}

	// Unblock the read loop when the context is canceled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	log.Printf("🔌 Connected to %s", c.wsURL)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return clients.NewError(clients.ErrKindOther, "websocket read", err)
		}

		select {
		case events <- DecodeEvent(raw):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
