// Package mattermost implements the chat backend adapter: a REST client for
// the operations handlers perform (clients.Sender, clients.Notifier) and a
// websocket listener that feeds decoded events into the dispatch loop.
package mattermost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"mmbot/clients"
	"mmbot/models"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to one Mattermost instance with a bot token.
type Client struct {
	apiURL       string
	wsURL        string
	token        string
	debugChannel string
	httpClient   *http.Client

	meMu sync.Mutex
	meID string // cached /users/me id, needed for reactions
}

// NewClient builds a client for the given API base URL (scheme + host, no
// /api/v4 suffix) and websocket URL.
func NewClient(apiURL, wsURL, token, debugChannel string) *Client {
	return &Client{
		apiURL:       strings.TrimRight(apiURL, "/"),
		wsURL:        strings.TrimRight(wsURL, "/"),
		token:        token,
		debugChannel: debugChannel,
		httpClient:   &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Reply posts message into the post's channel. Replies stay in the post's
// thread when there is one, otherwise they start a thread on the post.
func (c *Client) Reply(post *models.Post, message string) error {
	rootID := post.RootID
	if rootID == "" {
		rootID = post.ID
	}
	return c.createPost(post.ChannelID, message, rootID)
}

// Reaction attaches the named emoji to the post.
func (c *Client) Reaction(post *models.Post, emojiName string) error {
	meID, err := c.me()
	if err != nil {
		return err
	}
	payload := map[string]string{
		"user_id":    meID,
		"post_id":    post.ID,
		"emoji_name": emojiName,
	}
	return c.post("/api/v4/reactions", payload, nil)
}

// SendTriggerList replies to post with a markdown table of the triggers.
func (c *Client) SendTriggerList(triggers []*models.Trigger, post *models.Post) error {
	var sb strings.Builder
	sb.WriteString("| trigger | reaction |\n|---|---|\n")
	for _, t := range triggers {
		if t.IsText() {
			fmt.Fprintf(&sb, "| %s | %s |\n", t.TriggeredBy, *t.Text)
		} else if t.Emoji != nil {
			fmt.Fprintf(&sb, "| %s | :%s: |\n", t.TriggeredBy, *t.Emoji)
		}
	}
	return c.Reply(post, sb.String())
}

// Debug posts message to the bot's debug channel.
func (c *Client) Debug(message string) error {
	return c.createPost(c.debugChannel, message, "")
}

// Startup posts the dispatch loop's startup announcement to the debug
// channel.
func (c *Client) Startup(message string) error {
	return c.createPost(c.debugChannel, message, "")
}

func (c *Client) createPost(channelID, message, rootID string) error {
	payload := map[string]string{
		"channel_id": channelID,
		"message":    message,
	}
	if rootID != "" {
		payload["root_id"] = rootID
	}
	return c.post("/api/v4/posts", payload, nil)
}

func (c *Client) me() (string, error) {
	c.meMu.Lock()
	defer c.meMu.Unlock()
	if c.meID != "" {
		return c.meID, nil
	}

	var me struct {
		ID string `json:"id"`
	}
	if err := c.get("/api/v4/users/me", &me); err != nil {
		return "", err
	}
	c.meID = me.ID
	return c.meID, nil
}

func (c *Client) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return clients.NewError(clients.ErrKindOther, "encoding request body", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.apiURL+path, bytes.NewReader(body))
	if err != nil {
		return clients.NewError(clients.ErrKindOther, "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return clients.NewError(clients.ErrKindOther, "building request", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return clients.NewError(clients.ErrKindTimeout, req.URL.Path, err)
		}
		return clients.NewError(clients.ErrKindOther, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return clients.NewError(
			clients.ErrKindStatus,
			fmt.Sprintf("%s returned %d: %s", req.URL.Path, resp.StatusCode, body),
			nil,
		)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return clients.NewError(clients.ErrKindBody, req.URL.Path, err)
		}
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
