// Package trigger implements the text-trigger handler: stored per-team
// (pattern, reaction) pairs that make the bot reply with text or react with
// an emoji whenever a message contains the pattern as a whole word.
package trigger

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/mo"

	"mmbot/clients"
	"mmbot/models"
	"mmbot/tempo"
)

const channelRateLimit = 3 * time.Second

// Store is the persistence surface the handler needs.
type Store interface {
	List(ctx context.Context, teamID string) ([]*models.Trigger, error)
	Search(ctx context.Context, teamID string) ([]*models.Trigger, error)
	AddText(ctx context.Context, teamID, trigger, text string) error
	AddEmoji(ctx context.Context, teamID, trigger, emoji string) error
	Delete(ctx context.Context, teamID, trigger string) error
}

// CompileTrigger builds the match pattern stored triggers are validated
// against before insertion, so broken patterns are rejected up front.
func CompileTrigger(trigger string) (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(`(?ms)^.*(%s).*$`, regexp.QuoteMeta(trigger)))
}

// ValidMatch reports whether find occurs in message as a whole word. Only
// the first raw occurrence is inspected: it matches when the bytes
// immediately flanking it are absent or ASCII whitespace. A later
// well-bounded occurrence after an earlier ill-bounded one is not found,
// and non-ASCII whitespace does not count as a boundary.
func ValidMatch(find, message string) bool {
	start := strings.Index(message, find)
	if start < 0 {
		return false
	}

	if start > 0 && !isASCIIWhitespace(message[start-1]) {
		return false
	}

	end := start + len(find)
	if end < len(message) && !isASCIIWhitespace(message[end]) {
		return false
	}

	return true
}

func isASCIIWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// Trigger is the handler. It shares a Tempo handle with the rest of the
// process for its anti-spam windows.
type Trigger struct {
	store       Store
	sender      clients.Sender
	tempo       tempo.Tempo[string]
	repeatDelay time.Duration

	matchList     *regexp.Regexp
	matchDel      *regexp.Regexp
	matchText     *regexp.Regexp
	matchReaction *regexp.Regexp
}

func New(store Store, sender clients.Sender, tmp tempo.Tempo[string], repeatDelay time.Duration) *Trigger {
	return &Trigger{
		store:         store,
		sender:        sender,
		tempo:         tmp,
		repeatDelay:   repeatDelay,
		matchList:     regexp.MustCompile(`^!trigger list.*$`),
		matchDel:      regexp.MustCompile(`^!trigger del "(.+)".*`),
		matchText:     regexp.MustCompile(`^!trigger text "([^"]+)" "([^"]+)".*$`),
		matchReaction: regexp.MustCompile(`^!trigger reaction "([^"]+)" [:"]([^:]+)[:"].*$`),
	}
}

func (t *Trigger) Name() string {
	return "trigger"
}

func (t *Trigger) Help() mo.Option[string] {
	return mo.Some(fmt.Sprintf("```"+`
Automatically react to a given text in each received message on channels where the bot is present.

There is a per channel antispam of %d seconds, avoiding a heated channel to be polluted by the bot.

A per [channel, trigger] antispam is effective and currently configured at %d seconds.

!trigger list
!trigger text "trigger" "me"
!trigger reaction "trigger" :emoji:
!trigger del "trigger"
`+"```", int(channelRateLimit.Seconds()), int(t.repeatDelay.Seconds())))
}

func (t *Trigger) Handle(post *models.Post) error {
	message := post.Message

	if !strings.HasPrefix(message, "!trigger ") {
		return t.fireTriggers(post)
	}

	ctx := context.Background()

	if t.matchList.MatchString(message) {
		triggers, err := t.store.List(ctx, post.TeamID)
		if err != nil {
			return fmt.Errorf("failed to list triggers: %w", err)
		}
		return t.sender.SendTriggerList(triggers, post)
	}

	if captures := t.matchText.FindStringSubmatch(message); captures != nil {
		pattern, text := captures[1], captures[2]
		if _, err := CompileTrigger(pattern); err != nil {
			return t.sender.Reply(post, err.Error())
		}
		// add failures are deliberately not surfaced; the ack goes out
		// either way
		_ = t.store.AddText(ctx, post.TeamID, pattern, text)
		return t.sender.Reaction(post, "ok_hand")
	}

	if captures := t.matchReaction.FindStringSubmatch(message); captures != nil {
		pattern, emoji := captures[1], captures[2]
		if _, err := CompileTrigger(pattern); err != nil {
			return t.sender.Reply(post, err.Error())
		}
		_ = t.store.AddEmoji(ctx, post.TeamID, pattern, emoji)
		return t.sender.Reaction(post, "ok_hand")
	}

	if captures := t.matchDel.FindStringSubmatch(message); captures != nil {
		if err := t.store.Delete(ctx, post.TeamID, captures[1]); err != nil {
			return fmt.Errorf("failed to delete trigger: %w", err)
		}
		return t.sender.Reaction(post, "ok_hand")
	}

	return nil
}

// fireTriggers runs the anti-spam checks and acts on matching triggers.
func (t *Trigger) fireTriggers(post *models.Post) error {
	// per-channel rate limit, so a heated discussion does not turn into a
	// wall of bot reactions
	rateKey := fmt.Sprintf("%s%s--global-channel-rate-limit", post.TeamID, post.ChannelID)
	if t.tempo.Exists(rateKey) {
		return nil
	}
	t.tempo.Set(rateKey, channelRateLimit)

	triggers, err := t.store.Search(context.Background(), post.TeamID)
	if err != nil {
		return fmt.Errorf("failed to search triggers: %w", err)
	}

	for _, trig := range triggers {
		if !ValidMatch(trig.TriggeredBy, post.Message) {
			continue
		}

		// this trigger already fired in this channel recently
		key := fmt.Sprintf("%s%s%s--trigger-channel-rate-limit", post.TeamID, post.ChannelID, trig.TriggeredBy)
		if t.tempo.Exists(key) {
			continue
		}
		t.tempo.Set(key, t.repeatDelay)

		if trig.IsText() {
			// text triggers win: stop here and suppress any remaining
			// emoji triggers for this message
			return t.sender.Reply(post, *trig.Text)
		}
		if trig.Emoji != nil {
			if err := t.sender.Reaction(post, *trig.Emoji); err != nil {
				return err
			}
		}
	}

	return nil
}
