// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/chameleon/lib/karma"
	"github.com/bureau-foundation/chameleon/lib/leaderboard"
	"github.com/bureau-foundation/chameleon/lib/snark"
)

// Fixed replies for self-karma attempts. The ledger is not touched.
const (
	selfIncrementReply = "Ahem, no self-karma please!"
	selfDecrementReply = "Now, now.  Don't be so hard on yourself!"
)

// noKarmaYet is the leaderboard sentinel for an empty ledger.
const noKarmaYet = "No karma yet!"

// Message is one inbound chat message, reduced to the fields karma
// handling needs.
type Message struct {
	// User is the platform ID of the sender.
	User string
	// Text is the raw message body.
	Text string
}

// Snapshotter reads the persisted ledger for display. The leaderboard
// always goes back to the file rather than trusting ledger memory.
type Snapshotter interface {
	Snapshot() ([]karma.Item, error)
}

// Config collects the collaborators a Bot needs.
type Config struct {
	// Ledger holds the standings and persists mutations.
	Ledger *karma.Ledger
	// Snapshot supplies leaderboard reads.
	Snapshot Snapshotter
	// Picker supplies reply flavor phrases.
	Picker *snark.Picker
	// Resolver maps user IDs to display names for leaderboard rows
	// and increment attributions. May be nil; boards then show raw
	// IDs and replies omit the attribution suffix.
	Resolver leaderboard.UserResolver
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Bot answers karma operations and leaderboard requests.
type Bot struct {
	ledger   *karma.Ledger
	snapshot Snapshotter
	picker   *snark.Picker
	resolver leaderboard.UserResolver
	logger   *slog.Logger
}

// New validates config and returns a Bot.
func New(config Config) (*Bot, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("bot: config.Ledger is nil")
	}
	if config.Snapshot == nil {
		return nil, fmt.Errorf("bot: config.Snapshot is nil")
	}
	if config.Picker == nil {
		return nil, fmt.Errorf("bot: config.Picker is nil")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		ledger:   config.Ledger,
		snapshot: config.Snapshot,
		picker:   config.Picker,
		resolver: config.Resolver,
		logger:   logger,
	}, nil
}

// HandleMessage processes one message and returns the reply to post.
// An empty reply with a nil error means the message needs none. An
// error means the operation was recognized but could not be recorded;
// nothing was changed and nothing should be posted.
func (b *Bot) HandleMessage(ctx context.Context, message Message) (string, error) {
	op := karma.Classify(message.Text)
	if op == karma.OpNone {
		return "", nil
	}
	if op == karma.OpDecrement && karma.LooksLikeURL(message.Text) {
		b.logger.Debug("ignoring decrement that is a pasted URL", "text", message.Text)
		return "", nil
	}
	if karma.IsSelfReference(message.User, message.Text) {
		if op == karma.OpIncrement {
			return selfIncrementReply, nil
		}
		return selfDecrementReply, nil
	}

	subject, err := karma.ExtractSubject(message.Text)
	if err != nil {
		b.logger.Debug("karma operation without a usable subject", "text", message.Text)
		return "", nil
	}

	switch op {
	case karma.OpIncrement:
		item, err := b.ledger.Increment(subject)
		if err != nil {
			return "", fmt.Errorf("incrementing %q: %w", subject, err)
		}
		reply := fmt.Sprintf("%s %s now has %d points", b.picker.Positive(), subject, item.Net())
		if name := b.attribution(ctx, message.User); name != "" {
			reply += ", thanks to " + name
		}
		return reply + ".", nil
	default:
		item, err := b.ledger.Decrement(subject)
		if err != nil {
			return "", fmt.Errorf("decrementing %q: %w", subject, err)
		}
		return fmt.Sprintf("%s %s now has %d points.", b.picker.Negative(), subject, item.Net()), nil
	}
}

// attribution resolves the sender's display name for the "thanks to"
// suffix on increments. Any failure just drops the suffix; a karma
// bump should never bounce on a name lookup.
func (b *Bot) attribution(ctx context.Context, userID string) string {
	if b.resolver == nil || userID == "" {
		return ""
	}
	name, err := b.resolver.DisplayName(ctx, userID)
	if err != nil {
		b.logger.Debug("attribution lookup failed", "user_id", userID, "error", err)
		return ""
	}
	return name
}

// Leaderboard re-reads the persisted ledger and renders the
// standings. With an empty ledger it returns the sentinel and two
// empty sections; otherwise the sentinel is empty and each section
// holds its labeled, fenced table (headers only when a partition has
// no entries).
func (b *Bot) Leaderboard(ctx context.Context) (empty, people, things string, err error) {
	items, err := b.snapshot.Snapshot()
	if err != nil {
		return "", "", "", fmt.Errorf("reading ledger snapshot: %w", err)
	}
	if len(items) == 0 {
		return noKarmaYet, "", "", nil
	}

	peopleRows, thingRows := leaderboard.Build(ctx, items, b.resolver)
	people = "User leaderboard:\n ```" + leaderboard.RenderTable(peopleRows) + "```"
	things = "Thing leaderboard:\n ```" + leaderboard.RenderTable(thingRows) + "```"
	return "", people, things, nil
}

// Boards returns the raw leaderboard rows for consumers that render
// their own views (the status page, the admin socket).
func (b *Bot) Boards(ctx context.Context) (people, things []leaderboard.Row, err error) {
	items, err := b.snapshot.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("reading ledger snapshot: %w", err)
	}
	people, things = leaderboard.Build(ctx, items, b.resolver)
	return people, things, nil
}

// Standing returns the ledger record for subject and whether one
// exists. Used by the /k query form and the admin socket.
func (b *Bot) Standing(subject string) (karma.Item, bool) {
	return b.ledger.Get(subject)
}

// Items returns a name-sorted snapshot of the in-memory ledger.
func (b *Bot) Items() []karma.Item {
	return b.ledger.Items()
}
