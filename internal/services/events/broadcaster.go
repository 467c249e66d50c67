package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/jwebster45206/tactics-console/pkg/phase"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeCommandSelected EventType = "menu.command_selected"
)

// Event represents a generic event structure
type Event struct {
	Type    EventType      `json:"type"`
	Command menu.CommandID `json:"command"`
	GameID  string         `json:"game_id,omitempty"`
	Phase   phase.Phase    `json:"phase"`
	At      time.Time      `json:"at"`
}

// FactSource exposes the current menu facts.
type FactSource interface {
	Facts() menu.Facts
}

// Identified is implemented by games that carry an id.
type Identified interface {
	ID() uuid.UUID
}

// Broadcaster publishes every selected menu command to Redis Pub/Sub so
// other processes (a game server, a recorder) can follow the player.
type Broadcaster struct {
	redisClient *redis.Client
	channel     string
	facts       FactSource
	logger      *slog.Logger
	timeout     time.Duration
	now         func() time.Time
}

var _ menu.Listener = (*Broadcaster)(nil)

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, channel string, facts FactSource, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		channel:     channel,
		facts:       facts,
		logger:      logger,
		timeout:     2 * time.Second,
		now:         time.Now,
	}
}

// CommandSelected publishes a menu.command_selected event. Failures are
// logged; the menu never waits on Redis beyond the publish timeout.
func (b *Broadcaster) CommandSelected(ev menu.ActionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.PublishCommandSelected(ctx, ev.Command); err != nil {
		b.logger.Warn("Dropped command event", "command", ev.Command, "error", err)
	}
}

// PublishCommandSelected publishes a menu.command_selected event
func (b *Broadcaster) PublishCommandSelected(ctx context.Context, id menu.CommandID) error {
	facts := b.facts.Facts()
	event := Event{
		Type:    EventTypeCommandSelected,
		Command: id,
		Phase:   facts.Phase,
		At:      b.now().UTC(),
	}
	if g, ok := facts.Game.(Identified); ok {
		event.GameID = g.ID().String()
	}
	return b.publish(ctx, event)
}

func (b *Broadcaster) publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", b.channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", b.channel,
		"event_type", event.Type,
		"command", event.Command,
	)

	return nil
}
