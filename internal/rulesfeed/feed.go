// Package rulesfeed applies facts and command toggles published by the rules
// engine over Redis Pub/Sub to a menu projector.
package rulesfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jwebster45206/tactics-console/internal/telemetry"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/jwebster45206/tactics-console/pkg/phase"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrUnknownMessage = errors.New("unknown rules message type")
	ErrUnknownCommand = errors.New("command cannot be toggled")
	ErrUnknownMine    = errors.New("unknown mine kind")
)

// Target is the part of the menu projector the feed drives.
type Target interface {
	SetGame(g menu.Game)
	SetBoard(available bool)
	SetUnitList(available bool)
	SetEntity(e menu.Entity)
	SetPhase(current phase.Phase)
	SetHasTarget(available bool)
	SetHasFireChoice(available bool)
	SetEnabled(id menu.CommandID, enabled bool) bool
	SetMinefieldCount(kind menu.MineKind, n int) bool
}

var _ Target = (*menu.Projector)(nil)

// Feed subscribes to a rules channel and applies each message to a Target.
type Feed struct {
	client  *redis.Client
	channel string
	target  Target
	logger  *slog.Logger
	tracer  trace.Tracer

	mu      sync.Mutex
	onApply func(Message)
}

// New creates a feed. The client may be nil when only Apply and Handle are used.
func New(client *redis.Client, channel string, target Target, logger *slog.Logger) *Feed {
	return &Feed{
		client:  client,
		channel: channel,
		target:  target,
		logger:  logger,
		tracer:  telemetry.Tracer("rulesfeed"),
	}
}

// OnApply registers a callback run after every successfully applied message.
// The console uses it to schedule a redraw.
func (f *Feed) OnApply(fn func(Message)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onApply = fn
}

// Run subscribes to the channel and applies messages until ctx is done.
// Malformed messages are logged and skipped.
func (f *Feed) Run(ctx context.Context) error {
	if f.client == nil {
		return errors.New("rules feed has no redis client")
	}

	pubsub := f.client.Subscribe(ctx, f.channel)
	defer func() {
		if err := pubsub.Close(); err != nil {
			f.logger.Warn("Failed to close rules subscription", "error", err)
		}
	}()

	// Wait for the subscription to be confirmed before reading.
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}
	f.logger.Info("Subscribed to rules feed", "channel", f.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("rules subscription closed")
			}
			if err := f.Handle(ctx, []byte(msg.Payload)); err != nil {
				f.logger.Error("Failed to apply rules message", "error", err, "payload", msg.Payload)
			}
		}
	}
}

// Handle decodes one JSON payload and applies it.
func (f *Feed) Handle(ctx context.Context, payload []byte) error {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("failed to parse rules message: %w", err)
	}
	return f.Apply(ctx, msg)
}

// Apply pushes a single message into the target.
func (f *Feed) Apply(ctx context.Context, msg Message) error {
	_, span := f.tracer.Start(ctx, "rulesfeed.apply")
	defer span.End()
	span.SetAttributes(attribute.String("rules.message_type", string(msg.Type)))

	if err := f.apply(msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	f.logger.Debug("Applied rules message", "type", msg.Type)

	f.mu.Lock()
	fn := f.onApply
	f.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
	return nil
}

func (f *Feed) apply(msg Message) error {
	switch msg.Type {
	case MessageGame:
		if msg.Game == nil {
			f.target.SetGame(nil)
		} else {
			f.target.SetGame(msg.Game)
		}
	case MessageBoard:
		f.target.SetBoard(msg.Available)
	case MessageUnitList:
		f.target.SetUnitList(msg.Available)
	case MessageTarget:
		f.target.SetHasTarget(msg.Available)
	case MessageFireChoice:
		f.target.SetHasFireChoice(msg.Available)
	case MessagePhase:
		p, err := phase.Parse(msg.Phase)
		if err != nil {
			return err
		}
		f.target.SetPhase(p)
	case MessageEntity:
		if msg.Entity == nil {
			f.target.SetEntity(nil)
		} else {
			f.target.SetEntity(msg.Entity)
		}
	case MessageCommand:
		if !f.target.SetEnabled(msg.Command, msg.Enabled) {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Command)
		}
	case MessageMinefield:
		if !f.target.SetMinefieldCount(msg.Mine, msg.Count) {
			return fmt.Errorf("%w: %q", ErrUnknownMine, msg.Mine)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

// Publish sends one message to a rules channel.
func Publish(ctx context.Context, client *redis.Client, channel string, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal rules message: %w", err)
	}
	if err := client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish rules message: %w", err)
	}
	return nil
}
