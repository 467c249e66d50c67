package rulesfeed

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/jwebster45206/tactics-console/pkg/phase"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func commandEnabled(t *testing.T, p *menu.Projector, id menu.CommandID) bool {
	t.Helper()
	cmd, ok := p.Command(id)
	require.True(t, ok)
	return cmd.Enabled
}

func TestFeed_ApplyFiringSequence(t *testing.T) {
	p := menu.NewProjector(testLogger())
	feed := New(nil, "menu-rules", p, testLogger())
	ctx := context.Background()

	var applied []MessageType
	feed.OnApply(func(m Message) { applied = append(applied, m.Type) })

	steps := []Message{
		{Type: MessageGame, Game: &GameInfo{GameID: uuid.New(), Options: map[string]bool{menu.IndirectFireOption: true}, ClubFinders: []int{9}}},
		{Type: MessageBoard, Available: true},
		{Type: MessagePhase, Phase: "firing"},
		{Type: MessageEntity, Entity: &EntityInfo{EntityID: 9, CanTwist: true, CanSpotting: true}},
		{Type: MessageTarget, Available: true},
		{Type: MessageFireChoice, Available: true},
	}
	for _, m := range steps {
		require.NoError(t, feed.Apply(ctx, m))
	}

	assert.Len(t, applied, len(steps))
	for _, id := range []menu.CommandID{menu.FireFire, menu.FireSkip, menu.FireNextTarget, menu.FireTwist, menu.FireSpot, menu.FireFindClub, menu.ViewMiniMap, menu.FileGameSave} {
		assert.True(t, commandEnabled(t, p, id), id)
	}
	assert.False(t, commandEnabled(t, p, menu.FireFlipArms))
	assert.False(t, commandEnabled(t, p, menu.FileGameNew))

	require.NoError(t, feed.Apply(ctx, Message{Type: MessageEntity}))
	assert.Nil(t, p.Facts().Entity)
	assert.False(t, commandEnabled(t, p, menu.FireFire))

	require.NoError(t, feed.Apply(ctx, Message{Type: MessageGame}))
	assert.Nil(t, p.Facts().Game)
	assert.True(t, commandEnabled(t, p, menu.FileGameNew))
}

func TestFeed_HandleToggles(t *testing.T) {
	p := menu.NewProjector(testLogger())
	feed := New(nil, "menu-rules", p, testLogger())
	ctx := context.Background()

	require.NoError(t, feed.Handle(ctx, []byte(`{"type":"command","command":"moveWalk","enabled":true}`)))
	assert.True(t, commandEnabled(t, p, menu.MoveWalk))

	require.NoError(t, feed.Handle(ctx, []byte(`{"type":"minefield","mine":"vibrabomb","count":2}`)))
	cmd, _ := p.Command(menu.DeployMinesVibrabomb)
	assert.Equal(t, "Vibrabomb(2)", cmd.Label)
	assert.True(t, cmd.Enabled)
}

func TestFeed_Errors(t *testing.T) {
	p := menu.NewProjector(testLogger())
	feed := New(nil, "menu-rules", p, testLogger())
	ctx := context.Background()

	called := false
	feed.OnApply(func(Message) { called = true })

	tests := []struct {
		name    string
		payload string
		target  error
	}{
		{name: "unknown type", payload: `{"type":"weather"}`, target: ErrUnknownMessage},
		{name: "derived command", payload: `{"type":"command","command":"fileGameSave","enabled":true}`, target: ErrUnknownCommand},
		{name: "unknown mine", payload: `{"type":"minefield","mine":"thunder","count":1}`, target: ErrUnknownMine},
		{name: "bad phase", payload: `{"type":"phase","phase":"siege"}`, target: phase.ErrUnknownPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := feed.Handle(ctx, []byte(tt.payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}

	assert.Error(t, feed.Handle(ctx, []byte(`not json`)))
	assert.False(t, called)
	assert.False(t, commandEnabled(t, p, menu.FileGameSave))
}

func TestFeed_RunOverRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() {
		_ = client.Close()
	}()

	p := menu.NewProjector(testLogger())
	feed := New(client, "menu-rules", p, testLogger())

	applied := make(chan Message, 4)
	feed.OnApply(func(m Message) { applied <- m })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	require.Eventually(t, func() bool {
		subs, err := client.PubSubNumSub(context.Background(), "menu-rules").Result()
		return err == nil && subs["menu-rules"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, Publish(context.Background(), client, "menu-rules", Message{Type: MessagePhase, Phase: "lobby"}))
	require.NoError(t, client.Publish(context.Background(), "menu-rules", "garbage").Err())
	require.NoError(t, Publish(context.Background(), client, "menu-rules", Message{Type: MessageUnitList, Available: true}))

	for _, want := range []MessageType{MessagePhase, MessageUnitList} {
		select {
		case got := <-applied:
			assert.Equal(t, want, got.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	assert.Equal(t, phase.Lobby, p.Facts().Phase)
	assert.True(t, commandEnabled(t, p, menu.FileUnitsClear))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop after cancel")
	}
}

func TestFeed_RunWithoutClient(t *testing.T) {
	feed := New(nil, "menu-rules", menu.NewProjector(testLogger()), testLogger())
	assert.Error(t, feed.Run(context.Background()))
}
