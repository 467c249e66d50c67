package rulesfeed

import (
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/tactics-console/pkg/menu"
)

// MessageType discriminates rules-feed messages
type MessageType string

const (
	MessageGame       MessageType = "game"
	MessageBoard      MessageType = "board"
	MessageUnitList   MessageType = "unit_list"
	MessageTarget     MessageType = "target"
	MessageFireChoice MessageType = "fire_choice"
	MessagePhase      MessageType = "phase"
	MessageEntity     MessageType = "entity"
	MessageCommand    MessageType = "command"
	MessageMinefield  MessageType = "minefield"
)

// Message is one fact or toggle pushed by the rules engine.
// Only the fields relevant to Type are read.
type Message struct {
	Type MessageType `json:"type"`

	Available bool        `json:"available,omitempty"` // board, unit_list, target, fire_choice
	Phase     string      `json:"phase,omitempty"`
	Game      *GameInfo   `json:"game,omitempty"`   // nil clears the game
	Entity    *EntityInfo `json:"entity,omitempty"` // nil clears the selection

	Command menu.CommandID `json:"command,omitempty"`
	Enabled bool           `json:"enabled,omitempty"`

	Mine  menu.MineKind `json:"mine,omitempty"`
	Count int           `json:"count,omitempty"`
}

// GameInfo is the rules engine's view of the running game.
type GameInfo struct {
	GameID      uuid.UUID       `json:"id"`
	Options     map[string]bool `json:"options,omitempty"`
	ClubFinders []int           `json:"club_finders,omitempty"` // entities that can pick up a club
}

var _ menu.Game = (*GameInfo)(nil)

func (g *GameInfo) ID() uuid.UUID { return g.GameID }

func (g *GameInfo) BooleanOption(name string) bool {
	return g.Options[name]
}

func (g *GameInfo) CanFindClub(entityID int) bool {
	return slices.Contains(g.ClubFinders, entityID)
}

// EntityInfo carries the capability answers for the selected unit.
type EntityInfo struct {
	EntityID    int  `json:"id"`
	CanTwist    bool `json:"can_twist,omitempty"`
	CanFlip     bool `json:"can_flip_arms,omitempty"`
	CanSpotting bool `json:"can_spot,omitempty"`
}

var _ menu.Entity = (*EntityInfo)(nil)

func (e *EntityInfo) ID() int                        { return e.EntityID }
func (e *EntityInfo) CanChangeSecondaryFacing() bool { return e.CanTwist }
func (e *EntityInfo) CanFlipArms() bool              { return e.CanFlip }
func (e *EntityInfo) CanSpot() bool                  { return e.CanSpotting }
