package menu

import "github.com/jwebster45206/tactics-console/pkg/phase"

// IndirectFireOption is the game option that gates spotting.
const IndirectFireOption = "indirect_fire"

// Entity is the unit selected in the UI. The projector only reads it.
type Entity interface {
	ID() int
	CanChangeSecondaryFacing() bool
	CanFlipArms() bool
	CanSpot() bool
}

// Game is the running game as seen by the menu. Both answers come from the
// rules engine.
type Game interface {
	BooleanOption(name string) bool
	CanFindClub(entityID int) bool
}

// Facts is the snapshot of game state the rule pass derives commands from.
type Facts struct {
	Phase         phase.Phase
	Game          Game
	Entity        Entity
	HasBoard      bool
	HasUnitList   bool
	HasTarget     bool
	HasFireChoice bool
}
