package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/tactics-console/pkg/menu"
	"github.com/jwebster45206/tactics-console/pkg/phase"
)

// localGame stands in for a server game when the console runs offline.
type localGame struct {
	id      uuid.UUID
	options map[string]bool
}

func newLocalGame() *localGame {
	return &localGame{
		id:      uuid.New(),
		options: map[string]bool{menu.IndirectFireOption: true},
	}
}

func (g *localGame) ID() uuid.UUID                  { return g.id }
func (g *localGame) BooleanOption(name string) bool { return g.options[name] }
func (g *localGame) CanFindClub(int) bool           { return false }

// demoUnit is a fully capable unit used to exercise the fire menu offline.
type demoUnit struct{ id int }

func (u *demoUnit) ID() int                        { return u.id }
func (u *demoUnit) CanChangeSecondaryFacing() bool { return true }
func (u *demoUnit) CanFlipArms() bool              { return true }
func (u *demoUnit) CanSpot() bool                  { return true }

// offlineController answers file commands locally so the menu can be driven
// without a rules engine.
type offlineController struct {
	projector *menu.Projector
	logger    *slog.Logger
}

var _ menu.Listener = (*offlineController)(nil)

func newOfflineController(p *menu.Projector, logger *slog.Logger) *offlineController {
	return &offlineController{projector: p, logger: logger}
}

func (c *offlineController) CommandSelected(ev menu.ActionEvent) {
	switch ev.Command {
	case menu.FileGameNew, menu.FileGameOpen, menu.FileGameScenario, menu.FileGameConnect, menu.FileGameConnectBot:
		g := newLocalGame()
		c.projector.SetGame(g)
		c.projector.SetPhase(phase.Lobby)
		c.logger.Info("Started local game", "game_id", g.ID().String(), "via", ev.Command)
	case menu.FileBoardNew, menu.FileBoardOpen:
		c.projector.SetBoard(true)
	case menu.FileUnitsOpen:
		c.projector.SetUnitList(true)
	case menu.FileUnitsClear:
		c.projector.SetUnitList(false)
	}
}

// stepPhase advances to the next phase of the round.
func (c *offlineController) stepPhase() phase.Phase {
	next := c.projector.Facts().Phase.Next()
	c.projector.SetPhase(next)
	return next
}

// toggleUnit selects the demo unit, or clears the selection.
func (c *offlineController) toggleUnit() bool {
	if c.projector.Facts().Entity != nil {
		c.projector.SetEntity(nil)
		return false
	}
	c.projector.SetEntity(&demoUnit{id: 1})
	return true
}

func (c *offlineController) toggleTarget() bool {
	next := !c.projector.Facts().HasTarget
	c.projector.SetHasTarget(next)
	return next
}

func (c *offlineController) toggleFireChoice() bool {
	next := !c.projector.Facts().HasFireChoice
	c.projector.SetHasFireChoice(next)
	return next
}
