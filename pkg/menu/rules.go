package menu

import "github.com/jwebster45206/tactics-console/pkg/phase"

var (
	joinCommands  = []CommandID{FileGameNew, FileGameOpen, FileGameScenario, FileGameConnectBot, FileGameConnect}
	tacticalViews = []CommandID{ViewLOSSetting, ViewMiniMap, ViewUnitOverview, ViewPlayerList}

	fireCommands = []CommandID{
		FireFire, FireSkip, FireNextTarget, FireNext, FireTwist,
		FireFlipArms, FireMode, FireFindClub, FireSpot, FireCancel,
	}
)

// applyRules recomputes every phase-derived command from f. It never touches
// commands whose state is pushed from outside.
func applyRules(c *Catalog, f Facts) {
	// With a game running we can't join another one, but we may save it.
	if f.Game != nil {
		c.setEnabled(false, joinCommands...)
		c.setEnabled(f.Phase.Saveable(), FileGameSave)
	} else {
		c.setEnabled(true, joinCommands...)
		c.setEnabled(false, FileGameSave)
	}

	// Printing has never been supported.
	c.setEnabled(false, FilePrint)

	c.setEnabled(true, FileBoardNew, FileBoardOpen)
	c.setEnabled(f.HasBoard, FileBoardSave, FileBoardSaveAs)

	inLobby := f.Phase == phase.Lobby
	c.setEnabled(inLobby, FileUnitsOpen)
	c.setEnabled(inLobby && f.HasUnitList, FileUnitsClear, FileUnitsSave)

	c.setEnabled(f.Entity != nil, ViewMekDisplay)

	tactical := f.Phase.Tactical()
	c.setEnabled(tactical, tacticalViews...)
	c.setEnabled(tactical && f.HasBoard, ViewMiniMap)

	c.setEnabled(f.Phase.Reportable(), ViewTurnReport)

	// Placeholder, never implemented.
	c.setEnabled(false, ViewInitiativeReport)

	c.setEnabled(true, ViewGameOptions, ViewClientSettings)

	applyFireRules(c, f)
}

func applyFireRules(c *Catalog, f Facts) {
	if f.Phase != phase.Firing || f.Entity == nil {
		c.setEnabled(false, fireCommands...)
		return
	}

	e := f.Entity
	c.setEnabled(f.HasTarget, FireNextTarget, FireSkip)
	c.setEnabled(f.HasTarget && f.HasFireChoice, FireFire)
	c.setEnabled(e.CanChangeSecondaryFacing(), FireTwist)
	c.setEnabled(e.CanFlipArms(), FireFlipArms)
	c.setEnabled(f.Game != nil && f.Game.CanFindClub(e.ID()), FireFindClub)
	c.setEnabled(e.CanSpot() && f.Game != nil && f.Game.BooleanOption(IndirectFireOption), FireSpot)
	c.setEnabled(true, FireNext, FireMode, FireCancel)
}
