package menu

const (
	MenuFile     = "File"
	MenuView     = "View"
	MenuDeploy   = "Deploy"
	MenuMove     = "Move"
	MenuFire     = "Fire"
	MenuPhysical = "Physical"
	MenuHelp     = "Help"
)

// definitions lists every command in menu order. Enabled is the state a
// command has before any fact or toggle reaches it.
var definitions = []Command{
	{ID: FileGameNew, Label: "New", Category: CategoryGame, Menu: MenuFile, Submenu: "Game"},
	{ID: FileGameOpen, Label: "Open...", Category: CategoryGame, Menu: MenuFile, Submenu: "Game"},
	{ID: FileGameSave, Label: "Save...", Category: CategoryGame, Menu: MenuFile, Submenu: "Game"},
	{ID: FileGameScenario, Label: "Open Scenario...", Category: CategoryGame, Menu: MenuFile, Submenu: "Game", Separator: true},
	{ID: FileGameConnectBot, Label: "Connect as Bot...", Category: CategoryGame, Menu: MenuFile, Submenu: "Game", Separator: true},
	{ID: FileGameConnect, Label: "Connect...", Category: CategoryGame, Menu: MenuFile, Submenu: "Game"},

	{ID: FileBoardNew, Label: "New", Category: CategoryBoard, Menu: MenuFile, Submenu: "Board"},
	{ID: FileBoardOpen, Label: "Open...", Category: CategoryBoard, Menu: MenuFile, Submenu: "Board"},
	{ID: FileBoardSave, Label: "Save...", Category: CategoryBoard, Menu: MenuFile, Submenu: "Board"},
	{ID: FileBoardSaveAs, Label: "Save As...", Category: CategoryBoard, Menu: MenuFile, Submenu: "Board"},

	{ID: FileUnitsOpen, Label: "Open...", Category: CategoryUnits, Menu: MenuFile, Submenu: "Unit List"},
	{ID: FileUnitsClear, Label: "Clear", Category: CategoryUnits, Menu: MenuFile, Submenu: "Unit List"},
	{ID: FileUnitsSave, Label: "Save...", Category: CategoryUnits, Menu: MenuFile, Submenu: "Unit List"},

	{ID: FilePrint, Label: "Print", Category: CategoryFile, Menu: MenuFile, Separator: true},

	{ID: ViewMekDisplay, Label: "Mek Display", Category: CategoryView, Menu: MenuView, Shortcut: "d"},
	{ID: ViewMiniMap, Label: "Mini Map", Category: CategoryView, Menu: MenuView, Shortcut: "m"},
	{ID: ViewUnitOverview, Label: "Unit Overview", Category: CategoryView, Menu: MenuView, Shortcut: "u"},
	{ID: ViewTurnReport, Label: "Turn Report", Category: CategoryView, Menu: MenuView, Separator: true},
	{ID: ViewInitiativeReport, Label: "Initiative Report", Category: CategoryView, Menu: MenuView},
	{ID: ViewGameOptions, Label: "Game Options", Category: CategoryView, Menu: MenuView, Separator: true},
	{ID: ViewClientSettings, Label: "Client Settings", Category: CategoryView, Menu: MenuView},
	{ID: ViewLOSSetting, Label: "LOS Setting", Category: CategoryView, Menu: MenuView, Shortcut: "l"},
	{ID: ViewPlayerList, Label: "Player List", Category: CategoryView, Menu: MenuView, Separator: true},

	{ID: DeployNext, Label: "Next Unit", Category: CategoryDeploy, Menu: MenuDeploy, Shortcut: "n"},
	{ID: DeployTurn, Label: "Turn", Category: CategoryDeploy, Menu: MenuDeploy},
	{ID: DeployLoad, Label: "Load", Category: CategoryDeploy, Menu: MenuDeploy},
	{ID: DeployUnload, Label: "Unload", Category: CategoryDeploy, Menu: MenuDeploy},
	{ID: DeployMinesConventional, Label: "Conventional", Category: CategoryMines, Menu: MenuDeploy, Submenu: "Mines", Separator: true},
	{ID: DeployMinesCommand, Label: "Command", Category: CategoryMines, Menu: MenuDeploy, Submenu: "Mines"},
	{ID: DeployMinesVibrabomb, Label: "Vibrabomb", Category: CategoryMines, Menu: MenuDeploy, Submenu: "Mines"},

	{ID: MoveWalk, Label: "Walk", Category: CategoryMove, Menu: MenuMove, Shortcut: "w"},
	{ID: MoveJump, Label: "Jump", Category: CategoryMove, Menu: MenuMove, Shortcut: "j"},
	{ID: MoveBackUp, Label: "Back Up", Category: CategoryMove, Menu: MenuMove},
	{ID: MoveGetUp, Label: "Get Up", Category: CategoryMove, Menu: MenuMove},
	{ID: MoveGoProne, Label: "Go Prone", Category: CategoryMove, Menu: MenuMove},
	{ID: MoveTurn, Label: "Turn", Category: CategoryMove, Menu: MenuMove},
	{ID: MoveNext, Label: "Next Unit", Category: CategoryMove, Menu: MenuMove, Shortcut: "n"},
	{ID: MoveLoad, Label: "Load", Category: CategoryMove, Menu: MenuMove, Submenu: "Special", Separator: true},
	{ID: MoveUnload, Label: "Unload", Category: CategoryMove, Menu: MenuMove, Submenu: "Special"},
	{ID: MoveCharge, Label: "Charge", Category: CategoryMove, Menu: MenuMove, Submenu: "Special", Separator: true},
	{ID: MoveDFA, Label: "Death From Above", Category: CategoryMove, Menu: MenuMove, Submenu: "Special"},
	{ID: MoveFlee, Label: "Flee", Category: CategoryMove, Menu: MenuMove, Submenu: "Special", Separator: true},
	{ID: MoveEject, Label: "Eject", Category: CategoryMove, Menu: MenuMove, Submenu: "Special"},
	{ID: MoveUnjam, Label: "Unjam RAC", Category: CategoryMove, Menu: MenuMove, Submenu: "Special", Separator: true},
	{ID: MoveClear, Label: "Clear Minefield", Category: CategoryMove, Menu: MenuMove, Submenu: "Special"},

	{ID: FireFire, Label: "Fire", Category: CategoryFire, Menu: MenuFire, Shortcut: "f"},
	{ID: FireSkip, Label: "Skip", Category: CategoryFire, Menu: MenuFire},
	{ID: FireNextTarget, Label: "Next Target", Category: CategoryFire, Menu: MenuFire},
	{ID: FireNext, Label: "Next Unit", Category: CategoryFire, Menu: MenuFire},
	{ID: FireTwist, Label: "Twist", Category: CategoryFire, Menu: MenuFire, Separator: true},
	{ID: FireFlipArms, Label: "Flip Arms", Category: CategoryFire, Menu: MenuFire},
	{ID: FireMode, Label: "Mode", Category: CategoryFire, Menu: MenuFire, Shortcut: "o", Separator: true},
	{ID: FireFindClub, Label: "Find Club", Category: CategoryFire, Menu: MenuFire, Separator: true},
	{ID: FireSpot, Label: "Spot", Category: CategoryFire, Menu: MenuFire},
	{ID: FireCancel, Label: "Cancel", Category: CategoryFire, Menu: MenuFire, Separator: true},

	{ID: PhysicalPunch, Label: "Punch", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalKick, Label: "Kick", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalPush, Label: "Push", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalClub, Label: "Club", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalBrushOff, Label: "Brush Off", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalThrash, Label: "Thrash", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalDodge, Label: "Dodge", Category: CategoryPhysical, Menu: MenuPhysical},
	{ID: PhysicalNext, Label: "Next Unit", Category: CategoryPhysical, Menu: MenuPhysical, Shortcut: "n"},

	{ID: HelpContents, Label: "Contents", Enabled: true, Category: CategoryHelp, Menu: MenuHelp},
	{ID: HelpAbout, Label: "About", Enabled: true, Category: CategoryHelp, Menu: MenuHelp, Separator: true},
}

// Catalog is the fixed, ordered set of commands keyed by id. It is not safe
// for concurrent use on its own; the Projector guards it.
type Catalog struct {
	order []CommandID
	items map[CommandID]*Command
	menus []string
}

// NewCatalog builds the full command set in its initial state.
func NewCatalog() *Catalog {
	c := &Catalog{
		order: make([]CommandID, 0, len(definitions)),
		items: make(map[CommandID]*Command, len(definitions)),
	}
	for _, def := range definitions {
		cmd := def
		c.order = append(c.order, cmd.ID)
		c.items[cmd.ID] = &cmd
		if len(c.menus) == 0 || c.menus[len(c.menus)-1] != cmd.Menu {
			c.menus = append(c.menus, cmd.Menu)
		}
	}
	return c
}

// Commands returns copies of every command in menu order.
func (c *Catalog) Commands() []Command {
	out := make([]Command, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Command returns a copy of the command with the given id.
func (c *Catalog) Command(id CommandID) (Command, bool) {
	cmd, ok := c.items[id]
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

// Menus returns the top-level menu titles in bar order.
func (c *Catalog) Menus() []string {
	out := make([]string, len(c.menus))
	copy(out, c.menus)
	return out
}

func (c *Catalog) setEnabled(enabled bool, ids ...CommandID) {
	for _, id := range ids {
		if cmd, ok := c.items[id]; ok {
			cmd.Enabled = enabled
		}
	}
}

func (c *Catalog) setLabel(id CommandID, label string) {
	if cmd, ok := c.items[id]; ok {
		cmd.Label = label
	}
}
