package menu

// CommandID is the stable token reported to listeners when a command is chosen.
type CommandID string

const (
	FileGameNew        CommandID = "fileGameNew"
	FileGameOpen       CommandID = "fileGameOpen"
	FileGameSave       CommandID = "fileGameSave"
	FileGameScenario   CommandID = "fileGameScenario"
	FileGameConnectBot CommandID = "fileGameConnectBot"
	FileGameConnect    CommandID = "fileGameConnect"

	FileBoardNew    CommandID = "fileBoardNew"
	FileBoardOpen   CommandID = "fileBoardOpen"
	FileBoardSave   CommandID = "fileBoardSave"
	FileBoardSaveAs CommandID = "fileBoardSaveAs"

	FileUnitsOpen  CommandID = "fileUnitsOpen"
	FileUnitsClear CommandID = "fileUnitsClear"
	FileUnitsSave  CommandID = "fileUnitsSave"

	FilePrint CommandID = "filePrint"

	ViewMekDisplay       CommandID = "viewMekDisplay"
	ViewMiniMap          CommandID = "viewMiniMap"
	ViewUnitOverview     CommandID = "viewUnitOverview"
	ViewTurnReport       CommandID = "viewTurnReport"
	ViewInitiativeReport CommandID = "viewInitiativeReport"
	ViewGameOptions      CommandID = "viewGameOptions"
	ViewClientSettings   CommandID = "viewClientSettings"
	ViewLOSSetting       CommandID = "viewLOSSetting"
	ViewPlayerList       CommandID = "viewPlayerList"

	DeployMinesConventional CommandID = "deployMinesConventional"
	DeployMinesCommand      CommandID = "deployMinesCommand"
	DeployMinesVibrabomb    CommandID = "deployMinesVibrabomb"
	DeployNext              CommandID = "deployNext"
	DeployTurn              CommandID = "deployTurn"
	DeployLoad              CommandID = "deployLoad"
	DeployUnload            CommandID = "deployUnload"

	MoveWalk    CommandID = "moveWalk"
	MoveJump    CommandID = "moveJump"
	MoveBackUp  CommandID = "moveBackUp"
	MoveGetUp   CommandID = "moveGetUp"
	MoveGoProne CommandID = "moveGoProne"
	MoveTurn    CommandID = "moveTurn"
	MoveNext    CommandID = "moveNext"
	MoveLoad    CommandID = "moveLoad"
	MoveUnload  CommandID = "moveUnload"
	MoveCharge  CommandID = "moveCharge"
	MoveDFA     CommandID = "moveDFA"
	MoveFlee    CommandID = "moveFlee"
	MoveEject   CommandID = "moveEject"
	MoveUnjam   CommandID = "moveUnjam"
	MoveClear   CommandID = "moveClear"

	FireFire       CommandID = "fireFire"
	FireSkip       CommandID = "fireSkip"
	FireNextTarget CommandID = "fireNextTarg"
	FireNext       CommandID = "fireNext"
	FireTwist      CommandID = "fireTwist"
	FireFlipArms   CommandID = "fireFlipArms"
	FireMode       CommandID = "fireMode"
	FireFindClub   CommandID = "fireFindClub"
	FireSpot       CommandID = "fireSpot"
	FireCancel     CommandID = "fireCancel"

	PhysicalPunch    CommandID = "physicalPunch"
	PhysicalKick     CommandID = "physicalKick"
	PhysicalPush     CommandID = "physicalPush"
	PhysicalClub     CommandID = "physicalClub"
	PhysicalBrushOff CommandID = "physicalBrushOff"
	PhysicalThrash   CommandID = "physicalThrash"
	PhysicalDodge    CommandID = "physicalDodge"
	PhysicalNext     CommandID = "physicalNext"

	HelpContents CommandID = "helpContents"
	HelpAbout    CommandID = "helpAbout"
)

// Category groups commands the way the menu bar does.
type Category string

const (
	CategoryGame     Category = "game"
	CategoryBoard    Category = "board"
	CategoryUnits    Category = "units"
	CategoryFile     Category = "file"
	CategoryView     Category = "view"
	CategoryDeploy   Category = "deploy"
	CategoryMines    Category = "mines"
	CategoryMove     Category = "move"
	CategoryFire     Category = "fire"
	CategoryPhysical Category = "physical"
	CategoryHelp     Category = "help"
)

// Command is one menu entry. Values handed out by the projector are copies.
type Command struct {
	ID       CommandID `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Enabled  bool      `json:"enabled" yaml:"enabled"`
	Category Category  `json:"category" yaml:"category"`

	// Layout hints for adapters.
	Menu      string `json:"menu" yaml:"menu"`
	Submenu   string `json:"submenu,omitempty" yaml:"submenu,omitempty"`
	Shortcut  string `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	Separator bool   `json:"separator,omitempty" yaml:"separator,omitempty"` // separator drawn above the entry
}

// pushed reports whether the command's enabled flag is decided outside the
// projector and set through SetEnabled.
func (c Category) pushed() bool {
	switch c {
	case CategoryDeploy, CategoryMove, CategoryPhysical:
		return true
	}
	return false
}

// MineKind selects one of the minefield deployment commands.
type MineKind string

const (
	MineConventional MineKind = "conventional"
	MineCommand      MineKind = "command"
	MineVibrabomb    MineKind = "vibrabomb"
)

type mineEntry struct {
	id     CommandID
	prefix string
	// deployable is false for mines the client can never place itself.
	deployable bool
}

var mineCommands = map[MineKind]mineEntry{
	MineConventional: {id: DeployMinesConventional, prefix: "Minefield", deployable: true},
	MineCommand:      {id: DeployMinesCommand, prefix: "Command", deployable: false},
	MineVibrabomb:    {id: DeployMinesVibrabomb, prefix: "Vibrabomb", deployable: true},
}
