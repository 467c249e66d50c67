package menu

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/jwebster45206/tactics-console/pkg/phase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntity struct {
	id       int
	twist    bool
	flipArms bool
	spot     bool
}

func (e *fakeEntity) ID() int                        { return e.id }
func (e *fakeEntity) CanChangeSecondaryFacing() bool { return e.twist }
func (e *fakeEntity) CanFlipArms() bool              { return e.flipArms }
func (e *fakeEntity) CanSpot() bool                  { return e.spot }

type fakeGame struct {
	options     map[string]bool
	clubFinders map[int]bool
}

func (g *fakeGame) BooleanOption(name string) bool { return g.options[name] }
func (g *fakeGame) CanFindClub(id int) bool        { return g.clubFinders[id] }

type recordingListener struct {
	name string
	log  *[]string
}

func (r *recordingListener) CommandSelected(ev ActionEvent) {
	*r.log = append(*r.log, fmt.Sprintf("%s:%s", r.name, ev.Command))
}

type panickingListener struct{}

func (panickingListener) CommandSelected(ActionEvent) { panic("boom") }

func newTestProjector() *Projector {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
	return NewProjector(logger)
}

func enabled(t *testing.T, p *Projector, id CommandID) bool {
	t.Helper()
	cmd, ok := p.Command(id)
	require.True(t, ok, "command %s missing from catalog", id)
	return cmd.Enabled
}

func TestNewProjector_InitialState(t *testing.T) {
	p := newTestProjector()

	assert.Equal(t, phase.Unknown, p.Facts().Phase)
	for _, id := range joinCommands {
		assert.True(t, enabled(t, p, id), id)
	}
	assert.False(t, enabled(t, p, FileGameSave))
	assert.False(t, enabled(t, p, FilePrint))
	assert.True(t, enabled(t, p, FileBoardNew))
	assert.False(t, enabled(t, p, FileBoardSave))
	assert.True(t, enabled(t, p, ViewGameOptions))
	assert.True(t, enabled(t, p, HelpAbout))

	for _, cmd := range p.Commands() {
		switch cmd.Category {
		case CategoryDeploy, CategoryMines, CategoryMove, CategoryPhysical, CategoryFire:
			assert.False(t, cmd.Enabled, "%s should start disabled", cmd.ID)
		}
	}
}

func TestCatalog_Layout(t *testing.T) {
	c := NewCatalog()
	assert.Equal(t, []string{MenuFile, MenuView, MenuDeploy, MenuMove, MenuFire, MenuPhysical, MenuHelp}, c.Menus())

	seen := map[CommandID]bool{}
	for _, cmd := range c.Commands() {
		assert.False(t, seen[cmd.ID], "duplicate id %s", cmd.ID)
		seen[cmd.ID] = true
		assert.NotEmpty(t, cmd.Label)
	}
	_, ok := c.Command("nope")
	assert.False(t, ok)
}

func TestProjector_TacticalViewsFollowPhase(t *testing.T) {
	p := newTestProjector()
	p.SetBoard(true)

	for _, ph := range append(phase.All(), "siege") {
		p.SetPhase(ph)
		want := ph.Tactical()
		for _, id := range tacticalViews {
			assert.Equal(t, want, enabled(t, p, id), "%s in %s", id, ph)
		}
	}
}

func TestProjector_MiniMapNeedsBoard(t *testing.T) {
	p := newTestProjector()
	p.SetPhase(phase.Movement)
	assert.False(t, enabled(t, p, ViewMiniMap))
	assert.True(t, enabled(t, p, ViewLOSSetting))

	p.SetBoard(true)
	assert.True(t, enabled(t, p, ViewMiniMap))
	assert.True(t, enabled(t, p, FileBoardSave))
	assert.True(t, enabled(t, p, FileBoardSaveAs))

	p.SetPhase(phase.Lobby)
	assert.False(t, enabled(t, p, ViewMiniMap))
}

func TestProjector_TurnReport(t *testing.T) {
	p := newTestProjector()
	for _, ph := range phase.All() {
		p.SetPhase(ph)
		assert.Equal(t, ph.Reportable(), enabled(t, p, ViewTurnReport), ph)
		assert.False(t, enabled(t, p, ViewInitiativeReport), ph)
	}
}

func TestProjector_UnitList(t *testing.T) {
	tests := []struct {
		name      string
		phase     phase.Phase
		unitList  bool
		wantOpen  bool
		wantClear bool
	}{
		{name: "lobby without list", phase: phase.Lobby, wantOpen: true},
		{name: "lobby with list", phase: phase.Lobby, unitList: true, wantOpen: true, wantClear: true},
		{name: "movement with list", phase: phase.Movement, unitList: true},
		{name: "unknown without list", phase: phase.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProjector()
			p.SetUnitList(tt.unitList)
			p.SetPhase(tt.phase)
			assert.Equal(t, tt.wantOpen, enabled(t, p, FileUnitsOpen))
			assert.Equal(t, tt.wantClear, enabled(t, p, FileUnitsClear))
			assert.Equal(t, tt.wantClear, enabled(t, p, FileUnitsSave))
		})
	}
}

func TestProjector_GameToggleRestoresNoGamePattern(t *testing.T) {
	p := newTestProjector()
	p.SetGame(&fakeGame{})
	p.SetPhase(phase.Firing)

	for _, id := range joinCommands {
		assert.False(t, enabled(t, p, id), id)
	}
	assert.True(t, enabled(t, p, FileGameSave))

	p.SetPhase(phase.Victory)
	assert.False(t, enabled(t, p, FileGameSave))

	p.SetGame(nil)
	for _, id := range joinCommands {
		assert.True(t, enabled(t, p, id), id)
	}
	assert.False(t, enabled(t, p, FileGameSave))
}

func TestProjector_SaveOnlyInSaveablePhases(t *testing.T) {
	p := newTestProjector()
	p.SetGame(&fakeGame{})
	for _, ph := range append(phase.All(), "siege") {
		p.SetPhase(ph)
		assert.Equal(t, ph.Saveable(), enabled(t, p, FileGameSave), ph)
	}
}

func TestProjector_SetPhaseClearsEntity(t *testing.T) {
	p := newTestProjector()
	p.SetEntity(&fakeEntity{id: 7})
	assert.True(t, enabled(t, p, ViewMekDisplay))

	p.SetPhase(p.Facts().Phase)
	assert.Nil(t, p.Facts().Entity)
	assert.False(t, enabled(t, p, ViewMekDisplay))
}

func TestProjector_FiringRules(t *testing.T) {
	game := &fakeGame{
		options:     map[string]bool{IndirectFireOption: true},
		clubFinders: map[int]bool{1: true},
	}

	tests := []struct {
		name       string
		phase      phase.Phase
		entity     *fakeEntity
		target     bool
		fireChoice bool
		want       map[CommandID]bool
	}{
		{
			name:       "target and fire choice",
			phase:      phase.Firing,
			entity:     &fakeEntity{id: 2},
			target:     true,
			fireChoice: true,
			want: map[CommandID]bool{
				FireFire: true, FireSkip: true, FireNextTarget: true,
				FireNext: true, FireMode: true, FireCancel: true,
			},
		},
		{
			name:   "target without fire choice",
			phase:  phase.Firing,
			entity: &fakeEntity{id: 2},
			target: true,
			want: map[CommandID]bool{
				FireSkip: true, FireNextTarget: true,
				FireNext: true, FireMode: true, FireCancel: true,
			},
		},
		{
			name:       "fire choice without target",
			phase:      phase.Firing,
			entity:     &fakeEntity{id: 2},
			fireChoice: true,
			want:       map[CommandID]bool{FireNext: true, FireMode: true, FireCancel: true},
		},
		{
			name:   "capabilities",
			phase:  phase.Firing,
			entity: &fakeEntity{id: 1, twist: true, flipArms: true, spot: true},
			want: map[CommandID]bool{
				FireTwist: true, FireFlipArms: true, FireFindClub: true, FireSpot: true,
				FireNext: true, FireMode: true, FireCancel: true,
			},
		},
		{
			name:       "wrong phase",
			phase:      phase.Movement,
			entity:     &fakeEntity{id: 1, twist: true},
			target:     true,
			fireChoice: true,
			want:       map[CommandID]bool{},
		},
		{
			name:       "no entity",
			phase:      phase.Firing,
			target:     true,
			fireChoice: true,
			want:       map[CommandID]bool{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProjector()
			p.SetGame(game)
			p.SetPhase(tt.phase)
			if tt.entity != nil {
				p.SetEntity(tt.entity)
			}
			p.SetHasTarget(tt.target)
			p.SetHasFireChoice(tt.fireChoice)

			for _, id := range fireCommands {
				assert.Equal(t, tt.want[id], enabled(t, p, id), id)
			}
		})
	}
}

func TestProjector_FireChoiceWithdrawn(t *testing.T) {
	p := newTestProjector()
	p.SetPhase(phase.Firing)
	p.SetEntity(&fakeEntity{id: 3})
	p.SetHasTarget(true)
	p.SetHasFireChoice(true)
	require.True(t, enabled(t, p, FireFire))

	p.SetHasFireChoice(false)
	assert.False(t, enabled(t, p, FireFire))
	assert.True(t, enabled(t, p, FireSkip))
	assert.True(t, enabled(t, p, FireNextTarget))
}

func TestProjector_SpotNeedsIndirectFire(t *testing.T) {
	game := &fakeGame{options: map[string]bool{}}
	p := newTestProjector()
	p.SetGame(game)
	p.SetPhase(phase.Firing)
	p.SetEntity(&fakeEntity{id: 4, spot: true})
	assert.False(t, enabled(t, p, FireSpot))

	game.options[IndirectFireOption] = true
	p.SetHasTarget(false) // any setter reruns the rules
	assert.True(t, enabled(t, p, FireSpot))
}

func TestProjector_SettersAreIdempotent(t *testing.T) {
	p := newTestProjector()
	p.SetGame(&fakeGame{})
	p.SetPhase(phase.Firing)
	p.SetEntity(&fakeEntity{id: 5, twist: true})
	p.SetHasTarget(true)
	before := p.Commands()

	p.SetHasTarget(true)
	p.SetBoard(false)
	p.SetUnitList(false)
	assert.Equal(t, before, p.Commands())
}

func TestProjector_SetEnabled(t *testing.T) {
	p := newTestProjector()

	for _, id := range []CommandID{MoveWalk, DeployNext, PhysicalKick} {
		assert.True(t, p.SetEnabled(id, true), id)
		assert.True(t, enabled(t, p, id), id)
	}

	// Direct toggles survive a rule pass.
	p.SetPhase(phase.Lobby)
	assert.True(t, enabled(t, p, MoveWalk))

	// Derived and mine commands are not toggled directly.
	assert.False(t, p.SetEnabled(FileGameSave, true))
	assert.False(t, enabled(t, p, FileGameSave))
	assert.False(t, p.SetEnabled(DeployMinesConventional, true))
	assert.False(t, p.SetEnabled("bogus", true))
}

func TestProjector_SetMinefieldCount(t *testing.T) {
	tests := []struct {
		kind        MineKind
		count       int
		wantLabel   string
		wantEnabled bool
	}{
		{kind: MineConventional, count: 0, wantLabel: "Minefield(0)"},
		{kind: MineConventional, count: 3, wantLabel: "Minefield(3)", wantEnabled: true},
		{kind: MineVibrabomb, count: 0, wantLabel: "Vibrabomb(0)"},
		{kind: MineVibrabomb, count: 2, wantLabel: "Vibrabomb(2)", wantEnabled: true},
		{kind: MineCommand, count: 4, wantLabel: "Command(4)"},
	}

	for _, tt := range tests {
		t.Run(tt.wantLabel, func(t *testing.T) {
			p := newTestProjector()
			require.True(t, p.SetMinefieldCount(tt.kind, tt.count))
			cmd, ok := p.Command(mineCommands[tt.kind].id)
			require.True(t, ok)
			assert.Equal(t, tt.wantLabel, cmd.Label)
			assert.Equal(t, tt.wantEnabled, cmd.Enabled)
		})
	}

	p := newTestProjector()
	assert.False(t, p.SetMinefieldCount("thunder", 1))
}

func TestProjector_DispatchOrder(t *testing.T) {
	p := newTestProjector()
	var log []string
	first := &recordingListener{name: "first", log: &log}
	second := &recordingListener{name: "second", log: &log}

	p.AddListener(first)
	p.AddListener(second)
	p.Dispatch(ActionEvent{Command: FireFire})
	assert.Equal(t, []string{"first:fireFire", "second:fireFire"}, log)

	log = log[:0]
	p.RemoveListener(first)
	p.Dispatch(ActionEvent{Command: FireSkip})
	assert.Equal(t, []string{"second:fireSkip"}, log)
}

func TestProjector_DuplicateListeners(t *testing.T) {
	p := newTestProjector()
	var log []string
	l := &recordingListener{name: "dup", log: &log}

	p.AddListener(l)
	p.AddListener(l)
	p.Dispatch(ActionEvent{Command: HelpAbout})
	assert.Len(t, log, 2)

	log = log[:0]
	p.RemoveListener(l)
	p.Dispatch(ActionEvent{Command: HelpAbout})
	assert.Len(t, log, 1)

	p.RemoveListener(&recordingListener{name: "stranger", log: &log})
	p.Dispatch(ActionEvent{Command: HelpAbout})
	assert.Len(t, log, 2)
}

func TestProjector_PanickingListenerIsIsolated(t *testing.T) {
	p := newTestProjector()
	var log []string
	p.AddListener(panickingListener{})
	p.AddListener(&recordingListener{name: "after", log: &log})

	assert.NotPanics(t, func() {
		p.Dispatch(ActionEvent{Command: HelpContents})
	})
	assert.Equal(t, []string{"after:helpContents"}, log)
}

type reentrantListener struct{ p *Projector }

func (r *reentrantListener) CommandSelected(ev ActionEvent) {
	if ev.Command == FileBoardNew {
		r.p.SetBoard(true)
	}
}

func TestProjector_ListenerMayCallSetters(t *testing.T) {
	p := newTestProjector()
	p.AddListener(&reentrantListener{p: p})

	p.Dispatch(ActionEvent{Command: FileBoardNew, Input: "key:n"})
	assert.True(t, p.Facts().HasBoard)
	assert.True(t, enabled(t, p, FileBoardSave))
}
