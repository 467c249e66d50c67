package menu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jwebster45206/tactics-console/pkg/phase"
)

// ActionEvent is what listeners receive when a command is chosen.
type ActionEvent struct {
	Command CommandID
	// Input is the originating input event from the UI toolkit, passed
	// through unmodified. It may be nil.
	Input any
}

// Listener is notified once per command selection. Implementations must be
// comparable (pointer types work) so RemoveListener can find them.
type Listener interface {
	CommandSelected(ev ActionEvent)
}

// Projector reflects game facts into the enabled state and labels of the
// menu commands and fans user selections out to listeners.
//
// All methods are safe for concurrent use. Every fact setter updates the
// snapshot and reruns the rule pass under one lock, so readers never see a
// half-applied change.
type Projector struct {
	mu        sync.Mutex
	catalog   *Catalog
	facts     Facts
	listeners []Listener
	logger    *slog.Logger
}

// NewProjector returns a projector with no game, no board and phase Unknown.
func NewProjector(logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Projector{
		catalog: NewCatalog(),
		facts:   Facts{Phase: phase.Unknown},
		logger:  logger,
	}
	applyRules(p.catalog, p.facts)
	return p
}

func (p *Projector) update(fn func(f *Facts)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.facts)
	applyRules(p.catalog, p.facts)
}

// SetGame sets or clears (nil) the current game.
func (p *Projector) SetGame(g Game) {
	p.update(func(f *Facts) { f.Game = g })
}

func (p *Projector) SetBoard(available bool) {
	p.update(func(f *Facts) { f.HasBoard = available })
}

func (p *Projector) SetUnitList(available bool) {
	p.update(func(f *Facts) { f.HasUnitList = available })
}

// SetEntity sets or clears (nil) the selected unit.
func (p *Projector) SetEntity(e Entity) {
	p.update(func(f *Facts) { f.Entity = e })
}

// SetPhase moves to a new phase. Any selected unit is deselected.
func (p *Projector) SetPhase(current phase.Phase) {
	p.update(func(f *Facts) {
		f.Entity = nil
		f.Phase = current
	})
}

func (p *Projector) SetHasTarget(available bool) {
	p.update(func(f *Facts) { f.HasTarget = available })
}

func (p *Projector) SetHasFireChoice(available bool) {
	p.update(func(f *Facts) { f.HasFireChoice = available })
}

// SetEnabled toggles a deployment, movement or physical command whose
// eligibility the rules engine decides. It reports false, and changes
// nothing, for any other command.
func (p *Projector) SetEnabled(id CommandID, enabled bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	cmd, ok := p.catalog.items[id]
	if !ok || !cmd.Category.pushed() {
		p.logger.Debug("Ignoring toggle for derived command", "command", id)
		return false
	}
	cmd.Enabled = enabled
	return true
}

// SetMinefieldCount shows how many mines of a kind are left to deploy and
// enables the command while any remain. Command mines are never enabled.
func (p *Projector) SetMinefieldCount(kind MineKind, n int) bool {
	entry, ok := mineCommands[kind]
	if !ok {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.catalog.setLabel(entry.id, fmt.Sprintf("%s(%d)", entry.prefix, n))
	p.catalog.setEnabled(entry.deployable && n > 0, entry.id)
	return true
}

func (p *Projector) AddListener(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// RemoveListener drops the first registration of l, if any.
func (p *Projector) RemoveListener(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, existing := range p.listeners {
		if existing == l {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch reports a chosen command to every listener in registration
// order. Listeners run on the caller's goroutine without the lock held, so
// they may call back into the projector. A listener that panics is logged
// and skipped.
func (p *Projector) Dispatch(ev ActionEvent) {
	p.mu.Lock()
	listeners := make([]Listener, len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	p.logger.Debug("Command selected", "command", ev.Command, "listeners", len(listeners))

	for i, l := range listeners {
		p.notify(i, l, ev)
	}
}

func (p *Projector) notify(index int, l Listener, ev ActionEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Listener panicked",
				"command", ev.Command,
				"listener_index", index,
				"panic", r)
		}
	}()
	l.CommandSelected(ev)
}

// Commands returns a copy of every command in menu order.
func (p *Projector) Commands() []Command {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog.Commands()
}

// Command returns a copy of a single command.
func (p *Projector) Command(id CommandID) (Command, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.catalog.Command(id)
}

// Menus returns the top-level menu titles in bar order.
func (p *Projector) Menus() []string {
	return p.catalog.Menus()
}

// Facts returns the current fact snapshot.
func (p *Projector) Facts() Facts {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.facts
}
