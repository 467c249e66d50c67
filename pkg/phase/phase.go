package phase

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is a stage of a game round. The zero value is not a valid phase;
// use Unknown before a game has reported one.
type Phase string

const (
	Unknown          Phase = "unknown"
	Lobby            Phase = "lobby"
	Selection        Phase = "selection"
	Exchange         Phase = "exchange"
	Victory          Phase = "victory"
	StartingScenario Phase = "starting_scenario"
	DeployMinefields Phase = "deploy_minefields"
	Deployment       Phase = "deployment"
	Movement         Phase = "movement"
	Firing           Phase = "firing"
	Physical         Phase = "physical"
	Initiative       Phase = "initiative"
	End              Phase = "end"
)

var ErrUnknownPhase = errors.New("unknown phase")

var all = []Phase{
	Unknown, Lobby, Selection, Exchange, Victory, StartingScenario,
	DeployMinefields, Deployment, Movement, Firing, Physical, Initiative, End,
}

// All returns every phase in declaration order.
func All() []Phase {
	out := make([]Phase, len(all))
	copy(out, all)
	return out
}

// Parse accepts a phase name in any case, with '-' or '_' separators.
func Parse(s string) (Phase, error) {
	p := Phase(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !p.Valid() {
		return Unknown, fmt.Errorf("%w: %q", ErrUnknownPhase, s)
	}
	return p, nil
}

func (p Phase) String() string { return string(p) }

func (p Phase) Valid() bool {
	switch p {
	case Unknown, Lobby, Selection, Exchange, Victory, StartingScenario,
		DeployMinefields, Deployment, Movement, Firing, Physical, Initiative, End:
		return true
	}
	return false
}

// Tactical reports whether the board is in play: units are being placed,
// moved or attacking.
func (p Phase) Tactical() bool {
	switch p {
	case DeployMinefields, Movement, Firing, Physical, Deployment:
		return true
	}
	return false
}

// Reportable reports whether a turn report exists for the phase.
func (p Phase) Reportable() bool {
	switch p {
	case Initiative, Movement, Firing, Physical, End, Deployment:
		return true
	}
	return false
}

// Saveable reports whether a running game may be saved during the phase.
// Pre-game and post-game phases are excluded, as is anything out of set.
func (p Phase) Saveable() bool {
	switch p {
	case DeployMinefields, Deployment, Movement, Firing, Physical, Initiative, End:
		return true
	}
	return false
}

// Next returns the phase that follows p in a round. Phases outside the
// round loop (victory, exchange and so on) return themselves.
func (p Phase) Next() Phase {
	switch p {
	case Unknown:
		return Lobby
	case Lobby, Selection, StartingScenario:
		return Deployment
	case Exchange:
		return DeployMinefields
	case DeployMinefields:
		return Deployment
	case Deployment:
		return Initiative
	case Initiative:
		return Movement
	case Movement:
		return Firing
	case Firing:
		return Physical
	case Physical:
		return End
	case End:
		return Initiative
	}
	return p
}
