package fsm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ericogr/monster-battle/internal/game"
)

// State is a label of the battle state machine.
type State string

const (
	Intro                    State = "INTRO"
	PlayerTurn               State = "PLAYER_TURN"
	PlayerSelectMove         State = "PLAYER_SELECT_MOVE"
	PlayerSelectItem         State = "PLAYER_SELECT_ITEM"
	PlayerSelectSwitch       State = "PLAYER_SELECT_SWITCH"
	PlayerSelectLearnReplace State = "PLAYER_SELECT_LEARN_REPLACE"
	OpponentTurn             State = "OPPONENT_TURN"
	Animating                State = "ANIMATING"
	Result                   State = "RESULT"
)

// States is the closed vocabulary, in declaration order.
var States = []State{
	Intro,
	PlayerTurn,
	PlayerSelectMove,
	PlayerSelectItem,
	PlayerSelectSwitch,
	PlayerSelectLearnReplace,
	OpponentTurn,
	Animating,
	Result,
}

var ErrUnknownState = errors.New("unknown battle state")

var known = func() map[State]struct{} {
	m := make(map[State]struct{}, len(States))
	for _, s := range States {
		m[s] = struct{}{}
	}
	return m
}()

// Valid reports whether s is part of the vocabulary.
func (s State) Valid() bool {
	_, ok := known[s]
	return ok
}

// Terminal reports whether s ends the encounter.
func (s State) Terminal() bool { return s == Result }

// Parse resolves a state name case-insensitively.
func Parse(name string) (State, error) {
	s := State(strings.ToUpper(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	return s, nil
}

// Machine is a pure label holder. Transitions are unconditional; the flow
// controller decides which ones are legal.
type Machine struct {
	current State
	outcome game.Outcome
	history []State
}

// New returns a machine in INTRO.
func New() *Machine {
	return &Machine{current: Intro, history: []State{Intro}}
}

func (m *Machine) Current() State { return m.current }

// Outcome is set once the machine has reached RESULT.
func (m *Machine) Outcome() game.Outcome { return m.outcome }

// History returns every state entered so far, oldest first.
func (m *Machine) History() []State {
	return append([]State(nil), m.history...)
}

// Is reports whether the machine is in one of the given states.
func (m *Machine) Is(states ...State) bool {
	for _, s := range states {
		if m.current == s {
			return true
		}
	}
	return false
}

// Transition moves to the given state. A target outside the vocabulary is
// rejected with ErrUnknownState and leaves the machine untouched.
func (m *Machine) Transition(to State) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownState, string(to))
	}
	m.current = to
	m.history = append(m.history, to)
	if to != Result {
		m.outcome = game.OutcomeNone
	}
	return nil
}

// TransitionName parses name and transitions to it.
func (m *Machine) TransitionName(name string) error {
	s, err := Parse(name)
	if err != nil {
		return err
	}
	return m.Transition(s)
}

// MustTransition panics on an unknown state. Callers pass only constants.
func (m *Machine) MustTransition(to State) {
	if err := m.Transition(to); err != nil {
		panic(err)
	}
}

// Finish enters RESULT with the given outcome.
func (m *Machine) Finish(outcome game.Outcome) {
	m.MustTransition(Result)
	m.outcome = outcome
}
