package battle

import (
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

// Snapshot is a read-only copy of the encounter for presentation.
type Snapshot struct {
	ID           string            `json:"id"`
	State        fsm.State         `json:"state"`
	Tier         game.Tier         `json:"tier"`
	Turn         int               `json:"turn"`
	Weather      game.Weather      `json:"weather"`
	WeatherTurns int               `json:"weather_turns"`
	Active       int               `json:"active"`
	Party        []*game.Combatant `json:"party"`
	Opponent     *game.Combatant   `json:"opponent"`
	Inventory    map[string]int    `json:"inventory"`
	Legal        []ActionKind      `json:"legal_actions"`
	ForcedSwitch bool              `json:"forced_switch"`
	PendingLearn *LearnedMove      `json:"pending_learn,omitempty"`
	Result       *Result           `json:"result,omitempty"`
}

// Snapshot copies the mutable parts of the encounter.
func (e *Encounter) Snapshot() Snapshot {
	s := Snapshot{
		ID:           e.ID,
		State:        e.machine.Current(),
		Tier:         e.Tier,
		Turn:         e.Turn,
		Weather:      e.Weather,
		WeatherTurns: e.WeatherTurns,
		Active:       e.Active,
		Opponent:     e.Opponent.Clone(),
		Inventory:    make(map[string]int, len(e.Inventory)),
		Legal:        e.LegalActions(),
		ForcedSwitch: e.forcedSwitch,
		Result:       e.result,
	}
	s.Party = make([]*game.Combatant, len(e.Party))
	for i, c := range e.Party {
		s.Party[i] = c.Clone()
	}
	for k, v := range e.Inventory {
		s.Inventory[k] = v
	}
	if p, ok := e.PendingLearn(); ok {
		s.PendingLearn = &p
	}
	return s
}
