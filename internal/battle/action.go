package battle

import (
	"github.com/ericogr/monster-battle/internal/fsm"
)

// ActionKind is a player input.
type ActionKind string

const (
	ActionOpenMoves    ActionKind = "open-moves"
	ActionOpenItems    ActionKind = "open-items"
	ActionOpenSwitch   ActionKind = "open-switch"
	ActionBack         ActionKind = "back"
	ActionUseMove      ActionKind = "use-move"
	ActionUseItem      ActionKind = "use-item"
	ActionSwitch       ActionKind = "switch"
	ActionCatch        ActionKind = "attempt-catch"
	ActionFlee         ActionKind = "flee"
	ActionLearnReplace ActionKind = "learn-replace"
)

// Action is submitted by the presentation layer.
//
//	use-move      Index = move slot
//	use-item      ItemID, Target = party slot
//	switch        Index = party slot
//	attempt-catch ItemID = capture device
//	learn-replace Index = move slot to forget, -1 to give up the new move
type Action struct {
	Kind   ActionKind `json:"kind"`
	Index  int        `json:"index"`
	ItemID string     `json:"item_id,omitempty"`
	Target int        `json:"target"`
}

// gating lists the actions each state accepts. States not listed accept
// nothing.
var gating = map[fsm.State][]ActionKind{
	fsm.PlayerTurn: {
		ActionOpenMoves, ActionOpenItems, ActionOpenSwitch,
		ActionUseMove, ActionUseItem, ActionSwitch, ActionCatch, ActionFlee,
	},
	fsm.PlayerSelectMove:         {ActionUseMove, ActionBack},
	fsm.PlayerSelectItem:         {ActionUseItem, ActionCatch, ActionBack},
	fsm.PlayerSelectSwitch:       {ActionSwitch, ActionBack},
	fsm.PlayerSelectLearnReplace: {ActionLearnReplace},
}

// allowed reports whether kind is legal in the encounter's current state.
func (e *Encounter) allowed(kind ActionKind) bool {
	for _, k := range e.LegalActions() {
		if k == kind {
			return true
		}
	}
	return false
}

// LegalActions returns the actions the encounter accepts right now.
func (e *Encounter) LegalActions() []ActionKind {
	base := gating[e.machine.Current()]
	out := make([]ActionKind, 0, len(base))
	for _, k := range base {
		switch {
		case k == ActionFlee && !e.Tier.AllowsFlee():
			continue
		case k == ActionCatch && !e.Tier.AllowsCatch():
			continue
		case k == ActionBack && e.forcedSwitch:
			continue
		}
		out = append(out, k)
	}
	return out
}
