package engine

import (
	"math"

	"github.com/ericogr/monster-battle/internal/game"
)

const (
	conductionFraction    = 0.12
	steamBurstFraction    = 0.50
	steamAccuracyTurns    = 2
	wetTurnsAfterWaterHit = 2
)

// ReactionKind names an elemental reaction.
type ReactionKind string

const (
	ReactionNone       ReactionKind = ""
	ReactionConduction ReactionKind = "conduction"
	ReactionSteamBurst ReactionKind = "steam_burst"
)

// Reaction is the value object produced by ElementReaction.
type Reaction struct {
	Kind        ReactionKind `json:"kind"`
	BonusDamage int          `json:"bonus_damage"`
	// ClearFreeze thaws the defender.
	ClearFreeze bool `json:"clear_freeze,omitempty"`
	// AccuracyDownTurns is the debuff imposed on the defender.
	AccuracyDownTurns int `json:"accuracy_down_turns,omitempty"`
}

// IsWet reports whether c counts as wet for conduction.
func IsWet(c *game.Combatant, weather game.Weather) bool {
	return weather == game.WeatherRainy || c.WetTurns > 0 || c.LastMoveType == game.TypeWater
}

// ElementReaction evaluates reactions for a successful damaging hit.
// baseDamage is the already-computed hit damage. A hit with effectiveness 0
// never reacts.
func ElementReaction(defender *game.Combatant, move *game.Move, hit DamageResult, weather game.Weather) Reaction {
	if defender == nil || move == nil || hit.Effectiveness == 0 || hit.Damage <= 0 {
		return Reaction{}
	}
	switch {
	case move.Type == game.TypeElectric && IsWet(defender, weather):
		return Reaction{
			Kind:        ReactionConduction,
			BonusDamage: max(1, int(math.Round(float64(defender.MaxHP())*conductionFraction))),
		}
	case move.Type == game.TypeFire && defender.Status == game.StatusFreeze:
		return Reaction{
			Kind:              ReactionSteamBurst,
			BonusDamage:       max(1, int(math.Round(float64(hit.Damage)*steamBurstFraction))),
			ClearFreeze:       true,
			AccuracyDownTurns: steamAccuracyTurns,
		}
	}
	return Reaction{}
}

// ElementUpdate is the post-hit bookkeeping decided by ElementStateAfterHit.
type ElementUpdate struct {
	AttackerLastMoveType game.Type `json:"attacker_last_move_type"`
	// DefenderWetTurns is zero when the defender does not become wet.
	DefenderWetTurns int `json:"defender_wet_turns,omitempty"`
}

// ElementStateAfterHit records the attacker's move type and soaks a surviving
// defender hit by a WATER move.
func ElementStateAfterHit(defender *game.Combatant, move *game.Move) ElementUpdate {
	u := ElementUpdate{}
	if move == nil {
		return u
	}
	u.AttackerLastMoveType = move.Type
	if move.Type == game.TypeWater && defender != nil && !defender.Fainted() {
		u.DefenderWetTurns = wetTurnsAfterWaterHit
	}
	return u
}
