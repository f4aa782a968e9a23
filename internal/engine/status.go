package engine

import (
	"math"

	"github.com/ericogr/monster-battle/internal/game"
)

const (
	bondCureMinimum      = 80
	bondCureChance       = 0.20
	burnTickFraction     = 0.10
	poisonTickFraction   = 0.08
	paralysisSkipChance  = 0.25
	freezeThawChance     = 0.20
	sleepWakeChance      = 0.33
	defaultSleepDuration = 3
)

// NormalizeChance converts a status chance to the 0-100 percent scale.
// Values in (0, 1] are fractions; zero or less means the effect always lands.
func NormalizeChance(c float64) float64 {
	switch {
	case c <= 0:
		return 100
	case c <= 1:
		return c * 100
	case c > 100:
		return 100
	default:
		return c
	}
}

// SleepDuration draws the wake threshold for a fresh sleep, 1 to 3 turns.
func SleepDuration(r Rand) int {
	return 1 + r.IntN(defaultSleepDuration)
}

// RollStatus decides whether move inflicts its status on target. Statuses
// never stack or override: a target that already has one is left alone and
// no random draw is consumed.
func RollStatus(target *game.Combatant, move *game.Move, r Rand) (game.Status, bool) {
	if target == nil || move == nil || move.InflictStatus == "" || move.InflictStatus == game.StatusNone {
		return game.StatusNone, false
	}
	if target.Status != game.StatusNone || target.Fainted() {
		return game.StatusNone, false
	}
	if r.Float64()*100 >= NormalizeChance(move.StatusChance) {
		return game.StatusNone, false
	}
	return move.InflictStatus, true
}

// TurnStartOutcome tells the controller whether a combatant may act.
type TurnStartOutcome string

const (
	TurnAct     TurnStartOutcome = "act"
	TurnSkip    TurnStartOutcome = "skip"
	TurnFainted TurnStartOutcome = "fainted"
)

// TurnStart is the decision of ProcessTurnStartStatus. The controller applies
// it to the combatant.
type TurnStart struct {
	Outcome TurnStartOutcome `json:"outcome"`
	Status  game.Status      `json:"status"`
	// Damage is the burn/poison tick to subtract.
	Damage int `json:"damage,omitempty"`
	// ClearStatus is set when the status ends this turn (bond cure, thaw, wake).
	ClearStatus bool `json:"clear_status,omitempty"`
	BondCured   bool `json:"bond_cured,omitempty"`
	// SleepTurns is the updated sleep counter when still asleep.
	SleepTurns int `json:"sleep_turns,omitempty"`
}

// ProcessTurnStartStatus resolves the status condition of c before it acts.
func ProcessTurnStartStatus(c *game.Combatant, r Rand) TurnStart {
	ts := TurnStart{Outcome: TurnAct, Status: c.Status}
	if c.Fainted() {
		ts.Outcome = TurnFainted
		return ts
	}
	if c.Status == game.StatusNone || c.Status == "" {
		return ts
	}
	if c.IsPlayer && c.Bond >= bondCureMinimum && chance(r, bondCureChance) {
		ts.ClearStatus = true
		ts.BondCured = true
		return ts
	}

	switch c.Status {
	case game.StatusBurn:
		ts.Damage = tickDamage(c, burnTickFraction)
	case game.StatusPoison:
		ts.Damage = tickDamage(c, poisonTickFraction)
	case game.StatusParalysis:
		if chance(r, paralysisSkipChance) {
			ts.Outcome = TurnSkip
		}
	case game.StatusFreeze:
		if chance(r, freezeThawChance) {
			ts.ClearStatus = true
		} else {
			ts.Outcome = TurnSkip
		}
	case game.StatusSleep:
		turns := c.SleepTurns + 1
		threshold := c.SleepThreshold
		if threshold <= 0 {
			threshold = defaultSleepDuration
		}
		if turns >= threshold || chance(r, sleepWakeChance) {
			ts.ClearStatus = true
		} else {
			ts.Outcome = TurnSkip
			ts.SleepTurns = turns
		}
	}
	if ts.Damage > 0 && ts.Damage >= c.CurrentHP {
		ts.Outcome = TurnFainted
	}
	return ts
}

func tickDamage(c *game.Combatant, fraction float64) int {
	return max(1, int(math.Round(float64(c.MaxHP())*fraction)))
}
