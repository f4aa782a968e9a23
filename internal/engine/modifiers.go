package engine

import (
	"math"

	"github.com/ericogr/monster-battle/internal/game"
)

// StageMultiplier maps a stat stage to its multiplier: max(0.25, 1 + stage*0.25).
func StageMultiplier(stage int) float64 {
	return math.Max(0.25, 1+float64(stage)*0.25)
}

func attackWithModifiers(c *game.Combatant) float64 {
	return float64(c.Stats.Attack) * StageMultiplier(c.AttackStage)
}

func defenseWithModifiers(c *game.Combatant) float64 {
	d := float64(c.Stats.Defense) * StageMultiplier(c.DefenseStage)
	if d < 1 {
		d = 1
	}
	return d
}

// EffectiveSpeed is floor(speed * mult(stage)), halved under paralysis.
func EffectiveSpeed(c *game.Combatant) int {
	spd := int(math.Floor(float64(c.Stats.Speed) * StageMultiplier(c.SpeedStage)))
	if c.Status == game.StatusParalysis {
		spd /= 2
	}
	if spd < 0 {
		spd = 0
	}
	return spd
}
