package engine

import "github.com/ericogr/monster-battle/internal/game"

// typeChart holds attack-type vs defend-type multipliers. Pairs that are
// absent are neutral (1.0).
var typeChart = map[game.Type]map[game.Type]float64{
	game.TypeNormal: {
		game.TypeEarth: 0.5,
	},
	game.TypeFire: {
		game.TypeFire:  0.5,
		game.TypeWater: 0.5,
		game.TypeGrass: 2,
		game.TypeEarth: 0.5,
	},
	game.TypeWater: {
		game.TypeFire:  2,
		game.TypeWater: 0.5,
		game.TypeGrass: 0.5,
		game.TypeEarth: 1.5,
	},
	game.TypeGrass: {
		game.TypeFire:     0.5,
		game.TypeWater:    2,
		game.TypeGrass:    0.5,
		game.TypeElectric: 1.5,
		game.TypeEarth:    2,
	},
	game.TypeElectric: {
		game.TypeWater:    2,
		game.TypeGrass:    0.5,
		game.TypeElectric: 0.5,
		game.TypeEarth:    0,
	},
	game.TypeEarth: {
		game.TypeFire:     2,
		game.TypeGrass:    0.5,
		game.TypeElectric: 2,
	},
}

// Effectiveness multiplies the chart value of the attack type against each of
// the defender's types.
func Effectiveness(attack game.Type, defender []game.Type) float64 {
	eff := 1.0
	row, ok := typeChart[attack]
	if !ok {
		return eff
	}
	for _, t := range defender {
		if mult, ok := row[t]; ok {
			eff *= mult
		}
	}
	return eff
}

// EffectClass is the presentation bucket of an effectiveness value.
type EffectClass string

const (
	EffectImmune   EffectClass = "immune"
	EffectResisted EffectClass = "resisted"
	EffectNeutral  EffectClass = "neutral"
	EffectSuper    EffectClass = "super"
)

// ClassifyEffectiveness buckets an effectiveness multiplier.
func ClassifyEffectiveness(eff float64) EffectClass {
	switch {
	case eff == 0:
		return EffectImmune
	case eff < 1:
		return EffectResisted
	case eff > 1:
		return EffectSuper
	default:
		return EffectNeutral
	}
}
