package engine

import (
	"math"

	"github.com/ericogr/monster-battle/internal/game"
)

const (
	burnAttackRatio  = 0.75
	stabMultiplier   = 1.2
	varianceLow      = 0.88
	varianceSpan     = 0.24
	baseCritRate     = 0.125
	bondCritBonus    = 0.10
	bondCritMinimum  = 90
	critMultiplier   = 1.5
	pinchHPThreshold = 1.0 / 3.0
	pinchDefault     = 1.25
	guardDefault     = 0.9
)

// weatherTable lists per-weather move-type multipliers; missing pairs are 1.0.
var weatherTable = map[game.Weather]map[game.Type]float64{
	game.WeatherSunny: {
		game.TypeFire:  1.3,
		game.TypeWater: 0.7,
	},
	game.WeatherRainy: {
		game.TypeWater: 1.3,
		game.TypeFire:  0.7,
	},
	game.WeatherSandstorm: {
		game.TypeEarth:    1.2,
		game.TypeElectric: 0.8,
	},
}

// WeatherMultiplier returns the damage multiplier a weather applies to a move type.
func WeatherMultiplier(w game.Weather, t game.Type) float64 {
	if row, ok := weatherTable[w]; ok {
		if m, ok := row[t]; ok {
			return m
		}
	}
	return 1
}

// AbilitySource resolves ability identifiers. A nil source means no abilities.
type AbilitySource interface {
	Ability(id string) (*game.Ability, bool)
}

// Env carries the encounter-wide inputs of a damage computation.
type Env struct {
	Weather   game.Weather
	Abilities AbilitySource
}

func (e Env) ability(id string) *game.Ability {
	if e.Abilities == nil || id == "" {
		return nil
	}
	a, ok := e.Abilities.Ability(id)
	if !ok {
		return nil
	}
	return a
}

// DamageResult is the value object produced by CalcDamage.
type DamageResult struct {
	Damage          int         `json:"damage"`
	BaseDamage      float64     `json:"base_damage"`
	Effectiveness   float64     `json:"effectiveness"`
	Class           EffectClass `json:"class"`
	Critical        bool        `json:"critical"`
	STAB            bool        `json:"stab"`
	WeatherBoosted  bool        `json:"weather_boosted"`
	WeatherWeakened bool        `json:"weather_weakened"`
}

// CalcDamage computes the damage of move from attacker to defender. Status
// moves and zero-power moves short-circuit to a zero result. The random
// stream is consumed in a fixed order: variance, then critical.
//
// An effectiveness of exactly 0 yields Damage 0; callers must treat it as
// "no damage, no reaction".
func CalcDamage(attacker, defender *game.Combatant, move *game.Move, env Env, r Rand) DamageResult {
	res := DamageResult{Effectiveness: 1, Class: EffectNeutral}
	if attacker == nil || defender == nil || !move.IsDamaging() {
		return res
	}

	atk := attackWithModifiers(attacker)
	def := defenseWithModifiers(defender)
	if attacker.Status == game.StatusBurn && move.Category == game.CategoryPhysical {
		atk *= burnAttackRatio
	}

	eff := 1.0
	if defender.Species != nil {
		eff = Effectiveness(move.Type, defender.Species.Types)
	}
	res.Effectiveness = eff
	res.Class = ClassifyEffectiveness(eff)

	stab := 1.0
	if attacker.HasType(move.Type) {
		stab = stabMultiplier
		res.STAB = true
	}

	variance := varianceLow + r.Float64()*varianceSpan

	critRate := baseCritRate
	if attacker.IsPlayer && attacker.Bond >= bondCritMinimum {
		critRate += bondCritBonus
	}
	crit := 1.0
	if r.Float64() < critRate {
		crit = critMultiplier
		res.Critical = true
	}

	weather := WeatherMultiplier(env.Weather, move.Type)
	res.WeatherBoosted = weather > 1
	res.WeatherWeakened = weather < 1

	abilityAtk := 1.0
	if a := env.ability(attacker.AbilityID); a != nil && a.Kind == game.AbilityPinch {
		if res.STAB && attacker.HPRatio() <= pinchHPThreshold {
			abilityAtk = multiplierOr(a.Multiplier, pinchDefault)
		}
	}
	abilityDef := 1.0
	if a := env.ability(defender.AbilityID); a != nil && a.Kind == game.AbilityGuard {
		abilityDef = multiplierOr(a.Multiplier, guardDefault)
	}

	level := float64(attacker.Level)
	base := ((2*level/5+2)*float64(move.Power)*(atk/def))/50 + 2
	res.BaseDamage = base

	final := math.Round(base * eff * stab * variance * crit * weather * abilityAtk * abilityDef)
	if eff == 0 {
		res.Damage = 0
		return res
	}
	res.Damage = int(math.Max(1, final))
	return res
}

// EstimateDamage is CalcDamage with variance 1.0 and no critical hit.
func EstimateDamage(attacker, defender *game.Combatant, move *game.Move, env Env) DamageResult {
	return CalcDamage(attacker, defender, move, env, Neutral)
}

func multiplierOr(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
