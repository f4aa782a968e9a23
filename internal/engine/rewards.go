package engine

import "github.com/ericogr/monster-battle/internal/game"

const (
	// SharedExperiencePercent is the share of the active combatant's
	// experience given to each other conscious party member.
	SharedExperiencePercent = 30
	MaxLevel                = 100
)

var experienceMultipliers = map[game.Tier]int{
	game.TierWild:    5,
	game.TierTrainer: 8,
	game.TierArena:   10,
	game.TierGym:     15,
	game.TierBoss:    20,
}

var currencyMultipliers = map[game.Tier]int{
	game.TierWild:    2,
	game.TierTrainer: 10,
	game.TierArena:   12,
	game.TierGym:     20,
	game.TierBoss:    30,
}

// ExperienceFor is the experience granted for defeating an opponent.
func ExperienceFor(tier game.Tier, opponentLevel int) int {
	m, ok := experienceMultipliers[tier]
	if !ok {
		m = experienceMultipliers[game.TierWild]
	}
	return m * max(1, opponentLevel)
}

// SharedExperience is the portion passed to a benched party member.
func SharedExperience(exp int) int {
	return exp * SharedExperiencePercent / 100
}

// CurrencyFor is the money paid out on victory.
func CurrencyFor(tier game.Tier, opponentLevel int) int {
	m, ok := currencyMultipliers[tier]
	if !ok {
		m = currencyMultipliers[game.TierWild]
	}
	return m * max(1, opponentLevel)
}

// ExpForLevel is the total experience needed to reach level n.
func ExpForLevel(n int) int {
	if n <= 1 {
		return 0
	}
	return n * n * n * 4 / 5
}

// LevelForExp returns the highest level whose threshold exp has reached,
// never below current.
func LevelForExp(current, exp int) int {
	lvl := max(1, current)
	for lvl < MaxLevel && exp >= ExpForLevel(lvl+1) {
		lvl++
	}
	return lvl
}

// RollDrops draws once per drop entry in table order.
func RollDrops(sp *game.Species, r Rand) []string {
	if sp == nil {
		return nil
	}
	var out []string
	for _, d := range sp.Drops {
		p := d.Chance
		if p > 1 {
			p /= 100
		}
		if chance(r, p) {
			out = append(out, d.ItemID)
		}
	}
	return out
}

// PickAbility draws an ability from a species' weighted pool. Entries with
// no weight count as weight 1.
func PickAbility(sp *game.Species, r Rand) string {
	if sp == nil || len(sp.Abilities) == 0 {
		return ""
	}
	total := 0
	for _, a := range sp.Abilities {
		total += max(1, a.Weight)
	}
	n := r.IntN(total)
	for _, a := range sp.Abilities {
		n -= max(1, a.Weight)
		if n < 0 {
			return a.ID
		}
	}
	return sp.Abilities[len(sp.Abilities)-1].ID
}

// MovesLearnedAt lists the learnset entries unlocked when moving from level
// from (exclusive) to level to (inclusive).
func MovesLearnedAt(sp *game.Species, from, to int) []string {
	if sp == nil {
		return nil
	}
	var out []string
	for _, e := range sp.Learnset {
		if e.Level > from && e.Level <= to {
			out = append(out, e.MoveID)
		}
	}
	return out
}

// EvolutionTarget returns the species id sp evolves into at level, if any.
func EvolutionTarget(sp *game.Species, level int) (string, bool) {
	if sp == nil || sp.EvolvesTo == "" || sp.EvolveLevel <= 0 {
		return "", false
	}
	if level < sp.EvolveLevel {
		return "", false
	}
	return sp.EvolvesTo, true
}
