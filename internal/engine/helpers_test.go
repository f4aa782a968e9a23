package engine

import "github.com/ericogr/monster-battle/internal/game"

// seqRand replays fixed draws, falling back to mid-range values once a
// sequence runs out.
type seqRand struct {
	floats []float64
	ints   []int
}

func (s *seqRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *seqRand) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func floats(v ...float64) *seqRand { return &seqRand{floats: v} }

type abilityTable map[string]*game.Ability

func (t abilityTable) Ability(id string) (*game.Ability, bool) {
	a, ok := t[id]
	return a, ok
}

func fighter(id string, types []game.Type, level, atk, def, spd int) *game.Combatant {
	sp := &game.Species{ID: id, Name: id, Types: types, CatchRate: 0.35}
	c := game.NewCombatant(sp, level, nil)
	c.Stats = game.Stats{MaxHP: 100, Attack: atk, Defense: def, Speed: spd, MaxStamina: 30}
	c.CurrentHP = 100
	c.Stamina = 30
	return c
}

func move(id string, t game.Type, cat game.Category, power int) *game.Move {
	return &game.Move{ID: id, Name: id, Type: t, Category: cat, Power: power, Accuracy: 100}
}
