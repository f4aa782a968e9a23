package engine

import (
	"testing"

	"github.com/ericogr/monster-battle/internal/game"
)

func TestFirstToAct(t *testing.T) {
	fast := fighter("sparkit", []game.Type{game.TypeElectric}, 10, 60, 60, 90)
	slow := fighter("pebble", []game.Type{game.TypeNormal}, 10, 60, 60, 30)
	tackle := move("tackle", game.TypeNormal, game.CategoryPhysical, 40)
	quick := move("quick-strike", game.TypeNormal, game.CategoryPhysical, 40)
	quick.Priority = 1

	if got := FirstToAct(fast, slow, tackle, tackle, floats()); got != SidePlayer {
		t.Fatalf("faster side should act first, got %s", got)
	}
	if got := FirstToAct(fast, slow, tackle, quick, floats()); got != SideOpponent {
		t.Fatalf("priority should beat speed, got %s", got)
	}

	fast.Status = game.StatusParalysis
	fast.Stats.Speed = 50
	if got := FirstToAct(fast, slow, tackle, tackle, floats()); got != SideOpponent {
		t.Fatalf("paralysis halves speed, got %s", got)
	}
}

func TestFirstToAct_SpeedTieCoinFlip(t *testing.T) {
	a := fighter("a", []game.Type{game.TypeNormal}, 10, 60, 60, 50)
	b := fighter("b", []game.Type{game.TypeNormal}, 10, 60, 60, 50)
	if got := FirstToAct(a, b, nil, nil, &seqRand{ints: []int{0}}); got != SidePlayer {
		t.Fatalf("expected player on heads, got %s", got)
	}
	if got := FirstToAct(a, b, nil, nil, &seqRand{ints: []int{1}}); got != SideOpponent {
		t.Fatalf("expected opponent on tails, got %s", got)
	}
}

func TestFleeChance_Clamped(t *testing.T) {
	p := fighter("p", []game.Type{game.TypeNormal}, 10, 60, 60, 50)
	o := fighter("o", []game.Type{game.TypeNormal}, 10, 60, 60, 50)
	if got := FleeChance(p, o); got != 0.6 {
		t.Fatalf("expected 0.6 at equal speed, got %v", got)
	}
	p.Stats.Speed = 200
	if got := FleeChance(p, o); got != fleeMax {
		t.Fatalf("expected cap, got %v", got)
	}
	p.Stats.Speed = 1
	if got := FleeChance(p, o); got != fleeMin {
		t.Fatalf("expected floor, got %v", got)
	}
}

func TestHitChance_AccuracyDown(t *testing.T) {
	c := fighter("p", []game.Type{game.TypeNormal}, 10, 60, 60, 50)
	m := move("tackle", game.TypeNormal, game.CategoryPhysical, 40)
	if got := HitChance(c, m); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	c.AccuracyDownTurns = 2
	if got := HitChance(c, m); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	if RollHit(c, m, floats(0.8)) {
		t.Fatalf("draw 0.8 should miss at 75%%")
	}
	m.Accuracy = 0
	c.AccuracyDownTurns = 0
	r := floats(0.99)
	if !RollHit(c, m, r) || len(r.floats) != 1 {
		t.Fatalf("never-miss moves hit without drawing")
	}
}

func TestRewards(t *testing.T) {
	if got := ExperienceFor(game.TierGym, 10); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
	if got := ExperienceFor(game.TierWild, 4); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := SharedExperience(100); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := ExpForLevel(5); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := LevelForExp(4, 100); got != 5 {
		t.Fatalf("expected level 5, got %d", got)
	}
	if got := LevelForExp(7, 0); got != 7 {
		t.Fatalf("level never drops, got %d", got)
	}
}

func TestPickAbilityAndDrops(t *testing.T) {
	sp := &game.Species{
		Abilities: []game.AbilityCandidate{{ID: "blaze", Weight: 3}, {ID: "sturdy", Weight: 1}},
		Drops:     []game.Drop{{ItemID: "ember-shard", Chance: 0.5}, {ItemID: "rare-gem", Chance: 5}},
	}
	if got := PickAbility(sp, &seqRand{ints: []int{2}}); got != "blaze" {
		t.Fatalf("expected blaze, got %s", got)
	}
	if got := PickAbility(sp, &seqRand{ints: []int{3}}); got != "sturdy" {
		t.Fatalf("expected sturdy, got %s", got)
	}
	drops := RollDrops(sp, floats(0.4, 0.04))
	if len(drops) != 2 {
		t.Fatalf("expected both drops, got %v", drops)
	}
}
