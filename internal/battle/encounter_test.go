package battle

import (
	"testing"

	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

type constRand struct{ f float64 }

func (r constRand) Float64() float64 { return r.f }
func (r constRand) IntN(int) int     { return 0 }

type fakeTables struct {
	species map[string]*game.Species
	moves   map[string]*game.Move
	items   map[string]*game.Item
}

func (t *fakeTables) Species(id string) (*game.Species, bool) {
	s, ok := t.species[id]
	return s, ok
}

func (t *fakeTables) Move(id string) (*game.Move, bool) {
	m, ok := t.moves[id]
	return m, ok
}

func (t *fakeTables) Item(id string) (*game.Item, bool) {
	i, ok := t.items[id]
	return i, ok
}

func (t *fakeTables) Ability(string) (*game.Ability, bool) { return nil, false }

func newTables() *fakeTables {
	t := &fakeTables{
		species: map[string]*game.Species{
			"hero": {ID: "hero", Name: "Hero", Types: []game.Type{game.TypeNormal},
				Base:     game.BaseStats{HP: 50, Attack: 80, Defense: 50, Speed: 90},
				Learnset: []game.LearnEntry{{Level: 5, MoveID: "ember"}}},
			"evolver": {ID: "evolver", Types: []game.Type{game.TypeFire},
				Base:      game.BaseStats{HP: 40, Attack: 60, Defense: 40, Speed: 90},
				EvolvesTo: "evolved", EvolveLevel: 5},
			"evolved": {ID: "evolved", Types: []game.Type{game.TypeFire},
				Base: game.BaseStats{HP: 70, Attack: 90, Defense: 60, Speed: 100}},
			"zapper": {ID: "zapper", Types: []game.Type{game.TypeElectric},
				Base: game.BaseStats{HP: 40, Attack: 60, Defense: 40, Speed: 90}},
			"foe": {ID: "foe", Name: "Foe", Types: []game.Type{game.TypeNormal},
				Base: game.BaseStats{HP: 30, Attack: 30, Defense: 30, Speed: 10}, CatchRate: 0.01},
			"brute": {ID: "brute", Types: []game.Type{game.TypeNormal},
				Base: game.BaseStats{HP: 80, Attack: 200, Defense: 80, Speed: 200}},
			"mole": {ID: "mole", Types: []game.Type{game.TypeEarth},
				Base: game.BaseStats{HP: 60, Attack: 30, Defense: 60, Speed: 10}},
			"tank": {ID: "tank", Types: []game.Type{game.TypeNormal},
				Base: game.BaseStats{HP: 200, Attack: 20, Defense: 200, Speed: 10}},
		},
		moves: map[string]*game.Move{
			"tackle":       {ID: "tackle", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100},
			"growl":        {ID: "growl", Type: game.TypeNormal, Category: game.CategoryStatus, Accuracy: 100, TargetStages: []game.StageDelta{{Stat: game.StatAttack, Delta: -1}}},
			"harden":       {ID: "harden", Type: game.TypeNormal, Category: game.CategoryStatus, SelfStages: []game.StageDelta{{Stat: game.StatDefense, Delta: 1}}},
			"quick-strike": {ID: "quick-strike", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100, Priority: 1},
			"ember":        {ID: "ember", Type: game.TypeFire, Category: game.CategorySpecial, Power: 40, Accuracy: 100, Cost: 3},
			"zap":          {ID: "zap", Type: game.TypeElectric, Category: game.CategorySpecial, Power: 40, Accuracy: 100},
			"splash":       {ID: "splash", Type: game.TypeWater, Category: game.CategorySpecial, Power: 40, Accuracy: 100},
			"nova":         {ID: "nova", Type: game.TypeNormal, Category: game.CategorySpecial, Power: 120, Accuracy: 100, Cost: 50},
		},
		items: map[string]*game.Item{
			"potion":      {ID: "potion", Kind: game.ItemHeal, HealAmount: 20},
			"capture-orb": {ID: "capture-orb", Kind: game.ItemCapture, CatchBonus: 1},
			"master-orb":  {ID: "master-orb", Kind: game.ItemCapture, CatchBonus: 100},
			"moss-seed":   {ID: "moss-seed", Kind: game.ItemHeld},
		},
	}
	return t
}

func (t *fakeTables) combatant(id string, level int, moves ...string) *game.Combatant {
	return game.NewCombatant(t.species[id], level, moves)
}

type fixture struct {
	tables *fakeTables
	setup  Setup
}

func newFixture(tier game.Tier, f float64) *fixture {
	tb := newTables()
	hero := tb.combatant("hero", 5, "tackle", "growl")
	hero.Experience = 100
	return &fixture{
		tables: tb,
		setup: Setup{
			ID:          "enc-1",
			Party:       []*game.Combatant{hero},
			Opponent:    tb.combatant("foe", 3),
			Tier:        tier,
			Tables:      tb,
			Rand:        constRand{f: f},
			AutoAdvance: true,
			Inventory:   map[string]int{"potion": 1, "capture-orb": 2, "master-orb": 1, "moss-seed": 1},
		},
	}
}

func (fx *fixture) start(t *testing.T) *Encounter {
	t.Helper()
	e, err := StartEncounter(fx.setup)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if res := e.Begin(); !res.Accepted || res.State != fsm.PlayerTurn {
		t.Fatalf("begin: %+v", res)
	}
	return e
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func sideEvent(events []Event, kind EventKind, side engine.Side) bool {
	for _, ev := range events {
		if ev.Kind == kind && ev.Side == side {
			return true
		}
	}
	return false
}

func reactions(events []Event) []engine.ReactionKind {
	var out []engine.ReactionKind
	for _, ev := range events {
		if ev.Kind == EventReaction {
			out = append(out, ev.Reaction)
		}
	}
	return out
}

func TestStartEncounter_Validation(t *testing.T) {
	tb := newTables()
	if _, err := StartEncounter(Setup{Party: []*game.Combatant{tb.combatant("hero", 5)}}); err != ErrNoOpponent {
		t.Fatalf("expected ErrNoOpponent, got %v", err)
	}
	fainted := tb.combatant("hero", 5)
	fainted.SetHP(0)
	if _, err := StartEncounter(Setup{Party: []*game.Combatant{fainted}, Opponent: tb.combatant("foe", 3)}); err != ErrNoParty {
		t.Fatalf("expected ErrNoParty, got %v", err)
	}
}

func TestEncounter_StartsInIntro(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	e, err := StartEncounter(fx.setup)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if e.State() != fsm.Intro {
		t.Fatalf("expected INTRO, got %s", e.State())
	}
	if res := e.Submit(Action{Kind: ActionFlee}); res.Accepted {
		t.Fatalf("actions must be rejected during INTRO")
	}
	e.Begin()
	if res := e.Begin(); res.Accepted {
		t.Fatalf("second Begin must be rejected")
	}
}

func TestSubmit_IllegalActionLeavesStateUntouched(t *testing.T) {
	e := newFixture(game.TierWild, 0.5).start(t)
	if res := e.Submit(Action{Kind: ActionOpenItems}); !res.Accepted || res.State != fsm.PlayerSelectItem {
		t.Fatalf("open items: %+v", res)
	}
	hp := e.Opponent.CurrentHP
	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.Accepted || res.Reason != ReasonIllegalAction {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if e.State() != fsm.PlayerSelectItem || e.Turn != 0 || e.Opponent.CurrentHP != hp {
		t.Fatalf("rejected action mutated the encounter")
	}
	if res := e.Submit(Action{Kind: ActionBack}); !res.Accepted || res.State != fsm.PlayerTurn {
		t.Fatalf("back: %+v", res)
	}
}

func TestSubmit_InsufficientStamina(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party[0].Moves = []string{"nova", "tackle"}
	e := fx.start(t)
	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.Accepted || res.Reason != ReasonNoStamina {
		t.Fatalf("expected stamina rejection, got %+v", res)
	}
	if e.State() != fsm.PlayerTurn || e.Turn != 0 {
		t.Fatalf("turn must not be consumed")
	}
}

func TestSubmit_StruggleWithEmptyMoveList(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party[0].Moves = nil
	e := fx.start(t)
	res := e.Submit(Action{Kind: ActionUseMove, Index: 3})
	if !res.Accepted || !hasEvent(res.Events, EventStruggle) {
		t.Fatalf("expected struggle turn, got %+v", res)
	}
	if e.Turn != 1 || e.State() != fsm.PlayerTurn {
		t.Fatalf("expected turn 1 back in PLAYER_TURN, got %d %s", e.Turn, e.State())
	}
}

func TestSubmit_VictoryRewards(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	bench := fx.tables.combatant("hero", 5, "tackle")
	fx.setup.Party = append(fx.setup.Party, bench)
	fx.setup.Opponent.SetHP(1)
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if !res.Accepted || res.State != fsm.Result || res.Result == nil {
		t.Fatalf("expected terminal result, got %+v", res)
	}
	r := res.Result
	if r.Outcome != game.OutcomeWin || r.WinStreakDelta != 1 {
		t.Fatalf("unexpected outcome %+v", r)
	}
	if r.Currency != 6 {
		t.Fatalf("expected currency 6, got %d", r.Currency)
	}
	if len(r.Experience) != 2 || r.Experience[0].Experience != 15 || r.Experience[1].Experience != 4 {
		t.Fatalf("unexpected experience split %+v", r.Experience)
	}
	if !hasEvent(res.Events, EventFaint) || !hasEvent(res.Events, EventResult) {
		t.Fatalf("missing faint/result events")
	}
	if again := e.Submit(Action{Kind: ActionUseMove}); again.Accepted || again.Reason != ReasonFinished {
		t.Fatalf("finished encounter must reject actions")
	}
}

func TestSubmit_LearnReplaceSubFlow(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	hero := fx.tables.combatant("hero", 4, "tackle", "growl", "harden", "quick-strike")
	hero.Experience = 51
	fx.setup.Party = []*game.Combatant{hero}
	fx.setup.Opponent = fx.tables.combatant("foe", 10)
	fx.setup.Opponent.SetHP(1)
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.State != fsm.PlayerSelectLearnReplace {
		t.Fatalf("expected learn-replace, got %s", res.State)
	}
	if hero.Level != 5 {
		t.Fatalf("expected level 5, got %d", hero.Level)
	}
	if p, ok := e.PendingLearn(); !ok || p.MoveID != "ember" {
		t.Fatalf("expected ember pending, got %+v", p)
	}
	if bad := e.Submit(Action{Kind: ActionLearnReplace, Index: 9}); bad.Accepted {
		t.Fatalf("out of range slot must be rejected")
	}
	res = e.Submit(Action{Kind: ActionLearnReplace, Index: 1})
	if !res.Accepted || res.Result == nil || res.Result.Outcome != game.OutcomeWin {
		t.Fatalf("expected win after learning, got %+v", res)
	}
	if hero.Moves[1] != "ember" {
		t.Fatalf("expected ember in slot 1, got %v", hero.Moves)
	}
	learned := res.Result.MovesLearned
	if len(learned) != 1 || learned[0].Replaced != "growl" {
		t.Fatalf("unexpected learned moves %+v", learned)
	}
	if len(res.Result.LevelUps) != 1 {
		t.Fatalf("expected one level-up, got %+v", res.Result.LevelUps)
	}
}

func TestSubmit_Evolution(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	mon := fx.tables.combatant("evolver", 4, "tackle")
	mon.Experience = 51
	fx.setup.Party = []*game.Combatant{mon}
	fx.setup.Opponent = fx.tables.combatant("foe", 10)
	fx.setup.Opponent.SetHP(1)
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.Result == nil || len(res.Result.Evolutions) != 1 {
		t.Fatalf("expected an evolution, got %+v", res.Result)
	}
	if mon.SpeciesID != "evolved" || mon.MaxHP() != game.ScaleStats(fx.tables.species["evolved"].Base, 5).MaxHP {
		t.Fatalf("evolution not applied: %+v", mon)
	}
}

func TestSubmit_DefeatWithoutReplacement(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party[0].SetHP(1)
	fx.setup.Opponent = fx.tables.combatant("brute", 10, "tackle")
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.Result == nil || res.Result.Outcome != game.OutcomeLose || !res.Result.StreakReset {
		t.Fatalf("expected loss, got %+v", res)
	}
}

func TestSubmit_ForcedSwitch(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party[0].SetHP(1)
	fx.setup.Party = append(fx.setup.Party, fx.tables.combatant("hero", 5, "tackle"))
	fx.setup.Opponent = fx.tables.combatant("brute", 10, "tackle")
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.State != fsm.PlayerSelectSwitch || !e.ForcedSwitch() {
		t.Fatalf("expected forced switch, got %s", res.State)
	}
	if back := e.Submit(Action{Kind: ActionBack}); back.Accepted {
		t.Fatalf("back must be illegal during a forced switch")
	}
	if bad := e.Submit(Action{Kind: ActionSwitch, Index: 0}); bad.Accepted {
		t.Fatalf("fainted member cannot be switched in")
	}
	res = e.Submit(Action{Kind: ActionSwitch, Index: 1})
	if !res.Accepted || res.State != fsm.PlayerTurn || e.Active != 1 {
		t.Fatalf("expected switch into slot 1, got %+v", res)
	}
	if e.Turn != 1 {
		t.Fatalf("forced switch must not consume a turn, got %d", e.Turn)
	}
}

func TestSubmit_Flee(t *testing.T) {
	e := newFixture(game.TierWild, 0.5).start(t)
	res := e.Submit(Action{Kind: ActionFlee})
	if res.Result == nil || res.Result.Outcome != game.OutcomeRun {
		t.Fatalf("expected run, got %+v", res)
	}

	trainer := newFixture(game.TierTrainer, 0.5).start(t)
	if res := trainer.Submit(Action{Kind: ActionFlee}); res.Accepted {
		t.Fatalf("flee must be illegal against trainers")
	}
}

func TestSubmit_FailedFleeTicksWeather(t *testing.T) {
	fx := newFixture(game.TierWild, 0.9)
	fx.setup.Weather = game.WeatherSunny
	fx.setup.WeatherTurns = 1
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionFlee})
	if !res.Accepted || res.Result != nil {
		t.Fatalf("expected failed flee, got %+v", res)
	}
	if e.Weather != game.WeatherNone || !hasEvent(res.Events, EventWeather) {
		t.Fatalf("expected weather to clear, got %s", e.Weather)
	}
	if !hasEvent(res.Events, EventStruggle) {
		t.Fatalf("expected the opponent to act after a failed flee")
	}
}

func TestSubmit_GuaranteedCatch(t *testing.T) {
	e := newFixture(game.TierWild, 0.99).start(t)
	res := e.Submit(Action{Kind: ActionCatch, ItemID: "master-orb"})
	if res.Result == nil || res.Result.Outcome != game.OutcomeCatch || res.Result.Caught == nil {
		t.Fatalf("expected catch, got %+v", res)
	}
	if !res.Result.Caught.IsPlayer {
		t.Fatalf("caught creature should join the player's side")
	}
	if e.Inventory["master-orb"] != 0 || len(res.Result.ItemsUsed) != 1 {
		t.Fatalf("device must be consumed")
	}

	trainer := newFixture(game.TierGym, 0.5).start(t)
	if res := trainer.Submit(Action{Kind: ActionCatch, ItemID: "master-orb"}); res.Accepted {
		t.Fatalf("catching must be illegal against a gym")
	}
}

func TestSubmit_FailedCatchWaitsForAnimation(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.AutoAdvance = false
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionCatch, ItemID: "capture-orb"})
	if !res.Accepted || res.State != fsm.Animating {
		t.Fatalf("expected ANIMATING, got %+v", res)
	}
	if e.Inventory["capture-orb"] != 1 {
		t.Fatalf("expected one orb left, got %d", e.Inventory["capture-orb"])
	}
	if blocked := e.Submit(Action{Kind: ActionFlee}); blocked.Reason != ReasonAnimating {
		t.Fatalf("expected animation gate, got %+v", blocked)
	}
	if done := e.AnimationDone(); !done.Accepted || done.State != fsm.PlayerTurn {
		t.Fatalf("expected PLAYER_TURN after animation, got %+v", done)
	}
}

func TestSubmit_UseItem(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	e := fx.start(t)
	if res := e.Submit(Action{Kind: ActionUseItem, ItemID: "potion", Target: 0}); res.Reason != ReasonNoEffect {
		t.Fatalf("potion at full HP must be rejected, got %+v", res)
	}
	if res := e.Submit(Action{Kind: ActionUseItem, ItemID: "moss-seed", Target: 0}); res.Reason != ReasonNotUsable {
		t.Fatalf("held items cannot be used, got %+v", res)
	}
	hero := e.Player()
	hero.SetHP(10)
	res := e.Submit(Action{Kind: ActionUseItem, ItemID: "potion", Target: 0})
	if !res.Accepted || hero.CurrentHP != 30 {
		t.Fatalf("expected 30 HP after potion, got %d (%+v)", hero.CurrentHP, res)
	}
	if _, ok := e.Inventory["potion"]; ok {
		t.Fatalf("last potion should be removed from the inventory")
	}
}

func TestSubmit_ImmuneMoveHasNoEffect(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("zapper", 10, "zap")}
	fx.setup.Opponent = fx.tables.combatant("mole", 10)
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if !hasEvent(res.Events, EventNoEffect) || hasEvent(res.Events, EventDamage) {
		t.Fatalf("expected no-effect event, got %+v", res.Events)
	}
	if e.Opponent.CurrentHP != e.Opponent.MaxHP() {
		t.Fatalf("immune opponent must not lose HP")
	}
}

func TestObserver_ReceivesEvents(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	var seen []Event
	fx.setup.Observers = []Observer{ObserverFunc(func(id string, ev Event) {
		if id != "enc-1" {
			t.Fatalf("unexpected encounter id %q", id)
		}
		seen = append(seen, ev)
	})}
	e := fx.start(t)
	before := len(seen)
	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if len(seen)-before != len(res.Events) {
		t.Fatalf("observer saw %d events, step returned %d", len(seen)-before, len(res.Events))
	}
}

func TestHPInvariantAcrossTurns(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Opponent = fx.tables.combatant("mole", 30, "tackle", "growl")
	e := fx.start(t)
	for i := 0; i < 20 && !e.Finished(); i++ {
		if e.State() != fsm.PlayerTurn {
			break
		}
		e.Submit(Action{Kind: ActionUseMove, Index: i % 2})
		for _, c := range []*game.Combatant{e.Player(), e.Opponent} {
			if c.CurrentHP < 0 || c.CurrentHP > c.MaxHP() {
				t.Fatalf("HP out of range: %d/%d", c.CurrentHP, c.MaxHP())
			}
			for _, s := range []game.Stat{game.StatAttack, game.StatDefense, game.StatSpeed} {
				if st := c.Stage(s); st < game.MinStage || st > game.MaxStage {
					t.Fatalf("stage out of range: %d", st)
				}
			}
		}
	}
}

func TestAbandon_DuringLearnReplaceKeepsVictory(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	hero := fx.tables.combatant("hero", 4, "tackle", "growl", "harden", "quick-strike")
	hero.Experience = 51
	fx.setup.Party = []*game.Combatant{hero}
	fx.setup.Opponent = fx.tables.combatant("foe", 10)
	fx.setup.Opponent.SetHP(1)
	e := fx.start(t)

	if res := e.Submit(Action{Kind: ActionUseMove, Index: 0}); res.State != fsm.PlayerSelectLearnReplace {
		t.Fatalf("expected learn-replace, got %s", res.State)
	}
	res := e.Abandon()
	r := res.Result
	if !res.Accepted || r == nil || r.Outcome != game.OutcomeWin || r.WinStreakDelta != 1 {
		t.Fatalf("expected the victory to stand, got %+v", r)
	}
	if r.Currency == 0 || len(r.LevelUps) != 1 {
		t.Fatalf("rewards must be kept, got %+v", r)
	}
	if len(r.MovesLearned) != 1 || !r.MovesLearned[0].Skipped || hero.KnowsMove("ember") {
		t.Fatalf("pending move should be skipped, got %+v / %v", r.MovesLearned, hero.Moves)
	}
	if _, ok := e.PendingLearn(); ok {
		t.Fatalf("learn queue should be empty")
	}
}

func TestAbandon_UnfinishedBattle(t *testing.T) {
	e := newFixture(game.TierWild, 0.5).start(t)
	res := e.Abandon()
	if res.Result == nil || res.Result.Outcome != game.OutcomeAbandoned || res.Result.WinStreakDelta != 0 || res.Result.StreakReset {
		t.Fatalf("expected abandoned result, got %+v", res.Result)
	}
	if again := e.Abandon(); again.Accepted {
		t.Fatalf("finished encounter cannot be abandoned twice")
	}
}

func TestSteamBurst_ThawsAndLowersAccuracyForTwoTurns(t *testing.T) {
	fx := newFixture(game.TierWild, 0.8)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("hero", 5, "ember", "tackle")}
	opp := fx.tables.combatant("tank", 5, "tackle")
	opp.SetStatus(game.StatusFreeze, 0)
	fx.setup.Opponent = opp
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if got := reactions(res.Events); len(got) != 1 || got[0] != engine.ReactionSteamBurst {
		t.Fatalf("expected steam burst, got %v", got)
	}
	if opp.Status != game.StatusNone || !sideEvent(res.Events, EventStatusCured, engine.SideOpponent) {
		t.Fatalf("steam burst should thaw the opponent, status %s", opp.Status)
	}
	if !sideEvent(res.Events, EventMiss, engine.SideOpponent) {
		t.Fatalf("turn 1: opponent should miss under accuracy-down")
	}

	res = e.Submit(Action{Kind: ActionUseMove, Index: 1})
	if !sideEvent(res.Events, EventMiss, engine.SideOpponent) {
		t.Fatalf("turn 2: opponent should still miss under accuracy-down")
	}
	if opp.AccuracyDownTurns != 0 {
		t.Fatalf("debuff should be spent after two actions, got %d", opp.AccuracyDownTurns)
	}

	res = e.Submit(Action{Kind: ActionUseMove, Index: 1})
	if sideEvent(res.Events, EventMiss, engine.SideOpponent) || !sideEvent(res.Events, EventDamage, engine.SideOpponent) {
		t.Fatalf("turn 3: opponent should hit again, got %+v", res.Events)
	}
}

func TestConduction_WetWindowLastsTwoTurns(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("zapper", 10, "splash", "zap")}
	opp := fx.tables.combatant("tank", 5, "tackle")
	fx.setup.Opponent = opp
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if len(reactions(res.Events)) != 0 || opp.WetTurns != 2 {
		t.Fatalf("splash should soak without reacting, wet %d", opp.WetTurns)
	}
	for turn := 2; turn <= 3; turn++ {
		res = e.Submit(Action{Kind: ActionUseMove, Index: 1})
		if got := reactions(res.Events); len(got) != 1 || got[0] != engine.ReactionConduction {
			t.Fatalf("turn %d: expected conduction, got %v", turn, got)
		}
	}
	res = e.Submit(Action{Kind: ActionUseMove, Index: 1})
	if got := reactions(res.Events); len(got) != 0 {
		t.Fatalf("turn 4: opponent should be dry, got %v", got)
	}
}

func TestConduction_RainyWeather(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("zapper", 10, "zap")}
	fx.setup.Opponent = fx.tables.combatant("tank", 5, "tackle")
	fx.setup.Weather = game.WeatherRainy
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if got := reactions(res.Events); len(got) != 1 || got[0] != engine.ReactionConduction {
		t.Fatalf("expected conduction in the rain, got %v", got)
	}
}

func TestConduction_AfterOpponentWaterMove(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("zapper", 10, "zap")}
	fx.setup.Opponent = fx.tables.combatant("tank", 5, "splash")
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if got := reactions(res.Events); len(got) != 0 {
		t.Fatalf("turn 1: opponent has not used water yet, got %v", got)
	}
	res = e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if got := reactions(res.Events); len(got) != 1 || got[0] != engine.ReactionConduction {
		t.Fatalf("turn 2: expected conduction after the opponent's water move, got %v", got)
	}
}

func TestReaction_SkippedWhenHitFaintsTarget(t *testing.T) {
	fx := newFixture(game.TierWild, 0.5)
	fx.setup.Party = []*game.Combatant{fx.tables.combatant("hero", 5, "ember")}
	opp := fx.tables.combatant("foe", 3)
	opp.SetStatus(game.StatusFreeze, 0)
	opp.SetHP(1)
	fx.setup.Opponent = opp
	e := fx.start(t)

	res := e.Submit(Action{Kind: ActionUseMove, Index: 0})
	if res.Result == nil || res.Result.Outcome != game.OutcomeWin {
		t.Fatalf("expected a win, got %+v", res)
	}
	if hasEvent(res.Events, EventReaction) || hasEvent(res.Events, EventStatusCured) {
		t.Fatalf("a fainted target must not react, got %+v", res.Events)
	}
}
