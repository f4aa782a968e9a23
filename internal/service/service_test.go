package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/config"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/storage"
)

type constRand struct{ f float64 }

func (r constRand) Float64() float64 { return r.f }
func (r constRand) IntN(int) int     { return 0 }

type fakeTables struct {
	species map[string]*game.Species
	moves   map[string]*game.Move
}

func (t *fakeTables) Species(id string) (*game.Species, bool) {
	s, ok := t.species[id]
	return s, ok
}

func (t *fakeTables) Move(id string) (*game.Move, bool) {
	m, ok := t.moves[id]
	return m, ok
}

func (t *fakeTables) Item(id string) (*game.Item, bool)       { return nil, false }
func (t *fakeTables) Ability(id string) (*game.Ability, bool) { return nil, false }

func (t *fakeTables) StartingMoves(sp *game.Species, level int) []string {
	var out []string
	for _, e := range sp.Learnset {
		if e.Level <= level {
			out = append(out, e.MoveID)
		}
	}
	return out
}

func newTables() *fakeTables {
	return &fakeTables{
		species: map[string]*game.Species{
			"brute": {ID: "brute", Types: []game.Type{game.TypeNormal},
				Base:     game.BaseStats{HP: 80, Attack: 200, Defense: 80, Speed: 200},
				Learnset: []game.LearnEntry{{Level: 1, MoveID: "tackle"}}},
			"foe": {ID: "foe", Types: []game.Type{game.TypeNormal},
				Base: game.BaseStats{HP: 30, Attack: 30, Defense: 30, Speed: 10}},
		},
		moves: map[string]*game.Move{
			"tackle": {ID: "tackle", Type: game.TypeNormal, Category: game.CategoryPhysical, Power: 40, Accuracy: 100},
		},
	}
}

type mockRepo struct {
	trainers map[string]*game.Trainer
	applied  []storage.BattleOutcome
	failNext bool
}

func (m *mockRepo) GetTrainerByUUID(uuid string) (*game.Trainer, error) {
	if t, ok := m.trainers[uuid]; ok {
		return t, nil
	}
	return nil, storage.ErrTrainerNotFound
}

func (m *mockRepo) CreateTrainer(t *game.Trainer) error {
	m.trainers[t.TrainerUUID] = t
	return nil
}

func (m *mockRepo) ApplyBattleOutcome(uuid string, o storage.BattleOutcome) error {
	if m.failNext {
		m.failNext = false
		return errors.New("database is locked")
	}
	m.applied = append(m.applied, o)
	return m.SaveParty(uuid, o.Party)
}

func (m *mockRepo) SaveParty(uuid string, party []game.PartyMember) error {
	t, ok := m.trainers[uuid]
	if !ok {
		return storage.ErrTrainerNotFound
	}
	for _, p := range party {
		for i := range t.Party {
			if t.Party[i].Slot == p.Slot && !t.Party[i].Boxed {
				t.Party[i] = p
			}
		}
	}
	return nil
}

const testConfig = `{
  "encounter_ttl_seconds": 60,
  "starting_currency": 50,
  "starting_items": [{"item": "capture-orb", "quantity": 3}],
  "areas": [{"name": "meadow", "weather": "sunny", "pool": [{"species": "foe", "min_level": 3, "max_level": 3, "weight": 1}]}]
}`

func newBattles(t *testing.T, opts ...Option) (*Battles, *mockRepo) {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	repo := &mockRepo{trainers: map[string]*game.Trainer{
		"ash":  {TrainerUUID: "ash", Party: []game.PartyMember{{Slot: 0, SpeciesID: "brute", Level: 20, Experience: 6400, CurrentHP: 999, Moves: []string{"tackle"}}}},
		"gary": {TrainerUUID: "gary", Party: []game.PartyMember{{Slot: 0, SpeciesID: "brute", Level: 20, CurrentHP: 0, Moves: []string{"tackle"}}}},
	}}
	opts = append([]Option{WithRand(constRand{f: 0.5}), WithAutoAdvance()}, opts...)
	return New(repo, newTables(), cfg, opts...), repo
}

func TestRegisterTrainer(t *testing.T) {
	b, repo := newBattles(t)
	if _, err := b.RegisterTrainer("  ", "brute"); !errors.Is(err, ErrInvalidTrainerName) {
		t.Fatalf("expected ErrInvalidTrainerName, got %v", err)
	}
	if _, err := b.RegisterTrainer("Misty", "missingno"); !errors.Is(err, ErrUnknownSpecies) {
		t.Fatalf("expected ErrUnknownSpecies, got %v", err)
	}
	tr, err := b.RegisterTrainer("Misty", "Brute")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := repo.trainers[tr.TrainerUUID]
	if stored == nil || stored.Currency != 50 || len(stored.Party) != 1 || len(stored.Inventory) != 1 {
		t.Fatalf("unexpected trainer %+v", stored)
	}
	if stored.Party[0].Level != starterLevel || stored.Party[0].CurrentHP <= 0 || len(stored.Party[0].Moves) != 1 {
		t.Fatalf("unexpected starter %+v", stored.Party[0])
	}
}

func TestStartWildEncounter_Errors(t *testing.T) {
	b, _ := newBattles(t)
	if _, err := b.StartWildEncounter("ash", "volcano"); !errors.Is(err, ErrUnknownArea) {
		t.Fatalf("expected ErrUnknownArea, got %v", err)
	}
	if _, err := b.StartWildEncounter("nobody", "meadow"); !errors.Is(err, ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
	if _, err := b.StartWildEncounter("gary", "meadow"); !errors.Is(err, ErrNoUsablePartyMember) {
		t.Fatalf("expected ErrNoUsablePartyMember, got %v", err)
	}
}

func TestStartWildEncounter_OnePerTrainer(t *testing.T) {
	b, _ := newBattles(t)
	snap, err := b.StartWildEncounter("ash", "Meadow")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.State != fsm.PlayerTurn || snap.Weather != game.WeatherSunny || snap.Opponent.Level != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if _, err := b.StartWildEncounter("ash", "meadow"); !errors.Is(err, ErrEncounterInProgress) {
		t.Fatalf("expected ErrEncounterInProgress, got %v", err)
	}
	if id, ok := b.ActiveEncounter("ash"); !ok || id != snap.ID {
		t.Fatalf("expected active encounter %s, got %s", snap.ID, id)
	}
}

func TestSubmitAction_Ownership(t *testing.T) {
	b, _ := newBattles(t)
	snap, err := b.StartWildEncounter("ash", "meadow")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := b.SubmitAction(snap.ID, "gary", battle.Action{Kind: battle.ActionFlee}); !errors.Is(err, ErrEncounterNotOwned) {
		t.Fatalf("expected ErrEncounterNotOwned, got %v", err)
	}
	if _, err := b.SubmitAction("nope", "ash", battle.Action{Kind: battle.ActionFlee}); !errors.Is(err, ErrEncounterNotFound) {
		t.Fatalf("expected ErrEncounterNotFound, got %v", err)
	}
}

func TestSubmitAction_RejectedActionIsNotAnError(t *testing.T) {
	b, repo := newBattles(t)
	snap, _ := b.StartWildEncounter("ash", "meadow")
	res, err := b.SubmitAction(snap.ID, "ash", battle.Action{Kind: battle.ActionLearnReplace})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted || res.Reason != battle.ReasonIllegalAction {
		t.Fatalf("expected rejection, got %+v", res)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestSubmitAction_WinPersistsOutcome(t *testing.T) {
	b, repo := newBattles(t)
	snap, _ := b.StartWildEncounter("ash", "meadow")
	res, err := b.SubmitAction(snap.ID, "ash", battle.Action{Kind: battle.ActionUseMove, Index: 0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Result == nil || res.Result.Outcome != game.OutcomeWin {
		t.Fatalf("expected a win, got %+v", res)
	}
	if len(repo.applied) != 1 {
		t.Fatalf("expected one persisted outcome, got %d", len(repo.applied))
	}
	out := repo.applied[0]
	if out.Record.EncounterUUID != snap.ID || out.Record.Currency != 6 || out.StreakDelta != 1 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(out.Party) != 1 || out.Party[0].Experience != 6400+15 {
		t.Fatalf("unexpected party write-back %+v", out.Party)
	}
	if _, busy := b.ActiveEncounter("ash"); busy {
		t.Fatalf("trainer should be free after the encounter")
	}
	if _, err := b.SubmitAction(snap.ID, "ash", battle.Action{Kind: battle.ActionFlee}); !errors.Is(err, ErrEncounterFinished) {
		t.Fatalf("expected ErrEncounterFinished, got %v", err)
	}
}

func TestSubmitAction_FleeRecordsRun(t *testing.T) {
	b, repo := newBattles(t, WithRand(constRand{f: 0}))
	snap, _ := b.StartWildEncounter("ash", "meadow")
	res, err := b.SubmitAction(snap.ID, "ash", battle.Action{Kind: battle.ActionFlee})
	if err != nil || res.Result == nil || res.Result.Outcome != game.OutcomeRun {
		t.Fatalf("expected run, got %+v (%v)", res, err)
	}
	if len(repo.applied) != 1 || repo.applied[0].Record.Outcome != game.OutcomeRun {
		t.Fatalf("unexpected persisted outcomes %+v", repo.applied)
	}
}

func TestSubmitAction_PersistFailureRetriedBySweeper(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b, repo := newBattles(t, WithClock(func() time.Time { return now }))
	snap, _ := b.StartWildEncounter("ash", "meadow")
	repo.failNext = true
	if _, err := b.SubmitAction(snap.ID, "ash", battle.Action{Kind: battle.ActionUseMove}); !errors.Is(err, ErrPersistOutcome) {
		t.Fatalf("expected ErrPersistOutcome, got %v", err)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("nothing should be applied yet")
	}
	if n := b.ExpireStale(now); n != 0 {
		t.Fatalf("a fresh encounter should stay tracked, dropped %d", n)
	}
	if len(repo.applied) != 1 {
		t.Fatalf("sweeper should retry persistence")
	}
	if n := b.ExpireStale(now.Add(2 * time.Minute)); n != 1 || b.Active() != 0 {
		t.Fatalf("expected finished encounter to be dropped, dropped %d active %d", n, b.Active())
	}
}

func TestExpireStale_AbandonsIdleEncounter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b, repo := newBattles(t, WithClock(func() time.Time { return now }))
	if _, err := b.StartWildEncounter("ash", "meadow"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if n := b.ExpireStale(now.Add(30 * time.Second)); n != 0 {
		t.Fatalf("encounter is not idle yet")
	}
	if n := b.ExpireStale(now.Add(time.Minute)); n != 1 {
		t.Fatalf("expected one expired encounter, got %d", n)
	}
	if len(repo.applied) != 1 || repo.applied[0].Record.Outcome != game.OutcomeAbandoned {
		t.Fatalf("expected abandoned record, got %+v", repo.applied)
	}
	if _, busy := b.ActiveEncounter("ash"); busy {
		t.Fatalf("trainer should be free")
	}
}

func TestStartChallenge(t *testing.T) {
	b, _ := newBattles(t)
	if _, err := b.StartChallenge(ChallengeRequest{TrainerID: "ash", Tier: "wild", SpeciesID: "foe", Level: 5}); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
	if _, err := b.StartChallenge(ChallengeRequest{TrainerID: "ash", Tier: "gym", SpeciesID: "foe", Level: 0}); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	snap, err := b.StartChallenge(ChallengeRequest{TrainerID: "ash", Tier: "gym", SpeciesID: "foe", Level: 10, Moves: []string{"Tackle", "unknown"}})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.Tier != game.TierGym || len(snap.Opponent.Moves) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	for _, k := range snap.Legal {
		if k == battle.ActionFlee || k == battle.ActionCatch {
			t.Fatalf("gym encounters must not allow %s", k)
		}
	}
}

func TestSubmitAction_LossRestoresParty(t *testing.T) {
	b, repo := newBattles(t)
	repo.trainers["misty"] = &game.Trainer{TrainerUUID: "misty", Party: []game.PartyMember{
		{Slot: 0, SpeciesID: "foe", Level: 3, CurrentHP: 40, Status: game.StatusBurn, Moves: []string{"tackle"}},
	}}
	snap, err := b.StartChallenge(ChallengeRequest{TrainerID: "misty", Tier: "trainer", SpeciesID: "brute", Level: 50, Moves: []string{"tackle"}})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	res, err := b.SubmitAction(snap.ID, "misty", battle.Action{Kind: battle.ActionUseMove, Index: 0})
	if err != nil || res.Result == nil || res.Result.Outcome != game.OutcomeLose {
		t.Fatalf("expected a loss, got %+v (%v)", res, err)
	}
	member := repo.trainers["misty"].Party[0]
	if member.CurrentHP != game.ScaleStats(newTables().species["foe"].Base, 3).MaxHP || member.Status != game.StatusNone {
		t.Fatalf("defeated party should be stored healed, got %+v", member)
	}
	if _, err := b.StartWildEncounter("misty", "meadow"); err != nil {
		t.Fatalf("trainer should be able to battle again after a loss: %v", err)
	}
}

func TestRestParty(t *testing.T) {
	b, repo := newBattles(t)
	if _, err := b.RestParty("nobody"); !errors.Is(err, ErrTrainerNotFound) {
		t.Fatalf("expected ErrTrainerNotFound, got %v", err)
	}
	tr, err := b.RestParty("gary")
	if err != nil {
		t.Fatalf("rest: %v", err)
	}
	if tr.Party[0].CurrentHP != game.ScaleStats(newTables().species["brute"].Base, 20).MaxHP {
		t.Fatalf("expected full HP, got %+v", tr.Party[0])
	}
	if _, err := b.StartWildEncounter("gary", "meadow"); err != nil {
		t.Fatalf("rested trainer should battle: %v", err)
	}
	if _, err := b.RestParty("gary"); !errors.Is(err, ErrEncounterInProgress) {
		t.Fatalf("expected ErrEncounterInProgress, got %v", err)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("resting must not record a battle")
	}
}
