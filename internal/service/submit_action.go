package service

import (
	"errors"
	"fmt"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/logging"
	"github.com/ericogr/monster-battle/internal/storage"
)

// SubmitAction forwards a player action to the encounter. Rejected actions
// come back with Accepted false and no error. When the step ends the
// encounter, its result is written to the trainer repository before
// returning.
func (b *Battles) SubmitAction(encounterID, trainerID string, a battle.Action) (battle.StepResult, error) {
	return b.step(encounterID, trainerID, func(enc *battle.Encounter) battle.StepResult {
		return enc.Submit(a)
	})
}

// AnimationDone releases an encounter waiting in ANIMATING.
func (b *Battles) AnimationDone(encounterID, trainerID string) (battle.StepResult, error) {
	return b.step(encounterID, trainerID, func(enc *battle.Encounter) battle.StepResult {
		return enc.AnimationDone()
	})
}

// Forfeit abandons an unfinished encounter on the trainer's request.
func (b *Battles) Forfeit(encounterID, trainerID string) (battle.StepResult, error) {
	return b.step(encounterID, trainerID, func(enc *battle.Encounter) battle.StepResult {
		return enc.Abandon()
	})
}

// Snapshot returns the current view of an encounter.
func (b *Battles) Snapshot(encounterID, trainerID string) (battle.Snapshot, error) {
	s, err := b.lookup(encounterID, trainerID)
	if err != nil {
		return battle.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Snapshot(), nil
}

// ActiveEncounter returns the id of the trainer's unfinished encounter.
func (b *Battles) ActiveEncounter(trainerID string) (string, bool) {
	return b.activeFor(trainerID)
}

func (b *Battles) step(encounterID, trainerID string, fn func(*battle.Encounter) battle.StepResult) (battle.StepResult, error) {
	s, err := b.lookup(encounterID, trainerID)
	if err != nil {
		return battle.StepResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc.Finished() {
		return battle.StepResult{}, ErrEncounterFinished
	}
	res := fn(s.enc)
	s.lastActive = b.now()
	if !res.Accepted {
		logging.Info("action rejected", logging.Fields{constants.LogFieldEncounterID: encounterID, constants.LogFieldState: res.State, constants.LogFieldReason: res.Reason})
		return res, nil
	}
	if s.enc.Finished() {
		if err := b.complete(s); err != nil {
			return res, err
		}
	}
	return res, nil
}

// complete frees the trainer for a new encounter and persists the result.
// Callers hold s.mu.
func (b *Battles) complete(s *session) error {
	b.release(s.trainerID, s.enc.ID)
	if s.persisted {
		return nil
	}
	r := s.enc.Result()
	err := b.repo.ApplyBattleOutcome(s.trainerID, outcomeOf(s))
	if err != nil && !errors.Is(err, storage.ErrAlreadyApplied) {
		logging.Error("failed to persist battle outcome", err, logging.Fields{constants.LogFieldEncounterID: s.enc.ID, constants.LogFieldTrainerID: s.trainerID})
		return fmt.Errorf("%w: %v", ErrPersistOutcome, err)
	}
	s.persisted = true
	logging.Info("encounter finished", logging.Fields{
		constants.LogFieldEncounterID: s.enc.ID,
		constants.LogFieldTrainerID:   s.trainerID,
		constants.LogFieldOutcome:     r.Outcome,
		constants.LogFieldTurn:        r.Turns,
	})
	return nil
}

// outcomeOf flattens an encounter result into the stored shape.
func outcomeOf(s *session) storage.BattleOutcome {
	r := s.enc.Result()
	out := storage.BattleOutcome{
		Record: game.BattleRecord{
			EncounterUUID:   s.enc.ID,
			Tier:            r.Tier,
			Outcome:         r.Outcome,
			OpponentSpecies: r.OpponentID,
			OpponentLevel:   r.OpponentLvl,
			Turns:           r.Turns,
			Experience:      r.TotalExperience(),
			Currency:        r.Currency,
			ItemsGained:     r.ItemsGained,
			ItemsUsed:       r.ItemsUsed,
		},
		ItemDeltas:  make(map[string]int),
		StreakDelta: r.WinStreakDelta,
		StreakReset: r.StreakReset,
	}
	// a defeated party is carried home and recovers
	whiteout := r.Outcome == game.OutcomeLose
	for i, c := range r.Party {
		if i >= len(s.slots) || c == nil {
			continue
		}
		if whiteout {
			c = c.Clone()
			c.Restore()
		}
		out.Party = append(out.Party, memberFromCombatant(c, s.slots[i]))
	}
	if r.Caught != nil {
		m := memberFromCombatant(r.Caught, 0)
		out.Caught = &m
	}
	for _, id := range r.ItemsGained {
		out.ItemDeltas[id]++
	}
	for _, id := range r.ItemsUsed {
		out.ItemDeltas[id]--
	}
	return out
}
