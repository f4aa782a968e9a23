package service

import (
	"errors"
	"fmt"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/config"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/dedupe"
	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
	"github.com/ericogr/monster-battle/internal/logging"
)

// ChallengeRequest starts a non-wild encounter against a fixed opponent.
type ChallengeRequest struct {
	TrainerID    string
	Tier         string
	SpeciesID    string
	Level        int
	Moves        []string
	Weather      string
	WeatherTurns int
}

// StartWildEncounter draws an opponent from the area's weighted pool and
// starts the encounter. Concurrent duplicate starts for the same trainer and
// area share one encounter.
func (b *Battles) StartWildEncounter(trainerID, areaName string) (battle.Snapshot, error) {
	area, ok := b.cfg.Area(areaName)
	if !ok {
		return battle.Snapshot{}, ErrUnknownArea
	}
	key := keys.WildEncounterKey(trainerID, area.Name)
	v, err, shared := dedupe.EncounterGroup.Do(key, func() (interface{}, error) {
		opp, err := b.drawWild(area)
		if err != nil {
			return battle.Snapshot{}, err
		}
		return b.start(trainerID, opp, game.TierWild, area.Weather, area.WeatherTurns, area.EncounterBonus)
	})
	if err != nil {
		return battle.Snapshot{}, err
	}
	snap := v.(battle.Snapshot)
	if shared {
		logging.Info("wild encounter start deduplicated", logging.Fields{constants.LogFieldEncounterID: snap.ID, constants.LogFieldKey: key})
	}
	return snap, nil
}

func (b *Battles) drawWild(area config.Area) (*game.Combatant, error) {
	total := area.TotalWeight()
	if total <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArea, area.Name)
	}
	n := b.intN(total)
	entry := area.Pool[len(area.Pool)-1]
	for _, p := range area.Pool {
		n -= p.Weight
		if n < 0 {
			entry = p
			break
		}
	}
	sp, ok := b.tables.Species(entry.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, entry.SpeciesID)
	}
	level := entry.MinLevel + b.intN(entry.MaxLevel-entry.MinLevel+1)
	return game.NewCombatant(sp, level, b.tables.StartingMoves(sp, level)), nil
}

// StartChallenge starts a trainer, arena, gym or boss encounter.
func (b *Battles) StartChallenge(req ChallengeRequest) (battle.Snapshot, error) {
	tier, ok := game.ParseTier(req.Tier)
	if !ok || tier == game.TierWild {
		return battle.Snapshot{}, ErrInvalidTier
	}
	if req.Level < 1 || req.Level > engine.MaxLevel {
		return battle.Snapshot{}, ErrInvalidLevel
	}
	sp, ok := b.tables.Species(keys.Identifier(req.SpeciesID))
	if !ok {
		return battle.Snapshot{}, ErrUnknownSpecies
	}
	var moves []string
	for _, m := range req.Moves {
		id := keys.Identifier(m)
		if _, known := b.tables.Move(id); known {
			moves = append(moves, id)
		}
	}
	if len(moves) == 0 {
		moves = b.tables.StartingMoves(sp, req.Level)
	}
	opp := game.NewCombatant(sp, req.Level, moves)
	return b.start(req.TrainerID, opp, tier, game.ParseWeather(req.Weather), req.WeatherTurns, 1)
}

func (b *Battles) start(trainerID string, opp *game.Combatant, tier game.Tier, weather game.Weather, weatherTurns int, bonus float64) (battle.Snapshot, error) {
	if _, busy := b.activeFor(trainerID); busy {
		return battle.Snapshot{}, ErrEncounterInProgress
	}
	t, err := b.repo.GetTrainerByUUID(trainerID)
	if err != nil {
		return battle.Snapshot{}, err
	}
	members := travellingParty(t)
	party := make([]*game.Combatant, 0, len(members))
	slots := make([]int, 0, len(members))
	for _, m := range members {
		party = append(party, combatantFromMember(b.tables, m))
		slots = append(slots, m.Slot)
	}

	enc, err := battle.StartEncounter(battle.Setup{
		Party:          party,
		Opponent:       opp,
		Weather:        weather,
		WeatherTurns:   weatherTurns,
		Tier:           tier,
		EncounterBonus: bonus,
		Inventory:      inventoryOf(t),
		Tables:         b.tables,
		Rand:           b.newRand(),
		AutoAdvance:    b.autoAdvance,
		Observers:      b.observers,
	})
	if err != nil {
		if errors.Is(err, battle.ErrNoParty) {
			return battle.Snapshot{}, ErrNoUsablePartyMember
		}
		return battle.Snapshot{}, err
	}
	s := &session{enc: enc, trainerID: trainerID, slots: slots, lastActive: b.now()}
	if err := b.register(s); err != nil {
		return battle.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	enc.Begin()
	logging.Info("encounter started", logging.Fields{
		constants.LogFieldEncounterID: enc.ID,
		constants.LogFieldTrainerID:   trainerID,
		constants.LogFieldTier:        tier,
		constants.LogFieldSpecies:     opp.SpeciesID,
	})
	return enc.Snapshot(), nil
}
