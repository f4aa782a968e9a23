package service

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
	"github.com/ericogr/monster-battle/internal/logging"
)

const (
	starterLevel   = 5
	maxTrainerName = 32
)

// RegisterTrainer creates a trainer profile with a starter creature and the
// configured starting wallet and items.
func (b *Battles) RegisterTrainer(name, starter string) (*game.Trainer, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxTrainerName {
		return nil, ErrInvalidTrainerName
	}
	sp, ok := b.tables.Species(keys.Identifier(starter))
	if !ok {
		return nil, ErrUnknownSpecies
	}
	c := game.NewCombatant(sp, starterLevel, b.tables.StartingMoves(sp, starterLevel))
	c.Experience = engine.ExpForLevel(starterLevel)
	first := memberFromCombatant(c, 0)

	t := &game.Trainer{
		TrainerUUID: uuid.NewString(),
		Name:        name,
		Party:       []game.PartyMember{first},
	}
	if b.cfg != nil {
		t.Currency = b.cfg.StartingCurrency
		for id, qty := range b.cfg.StartingItems {
			t.Inventory = append(t.Inventory, game.InventoryItem{ItemID: id, Quantity: qty})
		}
	}
	if err := b.repo.CreateTrainer(t); err != nil {
		return nil, err
	}
	logging.Info("trainer registered", logging.Fields{constants.LogFieldTrainerID: t.TrainerUUID, constants.LogFieldSpecies: sp.ID})
	return t, nil
}

// Trainer returns a stored trainer profile.
func (b *Battles) Trainer(trainerID string) (*game.Trainer, error) {
	return b.repo.GetTrainerByUUID(trainerID)
}

// RestParty heals every travelling member to full health and clears their
// status. It is refused while the trainer is battling.
func (b *Battles) RestParty(trainerID string) (*game.Trainer, error) {
	if _, busy := b.activeFor(trainerID); busy {
		return nil, ErrEncounterInProgress
	}
	t, err := b.repo.GetTrainerByUUID(trainerID)
	if err != nil {
		return nil, err
	}
	members := travellingParty(t)
	rested := make([]game.PartyMember, 0, len(members))
	for _, m := range members {
		c := combatantFromMember(b.tables, m)
		c.Restore()
		rested = append(rested, memberFromCombatant(c, m.Slot))
	}
	if err := b.repo.SaveParty(trainerID, rested); err != nil {
		return nil, err
	}
	logging.Info("party rested", logging.Fields{constants.LogFieldTrainerID: trainerID, constants.LogFieldCount: len(rested)})
	return b.repo.GetTrainerByUUID(trainerID)
}
