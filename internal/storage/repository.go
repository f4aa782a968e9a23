package storage

import (
	"errors"

	"github.com/ericogr/monster-battle/internal/game"
)

var (
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrAlreadyApplied  = errors.New("battle outcome already applied")
)

// BattleOutcome is the terminal payload of one encounter in the shape the
// trainer tables store it.
type BattleOutcome struct {
	Record game.BattleRecord
	// Party holds the post-battle state of the travelling party, keyed by
	// PartyMember.Slot.
	Party []game.PartyMember
	// Caught joins the party, or the box when the party is full.
	Caught *game.PartyMember
	// ItemDeltas adds or removes inventory; stacks never drop below zero.
	ItemDeltas  map[string]int
	StreakDelta int
	StreakReset bool
}

type Repository interface {
	GetTrainerByUUID(uuid string) (*game.Trainer, error)
	CreateTrainer(t *game.Trainer) error
	// ApplyBattleOutcome writes one finished encounter atomically. A second
	// call with the same encounter id returns ErrAlreadyApplied.
	ApplyBattleOutcome(trainerUUID string, o BattleOutcome) error
	// SaveParty overwrites the travelling members matched by slot.
	SaveParty(trainerUUID string, party []game.PartyMember) error
	ListBattleRecords(trainerUUID string, limit int) ([]game.BattleRecord, error)
	// GetTopTrainers returns trainers ordered by best win streak, then wins.
	GetTopTrainers(limit int) ([]game.Trainer, error)
}
