package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericogr/monster-battle/internal/game"
)

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a Repository backed by db. It works on both the
// sqlite and the postgres dialect.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func withRoster(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Party", func(tx *gorm.DB) *gorm.DB { return tx.Order("boxed ASC").Order("slot ASC") }).
		Preload("Inventory", func(tx *gorm.DB) *gorm.DB { return tx.Order("item_id ASC") })
}

func (r *gormRepository) GetTrainerByUUID(uuid string) (*game.Trainer, error) {
	var t game.Trainer
	if err := withRoster(r.db).Where("trainer_uuid = ?", uuid).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) CreateTrainer(t *game.Trainer) error {
	return r.db.Create(t).Error
}

func (r *gormRepository) ApplyBattleOutcome(trainerUUID string, o BattleOutcome) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var seen int64
		if err := tx.Model(&game.BattleRecord{}).Where("encounter_uuid = ?", o.Record.EncounterUUID).Count(&seen).Error; err != nil {
			return err
		}
		if seen > 0 {
			return ErrAlreadyApplied
		}

		var t game.Trainer
		if err := withRoster(tx).Where("trainer_uuid = ?", trainerUUID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainerNotFound
			}
			return err
		}

		t.Currency += o.Record.Currency
		switch o.Record.Outcome {
		case game.OutcomeWin:
			t.Wins++
		case game.OutcomeLose:
			t.Losses++
		case game.OutcomeRun:
			t.Runs++
		case game.OutcomeCatch:
			t.Catches++
		}
		if o.StreakReset {
			t.WinStreak = 0
		} else {
			t.WinStreak += o.StreakDelta
		}
		t.BestStreak = max(t.BestStreak, t.WinStreak)
		if err := tx.Omit(clause.Associations).Save(&t).Error; err != nil {
			return err
		}

		if err := updateParty(tx, &t, o.Party); err != nil {
			return err
		}
		if o.Caught != nil {
			if err := storeCaught(tx, &t, *o.Caught); err != nil {
				return err
			}
		}
		if err := applyItemDeltas(tx, &t, o.ItemDeltas); err != nil {
			return err
		}

		rec := o.Record
		rec.ID = 0
		rec.TrainerID = t.ID
		return tx.Create(&rec).Error
	})
}

func (r *gormRepository) SaveParty(trainerUUID string, party []game.PartyMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var t game.Trainer
		if err := withRoster(tx).Where("trainer_uuid = ?", trainerUUID).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainerNotFound
			}
			return err
		}
		return updateParty(tx, &t, party)
	})
}

func updateParty(tx *gorm.DB, t *game.Trainer, party []game.PartyMember) error {
	bySlot := make(map[int]*game.PartyMember, len(t.Party))
	for i := range t.Party {
		if !t.Party[i].Boxed {
			bySlot[t.Party[i].Slot] = &t.Party[i]
		}
	}
	for _, p := range party {
		row, ok := bySlot[p.Slot]
		if !ok {
			continue
		}
		row.SpeciesID = p.SpeciesID
		row.Level = p.Level
		row.Experience = p.Experience
		row.CurrentHP = p.CurrentHP
		row.Status = p.Status
		row.AbilityID = p.AbilityID
		row.Moves = p.Moves
		if err := tx.Save(row).Error; err != nil {
			return err
		}
	}
	return nil
}

func storeCaught(tx *gorm.DB, t *game.Trainer, m game.PartyMember) error {
	travelling, boxed := 0, 0
	for _, p := range t.Party {
		if p.Boxed {
			boxed++
		} else {
			travelling++
		}
	}
	m.ID = 0
	m.TrainerID = t.ID
	if travelling < game.PartySize {
		m.Boxed = false
		m.Slot = travelling
	} else {
		m.Boxed = true
		m.Slot = boxed
	}
	return tx.Create(&m).Error
}

func applyItemDeltas(tx *gorm.DB, t *game.Trainer, deltas map[string]int) error {
	held := make(map[string]int, len(t.Inventory))
	for _, it := range t.Inventory {
		held[it.ItemID] = it.Quantity
	}
	for id, d := range deltas {
		if d == 0 {
			continue
		}
		row := game.InventoryItem{TrainerID: t.ID, ItemID: id, Quantity: max(0, held[id]+d)}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "trainer_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *gormRepository) ListBattleRecords(trainerUUID string, limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var t game.Trainer
	if err := r.db.Select("id").Where("trainer_uuid = ?", trainerUUID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	var records []game.BattleRecord
	if err := r.db.Where("trainer_id = ?", t.ID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetTopTrainers returns top N trainers ordered by BestStreak desc, then Wins desc.
func (r *gormRepository) GetTopTrainers(limit int) ([]game.Trainer, error) {
	if limit <= 0 {
		limit = 10
	}
	var trainers []game.Trainer
	if err := r.db.Model(&game.Trainer{}).
		Order("best_streak DESC").
		Order("wins DESC").
		Limit(limit).
		Find(&trainers).Error; err != nil {
		return nil, err
	}
	return trainers, nil
}
