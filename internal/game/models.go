package game

import (
	"gorm.io/gorm"
)

// PartySize is the number of creatures that travel with a trainer; further
// catches are stored in the box.
const PartySize = 6

// Trainer stores a player's persistent identity, wallet and aggregate stats.
// The battle engine never writes it directly; the service layer applies the
// terminal payload of an encounter to it.
type Trainer struct {
	gorm.Model
	TrainerUUID string          `json:"trainer_uuid" gorm:"uniqueIndex"`
	Name        string          `json:"name" gorm:"size:32"`
	Currency    int             `json:"currency"`
	WinStreak   int             `json:"win_streak"`
	BestStreak  int             `json:"best_streak"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Runs        int             `json:"runs"`
	Catches     int             `json:"catches"`
	Party       []PartyMember   `json:"party"`
	Inventory   []InventoryItem `json:"inventory"`
}

func (Trainer) TableName() string { return "trainer_profiles" }

// PartyMember is the persisted form of an owned creature.
type PartyMember struct {
	gorm.Model
	TrainerID  uint     `json:"-" gorm:"index"`
	Slot       int      `json:"slot"`
	Boxed      bool     `json:"boxed"`
	SpeciesID  string   `json:"species_id"`
	Nickname   string   `json:"nickname"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	CurrentHP  int      `json:"current_hp"`
	Status     Status   `json:"status"`
	Bond       int      `json:"bond"`
	AbilityID  string   `json:"ability_id"`
	Moves      []string `json:"moves" gorm:"serializer:json"`
}

func (PartyMember) TableName() string { return "party_members" }

// BeforeSave keeps stored rows inside the ranges the engine assumes.
func (p *PartyMember) BeforeSave(tx *gorm.DB) (err error) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}
	if p.Status == "" {
		p.Status = StatusNone
	}
	if len(p.Moves) > MaxMoveSlots {
		p.Moves = p.Moves[:MaxMoveSlots]
	}
	return nil
}

// InventoryItem is a stack of one item kind owned by a trainer.
type InventoryItem struct {
	gorm.Model
	TrainerID uint   `json:"-" gorm:"uniqueIndex:idx_inventory_trainer_item"`
	ItemID    string `json:"item_id" gorm:"uniqueIndex:idx_inventory_trainer_item"`
	Quantity  int    `json:"quantity"`
}

func (InventoryItem) TableName() string { return "inventory_items" }

// BattleRecord is the audit row written once per finished encounter.
type BattleRecord struct {
	gorm.Model
	EncounterUUID   string   `json:"encounter_uuid" gorm:"uniqueIndex"`
	TrainerID       uint     `json:"-" gorm:"index"`
	Tier            Tier     `json:"tier"`
	Outcome         Outcome  `json:"outcome"`
	OpponentSpecies string   `json:"opponent_species"`
	OpponentLevel   int      `json:"opponent_level"`
	Turns           int      `json:"turns"`
	Experience      int      `json:"experience"`
	Currency        int      `json:"currency"`
	ItemsGained     []string `json:"items_gained" gorm:"serializer:json"`
	ItemsUsed       []string `json:"items_used" gorm:"serializer:json"`
}

func (BattleRecord) TableName() string { return "battle_records" }
