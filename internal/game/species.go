package game

// BaseStats are the level-independent values of a species.
type BaseStats struct {
	HP      int `yaml:"hp" json:"hp"`
	Attack  int `yaml:"attack" json:"attack"`
	Defense int `yaml:"defense" json:"defense"`
	Speed   int `yaml:"speed" json:"speed"`
	Stamina int `yaml:"stamina" json:"stamina"`
}

// AbilityCandidate is one weighted entry of a species' ability pool.
type AbilityCandidate struct {
	ID     string `yaml:"id" json:"id"`
	Weight int    `yaml:"weight" json:"weight"`
}

// Drop is one held-item entry rolled on victory.
type Drop struct {
	ItemID string  `yaml:"item" json:"item"`
	Chance float64 `yaml:"chance" json:"chance"`
}

// LearnEntry maps a level to a move the species learns on reaching it.
type LearnEntry struct {
	Level  int    `yaml:"level" json:"level"`
	MoveID string `yaml:"move" json:"move"`
}

// Species is the read-only table row a combatant references.
type Species struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Types       []Type             `yaml:"types" json:"types"`
	Base        BaseStats          `yaml:"base" json:"base"`
	CatchRate   float64            `yaml:"catch_rate" json:"catch_rate"`
	Abilities   []AbilityCandidate `yaml:"abilities" json:"abilities"`
	Drops       []Drop             `yaml:"drops" json:"drops"`
	Learnset    []LearnEntry       `yaml:"learnset" json:"learnset"`
	EvolvesTo   string             `yaml:"evolves_to" json:"evolves_to,omitempty"`
	EvolveLevel int                `yaml:"evolve_level" json:"evolve_level,omitempty"`
}

// HasType reports whether t is one of the species' types.
func (s *Species) HasType(t Type) bool {
	if s == nil || t == TypeNone {
		return false
	}
	for _, own := range s.Types {
		if own == t {
			return true
		}
	}
	return false
}

// StageDelta is a stat-stage change carried by a move.
type StageDelta struct {
	Stat  Stat `yaml:"stat" json:"stat"`
	Delta int  `yaml:"delta" json:"delta"`
}

// Move is the read-only table row for a technique.
type Move struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Type     Type     `yaml:"type" json:"type"`
	Category Category `yaml:"category" json:"category"`
	Power    int      `yaml:"power" json:"power"`
	// Accuracy is either 0-100 or a 0-1 fraction; zero or less never misses.
	Accuracy      float64      `yaml:"accuracy" json:"accuracy"`
	Priority      int          `yaml:"priority" json:"priority"`
	Cost          int          `yaml:"cost" json:"cost"`
	SelfStages    []StageDelta `yaml:"self_stages" json:"self_stages,omitempty"`
	TargetStages  []StageDelta `yaml:"target_stages" json:"target_stages,omitempty"`
	HealPercent   float64      `yaml:"heal_percent" json:"heal_percent,omitempty"`
	InflictStatus Status       `yaml:"inflict_status" json:"inflict_status,omitempty"`
	StatusChance  float64      `yaml:"status_chance" json:"status_chance,omitempty"`
}

// IsDamaging reports whether the move runs through the damage formula.
func (m *Move) IsDamaging() bool {
	return m != nil && m.Category != CategoryStatus && m.Power > 0
}

// AccuracyFraction returns the accuracy on a 0-1 scale; 1 for never-miss moves.
func (m *Move) AccuracyFraction() float64 {
	if m == nil || m.Accuracy <= 0 {
		return 1
	}
	if m.Accuracy > 1 {
		return m.Accuracy / 100
	}
	return m.Accuracy
}

// ItemKind selects how an item resolves when used.
type ItemKind string

const (
	ItemHeal    ItemKind = "heal"
	ItemCure    ItemKind = "cure"
	ItemStamina ItemKind = "stamina"
	ItemCapture ItemKind = "capture"
	ItemHeld    ItemKind = "held"
)

// Item is the read-only table row for an inventory item.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Kind        ItemKind `yaml:"kind" json:"kind"`
	HealAmount  int      `yaml:"heal_amount" json:"heal_amount,omitempty"`
	HealPercent float64  `yaml:"heal_percent" json:"heal_percent,omitempty"`
	// Cures is the status removed by a cure item; empty cures any status.
	Cures        Status  `yaml:"cures" json:"cures,omitempty"`
	StaminaGain  int     `yaml:"stamina_gain" json:"stamina_gain,omitempty"`
	CatchBonus   float64 `yaml:"catch_bonus" json:"catch_bonus,omitempty"`
	SellingPrice int     `yaml:"price" json:"price,omitempty"`
}

// AbilityKind selects which side of the damage formula an ability modifies.
type AbilityKind string

const (
	// AbilityPinch boosts same-type damage while the holder is at low HP.
	AbilityPinch AbilityKind = "pinch"
	// AbilityGuard reduces all incoming damage by a flat multiplier.
	AbilityGuard AbilityKind = "guard"
)

// Ability is the read-only table row for a passive trait.
type Ability struct {
	ID         string      `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Kind       AbilityKind `yaml:"kind" json:"kind"`
	Multiplier float64     `yaml:"multiplier" json:"multiplier"`
}
