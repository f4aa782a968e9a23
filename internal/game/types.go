package game

import "strings"

// Type is an elemental class shared by species and moves.
type Type string

const (
	TypeNone     Type = ""
	TypeNormal   Type = "NORMAL"
	TypeFire     Type = "FIRE"
	TypeWater    Type = "WATER"
	TypeGrass    Type = "GRASS"
	TypeElectric Type = "ELECTRIC"
	TypeEarth    Type = "EARTH"
)

// AllTypes lists the closed type vocabulary in chart order.
var AllTypes = []Type{TypeNormal, TypeFire, TypeWater, TypeGrass, TypeElectric, TypeEarth}

// ParseType normalises a type name; unknown names map to TypeNone.
func ParseType(s string) Type {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if t == known {
			return t
		}
	}
	return TypeNone
}

// Category decides which formula path a move takes.
type Category string

const (
	CategoryPhysical Category = "PHYSICAL"
	CategorySpecial  Category = "SPECIAL"
	CategoryStatus   Category = "STATUS"
)

// ParseCategory normalises a category name; empty or unknown names map to
// CategoryPhysical.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategorySpecial, CategoryStatus:
		return c
	default:
		return CategoryPhysical
	}
}

// Status is the single non-volatile condition a combatant can carry.
type Status string

const (
	StatusNone      Status = "NONE"
	StatusBurn      Status = "BURN"
	StatusPoison    Status = "POISON"
	StatusParalysis Status = "PARALYSIS"
	StatusFreeze    Status = "FREEZE"
	StatusSleep     Status = "SLEEP"
)

// ParseStatus normalises a status name; empty or unknown names map to StatusNone.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusBurn, StatusPoison, StatusParalysis, StatusFreeze, StatusSleep:
		return st
	default:
		return StatusNone
	}
}

// Weather is an encounter-wide modifier.
type Weather string

const (
	WeatherNone      Weather = "NONE"
	WeatherSunny     Weather = "SUNNY"
	WeatherRainy     Weather = "RAINY"
	WeatherSandstorm Weather = "SANDSTORM"
)

// ParseWeather normalises a weather name; empty or unknown names map to WeatherNone.
func ParseWeather(s string) Weather {
	switch w := Weather(strings.ToUpper(strings.TrimSpace(s))); w {
	case WeatherSunny, WeatherRainy, WeatherSandstorm:
		return w
	default:
		return WeatherNone
	}
}

// Tier classifies an encounter. It scales rewards and AI aggressiveness
// without changing the core formulas.
type Tier string

const (
	TierWild    Tier = "wild"
	TierTrainer Tier = "trainer"
	TierArena   Tier = "arena"
	TierGym     Tier = "gym"
	TierBoss    Tier = "boss"
)

// ParseTier normalises a tier name. The second return value is false for
// names outside the vocabulary.
func ParseTier(s string) (Tier, bool) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierWild, TierTrainer, TierArena, TierGym, TierBoss:
		return t, true
	default:
		return "", false
	}
}

// IsBossTier reports whether the opponent AI plays "seriously".
func (t Tier) IsBossTier() bool {
	return t == TierTrainer || t == TierArena || t == TierGym || t == TierBoss
}

// AllowsFlee reports whether running is legal against this tier.
func (t Tier) AllowsFlee() bool { return t == TierWild }

// AllowsCatch reports whether capture devices may be thrown.
func (t Tier) AllowsCatch() bool { return t == TierWild }

// Stat identifies a stage-modifiable stat.
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
	StatSpeed   Stat = "speed"
)

// Outcome is the terminal classification of an encounter.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomeRun       Outcome = "run"
	OutcomeCatch     Outcome = "catch"
	OutcomeAbandoned Outcome = "abandoned"
)
