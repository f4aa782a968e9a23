package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
)

var (
	ErrNoAreas       = errors.New("areas is empty (provide 'areas' array)")
	ErrUnknownDriver = errors.New("unknown database driver")
)

type poolEntry struct {
	Species  string `json:"species"`
	MinLevel int    `json:"min_level"`
	MaxLevel int    `json:"max_level"`
	Weight   int    `json:"weight"`
}

type areaEntry struct {
	Name           string      `json:"name"`
	Weather        string      `json:"weather"`
	WeatherTurns   int         `json:"weather_turns"`
	EncounterBonus float64     `json:"encounter_bonus"`
	Pool           []poolEntry `json:"pool"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"database"`
	DexPath             string      `json:"dex_path"`
	EncounterTTLSeconds int         `json:"encounter_ttl_seconds"`
	StartingCurrency    int         `json:"starting_currency"`
	StartingItems       []itemEntry `json:"starting_items"`
	Areas               []areaEntry `json:"areas"`
}

type itemEntry struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// PoolEntry is one weighted species of an area.
type PoolEntry struct {
	SpeciesID string
	MinLevel  int
	MaxLevel  int
	Weight    int
}

// Area is an immutable wild-encounter table.
type Area struct {
	Name           string
	Weather        game.Weather
	WeatherTurns   int
	EncounterBonus float64
	Pool           []PoolEntry
}

// TotalWeight sums the pool weights.
func (a Area) TotalWeight() int {
	t := 0
	for _, p := range a.Pool {
		t += p.Weight
	}
	return t
}

// LoadedConfig is the validated, read-only configuration.
type LoadedConfig struct {
	ServerAddress    string
	DatabaseDriver   string
	DatabaseDSN      string
	DexPath          string
	EncounterTTL     time.Duration
	StartingCurrency int
	StartingItems    map[string]int
	areas            map[string]Area
	areaOrder        []string
}

// Area looks an area up by name, case-insensitively.
func (c *LoadedConfig) Area(name string) (Area, bool) {
	a, ok := c.areas[keys.Identifier(name)]
	return a, ok
}

// Areas lists areas in file order.
func (c *LoadedConfig) Areas() []Area {
	out := make([]Area, 0, len(c.areaOrder))
	for _, k := range c.areaOrder {
		out = append(out, c.areas[k])
	}
	return out
}

// LoadConfig reads the configuration file at path. The BATTLE_DB
// environment variable overrides the database DSN.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	if dsn := strings.TrimSpace(os.Getenv(constants.EnvDatabase)); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	return cfg, nil
}

// Parse validates raw JSON configuration.
func Parse(b []byte) (*LoadedConfig, error) {
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(rc.Areas) == 0 {
		return nil, ErrNoAreas
	}

	cfg := &LoadedConfig{
		ServerAddress:    ":8080",
		DatabaseDriver:   "sqlite",
		DatabaseDSN:      "monster_battle.db",
		DexPath:          "./data/dex.yaml",
		EncounterTTL:     30 * time.Minute,
		StartingCurrency: rc.StartingCurrency,
		StartingItems:    make(map[string]int, len(rc.StartingItems)),
		areas:            make(map[string]Area, len(rc.Areas)),
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil {
		if d := strings.ToLower(strings.TrimSpace(rc.Database.Driver)); d != "" {
			cfg.DatabaseDriver = d
		}
		if rc.Database.DSN != "" {
			cfg.DatabaseDSN = rc.Database.DSN
		}
	}
	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DatabaseDriver)
	}
	if rc.DexPath != "" {
		cfg.DexPath = rc.DexPath
	}
	if rc.EncounterTTLSeconds > 0 {
		cfg.EncounterTTL = time.Duration(rc.EncounterTTLSeconds) * time.Second
	}
	for _, it := range rc.StartingItems {
		id := keys.Identifier(it.Item)
		if id == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("starting item %q needs a name and a positive quantity", it.Item)
		}
		cfg.StartingItems[id] += it.Quantity
	}

	for _, ae := range rc.Areas {
		key := keys.Identifier(ae.Name)
		if key == "" {
			return nil, errors.New("area entry missing 'name'")
		}
		if _, exists := cfg.areas[key]; exists {
			return nil, fmt.Errorf("duplicate area name '%s'", ae.Name)
		}
		if len(ae.Pool) == 0 {
			return nil, fmt.Errorf("area '%s' has an empty pool", ae.Name)
		}
		area := Area{
			Name:           key,
			Weather:        game.ParseWeather(ae.Weather),
			WeatherTurns:   max(0, ae.WeatherTurns),
			EncounterBonus: ae.EncounterBonus,
			Pool:           make([]PoolEntry, 0, len(ae.Pool)),
		}
		if area.EncounterBonus <= 0 {
			area.EncounterBonus = 1
		}
		for _, p := range ae.Pool {
			sp := keys.Identifier(p.Species)
			if sp == "" {
				return nil, fmt.Errorf("area '%s': pool entry missing 'species'", ae.Name)
			}
			if p.Weight <= 0 {
				return nil, fmt.Errorf("area '%s': species '%s' needs a positive weight", ae.Name, sp)
			}
			if p.MinLevel < 1 || p.MaxLevel < p.MinLevel {
				return nil, fmt.Errorf("area '%s': species '%s' has invalid levels %d-%d", ae.Name, sp, p.MinLevel, p.MaxLevel)
			}
			area.Pool = append(area.Pool, PoolEntry{SpeciesID: sp, MinLevel: p.MinLevel, MaxLevel: p.MaxLevel, Weight: p.Weight})
		}
		cfg.areas[key] = area
		cfg.areaOrder = append(cfg.areaOrder, key)
	}
	return cfg, nil
}
