package dex

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
	"github.com/ericogr/monster-battle/internal/logging"
)

var (
	ErrEmptyDex    = errors.New("dex has no species or moves")
	ErrDuplicateID = errors.New("duplicate identifier")
)

// file is the on-disk layout of the data tables.
type file struct {
	Species   []game.Species `yaml:"species"`
	Moves     []game.Move    `yaml:"moves"`
	Items     []game.Item    `yaml:"items"`
	Abilities []game.Ability `yaml:"abilities"`
}

// Dex is the read-only species/move/item/ability source keyed by identifier.
// It is safe for concurrent readers once loaded.
type Dex struct {
	species   map[string]*game.Species
	moves     map[string]*game.Move
	items     map[string]*game.Item
	abilities map[string]*game.Ability
}

// Load reads a YAML dex from path.
func Load(path string) (*Dex, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("dex %s: %w", path, err)
	}
	logging.Info("dex loaded", logging.Fields{
		constants.LogFieldSource: path,
		"species":                len(d.species),
		"moves":                  len(d.moves),
		"items":                  len(d.items),
		"abilities":              len(d.abilities),
	})
	return d, nil
}

// Parse decodes and normalises YAML dex data.
func Parse(b []byte) (*Dex, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return build(f)
}

func build(f file) (*Dex, error) {
	if len(f.Species) == 0 || len(f.Moves) == 0 {
		return nil, ErrEmptyDex
	}
	d := &Dex{
		species:   make(map[string]*game.Species, len(f.Species)),
		moves:     make(map[string]*game.Move, len(f.Moves)),
		items:     make(map[string]*game.Item, len(f.Items)),
		abilities: make(map[string]*game.Ability, len(f.Abilities)),
	}
	for i := range f.Moves {
		m := f.Moves[i]
		m.ID = keys.Identifier(firstNonEmpty(m.ID, m.Name))
		if m.Name == "" {
			m.Name = keys.DisplayName(m.ID)
		}
		m.Type = game.ParseType(string(m.Type))
		m.Category = game.ParseCategory(string(m.Category))
		if m.InflictStatus != "" {
			m.InflictStatus = game.ParseStatus(string(m.InflictStatus))
		}
		if _, dup := d.moves[m.ID]; dup {
			return nil, fmt.Errorf("%w: move %q", ErrDuplicateID, m.ID)
		}
		d.moves[m.ID] = &m
	}
	for i := range f.Items {
		it := f.Items[i]
		it.ID = keys.Identifier(firstNonEmpty(it.ID, it.Name))
		if it.Name == "" {
			it.Name = keys.DisplayName(it.ID)
		}
		it.Kind = game.ItemKind(strings.ToLower(strings.TrimSpace(string(it.Kind))))
		if it.Cures != "" {
			it.Cures = game.ParseStatus(string(it.Cures))
		}
		if _, dup := d.items[it.ID]; dup {
			return nil, fmt.Errorf("%w: item %q", ErrDuplicateID, it.ID)
		}
		d.items[it.ID] = &it
	}
	for i := range f.Abilities {
		a := f.Abilities[i]
		a.ID = keys.Identifier(firstNonEmpty(a.ID, a.Name))
		a.Kind = game.AbilityKind(strings.ToLower(strings.TrimSpace(string(a.Kind))))
		if a.Name == "" {
			a.Name = keys.DisplayName(a.ID)
		}
		if _, dup := d.abilities[a.ID]; dup {
			return nil, fmt.Errorf("%w: ability %q", ErrDuplicateID, a.ID)
		}
		d.abilities[a.ID] = &a
	}
	for i := range f.Species {
		sp := f.Species[i]
		sp.ID = keys.Identifier(firstNonEmpty(sp.ID, sp.Name))
		if sp.Name == "" {
			sp.Name = keys.DisplayName(sp.ID)
		}
		types := sp.Types[:0]
		for _, t := range sp.Types {
			if pt := game.ParseType(string(t)); pt != game.TypeNone {
				types = append(types, pt)
			}
		}
		sp.Types = types
		for j := range sp.Learnset {
			sp.Learnset[j].MoveID = keys.Identifier(sp.Learnset[j].MoveID)
		}
		sort.SliceStable(sp.Learnset, func(a, b int) bool { return sp.Learnset[a].Level < sp.Learnset[b].Level })
		if sp.EvolvesTo != "" {
			sp.EvolvesTo = keys.Identifier(sp.EvolvesTo)
		}
		if _, dup := d.species[sp.ID]; dup {
			return nil, fmt.Errorf("%w: species %q", ErrDuplicateID, sp.ID)
		}
		d.species[sp.ID] = &sp
	}
	d.checkReferences()
	return d, nil
}

// checkReferences logs dangling identifiers. They are tolerated: lookups at
// battle time fall back to no-effect results.
func (d *Dex) checkReferences() {
	for _, sp := range d.species {
		for _, e := range sp.Learnset {
			if _, ok := d.moves[e.MoveID]; !ok {
				logging.Warn("learnset references unknown move", logging.Fields{
					constants.LogFieldSpecies: sp.ID,
					constants.LogFieldMove:    e.MoveID,
				})
			}
		}
		if sp.EvolvesTo != "" {
			if _, ok := d.species[sp.EvolvesTo]; !ok {
				logging.Warn("evolution references unknown species", logging.Fields{
					constants.LogFieldSpecies: sp.ID,
					constants.LogFieldKey:     sp.EvolvesTo,
				})
			}
		}
	}
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if s != "" {
			return s
		}
	}
	return ""
}
