package dex

import (
	"sort"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
	"github.com/ericogr/monster-battle/internal/logging"
)

func miss(kind, field, id string) {
	logging.Warn("dex lookup miss", logging.Fields{
		constants.LogFieldSource: kind,
		field:                    id,
	})
}

// Species returns the species row for id. Misses are logged.
func (d *Dex) Species(id string) (*game.Species, bool) {
	sp, ok := d.species[keys.Identifier(id)]
	if !ok {
		miss("species", constants.LogFieldSpecies, id)
	}
	return sp, ok
}

// Move returns the move row for id. Misses are logged.
func (d *Dex) Move(id string) (*game.Move, bool) {
	m, ok := d.moves[keys.Identifier(id)]
	if !ok {
		miss("move", constants.LogFieldMove, id)
	}
	return m, ok
}

// Item returns the item row for id. Misses are logged.
func (d *Dex) Item(id string) (*game.Item, bool) {
	it, ok := d.items[keys.Identifier(id)]
	if !ok {
		miss("item", constants.LogFieldItem, id)
	}
	return it, ok
}

// Ability returns the ability row for id. Misses are logged.
func (d *Dex) Ability(id string) (*game.Ability, bool) {
	a, ok := d.abilities[keys.Identifier(id)]
	if !ok {
		miss("ability", constants.LogFieldAbility, id)
	}
	return a, ok
}

// AllSpecies lists species sorted by identifier.
func (d *Dex) AllSpecies() []*game.Species {
	out := make([]*game.Species, 0, len(d.species))
	for _, sp := range d.species {
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllMoves lists moves sorted by identifier.
func (d *Dex) AllMoves() []*game.Move {
	out := make([]*game.Move, 0, len(d.moves))
	for _, m := range d.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllItems lists items sorted by identifier.
func (d *Dex) AllItems() []*game.Item {
	out := make([]*game.Item, 0, len(d.items))
	for _, it := range d.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StartingMoves returns the last MaxMoveSlots learnset moves available at
// level, oldest first.
func (d *Dex) StartingMoves(sp *game.Species, level int) []string {
	if sp == nil {
		return nil
	}
	var ids []string
	for _, e := range sp.Learnset {
		if e.Level > level {
			break
		}
		ids = append(ids, e.MoveID)
	}
	if len(ids) > game.MaxMoveSlots {
		ids = ids[len(ids)-game.MaxMoveSlots:]
	}
	return ids
}
