package service

import (
	"sort"

	"github.com/ericogr/monster-battle/internal/game"
)

// combatantFromMember rebuilds a battle-ready combatant from its stored row.
// Unknown species still produce a combatant so the miss surfaces in combat
// as a no-effect result rather than a failed start.
func combatantFromMember(tables Tables, m game.PartyMember) *game.Combatant {
	sp, _ := tables.Species(m.SpeciesID)
	c := game.NewCombatant(sp, m.Level, m.Moves)
	c.SpeciesID = m.SpeciesID
	c.Nickname = m.Nickname
	c.Experience = m.Experience
	c.Bond = m.Bond
	c.AbilityID = m.AbilityID
	c.SetHP(m.CurrentHP)
	if m.Status != "" && m.Status != game.StatusNone {
		c.Status = m.Status
	}
	return c
}

// memberFromCombatant is the inverse of combatantFromMember.
func memberFromCombatant(c *game.Combatant, slot int) game.PartyMember {
	return game.PartyMember{
		Slot:       slot,
		SpeciesID:  c.SpeciesID,
		Nickname:   c.Nickname,
		Level:      c.Level,
		Experience: c.Experience,
		CurrentHP:  c.CurrentHP,
		Status:     c.Status,
		Bond:       c.Bond,
		AbilityID:  c.AbilityID,
		Moves:      append([]string(nil), c.Moves...),
	}
}

// travellingParty returns the non-boxed members in slot order.
func travellingParty(t *game.Trainer) []game.PartyMember {
	out := make([]game.PartyMember, 0, game.PartySize)
	for _, m := range t.Party {
		if !m.Boxed {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	if len(out) > game.PartySize {
		out = out[:game.PartySize]
	}
	return out
}

func inventoryOf(t *game.Trainer) map[string]int {
	inv := make(map[string]int, len(t.Inventory))
	for _, it := range t.Inventory {
		if it.Quantity > 0 {
			inv[it.ItemID] = it.Quantity
		}
	}
	return inv
}
