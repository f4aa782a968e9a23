package battle

import (
	"math"

	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

func (e *Encounter) lookupItem(id string) (*game.Item, bool) {
	if e.tables == nil || id == "" {
		return nil, false
	}
	return e.tables.Item(id)
}

func (e *Encounter) consume(id string) {
	e.Inventory[id]--
	if e.Inventory[id] <= 0 {
		delete(e.Inventory, id)
	}
	e.itemsUsed = append(e.itemsUsed, id)
}

// useItem applies a non-capture item to a party slot and passes the turn.
func (e *Encounter) useItem(id string, slot int) StepResult {
	if e.Inventory[id] <= 0 {
		return e.reject(ReasonNoSuchItem)
	}
	item, ok := e.lookupItem(id)
	if !ok {
		return e.reject(ReasonNotUsable)
	}
	if item.Kind == game.ItemCapture {
		if !e.Tier.AllowsCatch() {
			return e.reject(ReasonIllegalAction)
		}
		return e.attemptCatch(id)
	}
	if slot < 0 || slot >= len(e.Party) || e.Party[slot] == nil {
		return e.reject(ReasonBadTarget)
	}
	target := e.Party[slot]

	var apply func() int
	switch item.Kind {
	case game.ItemHeal:
		if target.Fainted() || target.CurrentHP >= target.MaxHP() {
			return e.reject(ReasonNoEffect)
		}
		amount := item.HealAmount + int(math.Round(float64(target.MaxHP())*item.HealPercent/100))
		apply = func() int { return target.Heal(amount) }
	case game.ItemCure:
		if target.Status == game.StatusNone || (item.Cures != "" && item.Cures != game.StatusNone && item.Cures != target.Status) {
			return e.reject(ReasonNoEffect)
		}
		apply = func() int {
			target.ClearStatus()
			return 0
		}
	case game.ItemStamina:
		if target.Fainted() || target.Stamina >= target.Stats.MaxStamina {
			return e.reject(ReasonNoEffect)
		}
		apply = func() int { return target.RestoreStamina(item.StaminaGain) }
	default:
		return e.reject(ReasonNotUsable)
	}

	e.Turn++
	e.consume(id)
	amount := apply()
	e.emit(Event{Kind: EventItemUsed, Side: engine.SidePlayer, Actor: target.Name(), Item: id, Amount: amount})
	return e.opponentOnly()
}

// attemptCatch throws a capture device at a wild opponent. A failed throw
// passes the turn to the opponent.
func (e *Encounter) attemptCatch(id string) StepResult {
	if e.Inventory[id] <= 0 {
		return e.reject(ReasonNoSuchItem)
	}
	item, ok := e.lookupItem(id)
	if !ok || item.Kind != game.ItemCapture {
		return e.reject(ReasonNotCapture)
	}

	e.Turn++
	e.consume(id)
	in := engine.CatchInputFor(e.Opponent, item.CatchBonus, e.EncounterBonus)
	caught, rate := engine.AttemptCatch(in, e.rng)
	e.emit(Event{Kind: EventCatchAttempt, Side: engine.SidePlayer, Target: e.Opponent.Name(), Item: id, Success: caught, Chance: rate})
	if caught {
		c := e.Opponent.Clone()
		c.IsPlayer = true
		c.ResetStages()
		c.WetTurns, c.AccuracyDownTurns, c.LastMoveType = 0, 0, game.TypeNone
		e.result = &Result{Caught: c}
		e.finish(game.OutcomeCatch)
		return e.accept()
	}
	return e.opponentOnly()
}

// flee tries to run from a wild encounter.
func (e *Encounter) flee() StepResult {
	e.Turn++
	p := engine.FleeChance(e.Player(), e.Opponent)
	ok := e.rng.Float64() < p
	e.emit(Event{Kind: EventFleeAttempt, Side: engine.SidePlayer, Actor: e.Player().Name(), Success: ok, Chance: p})
	if ok {
		e.finish(game.OutcomeRun)
		return e.accept()
	}
	return e.opponentOnly()
}

// switchTo brings a party member in. A voluntary switch costs the turn; a
// forced one after a faint does not.
func (e *Encounter) switchTo(slot int) StepResult {
	if slot < 0 || slot >= len(e.Party) || slot == e.Active || e.Party[slot] == nil || e.Party[slot].Fainted() {
		return e.reject(ReasonBadSwitch)
	}
	out := e.Player()
	out.ResetStages()
	e.Active = slot
	in := e.Player()
	e.emit(Event{Kind: EventSwitch, Side: engine.SidePlayer, Actor: out.Name(), Target: in.Name(), Amount: slot})

	if e.forcedSwitch {
		e.forcedSwitch = false
		e.moveTo(fsm.PlayerTurn)
		return e.accept()
	}
	e.Turn++
	return e.opponentOnly()
}
