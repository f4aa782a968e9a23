package battle

import (
	"strings"

	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

// victory distributes experience, currency and drops, then either finishes
// the encounter or suspends into the learn-replace sub-flow.
func (e *Encounter) victory() {
	r := &Result{}
	e.result = r
	opp := e.Opponent

	exp := engine.ExperienceFor(e.Tier, opp.Level)
	shared := engine.SharedExperience(exp)
	r.Currency = engine.CurrencyFor(e.Tier, opp.Level)
	r.ItemsGained = engine.RollDrops(opp.Species, e.rng)
	e.emit(Event{Kind: EventReward, Amount: r.Currency, Message: strings.Join(r.ItemsGained, ",")})

	for i, c := range e.Party {
		if c == nil || c.Fainted() {
			continue
		}
		gain := shared
		if i == e.Active {
			gain = exp
		}
		if gain <= 0 {
			continue
		}
		r.Experience = append(r.Experience, PartyExperience{Slot: i, Experience: gain})
		e.emit(Event{Kind: EventExperience, Side: engine.SidePlayer, Actor: c.Name(), Amount: gain})
		e.grow(i, c, gain)
	}

	if len(e.learnQueue) > 0 {
		e.announceLearn()
		e.moveTo(fsm.PlayerSelectLearnReplace)
		return
	}
	e.finish(game.OutcomeWin)
}

// grow adds experience to a party member and handles level-ups, new moves
// and evolution.
func (e *Encounter) grow(slot int, c *game.Combatant, gain int) {
	c.Experience += gain
	from := c.Level
	to := engine.LevelForExp(from, c.Experience)
	if to == from {
		return
	}
	c.Level = to
	rescale(c)
	e.result.LevelUps = append(e.result.LevelUps, LevelUp{Slot: slot, SpeciesID: c.SpeciesID, From: from, To: to})
	e.emit(Event{Kind: EventLevelUp, Side: engine.SidePlayer, Actor: c.Name(), Amount: to})

	for _, id := range engine.MovesLearnedAt(c.Species, from, to) {
		if c.KnowsMove(id) {
			continue
		}
		if len(c.Moves) < game.MaxMoveSlots {
			c.Moves = append(c.Moves, id)
			e.result.MovesLearned = append(e.result.MovesLearned, LearnedMove{Slot: slot, MoveID: id})
			e.emit(Event{Kind: EventMoveLearned, Side: engine.SidePlayer, Actor: c.Name(), Move: id})
			continue
		}
		e.learnQueue = append(e.learnQueue, LearnedMove{Slot: slot, MoveID: id})
	}

	target, ok := engine.EvolutionTarget(c.Species, to)
	if !ok || e.tables == nil {
		return
	}
	sp, ok := e.tables.Species(target)
	if !ok {
		return
	}
	prev := c.SpeciesID
	c.Species = sp
	c.SpeciesID = sp.ID
	rescale(c)
	e.result.Evolutions = append(e.result.Evolutions, Evolution{Slot: slot, From: prev, To: sp.ID})
	e.emit(Event{Kind: EventEvolution, Side: engine.SidePlayer, Actor: c.Name(), Move: sp.ID})
}

// rescale recomputes stats after a level or species change, keeping the HP
// already lost.
func rescale(c *game.Combatant) {
	if c.Species == nil {
		return
	}
	lost := c.Stats.MaxHP - c.CurrentHP
	c.Stats = game.ScaleStats(c.Species.Base, c.Level)
	c.SetHP(c.Stats.MaxHP - lost)
	c.RestoreStamina(0)
}

func (e *Encounter) announceLearn() {
	p := e.learnQueue[0]
	e.emit(Event{Kind: EventLearnPending, Side: engine.SidePlayer, Actor: e.Party[p.Slot].Name(), Move: p.MoveID, Amount: p.Slot})
}

// skipPendingLearns gives up every queued move.
func (e *Encounter) skipPendingLearns() {
	for _, p := range e.learnQueue {
		p.Skipped = true
		e.result.MovesLearned = append(e.result.MovesLearned, p)
	}
	e.learnQueue = nil
}

// learnReplace resolves the head of the learn queue. moveSlot -1 gives up
// the new move.
func (e *Encounter) learnReplace(moveSlot int) StepResult {
	p := e.learnQueue[0]
	c := e.Party[p.Slot]
	if moveSlot < -1 || moveSlot >= len(c.Moves) {
		return e.reject(ReasonBadLearnSlot)
	}
	e.learnQueue = e.learnQueue[1:]
	if moveSlot == -1 {
		p.Skipped = true
	} else {
		p.Replaced = c.Moves[moveSlot]
		c.Moves[moveSlot] = p.MoveID
		e.emit(Event{Kind: EventMoveLearned, Side: engine.SidePlayer, Actor: c.Name(), Move: p.MoveID, Message: p.Replaced})
	}
	e.result.MovesLearned = append(e.result.MovesLearned, p)

	if len(e.learnQueue) > 0 {
		e.announceLearn()
		return e.accept()
	}
	e.finish(game.OutcomeWin)
	return e.accept()
}
