package battle

import (
	"math"
	"slices"

	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

func (e *Encounter) lookupMove(id string) *game.Move {
	if e.tables == nil || id == "" {
		return nil
	}
	m, ok := e.tables.Move(id)
	if !ok {
		return nil
	}
	return m
}

// movesOf resolves a combatant's move slots. Unknown ids resolve to nil and
// stay in place so slot indexes keep their meaning.
func (e *Encounter) movesOf(c *game.Combatant) []*game.Move {
	out := make([]*game.Move, len(c.Moves))
	for i, id := range c.Moves {
		out[i] = e.lookupMove(id)
	}
	return out
}

// starved reports whether no known move is affordable.
func starved(c *game.Combatant, moves []*game.Move) bool {
	for _, m := range moves {
		if m != nil && c.CanAfford(m.Cost) {
			return false
		}
	}
	return true
}

func (e *Encounter) side(s engine.Side) (actor, target *game.Combatant) {
	if s == engine.SidePlayer {
		return e.Player(), e.Opponent
	}
	return e.Opponent, e.Player()
}

// opponentMove runs the selection heuristic. Nil means struggle.
func (e *Encounter) opponentMove() *game.Move {
	moves := e.movesOf(e.Opponent)
	candidates := make([]*game.Move, 0, len(moves))
	for _, m := range moves {
		if m != nil {
			candidates = append(candidates, m)
		}
	}
	pick, ok := engine.SelectMove(e.Opponent, e.Player(), candidates, engine.AIContext{Env: e.env(), Tier: e.Tier}, e.rng)
	if !ok {
		return nil
	}
	return pick.Move
}

// useMove resolves a full turn around the player's chosen move. With an
// empty or fully starved move list the player struggles instead.
func (e *Encounter) useMove(index int) StepResult {
	player := e.Player()
	moves := e.movesOf(player)
	var chosen *game.Move
	if len(moves) > 0 && !starved(player, moves) {
		if index < 0 || index >= len(moves) {
			return e.reject(ReasonNoSuchMove)
		}
		chosen = moves[index]
		if chosen != nil && !player.CanAfford(chosen.Cost) {
			return e.reject(ReasonNoStamina)
		}
	}

	e.Turn++
	oppMove := e.opponentMove()
	first := engine.FirstToAct(player, e.Opponent, chosen, oppMove, e.rng)
	order := []engine.Side{first, first.Other()}
	for _, s := range order {
		mv := chosen
		if s == engine.SideOpponent {
			mv = oppMove
		}
		e.act(s, mv)
		if e.checkEnd() {
			return e.accept()
		}
	}
	e.endTurn()
	return e.accept()
}

// opponentOnly resolves the opponent's half of a turn in which the player
// spent the action on an item, a switch, a failed catch or a failed flee.
func (e *Encounter) opponentOnly() StepResult {
	e.act(engine.SideOpponent, e.opponentMove())
	if e.checkEnd() {
		return e.accept()
	}
	e.endTurn()
	return e.accept()
}

// act resolves one side's action. Fainted actors or targets do nothing.
func (e *Encounter) act(s engine.Side, move *game.Move) {
	actor, target := e.side(s)
	if actor.Fainted() || target.Fainted() {
		return
	}
	if s == engine.SideOpponent {
		e.moveTo(fsm.OpponentTurn)
	}

	defer actor.TickAccuracyDown()
	if !e.turnStart(s, actor) {
		return
	}

	if move == nil {
		e.emit(Event{Kind: EventStruggle, Side: s, Actor: actor.Name(), Message: actor.Name() + " has nothing left to use!"})
		return
	}

	actor.SpendStamina(move.Cost)
	e.emit(Event{Kind: EventMoveUsed, Side: s, Actor: actor.Name(), Target: target.Name(), Move: move.ID, Amount: move.Cost})

	if !engine.RollHit(actor, move, e.rng) {
		e.emit(Event{Kind: EventMiss, Side: s, Actor: actor.Name(), Move: move.ID})
		return
	}

	if move.IsDamaging() {
		if !e.hit(s, actor, target, move) {
			return
		}
	} else {
		actor.LastMoveType = move.Type
	}
	e.secondary(s, actor, target, move)
}

// turnStart applies the status decision and reports whether the actor acts.
func (e *Encounter) turnStart(s engine.Side, actor *game.Combatant) bool {
	ts := engine.ProcessTurnStartStatus(actor, e.rng)
	if ts.ClearStatus {
		prev := actor.ClearStatus()
		e.emit(Event{Kind: EventStatusCured, Side: s, Actor: actor.Name(), Status: prev, Success: ts.BondCured})
	}
	if ts.Damage > 0 {
		lost := actor.ApplyDamage(ts.Damage)
		e.emit(Event{Kind: EventStatusDamage, Side: s, Actor: actor.Name(), Status: ts.Status, Amount: lost})
	}
	switch ts.Outcome {
	case engine.TurnFainted:
		actor.SetHP(0)
		e.emit(Event{Kind: EventFaint, Side: s, Actor: actor.Name()})
		return false
	case engine.TurnSkip:
		if ts.Status == game.StatusSleep {
			actor.SleepTurns = ts.SleepTurns
		}
		e.emit(Event{Kind: EventSkip, Side: s, Actor: actor.Name(), Status: ts.Status})
		return false
	}
	return true
}

// hit runs the damage path. It returns false when the move had no effect.
func (e *Encounter) hit(s engine.Side, actor, target *game.Combatant, move *game.Move) bool {
	res := engine.CalcDamage(actor, target, move, e.env(), e.rng)
	actor.LastMoveType = move.Type
	if res.Effectiveness == 0 {
		e.emit(Event{Kind: EventNoEffect, Side: s, Actor: actor.Name(), Target: target.Name(), Move: move.ID, Class: res.Class})
		return false
	}

	reaction := engine.ElementReaction(target, move, res, e.Weather)
	lost := target.ApplyDamage(res.Damage)
	e.emit(Event{
		Kind:            EventDamage,
		Side:            s,
		Actor:           actor.Name(),
		Target:          target.Name(),
		Move:            move.ID,
		Amount:          lost,
		Effectiveness:   res.Effectiveness,
		Class:           res.Class,
		Critical:        res.Critical,
		WeatherBoosted:  res.WeatherBoosted,
		WeatherWeakened: res.WeatherWeakened,
	})

	if reaction.Kind != engine.ReactionNone && !target.Fainted() {
		if reaction.ClearFreeze && target.Status == game.StatusFreeze {
			target.ClearStatus()
			e.emit(Event{Kind: EventStatusCured, Side: s.Other(), Actor: target.Name(), Status: game.StatusFreeze})
		}
		bonus := target.ApplyDamage(reaction.BonusDamage)
		if reaction.AccuracyDownTurns > target.AccuracyDownTurns {
			target.AccuracyDownTurns = reaction.AccuracyDownTurns
		}
		e.emit(Event{Kind: EventReaction, Side: s, Actor: actor.Name(), Target: target.Name(), Reaction: reaction.Kind, Amount: bonus})
	}

	upd := engine.ElementStateAfterHit(target, move)
	actor.LastMoveType = upd.AttackerLastMoveType
	if upd.DefenderWetTurns > target.WetTurns {
		target.WetTurns = upd.DefenderWetTurns
		e.soaked = append(e.soaked, target)
	}
	if target.Fainted() {
		e.emit(Event{Kind: EventFaint, Side: s.Other(), Actor: target.Name()})
	}
	return true
}

// secondary applies stage deltas, self-heal and status infliction.
func (e *Encounter) secondary(s engine.Side, actor, target *game.Combatant, move *game.Move) {
	for _, d := range move.SelfStages {
		if applied := actor.ApplyStage(d.Stat, d.Delta); applied != 0 {
			e.emit(Event{Kind: EventStageChange, Side: s, Actor: actor.Name(), Move: string(d.Stat), Amount: applied})
		}
	}
	if move.HealPercent > 0 {
		amount := int(math.Round(float64(actor.MaxHP()) * move.HealPercent / 100))
		if gained := actor.Heal(amount); gained > 0 {
			e.emit(Event{Kind: EventHeal, Side: s, Actor: actor.Name(), Amount: gained})
		}
	}
	if target.Fainted() {
		return
	}
	for _, d := range move.TargetStages {
		if applied := target.ApplyStage(d.Stat, d.Delta); applied != 0 {
			e.emit(Event{Kind: EventStageChange, Side: s.Other(), Actor: target.Name(), Move: string(d.Stat), Amount: applied})
		}
	}
	if st, ok := engine.RollStatus(target, move, e.rng); ok {
		threshold := 0
		if st == game.StatusSleep {
			threshold = engine.SleepDuration(e.rng)
		}
		if target.SetStatus(st, threshold) {
			e.emit(Event{Kind: EventStatusApplied, Side: s.Other(), Actor: target.Name(), Status: st})
		}
	}
}

// checkEnd evaluates termination after every resolution. It returns true
// once the encounter has left the normal turn loop.
func (e *Encounter) checkEnd() bool {
	if e.Opponent.Fainted() {
		e.victory()
		return true
	}
	if e.Player().Fainted() {
		if e.replacementAvailable() {
			return false
		}
		e.finish(game.OutcomeLose)
		return true
	}
	return false
}

func (e *Encounter) replacementAvailable() bool {
	for i, c := range e.Party {
		if i != e.Active && c != nil && !c.Fainted() {
			return true
		}
	}
	return false
}

// endTurn regenerates stamina, dries combatants not soaked this turn, ticks
// weather and hands control back.
func (e *Encounter) endTurn() {
	for _, c := range []*game.Combatant{e.Player(), e.Opponent} {
		if !slices.Contains(e.soaked, c) {
			c.TickWet()
		}
		if c.Fainted() {
			continue
		}
		c.RestoreStamina(staminaRegenPerTurn)
	}
	e.soaked = e.soaked[:0]
	if e.WeatherTurns > 0 {
		e.WeatherTurns--
		if e.WeatherTurns == 0 && e.Weather != game.WeatherNone {
			prev := e.Weather
			e.Weather = game.WeatherNone
			e.emit(Event{Kind: EventWeather, Weather: game.WeatherNone, Message: string(prev) + " subsided"})
		}
	}
	next := fsm.PlayerTurn
	if e.Player().Fainted() {
		e.forcedSwitch = true
		next = fsm.PlayerSelectSwitch
	}
	e.settle(next)
}
