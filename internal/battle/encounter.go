package battle

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

var (
	ErrNoParty    = errors.New("party has no conscious member")
	ErrNoOpponent = errors.New("encounter needs an opponent")
	ErrPartySize  = errors.New("party is larger than the party size")
)

// Rejection reasons returned in StepResult.Reason.
const (
	ReasonFinished       = "encounter finished"
	ReasonAnimating      = "waiting for animation"
	ReasonIllegalAction  = "action not allowed in this state"
	ReasonNoSuchMove     = "no such move slot"
	ReasonNoStamina      = "insufficient stamina"
	ReasonNoSuchItem     = "item not in inventory"
	ReasonNotCapture     = "item is not a capture device"
	ReasonNotUsable      = "item cannot be used in battle"
	ReasonNoEffect       = "item would have no effect"
	ReasonBadTarget      = "invalid party target"
	ReasonBadSwitch      = "party member cannot be switched in"
	ReasonBadLearnSlot   = "invalid move slot to replace"
	ReasonNotStarted     = "encounter already started"
	ReasonNothingPending = "nothing pending"
)

const staminaRegenPerTurn = 3

// Tables is the read-only data source the controller resolves ids against.
// Misses fall back to no-effect results.
type Tables interface {
	Species(id string) (*game.Species, bool)
	Move(id string) (*game.Move, bool)
	Item(id string) (*game.Item, bool)
	Ability(id string) (*game.Ability, bool)
}

// Setup is the input of StartEncounter.
type Setup struct {
	// ID is generated when empty.
	ID       string
	Party    []*game.Combatant
	Opponent *game.Combatant
	Weather  game.Weather
	// WeatherTurns is the remaining duration; zero keeps the weather for the
	// whole encounter.
	WeatherTurns   int
	Tier           game.Tier
	EncounterBonus float64
	Inventory      map[string]int
	Tables         Tables
	Rand           engine.Rand
	// AutoAdvance skips the wait in ANIMATING.
	AutoAdvance bool
	Observers   []Observer
}

// Encounter is the handle of one battle. It is not safe for concurrent use;
// callers serialise access.
type Encounter struct {
	ID             string
	Tier           game.Tier
	Weather        game.Weather
	WeatherTurns   int
	EncounterBonus float64
	Party          []*game.Combatant
	Active         int
	Opponent       *game.Combatant
	Inventory      map[string]int
	Turn           int

	machine      *fsm.Machine
	tables       Tables
	rng          engine.Rand
	autoAdvance  bool
	observers    []Observer
	pending      fsm.State
	forcedSwitch bool
	learnQueue   []LearnedMove
	itemsUsed    []string
	soaked       []*game.Combatant
	result       *Result
	step         []Event
}

// StartEncounter builds an encounter in INTRO. Abilities are resolved once
// here from each species' weighted pool.
func StartEncounter(s Setup) (*Encounter, error) {
	if s.Opponent == nil {
		return nil, ErrNoOpponent
	}
	if len(s.Party) > game.PartySize {
		return nil, fmt.Errorf("%w: %d", ErrPartySize, len(s.Party))
	}
	active := -1
	for i, c := range s.Party {
		if c != nil && !c.Fainted() {
			active = i
			break
		}
	}
	if active < 0 {
		return nil, ErrNoParty
	}
	tier := s.Tier
	if tier == "" {
		tier = game.TierWild
	}
	weather := s.Weather
	if weather == "" {
		weather = game.WeatherNone
	}
	rng := s.Rand
	if rng == nil {
		rng = engine.NewRand(uint64(time.Now().UnixNano()))
	}
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	inv := make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		if v > 0 {
			inv[k] = v
		}
	}
	e := &Encounter{
		ID:             id,
		Tier:           tier,
		Weather:        weather,
		WeatherTurns:   max(0, s.WeatherTurns),
		EncounterBonus: s.EncounterBonus,
		Party:          s.Party,
		Active:         active,
		Opponent:       s.Opponent,
		Inventory:      inv,
		machine:        fsm.New(),
		tables:         s.Tables,
		rng:            rng,
		autoAdvance:    s.AutoAdvance,
		observers:      append([]Observer(nil), s.Observers...),
	}
	for _, c := range e.Party {
		if c == nil {
			continue
		}
		c.IsPlayer = true
		e.resolveAbility(c)
	}
	e.Opponent.IsPlayer = false
	e.resolveAbility(e.Opponent)
	return e, nil
}

func (e *Encounter) resolveAbility(c *game.Combatant) {
	if c.AbilityID == "" {
		c.AbilityID = engine.PickAbility(c.Species, e.rng)
	}
}

// Observe registers an observer for subsequent events.
func (e *Encounter) Observe(o Observer) { e.observers = append(e.observers, o) }

// State returns the current machine state.
func (e *Encounter) State() fsm.State { return e.machine.Current() }

// Finished reports whether the encounter reached RESULT.
func (e *Encounter) Finished() bool { return e.machine.Current().Terminal() }

// Result is the terminal payload, nil until RESULT.
func (e *Encounter) Result() *Result { return e.result }

// Player returns the active player-side combatant.
func (e *Encounter) Player() *game.Combatant { return e.Party[e.Active] }

// ForcedSwitch reports whether the player must replace a fainted combatant.
func (e *Encounter) ForcedSwitch() bool { return e.forcedSwitch }

// PendingLearn returns the move awaiting a learn-replace decision.
func (e *Encounter) PendingLearn() (LearnedMove, bool) {
	if len(e.learnQueue) == 0 {
		return LearnedMove{}, false
	}
	return e.learnQueue[0], true
}

func (e *Encounter) env() engine.Env {
	var src engine.AbilitySource
	if e.tables != nil {
		src = e.tables
	}
	return engine.Env{Weather: e.Weather, Abilities: src}
}

func (e *Encounter) emit(ev Event) {
	ev.Turn = e.Turn
	e.step = append(e.step, ev)
	for _, o := range e.observers {
		o.OnEvent(e.ID, ev)
	}
}

func (e *Encounter) moveTo(s fsm.State) {
	e.machine.MustTransition(s)
	e.emit(Event{Kind: EventState, State: s})
}

// settle ends a resolved step: it enters ANIMATING and, with AutoAdvance,
// continues straight to next.
func (e *Encounter) settle(next fsm.State) {
	e.pending = next
	e.moveTo(fsm.Animating)
	if e.autoAdvance {
		e.moveTo(next)
	}
}

func (e *Encounter) reject(reason string) StepResult {
	return StepResult{Accepted: false, Reason: reason, State: e.machine.Current()}
}

func (e *Encounter) accept() StepResult {
	res := StepResult{Accepted: true, State: e.machine.Current(), Events: e.step, Result: e.result}
	e.step = nil
	return res
}

// Begin leaves INTRO and hands control to the player.
func (e *Encounter) Begin() StepResult {
	if e.machine.Current() != fsm.Intro {
		return e.reject(ReasonNotStarted)
	}
	e.emit(Event{
		Kind:    EventIntro,
		Actor:   e.Player().Name(),
		Target:  e.Opponent.Name(),
		Weather: e.Weather,
		Message: fmt.Sprintf("A %s appeared!", e.Opponent.Name()),
	})
	e.moveTo(fsm.PlayerTurn)
	return e.accept()
}

// AnimationDone is the presentation callback that releases ANIMATING.
func (e *Encounter) AnimationDone() StepResult {
	if e.machine.Current() != fsm.Animating {
		return e.reject(ReasonNothingPending)
	}
	e.moveTo(e.pending)
	return e.accept()
}

// Submit applies one player action. Illegal or unaffordable actions are
// rejected without touching the encounter.
func (e *Encounter) Submit(a Action) StepResult {
	switch e.machine.Current() {
	case fsm.Result:
		return e.reject(ReasonFinished)
	case fsm.Animating:
		return e.reject(ReasonAnimating)
	}
	if !e.allowed(a.Kind) {
		return e.reject(ReasonIllegalAction)
	}
	switch a.Kind {
	case ActionOpenMoves:
		e.moveTo(fsm.PlayerSelectMove)
		return e.accept()
	case ActionOpenItems:
		e.moveTo(fsm.PlayerSelectItem)
		return e.accept()
	case ActionOpenSwitch:
		e.moveTo(fsm.PlayerSelectSwitch)
		return e.accept()
	case ActionBack:
		e.moveTo(fsm.PlayerTurn)
		return e.accept()
	case ActionUseMove:
		return e.useMove(a.Index)
	case ActionUseItem:
		return e.useItem(a.ItemID, a.Target)
	case ActionSwitch:
		return e.switchTo(a.Index)
	case ActionCatch:
		return e.attemptCatch(a.ItemID)
	case ActionFlee:
		return e.flee()
	case ActionLearnReplace:
		return e.learnReplace(a.Index)
	}
	return e.reject(ReasonIllegalAction)
}

// Abandon ends an unfinished encounter without rewards. A victory already
// waiting on learn-replace choices still finishes as a win, with the
// remaining moves skipped.
func (e *Encounter) Abandon() StepResult {
	if e.Finished() {
		return e.reject(ReasonFinished)
	}
	if e.result != nil && e.Opponent.Fainted() {
		e.skipPendingLearns()
		e.finish(game.OutcomeWin)
		return e.accept()
	}
	e.finish(game.OutcomeAbandoned)
	return e.accept()
}

// finish enters RESULT and freezes the terminal payload.
func (e *Encounter) finish(outcome game.Outcome) {
	r := e.result
	if r == nil {
		r = &Result{}
	}
	r.Outcome = outcome
	r.Tier = e.Tier
	r.Turns = e.Turn
	r.OpponentID = e.Opponent.SpeciesID
	r.OpponentLvl = e.Opponent.Level
	r.ItemsUsed = append([]string(nil), e.itemsUsed...)
	switch outcome {
	case game.OutcomeWin:
		r.WinStreakDelta = 1
	case game.OutcomeLose:
		r.StreakReset = true
	}
	r.Party = make([]*game.Combatant, len(e.Party))
	for i, c := range e.Party {
		r.Party[i] = c.Clone()
	}
	e.result = r
	e.forcedSwitch = false
	e.learnQueue = nil
	e.machine.Finish(outcome)
	e.emit(Event{Kind: EventState, State: fsm.Result})
	e.emit(Event{Kind: EventResult, Outcome: outcome})
}
