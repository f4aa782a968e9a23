package battle

import (
	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

// EventKind names one observable step of an encounter.
type EventKind string

const (
	EventIntro         EventKind = "intro"
	EventState         EventKind = "state"
	EventMoveUsed      EventKind = "move_used"
	EventStruggle      EventKind = "struggle"
	EventMiss          EventKind = "miss"
	EventDamage        EventKind = "damage"
	EventNoEffect      EventKind = "no_effect"
	EventReaction      EventKind = "reaction"
	EventStatusApplied EventKind = "status_applied"
	EventStatusCured   EventKind = "status_cured"
	EventStatusDamage  EventKind = "status_damage"
	EventSkip          EventKind = "skip"
	EventStageChange   EventKind = "stage_change"
	EventHeal          EventKind = "heal"
	EventStamina       EventKind = "stamina"
	EventFaint         EventKind = "faint"
	EventItemUsed      EventKind = "item_used"
	EventSwitch        EventKind = "switch"
	EventCatchAttempt  EventKind = "catch_attempt"
	EventFleeAttempt   EventKind = "flee_attempt"
	EventWeather       EventKind = "weather"
	EventExperience    EventKind = "experience"
	EventLevelUp       EventKind = "level_up"
	EventMoveLearned   EventKind = "move_learned"
	EventLearnPending  EventKind = "learn_pending"
	EventEvolution     EventKind = "evolution"
	EventReward        EventKind = "reward"
	EventResult        EventKind = "result"
)

// Event is emitted by the flow controller for every resolved step. The
// presentation layer drives messages and animations from it.
type Event struct {
	Kind            EventKind           `json:"kind"`
	Turn            int                 `json:"turn"`
	Side            engine.Side         `json:"side,omitempty"`
	Actor           string              `json:"actor,omitempty"`
	Target          string              `json:"target,omitempty"`
	Move            string              `json:"move,omitempty"`
	Item            string              `json:"item,omitempty"`
	Amount          int                 `json:"amount,omitempty"`
	Effectiveness   float64             `json:"effectiveness,omitempty"`
	Class           engine.EffectClass  `json:"class,omitempty"`
	Critical        bool                `json:"critical,omitempty"`
	WeatherBoosted  bool                `json:"weather_boosted,omitempty"`
	WeatherWeakened bool                `json:"weather_weakened,omitempty"`
	Status          game.Status         `json:"status,omitempty"`
	Reaction        engine.ReactionKind `json:"reaction,omitempty"`
	Weather         game.Weather        `json:"weather,omitempty"`
	State           fsm.State           `json:"state,omitempty"`
	Outcome         game.Outcome        `json:"outcome,omitempty"`
	Success         bool                `json:"success,omitempty"`
	Chance          float64             `json:"chance,omitempty"`
	Message         string              `json:"message,omitempty"`
}

// Observer receives events as they are produced. Implementations must not
// call back into the encounter.
type Observer interface {
	OnEvent(encounterID string, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(encounterID string, ev Event)

func (f ObserverFunc) OnEvent(encounterID string, ev Event) { f(encounterID, ev) }
