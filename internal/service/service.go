package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/config"
	"github.com/ericogr/monster-battle/internal/engine"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/storage"
)

// TrainerRepo is the minimal repository interface the battle service needs.
// Using a small interface simplifies testing.
type TrainerRepo interface {
	GetTrainerByUUID(uuid string) (*game.Trainer, error)
	CreateTrainer(t *game.Trainer) error
	ApplyBattleOutcome(trainerUUID string, o storage.BattleOutcome) error
	SaveParty(trainerUUID string, party []game.PartyMember) error
}

// Tables is the read-only data the service builds combatants from.
type Tables interface {
	battle.Tables
	StartingMoves(sp *game.Species, level int) []string
}

var (
	ErrTrainerNotFound     = storage.ErrTrainerNotFound
	ErrEncounterNotFound   = errors.New("encounter not found")
	ErrEncounterNotOwned   = errors.New("encounter belongs to another trainer")
	ErrEncounterInProgress = errors.New("trainer already has an encounter in progress")
	ErrEncounterFinished   = errors.New("encounter already finished")
	ErrUnknownArea         = errors.New("unknown area")
	ErrUnknownSpecies      = errors.New("unknown species")
	ErrInvalidTier         = errors.New("invalid tier")
	ErrInvalidLevel        = errors.New("level must be between 1 and 100")
	ErrNoUsablePartyMember = errors.New("trainer has no conscious party member")
	ErrInvalidTrainerName  = errors.New("trainer name must be 1-32 characters")
	ErrPersistOutcome      = errors.New("failed to persist battle outcome")
)

// Battles owns every live encounter and applies their results to the
// trainer repository.
type Battles struct {
	repo      TrainerRepo
	tables    Tables
	cfg       *config.LoadedConfig
	observers []battle.Observer
	newRand   func() engine.Rand
	now       func() time.Time
	// autoAdvance skips ANIMATING for clients that do not animate.
	autoAdvance bool

	mu        sync.Mutex
	sessions  map[string]*session
	byTrainer map[string]string
	// pick draws area species and levels.
	pick   engine.Rand
	pickMu sync.Mutex
}

// Option customises a Battles instance.
type Option func(*Battles)

// WithObservers attaches event observers to every encounter.
func WithObservers(obs ...battle.Observer) Option {
	return func(b *Battles) { b.observers = append(b.observers, obs...) }
}

// WithSeed makes encounter generation and resolution reproducible.
func WithSeed(seed uint64) Option {
	return func(b *Battles) {
		next := seed
		var mu sync.Mutex
		b.pick = engine.NewRand(seed)
		b.newRand = func() engine.Rand {
			mu.Lock()
			defer mu.Unlock()
			next++
			return engine.NewRand(next)
		}
	}
}

// WithRand uses a fixed Rand for every draw. Tests use it with stubs.
func WithRand(r engine.Rand) Option {
	return func(b *Battles) {
		b.pick = r
		b.newRand = func() engine.Rand { return r }
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Battles) { b.now = now }
}

// WithAutoAdvance resolves animations immediately.
func WithAutoAdvance() Option {
	return func(b *Battles) { b.autoAdvance = true }
}

// New builds the battle service.
func New(repo TrainerRepo, tables Tables, cfg *config.LoadedConfig, opts ...Option) *Battles {
	b := &Battles{
		repo:      repo,
		tables:    tables,
		cfg:       cfg,
		now:       time.Now,
		sessions:  make(map[string]*session),
		byTrainer: make(map[string]string),
	}
	for _, o := range opts {
		o(b)
	}
	if b.newRand == nil {
		b.newRand = func() engine.Rand { return engine.NewRand(uint64(time.Now().UnixNano())) }
	}
	if b.pick == nil {
		b.pick = b.newRand()
	}
	return b
}

func (b *Battles) intN(n int) int {
	if n <= 1 {
		return 0
	}
	b.pickMu.Lock()
	defer b.pickMu.Unlock()
	return b.pick.IntN(n)
}
