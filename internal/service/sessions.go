package service

import (
	"sync"
	"time"

	"github.com/ericogr/monster-battle/internal/battle"
)

// session is one live encounter plus what is needed to write it back.
type session struct {
	mu         sync.Mutex
	enc        *battle.Encounter
	trainerID  string
	slots      []int
	lastActive time.Time
	persisted  bool
}

// register stores s unless its trainer already has an unfinished encounter.
func (b *Battles) register(s *session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.byTrainer[s.trainerID]; busy {
		return ErrEncounterInProgress
	}
	b.sessions[s.enc.ID] = s
	b.byTrainer[s.trainerID] = s.enc.ID
	return nil
}

// activeFor returns the unfinished encounter id of a trainer.
func (b *Battles) activeFor(trainerID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.byTrainer[trainerID]
	return id, ok
}

func (b *Battles) release(trainerID, encounterID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.byTrainer[trainerID] == encounterID {
		delete(b.byTrainer, trainerID)
	}
}

func (b *Battles) drop(encounterID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[encounterID]
	if !ok {
		return
	}
	delete(b.sessions, encounterID)
	if b.byTrainer[s.trainerID] == encounterID {
		delete(b.byTrainer, s.trainerID)
	}
}

// lookup returns the session owned by trainerID.
func (b *Battles) lookup(encounterID, trainerID string) (*session, error) {
	b.mu.Lock()
	s, ok := b.sessions[encounterID]
	b.mu.Unlock()
	if !ok {
		return nil, ErrEncounterNotFound
	}
	if s.trainerID != trainerID {
		return nil, ErrEncounterNotOwned
	}
	return s, nil
}

func (b *Battles) all() []*session {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*session, 0, len(b.sessions))
	for _, s := range b.sessions {
		out = append(out, s)
	}
	return out
}

// Active reports the number of tracked encounters, finished ones included.
func (b *Battles) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}
