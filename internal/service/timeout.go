package service

import (
	"time"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
)

// ExpireStale handles encounters idle for longer than the configured TTL:
// - unfinished encounters are abandoned and recorded
// - finished encounters whose result failed to persist are retried
// - finished and persisted encounters are dropped from memory
// It returns the number of encounters dropped.
func (b *Battles) ExpireStale(now time.Time) int {
	ttl := b.cfg.EncounterTTL
	dropped := 0
	for _, s := range b.all() {
		s.mu.Lock()
		idle := now.Sub(s.lastActive) >= ttl
		switch {
		case !s.enc.Finished() && idle:
			res := s.enc.Abandon()
			logging.Info("inactive encounter closed", logging.Fields{constants.LogFieldEncounterID: s.enc.ID, constants.LogFieldTrainerID: s.trainerID, constants.LogFieldOutcome: res.Result.Outcome})
			if err := b.complete(s); err == nil {
				b.drop(s.enc.ID)
				dropped++
			}
		case s.enc.Finished() && !s.persisted:
			if err := b.complete(s); err == nil && idle {
				b.drop(s.enc.ID)
				dropped++
			}
		case s.enc.Finished() && idle:
			b.drop(s.enc.ID)
			dropped++
		}
		s.mu.Unlock()
	}
	return dropped
}
