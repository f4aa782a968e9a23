package main

import (
	"time"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
)

// startExpirySweeper periodically abandons idle encounters and drops
// finished ones.
func startExpirySweeper(battles interface{ ExpireStale(time.Time) int }, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for now := range ticker.C {
			if n := battles.ExpireStale(now); n > 0 {
				logging.Info("expired encounters", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}()
}
