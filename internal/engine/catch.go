package engine

import "github.com/ericogr/monster-battle/internal/game"

const (
	// GuaranteedCaptureBonus marks a device that bypasses the formula.
	GuaranteedCaptureBonus = 100
	maxCatchRate           = 0.96
)

// CatchInput gathers the terms of the capture formula.
type CatchInput struct {
	// BaseRate is the species catch rate on a 0-1 scale; values above 1 are
	// read as percentages.
	BaseRate    float64
	HPRatio     float64
	DeviceBonus float64
	// EncounterBonus folds area/tier bonuses and the opponent's externally
	// set CatchRateMultiplier. Zero means neutral.
	EncounterBonus float64
}

// CatchInputFor builds the formula input for an opponent combatant.
// Status conditions only influence capture through the HP ratio and the
// encounter bonus; there is no per-status multiplier.
func CatchInputFor(opp *game.Combatant, deviceBonus, encounterBonus float64) CatchInput {
	in := CatchInput{HPRatio: opp.HPRatio(), DeviceBonus: deviceBonus, EncounterBonus: encounterBonus}
	if opp.Species != nil {
		in.BaseRate = opp.Species.CatchRate
	}
	if in.EncounterBonus <= 0 {
		in.EncounterBonus = 1
	}
	if opp.CatchRateMultiplier > 0 {
		in.EncounterBonus *= opp.CatchRateMultiplier
	}
	return in
}

// HPModifier buckets the opponent's remaining HP.
func HPModifier(ratio float64) float64 {
	switch {
	case ratio < 0.25:
		return 1.6
	case ratio < 0.5:
		return 1.2
	default:
		return 0.8
	}
}

// CatchRate returns the capture probability in [0, 1].
func CatchRate(in CatchInput) float64 {
	if in.DeviceBonus >= GuaranteedCaptureBonus {
		return 1
	}
	base := in.BaseRate
	if base > 1 {
		base /= 100
	}
	device := in.DeviceBonus
	if device < 0 {
		device = 0
	}
	encounter := in.EncounterBonus
	if encounter <= 0 {
		encounter = 1
	}
	rate := base * HPModifier(in.HPRatio) * device * encounter
	if rate < 0 {
		return 0
	}
	if rate > maxCatchRate {
		return maxCatchRate
	}
	return rate
}

// AttemptCatch draws once against the capture probability.
func AttemptCatch(in CatchInput, r Rand) (bool, float64) {
	rate := CatchRate(in)
	if rate >= 1 {
		return true, rate
	}
	return r.Float64() < rate, rate
}
