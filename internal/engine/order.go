package engine

import "github.com/ericogr/monster-battle/internal/game"

const (
	fleeBase          = 0.6
	fleeMin           = 0.35
	fleeMax           = 0.85
	accuracyDownRatio = 0.75
)

// Side identifies one half of an encounter.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// FirstToAct decides which side moves first: higher move priority, then
// higher effective speed, then a fair coin flip. A nil move counts as
// priority 0.
func FirstToAct(player, opponent *game.Combatant, playerMove, opponentMove *game.Move, r Rand) Side {
	pp, op := 0, 0
	if playerMove != nil {
		pp = playerMove.Priority
	}
	if opponentMove != nil {
		op = opponentMove.Priority
	}
	if pp != op {
		if pp > op {
			return SidePlayer
		}
		return SideOpponent
	}
	ps, os := EffectiveSpeed(player), EffectiveSpeed(opponent)
	if ps != os {
		if ps > os {
			return SidePlayer
		}
		return SideOpponent
	}
	if r.IntN(2) == 0 {
		return SidePlayer
	}
	return SideOpponent
}

// FleeChance is clamp(0.35, 0.85, 0.6 + (playerSpeed-opponentSpeed)/100).
func FleeChance(player, opponent *game.Combatant) float64 {
	p := fleeBase + float64(EffectiveSpeed(player)-EffectiveSpeed(opponent))/100
	if p < fleeMin {
		return fleeMin
	}
	if p > fleeMax {
		return fleeMax
	}
	return p
}

// HitChance returns the probability that attacker lands move, in [0, 1].
func HitChance(attacker *game.Combatant, move *game.Move) float64 {
	if move == nil {
		return 0
	}
	if move.Accuracy <= 0 {
		return 1
	}
	acc := move.AccuracyFraction()
	if attacker.AccuracyDownTurns > 0 {
		acc *= accuracyDownRatio
	}
	return acc
}

// RollHit draws once for accuracy. Never-miss moves consume no draw.
func RollHit(attacker *game.Combatant, move *game.Move, r Rand) bool {
	if move != nil && move.Accuracy <= 0 && attacker.AccuracyDownTurns == 0 {
		return true
	}
	return chance(r, HitChance(attacker, move))
}
