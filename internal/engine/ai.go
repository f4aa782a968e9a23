package engine

import (
	"sort"

	"github.com/ericogr/monster-battle/internal/game"
)

const (
	excludedScore      = -1
	statusBaseScore    = 10
	stackingPenalty    = -15
	debuffBonus        = 12
	inflictBonus       = 18
	buffPerStageGap    = 3
	powerWeight        = 0.2
	superEffective2x   = 25
	superEffective15x  = 15
	priorityBonus      = 8
	stabBonus          = 10
	finishingBlowBonus = 60
	lowHPPriorityBonus = 20
	lowHPThreshold     = 0.2
	accuracyFloor      = 0.35
	bossSeriousness    = 1.15
	staminaPenalty     = 0.5
	bossTopPickChance  = 0.60
	ordinaryPickPool   = 3
	immuneMovePenalty  = -5
)

// AIContext is what the opponent heuristic knows about the encounter.
type AIContext struct {
	Env  Env
	Tier game.Tier
}

// ScoredMove pairs a candidate with its heuristic score.
type ScoredMove struct {
	Index int        `json:"index"`
	Move  *game.Move `json:"move"`
	Score float64    `json:"score"`
}

func healScore(ratio float64) float64 {
	switch {
	case ratio < 0.25:
		return 60
	case ratio < 0.5:
		return 35
	case ratio < 0.75:
		return 15
	case ratio < 1:
		return 0
	default:
		return -10
	}
}

// ScoreMove rates one candidate. Moves the actor cannot afford score -1.
func ScoreMove(self, opp *game.Combatant, move *game.Move, ctx AIContext) float64 {
	if move == nil || !self.CanAfford(move.Cost) {
		return excludedScore
	}

	var score float64
	if !move.IsDamaging() {
		score = statusBaseScore
		if move.HealPercent > 0 {
			score += healScore(self.HPRatio())
		}
		for _, d := range move.SelfStages {
			if d.Delta > 0 {
				score += float64(game.MaxStage-self.Stage(d.Stat)) * buffPerStageGap
			}
		}
		inflicts := move.InflictStatus != "" && move.InflictStatus != game.StatusNone
		debuffs := len(move.TargetStages) > 0
		if (inflicts || debuffs) && opp.Status != game.StatusNone {
			score += stackingPenalty
		} else {
			if inflicts {
				score += inflictBonus
			}
			if debuffs {
				score += debuffBonus
			}
		}
	} else {
		est := EstimateDamage(self, opp, move, ctx.Env)
		if est.Effectiveness == 0 {
			return immuneMovePenalty
		}
		score = float64(est.Damage) + float64(move.Power)*powerWeight
		switch {
		case est.Effectiveness >= 2:
			score += superEffective2x
		case est.Effectiveness >= 1.5:
			score += superEffective15x
		}
		if move.Priority > 0 {
			score += float64(move.Priority) * priorityBonus
			if opp.HPRatio() <= lowHPThreshold {
				score += lowHPPriorityBonus
			}
		}
		if est.STAB {
			score += stabBonus
		}
		if est.Damage >= opp.CurrentHP {
			score += finishingBlowBonus
		}
	}

	acc := move.AccuracyFraction()
	if acc < accuracyFloor {
		acc = accuracyFloor
	}
	score *= acc
	if ctx.Tier.IsBossTier() {
		score *= bossSeriousness
	}
	score -= float64(move.Cost) * staminaPenalty
	return score
}

// RankMoves scores every candidate and returns the non-negative ones, best
// first. Ties keep move-slot order.
func RankMoves(self, opp *game.Combatant, moves []*game.Move, ctx AIContext) []ScoredMove {
	ranked := make([]ScoredMove, 0, len(moves))
	for i, m := range moves {
		s := ScoreMove(self, opp, m, ctx)
		if s < 0 {
			continue
		}
		ranked = append(ranked, ScoredMove{Index: i, Move: m, Score: s})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// SelectMove picks the opponent's move. Boss-tier encounters take the best
// move 60% of the time and the runner-up otherwise; ordinary encounters pick
// uniformly among the top three. It returns false when nothing is usable.
func SelectMove(self, opp *game.Combatant, moves []*game.Move, ctx AIContext, r Rand) (ScoredMove, bool) {
	ranked := RankMoves(self, opp, moves, ctx)
	if len(ranked) == 0 {
		return ScoredMove{}, false
	}
	if ctx.Tier.IsBossTier() {
		if len(ranked) == 1 || r.Float64() < bossTopPickChance {
			return ranked[0], true
		}
		return ranked[1], true
	}
	pool := min(ordinaryPickPool, len(ranked))
	return ranked[r.IntN(pool)], true
}
