package battle

import (
	"github.com/ericogr/monster-battle/internal/fsm"
	"github.com/ericogr/monster-battle/internal/game"
)

// LevelUp reports a party member crossing one or more levels.
type LevelUp struct {
	Slot      int    `json:"slot"`
	SpeciesID string `json:"species_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// Evolution reports a species change triggered by a level-up.
type Evolution struct {
	Slot int    `json:"slot"`
	From string `json:"from"`
	To   string `json:"to"`
}

// LearnedMove reports a move added to a party member. Replaced is empty when
// a free slot was used.
type LearnedMove struct {
	Slot     int    `json:"slot"`
	MoveID   string `json:"move_id"`
	Replaced string `json:"replaced,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"`
}

// PartyExperience is the experience granted to one party slot.
type PartyExperience struct {
	Slot       int `json:"slot"`
	Experience int `json:"experience"`
}

// Result is the terminal payload handed to the persistence layer.
type Result struct {
	Outcome      game.Outcome      `json:"outcome"`
	Tier         game.Tier         `json:"tier"`
	Turns        int               `json:"turns"`
	OpponentID   string            `json:"opponent_species"`
	OpponentLvl  int               `json:"opponent_level"`
	Experience   []PartyExperience `json:"experience,omitempty"`
	Currency     int               `json:"currency"`
	ItemsGained  []string          `json:"items_gained,omitempty"`
	ItemsUsed    []string          `json:"items_used,omitempty"`
	LevelUps     []LevelUp         `json:"level_ups,omitempty"`
	Evolutions   []Evolution       `json:"evolutions,omitempty"`
	MovesLearned []LearnedMove     `json:"moves_learned,omitempty"`
	// WinStreakDelta is +1 on a win; StreakReset is set on a loss.
	WinStreakDelta int  `json:"win_streak_delta"`
	StreakReset    bool `json:"streak_reset"`
	// Caught is the captured opponent, ready to join the party.
	Caught *game.Combatant `json:"caught,omitempty"`
	// Party is the final state of the player's party, in slot order.
	Party []*game.Combatant `json:"party"`
}

// TotalExperience sums the experience granted across the party.
func (r *Result) TotalExperience() int {
	total := 0
	for _, e := range r.Experience {
		total += e.Experience
	}
	return total
}

// StepResult is returned for every submitted action. A rejected step has
// Accepted false, a Reason, and left the encounter untouched.
type StepResult struct {
	Accepted bool      `json:"accepted"`
	Reason   string    `json:"reason,omitempty"`
	State    fsm.State `json:"state"`
	Events   []Event   `json:"events,omitempty"`
	Result   *Result   `json:"result,omitempty"`
}
