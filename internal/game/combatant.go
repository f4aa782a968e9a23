package game

const (
	MinStage     = -6
	MaxStage     = 6
	MaxMoveSlots = 4
)

// Stats are the level-scaled values a combatant fights with.
type Stats struct {
	MaxHP      int `json:"max_hp"`
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Speed      int `json:"speed"`
	MaxStamina int `json:"max_stamina"`
}

// ScaleStats resolves base stats at a level: stat = base + f(level).
func ScaleStats(b BaseStats, level int) Stats {
	if level < 1 {
		level = 1
	}
	grow := level - 1
	stamina := b.Stamina
	if stamina <= 0 {
		stamina = 20
	}
	return Stats{
		MaxHP:      max(1, b.HP+10+3*grow),
		Attack:     max(1, b.Attack+2*grow),
		Defense:    max(1, b.Defense+2*grow),
		Speed:      max(1, b.Speed+2*grow),
		MaxStamina: stamina + grow/2,
	}
}

// Combatant is one creature's mutable battle-state snapshot.
type Combatant struct {
	Species    *Species `json:"-"`
	SpeciesID  string   `json:"species_id"`
	Nickname   string   `json:"nickname,omitempty"`
	Level      int      `json:"level"`
	Experience int      `json:"experience"`
	Stats      Stats    `json:"stats"`
	CurrentHP  int      `json:"current_hp"`

	AttackStage  int `json:"attack_stage"`
	DefenseStage int `json:"defense_stage"`
	SpeedStage   int `json:"speed_stage"`

	Status Status `json:"status"`
	// SleepTurns counts turns spent asleep; SleepThreshold is the wake point.
	SleepTurns     int `json:"sleep_turns,omitempty"`
	SleepThreshold int `json:"sleep_threshold,omitempty"`

	WetTurns          int  `json:"wet_turns"`
	AccuracyDownTurns int  `json:"accuracy_down_turns"`
	LastMoveType      Type `json:"last_move_type,omitempty"`

	AbilityID string   `json:"ability_id,omitempty"`
	Stamina   int      `json:"stamina"`
	Moves     []string `json:"moves"`

	// Bond is the 0-100 affinity of a player-owned creature.
	Bond     int  `json:"bond"`
	IsPlayer bool `json:"is_player"`
	// CatchRateMultiplier is set outside the engine (lures, scripted events).
	CatchRateMultiplier float64 `json:"catch_rate_multiplier"`
}

// NewCombatant builds a full-health combatant for a species at a level.
func NewCombatant(sp *Species, level int, moves []string) *Combatant {
	if level < 1 {
		level = 1
	}
	c := &Combatant{
		Species:             sp,
		Level:               level,
		Status:              StatusNone,
		CatchRateMultiplier: 1,
	}
	if sp != nil {
		c.SpeciesID = sp.ID
		c.Stats = ScaleStats(sp.Base, level)
	} else {
		c.Stats = ScaleStats(BaseStats{}, level)
	}
	c.CurrentHP = c.Stats.MaxHP
	c.Stamina = c.Stats.MaxStamina
	if len(moves) > MaxMoveSlots {
		moves = moves[:MaxMoveSlots]
	}
	c.Moves = append([]string(nil), moves...)
	return c
}

// Name returns the nickname or species name.
func (c *Combatant) Name() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	if c.Species != nil && c.Species.Name != "" {
		return c.Species.Name
	}
	return c.SpeciesID
}

// HasType reports whether the combatant's species carries t.
func (c *Combatant) HasType(t Type) bool { return c.Species.HasType(t) }

func (c *Combatant) MaxHP() int { return c.Stats.MaxHP }

// Fainted reports the terminal zero-HP state.
func (c *Combatant) Fainted() bool { return c.CurrentHP <= 0 }

// HPRatio returns current/max HP in [0, 1].
func (c *Combatant) HPRatio() float64 {
	if c.Stats.MaxHP <= 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.Stats.MaxHP)
}

// SetHP stores hp clamped to [0, MaxHP].
func (c *Combatant) SetHP(hp int) {
	c.CurrentHP = clamp(hp, 0, c.Stats.MaxHP)
}

// ApplyDamage subtracts dmg and returns the HP actually lost.
func (c *Combatant) ApplyDamage(dmg int) int {
	if dmg <= 0 || c.Fainted() {
		return 0
	}
	before := c.CurrentHP
	c.SetHP(c.CurrentHP - dmg)
	return before - c.CurrentHP
}

// Heal restores up to amount HP on a conscious combatant and returns the gain.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || c.Fainted() {
		return 0
	}
	before := c.CurrentHP
	c.SetHP(c.CurrentHP + amount)
	return c.CurrentHP - before
}

// Stage returns the current stage of a stat.
func (c *Combatant) Stage(s Stat) int {
	switch s {
	case StatAttack:
		return c.AttackStage
	case StatDefense:
		return c.DefenseStage
	case StatSpeed:
		return c.SpeedStage
	}
	return 0
}

// ApplyStage adds delta to a stat stage, clamped to [MinStage, MaxStage],
// and returns the change that actually took effect.
func (c *Combatant) ApplyStage(s Stat, delta int) int {
	var p *int
	switch s {
	case StatAttack:
		p = &c.AttackStage
	case StatDefense:
		p = &c.DefenseStage
	case StatSpeed:
		p = &c.SpeedStage
	default:
		return 0
	}
	before := *p
	*p = clamp(before+delta, MinStage, MaxStage)
	return *p - before
}

// ResetStages clears all stat stages (on switch-out).
func (c *Combatant) ResetStages() {
	c.AttackStage, c.DefenseStage, c.SpeedStage = 0, 0, 0
}

// SetStatus applies st only when no status is active. Statuses never stack
// or override each other.
func (c *Combatant) SetStatus(st Status, sleepThreshold int) bool {
	if st == StatusNone || c.Status != StatusNone || c.Fainted() {
		return false
	}
	c.Status = st
	c.SleepTurns = 0
	c.SleepThreshold = 0
	if st == StatusSleep {
		c.SleepThreshold = sleepThreshold
	}
	return true
}

// ClearStatus removes any status and returns the one removed.
func (c *Combatant) ClearStatus() Status {
	prev := c.Status
	c.Status = StatusNone
	c.SleepTurns = 0
	c.SleepThreshold = 0
	return prev
}

// CanAfford reports whether the stamina pool covers cost.
func (c *Combatant) CanAfford(cost int) bool { return cost <= c.Stamina }

// SpendStamina deducts cost, never going below zero.
func (c *Combatant) SpendStamina(cost int) {
	if cost <= 0 {
		return
	}
	c.Stamina = max(0, c.Stamina-cost)
}

// RestoreStamina adds amount up to the maximum and returns the gain.
func (c *Combatant) RestoreStamina(amount int) int {
	before := c.Stamina
	c.Stamina = clamp(c.Stamina+amount, 0, c.Stats.MaxStamina)
	return c.Stamina - before
}

// TickAccuracyDown spends one of the combatant's debuffed actions.
func (c *Combatant) TickAccuracyDown() {
	if c.AccuracyDownTurns > 0 {
		c.AccuracyDownTurns--
	}
}

// TickWet counts down the turns the combatant stays wet.
func (c *Combatant) TickWet() {
	if c.WetTurns > 0 {
		c.WetTurns--
	}
}

// Restore returns the combatant to full health with no status, stages,
// elemental counters or spent stamina.
func (c *Combatant) Restore() {
	c.CurrentHP = c.Stats.MaxHP
	c.Stamina = c.Stats.MaxStamina
	c.Status = StatusNone
	c.SleepTurns, c.SleepThreshold = 0, 0
	c.WetTurns, c.AccuracyDownTurns = 0, 0
	c.LastMoveType = TypeNone
	c.ResetStages()
}

// KnowsMove reports whether id is in the move slots.
func (c *Combatant) KnowsMove(id string) bool {
	for _, m := range c.Moves {
		if m == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy sharing the read-only species pointer.
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Moves = append([]string(nil), c.Moves...)
	return &cp
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
