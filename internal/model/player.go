package model

// Player is the session's character. The session orchestrator and the
// skill resolver own every mutation.
//
// Invariants: 0 <= CurrentHealth <= max health and 0 <= CurrentMana <= max
// mana, where the maxima come from the resolved stats of the current turn.
type Player struct {
	ID             PlayerID          `json:"id"`
	Name           string            `json:"name"`
	Class          string            `json:"class"`
	Level          Level             `json:"level"`
	Experience     Experience        `json:"experience"`
	Gold           Gold              `json:"gold"`
	CurrentHealth  Health            `json:"current_health"`
	CurrentMana    Mana              `json:"current_mana"`
	BaseAttributes Attributes        `json:"base_attributes"`
	BaseStats      BaseStats         `json:"base_stats"`
	Equipment      Equipment         `json:"equipment"`
	Inventory      []Item            `json:"inventory"`
	Skills         []Skill           `json:"skills"`
	Cooldowns      map[SkillID]int32 `json:"cooldowns"`
	SkillTimers    map[SkillID]int32 `json:"skill_timers"`
	ActiveBuffs    []Buff            `json:"active_buffs"`
}

// NewPlayer creates a level 1 player from a class template with full
// health and mana.
func NewPlayer(id PlayerID, name string, class ClassTemplate, skills []Skill) *Player {
	owned := make([]Skill, len(skills))
	copy(owned, skills)
	return &Player{
		ID:             id,
		Name:           name,
		Class:          class.Name,
		Level:          1,
		Gold:           class.StartingGold,
		CurrentHealth:  class.BaseStats.MaxHealth,
		CurrentMana:    class.BaseStats.MaxMana,
		BaseAttributes: class.BaseAttributes,
		BaseStats:      class.BaseStats,
		Equipment:      make(Equipment),
		Skills:         owned,
		Cooldowns:      make(map[SkillID]int32),
		SkillTimers:    make(map[SkillID]int32),
	}
}

// Clone returns a deep copy that shares no mutable state with p.
func (p *Player) Clone() *Player {
	c := *p
	c.Equipment = p.Equipment.Clone()
	c.Inventory = append([]Item(nil), p.Inventory...)
	c.Skills = append([]Skill(nil), p.Skills...)
	c.Cooldowns = cloneCounters(p.Cooldowns)
	c.SkillTimers = cloneCounters(p.SkillTimers)
	c.ActiveBuffs = CloneBuffs(p.ActiveBuffs)
	return &c
}

func cloneCounters(m map[SkillID]int32) map[SkillID]int32 {
	out := make(map[SkillID]int32, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Skill looks up an owned skill by id.
func (p *Player) Skill(id SkillID) (Skill, bool) {
	for _, s := range p.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// HasSkill reports whether the player owns skill id.
func (p *Player) HasSkill(id SkillID) bool {
	_, ok := p.Skill(id)
	return ok
}

// IsDead returns true once health reached zero.
func (p *Player) IsDead() bool { return p.CurrentHealth <= 0 }

// TakeDamage lowers health by d, never below zero. Returns the new health.
func (p *Player) TakeDamage(d Damage) Health {
	p.CurrentHealth = lower(p.CurrentHealth, Health(d))
	return p.CurrentHealth
}

// Heal raises health by amount, capped at maxHealth.
// Returns how much health was actually restored.
func (p *Player) Heal(amount Health, maxHealth Health) Health {
	before := p.CurrentHealth
	p.CurrentHealth = raise(p.CurrentHealth, amount, maxHealth)
	return p.CurrentHealth - before
}

// RestoreMana raises mana by amount, capped at maxMana.
// Returns how much mana was actually restored.
func (p *Player) RestoreMana(amount Mana, maxMana Mana) Mana {
	before := p.CurrentMana
	p.CurrentMana = raise(p.CurrentMana, amount, maxMana)
	return p.CurrentMana - before
}

// Clamp brings current health and mana back inside [0, max].
func (p *Player) Clamp(maxHealth Health, maxMana Mana) {
	p.CurrentHealth = ClampHealth(p.CurrentHealth, maxHealth)
	p.CurrentMana = ClampMana(p.CurrentMana, maxMana)
}

// ClampHealth clamps h to [0, max].
func ClampHealth(h, maxHealth Health) Health {
	return max(0, min(h, maxHealth))
}

// ClampMana clamps m to [0, max].
func ClampMana(m, maxMana Mana) Mana {
	return max(0, min(m, maxMana))
}

// lower subtracts d from v, stopping at zero. Negative d is ignored.
func lower[T ~int32](v, d T) T {
	if d <= 0 {
		return max(v, 0)
	}
	if v <= d {
		return 0
	}
	return v - d
}

// raise adds amount to v and clamps the result to [0, limit] without
// overflowing int32.
func raise[T ~int32](v, amount, limit T) T {
	if limit <= 0 {
		return 0
	}
	if amount > 0 && v > limit-amount {
		return limit
	}
	if amount < 0 {
		return min(lower(v, -max(amount, -limit)), limit)
	}
	return max(0, min(v+amount, limit))
}
