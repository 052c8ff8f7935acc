package model

// Buff is a timed stat modification on a player or monster.
// RemainingTurns drops by one per turn boundary; the buff is gone once it
// reaches zero, so a buff with Duration 1 lasts exactly one turn.
type Buff struct {
	ID             BuffID   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Type           Modifier `yaml:"type" json:"type"`
	Harmful        bool     `yaml:"harmful,omitempty" json:"harmful,omitempty"`
	Duration       int32    `yaml:"duration" json:"duration"`
	RemainingTurns int32    `yaml:"remaining_turns" json:"remaining_turns"`
}

// BuffTemplate is the content side of a buff: everything but the timers.
type BuffTemplate struct {
	ID   BuffID   `yaml:"id" json:"id"`
	Name string   `yaml:"name" json:"name"`
	Type Modifier `yaml:"type" json:"type"`
}

// Instantiate creates a fresh buff lasting duration turns.
func (t BuffTemplate) Instantiate(duration int32, harmful bool) Buff {
	return Buff{
		ID:             t.ID,
		Name:           t.Name,
		Type:           t.Type,
		Harmful:        harmful,
		Duration:       duration,
		RemainingTurns: duration,
	}
}

// CloneBuffs returns an independent copy of a buff slice.
func CloneBuffs(buffs []Buff) []Buff {
	if buffs == nil {
		return nil
	}
	out := make([]Buff, len(buffs))
	copy(out, buffs)
	return out
}
