package model

// Attributes are the primary character attributes weapons and skills scale from.
type Attributes struct {
	Strength     int32 `yaml:"strength" json:"strength"`
	Intelligence int32 `yaml:"intelligence" json:"intelligence"`
	Dexterity    int32 `yaml:"dexterity" json:"dexterity"`
	Vitality     int32 `yaml:"vitality" json:"vitality"`
}

// Plus returns the attribute-wise sum.
func (a Attributes) Plus(o Attributes) Attributes {
	return Attributes{
		Strength:     a.Strength + o.Strength,
		Intelligence: a.Intelligence + o.Intelligence,
		Dexterity:    a.Dexterity + o.Dexterity,
		Vitality:     a.Vitality + o.Vitality,
	}
}

// BaseStats are the unmodified stats of a class or monster template.
// ElementBonus holds deltas over the neutral 1.0 multiplier.
type BaseStats struct {
	MaxHealth      Health        `yaml:"max_health" json:"max_health"`
	MaxMana        Mana          `yaml:"max_mana" json:"max_mana"`
	BaseDamage     Damage        `yaml:"base_damage" json:"base_damage"`
	CriticalChance float64       `yaml:"critical_chance" json:"critical_chance"`
	CriticalDamage float64       `yaml:"critical_damage" json:"critical_damage"`
	LifeSteal      float64       `yaml:"life_steal" json:"life_steal"`
	ManaRegen      Mana          `yaml:"mana_regen" json:"mana_regen"`
	SkillPower     float64       `yaml:"skill_power" json:"skill_power"`
	ElementBonus   ElementValues `yaml:"element_bonus" json:"element_bonus"`
	Resistance     ElementValues `yaml:"resistance" json:"resistance"`
}

// Plus returns the field-wise sum, used for per-level growth.
func (s BaseStats) Plus(o BaseStats) BaseStats {
	return BaseStats{
		MaxHealth:      s.MaxHealth + o.MaxHealth,
		MaxMana:        s.MaxMana + o.MaxMana,
		BaseDamage:     s.BaseDamage + o.BaseDamage,
		CriticalChance: s.CriticalChance + o.CriticalChance,
		CriticalDamage: s.CriticalDamage + o.CriticalDamage,
		LifeSteal:      s.LifeSteal + o.LifeSteal,
		ManaRegen:      s.ManaRegen + o.ManaRegen,
		SkillPower:     s.SkillPower + o.SkillPower,
		ElementBonus:   s.ElementBonus.Plus(o.ElementBonus),
		Resistance:     s.Resistance.Plus(o.Resistance),
	}
}

// CharacterStats are the effective stats for the current turn.
// Derived by the stat aggregator, never stored.
type CharacterStats struct {
	Attributes      Attributes
	MaxHealth       Health
	MaxMana         Mana
	BaseDamage      Damage
	CriticalChance  float64
	CriticalDamage  float64
	LifeSteal       float64
	ManaRegen       Mana
	SkillPower      float64
	ElementModifier ElementValues
	Resistance      ElementValues
}
