package model

import "math"

// ModifierKind is the closed set of stat modifications an item, affix or
// buff can carry.
type ModifierKind uint8

const (
	// Flat additions.
	ModIncreaseDamage ModifierKind = iota
	ModIncreaseHealth
	ModIncreaseMana
	ModManaRegen
	ModIncreaseStrength
	ModIncreaseIntelligence
	ModIncreaseDexterity
	ModIncreaseVitality

	// Rate additions (0.05 = +5%). Rates of the same kind sum, they never compound.
	ModCriticalChance
	ModCriticalDamage
	ModLifeSteal
	ModSkillPower

	// Per-element contributions; Element is required.
	ModElementModifier
	ModElementResistance
)

var modifierKindNames = []string{
	"IncreaseDamage",
	"IncreaseHealth",
	"IncreaseMana",
	"ManaRegen",
	"IncreaseStrength",
	"IncreaseIntelligence",
	"IncreaseDexterity",
	"IncreaseVitality",
	"CriticalChance",
	"CriticalDamage",
	"LifeSteal",
	"SkillPower",
	"ElementModifier",
	"ElementResistance",
}

func (k ModifierKind) String() string { return enumName(modifierKindNames, int(k)) }

func (k ModifierKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ModifierKind) UnmarshalText(b []byte) error {
	v, err := parseEnum[ModifierKind]("modifier kind", modifierKindNames, string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsFlat reports whether the kind adds an absolute amount.
func (k ModifierKind) IsFlat() bool { return k <= ModIncreaseVitality }

// IsRate reports whether the kind adds a rate.
func (k ModifierKind) IsRate() bool { return k >= ModCriticalChance && k <= ModSkillPower }

// IsElemental reports whether the kind targets a single element.
func (k ModifierKind) IsElemental() bool {
	return k == ModElementModifier || k == ModElementResistance
}

// Modifier is a single stat modification. Element is only meaningful for
// elemental kinds.
type Modifier struct {
	Kind    ModifierKind `yaml:"kind" json:"kind"`
	Value   float64      `yaml:"value" json:"value"`
	Element Element      `yaml:"element,omitempty" json:"element,omitempty"`
}

// NewModifier builds a flat or rate modifier.
func NewModifier(kind ModifierKind, value float64) Modifier {
	return Modifier{Kind: kind, Value: value}
}

// NewElementModifier builds an elemental modifier.
func NewElementModifier(kind ModifierKind, element Element, value float64) Modifier {
	return Modifier{Kind: kind, Value: value, Element: element}
}

// Scaled returns the modifier strengthened by a rarity multiplier.
// Flat values are floored, rates scale linearly, elemental values are kept.
func (m Modifier) Scaled(multiplier float64) Modifier {
	switch {
	case m.Kind.IsFlat():
		m.Value = math.Floor(m.Value * multiplier)
	case m.Kind.IsRate():
		m.Value *= multiplier
	}
	return m
}

// ScaleModifiers applies Scaled to every modifier and returns a new slice.
func ScaleModifiers(mods []Modifier, multiplier float64) []Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]Modifier, len(mods))
	for i, m := range mods {
		out[i] = m.Scaled(multiplier)
	}
	return out
}
