package model

// Element is the damage type of an attack or skill effect.
type Element uint8

const (
	ElementPhysical Element = iota
	ElementArcane
	ElementFire
	ElementLightning
	ElementHoly
)

var elementNames = []string{"Physical", "Arcane", "Fire", "Lightning", "Holy"}

// AllElements lists elements in declaration order.
func AllElements() []Element {
	return []Element{ElementPhysical, ElementArcane, ElementFire, ElementLightning, ElementHoly}
}

// String returns human-readable element name.
func (e Element) String() string { return enumName(elementNames, int(e)) }

func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Element) UnmarshalText(b []byte) error {
	v, err := parseEnum[Element]("element", elementNames, string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ElementValues holds one number per element. Used both for attacker-side
// multipliers and defender-side resistances.
type ElementValues struct {
	Physical  float64 `yaml:"physical,omitempty" json:"physical,omitempty"`
	Arcane    float64 `yaml:"arcane,omitempty" json:"arcane,omitempty"`
	Fire      float64 `yaml:"fire,omitempty" json:"fire,omitempty"`
	Lightning float64 `yaml:"lightning,omitempty" json:"lightning,omitempty"`
	Holy      float64 `yaml:"holy,omitempty" json:"holy,omitempty"`
}

// NeutralMultipliers is the attacker-side baseline: every element at 1.0.
func NeutralMultipliers() ElementValues {
	return ElementValues{Physical: 1, Arcane: 1, Fire: 1, Lightning: 1, Holy: 1}
}

// Get returns the value for element e.
func (v ElementValues) Get(e Element) float64 {
	switch e {
	case ElementPhysical:
		return v.Physical
	case ElementArcane:
		return v.Arcane
	case ElementFire:
		return v.Fire
	case ElementLightning:
		return v.Lightning
	case ElementHoly:
		return v.Holy
	default:
		return 0
	}
}

// Add increases the value for element e by delta.
func (v *ElementValues) Add(e Element, delta float64) {
	switch e {
	case ElementPhysical:
		v.Physical += delta
	case ElementArcane:
		v.Arcane += delta
	case ElementFire:
		v.Fire += delta
	case ElementLightning:
		v.Lightning += delta
	case ElementHoly:
		v.Holy += delta
	}
}

// Plus returns the per-element sum of v and o.
func (v ElementValues) Plus(o ElementValues) ElementValues {
	return ElementValues{
		Physical:  v.Physical + o.Physical,
		Arcane:    v.Arcane + o.Arcane,
		Fire:      v.Fire + o.Fire,
		Lightning: v.Lightning + o.Lightning,
		Holy:      v.Holy + o.Holy,
	}
}
