package combat

import (
	"math"

	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

const (
	// UnarmedStrengthScaling is the strength factor of a basic attack
	// without a weapon.
	UnarmedStrengthScaling = 0.5
	// SkillIntelligenceScaling is how much each intelligence point adds to
	// the skill scaling stat on top of skill power.
	SkillIntelligenceScaling = 0.5
)

// Attack is one hit, fully described. Build it with BasicAttack,
// SkillAttack or MonsterAttack.
type Attack struct {
	Attacker      model.CharacterStats
	Element       model.Element
	BasePower     float64
	ScalingStat   float64
	ScalingFactor float64
	// Resistance of the defender.
	Resistance model.ElementValues
}

// Result is the outcome of Compute. Healed is the life-steal amount the
// caller must apply (and clamp) itself.
type Result struct {
	Damage   model.Damage
	Critical bool
	Healed   model.Health
	// Raw is the damage before the critical multiplier and element adjustment.
	Raw float64
}

// Compute resolves an attack into final damage.
//
// Formula:
//
//	raw   = base_power + scaling_stat × scaling_factor
//	crit  = draw < clamp(crit_chance, 0, 1) → raw × (1 + crit_damage)
//	final = round(raw × element_modifier × (1 − clamp(resistance, 0, 1))), clamped to [0, MaxInt32]
//	heal  = floor(final × life_steal), clamped the same way
//
// Exactly one draw is taken from src, critical chance or not, so the rng
// stream advances the same way for every attack.
func Compute(a Attack, src rng.Source) Result {
	raw := a.BasePower + a.ScalingStat*a.ScalingFactor
	dmg := raw

	critical := rng.Chance(src, a.Attacker.CriticalChance)
	if critical {
		dmg *= 1 + a.Attacker.CriticalDamage
	}

	dmg *= a.Attacker.ElementModifier.Get(a.Element)
	dmg *= 1 - clamp01(a.Resistance.Get(a.Element))

	final := toAmount(math.Round(dmg))
	res := Result{
		Damage:   model.Damage(final),
		Critical: critical,
		Raw:      raw,
	}
	if a.Attacker.LifeSteal > 0 {
		res.Healed = model.Health(toAmount(math.Floor(final * a.Attacker.LifeSteal)))
	}
	return res
}

// BasicAttack builds the player's weapon attack. Without a weapon the
// attack scales from strength and is Physical.
func BasicAttack(attacker model.CharacterStats, weapon *model.BaseItem, defender model.ElementValues) Attack {
	a := Attack{
		Attacker:      attacker,
		Element:       model.ElementPhysical,
		BasePower:     float64(attacker.BaseDamage),
		ScalingStat:   float64(attacker.Attributes.Strength),
		ScalingFactor: UnarmedStrengthScaling,
		Resistance:    defender,
	}
	if weapon == nil {
		return a
	}

	a.Element = weapon.Element
	if weapon.Scaling != nil {
		a.ScalingStat = weapon.Scaling.ScalingStat(attacker.Attributes)
		a.ScalingFactor = 1
	}
	return a
}

// SkillAttack builds the attack of a skill damage effect.
func SkillAttack(attacker model.CharacterStats, eff model.DamageEffect, defender model.ElementValues) Attack {
	return Attack{
		Attacker:      attacker,
		Element:       eff.Element,
		BasePower:     float64(eff.BaseDamage),
		ScalingStat:   SkillScalingStat(attacker),
		ScalingFactor: eff.Scaling,
		Resistance:    defender,
	}
}

// MonsterAttack builds a monster's or ally's plain physical attack.
func MonsterAttack(attacker model.CharacterStats, defender model.ElementValues) Attack {
	return Attack{
		Attacker:   attacker,
		Element:    model.ElementPhysical,
		BasePower:  float64(attacker.BaseDamage),
		Resistance: defender,
	}
}

// SkillScalingStat is the stat skill damage and healing scale from.
func SkillScalingStat(s model.CharacterStats) float64 {
	return s.SkillPower + float64(s.Attributes.Intelligence)*SkillIntelligenceScaling
}

// HealAmount returns the health restored by a heal effect, floored at 0.
func HealAmount(caster model.CharacterStats, eff model.HealEffect) model.Health {
	v := float64(eff.BaseHeal) + SkillScalingStat(caster)*eff.Scaling
	return model.Health(toAmount(math.Floor(v)))
}

// toAmount clamps v to the range an int32 amount can hold, floored at 0.
// NaN maps to 0.
func toAmount(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(v, math.MaxInt32))
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
