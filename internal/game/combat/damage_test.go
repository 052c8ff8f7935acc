package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

func attacker() model.CharacterStats {
	return model.CharacterStats{
		Attributes:      model.Attributes{Strength: 10, Intelligence: 20},
		BaseDamage:      10,
		CriticalChance:  0.1,
		CriticalDamage:  0.5,
		ElementModifier: model.NeutralMultipliers(),
	}
}

func TestCompute_NoCrit(t *testing.T) {
	a := Attack{Attacker: attacker(), BasePower: 10, ScalingStat: 10, ScalingFactor: 0.5}
	src := rng.Script(0.5)

	res := Compute(a, src)
	assert.Equal(t, model.Damage(15), res.Damage)
	assert.False(t, res.Critical)
	assert.Equal(t, model.Health(0), res.Healed)
	assert.Equal(t, 1, src.Consumed())
}

func TestCompute_Crit(t *testing.T) {
	a := Attack{Attacker: attacker(), BasePower: 20}
	res := Compute(a, rng.Script(0.05))

	assert.True(t, res.Critical)
	assert.Equal(t, model.Damage(30), res.Damage)
}

func TestCompute_ZeroCritChanceStillDraws(t *testing.T) {
	s := attacker()
	s.CriticalChance = 0
	src := rng.Script(0)

	res := Compute(Attack{Attacker: s, BasePower: 5}, src)
	assert.False(t, res.Critical)
	assert.Equal(t, 1, src.Consumed())
}

func TestCompute_Elements(t *testing.T) {
	s := attacker()
	s.ElementModifier.Fire = 1.5

	tests := []struct {
		name       string
		resistance float64
		want       model.Damage
	}{
		{"no resistance", 0, 30},
		{"half", 0.5, 15},
		{"full", 1, 0},
		{"over cap", 1.7, 0},
		{"negative clamps to zero", -0.5, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attack{
				Attacker:   s,
				Element:    model.ElementFire,
				BasePower:  20,
				Resistance: model.ElementValues{Fire: tt.resistance},
			}
			assert.Equal(t, tt.want, Compute(a, rng.Script(0.9)).Damage)
		})
	}
}

func TestCompute_LifeSteal(t *testing.T) {
	s := attacker()
	s.LifeSteal = 0.25

	res := Compute(Attack{Attacker: s, BasePower: 27}, rng.Script(0.9))
	assert.Equal(t, model.Damage(27), res.Damage)
	assert.Equal(t, model.Health(6), res.Healed)
}

func TestCompute_NegativePowerFloorsAtZero(t *testing.T) {
	res := Compute(Attack{Attacker: attacker(), BasePower: -40}, rng.Script(0.9))
	assert.Equal(t, model.Damage(0), res.Damage)
}

func TestBasicAttack_Unarmed(t *testing.T) {
	a := BasicAttack(attacker(), nil, model.ElementValues{})

	assert.Equal(t, model.ElementPhysical, a.Element)
	assert.Equal(t, 10.0, a.BasePower)
	assert.Equal(t, model.Damage(15), Compute(a, rng.Script(0.9)).Damage)
}

func TestBasicAttack_WeaponScalingAndElement(t *testing.T) {
	staff := &model.BaseItem{
		Type:    model.ItemWeapon,
		Element: model.ElementArcane,
		Scaling: &model.WeaponScaling{Intelligence: 0.8},
	}
	a := BasicAttack(attacker(), staff, model.ElementValues{Arcane: 0.25})

	assert.Equal(t, model.ElementArcane, a.Element)
	// (10 + 20×0.8) × 0.75 = 19.5 → 20
	assert.Equal(t, model.Damage(20), Compute(a, rng.Script(0.9)).Damage)
}

func TestSkillAttack(t *testing.T) {
	s := attacker()
	s.SkillPower = 5
	eff := model.DamageEffect{BaseDamage: 12, Scaling: 1.2, Element: model.ElementLightning}

	a := SkillAttack(s, eff, model.ElementValues{})
	// 12 + (5 + 20×0.5)×1.2 = 30
	assert.Equal(t, model.Damage(30), Compute(a, rng.Script(0.9)).Damage)
	assert.Equal(t, model.ElementLightning, a.Element)
}

func TestHealAmount(t *testing.T) {
	s := attacker()
	assert.Equal(t, model.Health(25), HealAmount(s, model.HealEffect{BaseHeal: 15, Scaling: 1}))
	assert.Equal(t, model.Health(0), HealAmount(s, model.HealEffect{BaseHeal: -100}))
}

func TestCompute_MonsterHitsForThirty(t *testing.T) {
	monster := model.CharacterStats{BaseDamage: 30, ElementModifier: model.NeutralMultipliers()}
	res := Compute(MonsterAttack(monster, model.ElementValues{}), rng.Script(0.5))
	assert.Equal(t, model.Damage(30), res.Damage)
}

func TestCompute_SaturatesHugeHits(t *testing.T) {
	s := attacker()
	s.CriticalChance = 1
	s.LifeSteal = 1

	res := Compute(Attack{Attacker: s, BasePower: 3e9}, rng.New(1))
	assert.True(t, res.Critical)
	assert.Equal(t, model.Damage(math.MaxInt32), res.Damage)
	assert.Equal(t, model.Health(math.MaxInt32), res.Healed)

	assert.Equal(t, model.Health(math.MaxInt32), HealAmount(s, model.HealEffect{BaseHeal: math.MaxInt32, Scaling: 1e12}))
}

func TestCompute_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := model.CharacterStats{
			CriticalChance:  rapid.Float64Range(-1, 2).Draw(t, "critChance"),
			CriticalDamage:  rapid.Float64Range(0, 3).Draw(t, "critDamage"),
			LifeSteal:       rapid.Float64Range(0, 1).Draw(t, "lifeSteal"),
			ElementModifier: model.NeutralMultipliers(),
		}
		elem := model.Element(rapid.IntRange(0, 4).Draw(t, "element"))
		s.ElementModifier.Add(elem, rapid.Float64Range(-0.5, 2).Draw(t, "elemBonus"))

		a := Attack{
			Attacker:      s,
			Element:       elem,
			BasePower:     rapid.OneOf(rapid.Float64Range(0, 500), rapid.Float64Range(1e9, 1e12)).Draw(t, "base"),
			ScalingStat:   rapid.Float64Range(0, 200).Draw(t, "stat"),
			ScalingFactor: rapid.Float64Range(0, 3).Draw(t, "factor"),
		}
		a.Resistance.Add(elem, rapid.Float64Range(-2, 3).Draw(t, "resistance"))
		seed := rapid.Uint64().Draw(t, "seed")

		res := Compute(a, rng.New(seed))
		again := Compute(a, rng.New(seed))

		if res != again {
			t.Fatalf("non-deterministic: %+v vs %+v", res, again)
		}
		if res.Damage < 0 || res.Healed < 0 {
			t.Fatalf("negative output: %+v", res)
		}

		crit := 1.0
		if res.Critical {
			crit = 1 + s.CriticalDamage
		}
		ceiling := math.Round(max(0, res.Raw*crit*s.ElementModifier.Get(elem)))
		if float64(res.Damage) > ceiling {
			t.Fatalf("resistance increased damage: %d > %v", res.Damage, ceiling)
		}
	})
}
