// Package stats folds base stats, equipment, passive skills and buffs into
// the effective CharacterStats of one turn.
package stats

import "github.com/udisondev/wavecrawl/internal/model"

// Resolve returns the effective stats for the current turn.
// Pure function: same inputs always yield the same stats.
//
// Order of application:
//  1. base stats (element multipliers start at 1.0 for every element)
//  2. equipped items in slot order, each item base → prefix → suffix
//  3. buffs in activation order
//
// Flat and rate modifiers both sum; rates never compound.
func Resolve(attrs model.Attributes, base model.BaseStats, equipment model.Equipment, buffs []model.Buff) model.CharacterStats {
	s := fromBase(attrs, base)

	for _, slot := range model.AllSlots() {
		it, ok := equipment[slot]
		if !ok {
			continue
		}
		for _, m := range it.Modifiers() {
			Apply(&s, m)
		}
	}

	for i := range buffs {
		Apply(&s, buffs[i].Type)
	}

	normalize(&s)
	return s
}

// ResolvePlayer resolves the player's stats for preview or combat.
// Buff effects of passive skills are applied before the active buffs.
func ResolvePlayer(p *model.Player) model.CharacterStats {
	passive := PassiveBuffs(p.Skills)
	buffs := make([]model.Buff, 0, len(passive)+len(p.ActiveBuffs))
	buffs = append(buffs, passive...)
	buffs = append(buffs, p.ActiveBuffs...)
	return Resolve(p.BaseAttributes, p.BaseStats, p.Equipment, buffs)
}

// ResolveMonster resolves an encounter monster's stats including the
// debuffs the player put on it.
func ResolveMonster(m *model.Monster) model.CharacterStats {
	return Resolve(model.Attributes{}, m.Base, nil, m.Buffs)
}

// PassiveBuffs returns the permanent buffs granted by passive skills,
// in skill order then effect order.
func PassiveBuffs(skills []model.Skill) []model.Buff {
	var out []model.Buff
	for i := range skills {
		if skills[i].Kind != model.SkillPassive {
			continue
		}
		for _, eff := range skills[i].Effects {
			if eff.Kind != model.EffectBuff || eff.Buff == nil {
				continue
			}
			out = append(out, eff.Buff.Buff.Instantiate(0, false))
		}
	}
	return out
}

// Apply adds a single modifier to s.
func Apply(s *model.CharacterStats, m model.Modifier) {
	switch m.Kind {
	case model.ModIncreaseDamage:
		s.BaseDamage += model.Damage(m.Value)
	case model.ModIncreaseHealth:
		s.MaxHealth += model.Health(m.Value)
	case model.ModIncreaseMana:
		s.MaxMana += model.Mana(m.Value)
	case model.ModManaRegen:
		s.ManaRegen += model.Mana(m.Value)
	case model.ModIncreaseStrength:
		s.Attributes.Strength += int32(m.Value)
	case model.ModIncreaseIntelligence:
		s.Attributes.Intelligence += int32(m.Value)
	case model.ModIncreaseDexterity:
		s.Attributes.Dexterity += int32(m.Value)
	case model.ModIncreaseVitality:
		s.Attributes.Vitality += int32(m.Value)
	case model.ModCriticalChance:
		s.CriticalChance += m.Value
	case model.ModCriticalDamage:
		s.CriticalDamage += m.Value
	case model.ModLifeSteal:
		s.LifeSteal += m.Value
	case model.ModSkillPower:
		s.SkillPower += m.Value
	case model.ModElementModifier:
		s.ElementModifier.Add(m.Element, m.Value)
	case model.ModElementResistance:
		s.Resistance.Add(m.Element, m.Value)
	}
}

func fromBase(attrs model.Attributes, base model.BaseStats) model.CharacterStats {
	return model.CharacterStats{
		Attributes:      attrs,
		MaxHealth:       base.MaxHealth,
		MaxMana:         base.MaxMana,
		BaseDamage:      base.BaseDamage,
		CriticalChance:  base.CriticalChance,
		CriticalDamage:  base.CriticalDamage,
		LifeSteal:       base.LifeSteal,
		ManaRegen:       base.ManaRegen,
		SkillPower:      base.SkillPower,
		ElementModifier: model.NeutralMultipliers().Plus(base.ElementBonus),
		Resistance:      base.Resistance,
	}
}

// normalize keeps debuffed pools usable: a character always has at least
// 1 max health and never negative mana, damage or regeneration.
func normalize(s *model.CharacterStats) {
	s.MaxHealth = max(s.MaxHealth, 1)
	s.MaxMana = max(s.MaxMana, 0)
	s.BaseDamage = max(s.BaseDamage, 0)
	s.ManaRegen = max(s.ManaRegen, 0)
	s.LifeSteal = max(s.LifeSteal, 0)
}
