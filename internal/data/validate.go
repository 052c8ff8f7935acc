package data

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/wavecrawl/internal/model"
)

// Validate checks cross references and balancing invariants of a catalog.
// All problems are reported at once.
//
// Checks:
//  1. at least one class and one monster template
//  2. class skills and starting equipment exist; the class slot rules
//     admit its starting equipment
//  3. items have slots; granted skills exist
//  4. skill effects carry their payload; summons name a known template
//  5. loot entries name a known base item
//  6. monster level ranges are ordered and health is positive
//  7. level thresholds start at 0 and strictly increase
//  8. rarity multipliers are positive
func Validate(c *model.Catalog) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(c.Classes) == 0 {
		add("no classes")
	}
	if len(c.Monsters) == 0 {
		add("no monster templates")
	}

	for name, cls := range c.Classes {
		for _, id := range cls.StartingSkills {
			if _, ok := c.Skills[id]; !ok {
				add("class %q: unknown skill %q", name, id)
			}
		}
		for _, id := range cls.StartingEquipment {
			base, ok := c.BaseItems[id]
			if !ok {
				add("class %q: unknown item %q", name, id)
				continue
			}
			if !slices.ContainsFunc(base.Slots, func(slot model.EquipmentSlot) bool { return cls.CanWear(&base, slot) }) {
				add("class %q: cannot wear starting item %q", name, id)
			}
		}
	}

	for id, it := range c.BaseItems {
		if len(it.Slots) == 0 {
			add("item %q: no slots", id)
		}
		for _, sk := range it.GrantedSkills {
			if _, ok := c.Skills[sk]; !ok {
				add("item %q: unknown granted skill %q", id, sk)
			}
		}
	}

	for id, sk := range c.Skills {
		for i, eff := range sk.Effects {
			if err := eff.Validate(); err != nil {
				add("skill %q effect %d: %w", id, i, err)
				continue
			}
			if eff.Kind == model.EffectSummon {
				if _, ok := c.Monster(eff.Summon.Template); !ok {
					add("skill %q: unknown summon template %q", id, eff.Summon.Template)
				}
			}
		}
	}

	seen := make(map[model.MonsterTemplateID]bool, len(c.Monsters))
	for _, m := range c.Monsters {
		if seen[m.ID] {
			add("monster %q: duplicate", m.ID)
		}
		seen[m.ID] = true

		if m.Levels.Min > m.Levels.Max {
			add("monster %q: level range %d-%d", m.ID, m.Levels.Min, m.Levels.Max)
		}
		if m.Base.MaxHealth <= 0 {
			add("monster %q: max health %d", m.ID, m.Base.MaxHealth)
		}
		for _, e := range m.LootTable {
			if _, ok := c.BaseItems[e.BaseItem]; !ok {
				add("monster %q: loot names unknown item %q", m.ID, e.BaseItem)
			}
		}
	}

	th := c.Levels.Thresholds
	if len(th) > 0 && th[0] != 0 {
		add("levels: first threshold must be 0, got %d", th[0])
	}
	for i := 1; i < len(th); i++ {
		if th[i] <= th[i-1] {
			add("levels: threshold %d (%d) not above %d", i+1, th[i], th[i-1])
		}
	}

	for r, rule := range c.Rarities {
		if rule.Multiplier <= 0 {
			add("rarity %s: multiplier must be > 0, got %v", r, rule.Multiplier)
		}
		if rule.AffixCount < 0 || rule.AffixCount > 2 {
			add("rarity %s: affixes must be 0-2, got %d", r, rule.AffixCount)
		}
	}

	return errors.Join(errs...)
}
