// Package loot turns a monster's loot table into concrete items.
package loot

import (
	"log/slog"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// Context describes the monster that dropped the loot.
type Context struct {
	Level model.Level
	Tier  model.Tier
}

// Generator rolls loot tables against a content catalog.
type Generator struct {
	catalog *model.Catalog
	ids     model.IDGenerator
	rates   *config.Rates
}

// NewGenerator creates a Generator. rates may be nil for x1 rates.
func NewGenerator(catalog *model.Catalog, ids model.IDGenerator, rates *config.Rates) *Generator {
	return &Generator{catalog: catalog, ids: ids, rates: rates}
}

// Roll evaluates every entry of table independently.
//
// Algorithm:
//  1. Draw one seed from src (always exactly one draw).
//  2. For each entry derive a private stream from (seed, base item id,
//     occurrence of that id in the table); removing an entry never changes
//     what the other entries roll.
//  3. Roll drop chance × tier drop multiplier × drop rate (clamped to [0, 1]).
//  4. Roll rarity from weights + tier rarity bonus (floored at 0).
//  5. Roll affixes and scale modifiers by the rarity rule.
//
// An empty table, zero chances or all-zero weights yield no items.
func (g *Generator) Roll(table []model.LootEntry, ctx Context, src rng.Source) []model.Item {
	seed := src.Uint64()
	if len(table) == 0 {
		return nil
	}

	tier := g.catalog.TierRule(ctx.Tier)
	occurrences := make(map[model.BaseItemID]int, len(table))

	var items []model.Item
	for _, entry := range table {
		occ := occurrences[entry.BaseItem]
		occurrences[entry.BaseItem]++

		stream := rng.Derive(seed, streamKey(entry.BaseItem, occ))
		if it, ok := g.rollEntry(entry, ctx, tier, stream); ok {
			items = append(items, it)
		}
	}
	return items
}

func (g *Generator) rollEntry(entry model.LootEntry, ctx Context, tier model.TierRule, src rng.Source) (model.Item, bool) {
	base, ok := g.catalog.BaseItem(entry.BaseItem)
	if !ok {
		slog.Warn("loot entry references unknown base item", "baseItem", entry.BaseItem)
		return model.Item{}, false
	}

	chance := entry.DropChance * tier.DropMultiplier * g.rates.DropChance()
	if !rng.Chance(src, chance) {
		return model.Item{}, false
	}

	rarity, ok := RollRarity(entry.Weights.Plus(tier.RarityBonus), src)
	if !ok {
		return model.Item{}, false
	}

	return g.Build(base, rarity, ctx.Level, src), true
}

// RollRarity picks a rarity with probability proportional to its weight.
// Negative weights count as zero; returns false when every weight is zero.
func RollRarity(w model.RarityWeights, src rng.Source) (model.Rarity, bool) {
	rarities := model.AllRarities()
	weights := make([]float64, len(rarities))
	for i, r := range rarities {
		weights[i] = max(0, w.Get(r))
	}
	idx, ok := rng.Weighted(src, weights)
	if !ok {
		return model.RarityCommon, false
	}
	return rarities[idx], true
}

// Build creates an item of the given rarity from base: affixes are rolled
// from the catalog pool per the rarity rule and every modifier, base ones
// included, is scaled by the rule's multiplier.
func (g *Generator) Build(base model.BaseItem, rarity model.Rarity, level model.Level, src rng.Source) model.Item {
	rule := g.catalog.RarityRule(rarity)

	base.Modifiers = model.ScaleModifiers(base.Modifiers, rule.Multiplier)
	it := model.Item{
		ID:     g.ids.NewItemID(),
		Base:   base,
		Rarity: rarity,
		Level:  level,
	}

	pool := g.catalog.Affixes
	pick := func(pos model.AffixPosition) *model.Affix {
		candidates := pool.Candidates(pos, base.Type, rule.TopTierOnly)
		if len(candidates) == 0 {
			return nil
		}
		a := candidates[src.IntN(len(candidates))]
		a.Modifiers = model.ScaleModifiers(a.Modifiers, rule.Multiplier)
		return &a
	}

	switch {
	case rule.AffixCount >= 2:
		it.Prefix = pick(model.AffixPrefix)
		it.Suffix = pick(model.AffixSuffix)
	case rule.AffixCount == 1:
		if src.IntN(2) == 0 {
			if it.Prefix = pick(model.AffixPrefix); it.Prefix == nil {
				it.Suffix = pick(model.AffixSuffix)
			}
		} else {
			if it.Suffix = pick(model.AffixSuffix); it.Suffix == nil {
				it.Prefix = pick(model.AffixPrefix)
			}
		}
	}

	return it
}

func streamKey(id model.BaseItemID, occurrence int) uint64 {
	return xxhash.Sum64String(string(id) + "#" + strconv.Itoa(occurrence))
}
