package loot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/ids"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

func testCatalog() *model.Catalog {
	return &model.Catalog{
		BaseItems: map[model.BaseItemID]model.BaseItem{
			"sword": {
				ID:        "sword",
				Name:      "Sword",
				Type:      model.ItemWeapon,
				Slots:     []model.EquipmentSlot{model.SlotMainHand},
				Modifiers: []model.Modifier{model.NewModifier(model.ModIncreaseDamage, 10)},
			},
			"ring": {
				ID:        "ring",
				Name:      "Ring",
				Type:      model.ItemAccessory,
				Slots:     []model.EquipmentSlot{model.SlotRing1, model.SlotRing2},
				Modifiers: []model.Modifier{model.NewModifier(model.ModCriticalChance, 0.02)},
			},
			"helm":  {ID: "helm", Name: "Helm", Type: model.ItemArmor, Slots: []model.EquipmentSlot{model.SlotHelm}},
			"boots": {ID: "boots", Name: "Boots", Type: model.ItemArmor, Slots: []model.EquipmentSlot{model.SlotBoots}},
		},
		Affixes: model.AffixPool{
			Prefixes: []model.Affix{
				{Name: "Sharp", Position: model.AffixPrefix, Tier: 1, Modifiers: []model.Modifier{model.NewModifier(model.ModIncreaseDamage, 4)}},
				{Name: "Devastating", Position: model.AffixPrefix, Tier: 3, Modifiers: []model.Modifier{model.NewModifier(model.ModIncreaseDamage, 12)}},
			},
			Suffixes: []model.Affix{
				{Name: "of Power", Position: model.AffixSuffix, Tier: 1, Modifiers: []model.Modifier{model.NewModifier(model.ModIncreaseStrength, 3)}},
			},
		},
		Rarities: map[model.Rarity]model.RarityRule{
			model.RarityCommon:    {AffixCount: 0, Multiplier: 1},
			model.RarityMagic:     {AffixCount: 1, Multiplier: 1.5},
			model.RarityRare:      {AffixCount: 2, Multiplier: 2},
			model.RarityLegendary: {AffixCount: 2, TopTierOnly: true, Multiplier: 3},
		},
		Tiers: map[model.Tier]model.TierRule{
			model.TierBoss: {DropMultiplier: 2, GoldMultiplier: 5, ExpMultiplier: 1},
		},
	}
}

func newGenerator(c *model.Catalog) *Generator {
	return NewGenerator(c, ids.NewSequence("test"), nil)
}

func TestRoll_AlwaysDropCommon(t *testing.T) {
	g := newGenerator(testCatalog())
	table := []model.LootEntry{{
		BaseItem:   "sword",
		DropChance: 1,
		Weights:    model.RarityWeights{Common: 1},
	}}

	for seed := range uint64(50) {
		items := g.Roll(table, Context{Level: 7}, rng.New(seed))
		require.Len(t, items, 1, "seed %d", seed)

		it := items[0]
		assert.Equal(t, model.RarityCommon, it.Rarity)
		assert.Equal(t, 0, it.AffixCount())
		assert.Equal(t, model.Level(7), it.Level)
		assert.Equal(t, model.BaseItemID("sword"), it.Base.ID)
		assert.Equal(t, 10.0, it.Base.Modifiers[0].Value)
		assert.NotEmpty(t, it.ID)
	}
}

func TestRoll_NoDrop(t *testing.T) {
	tests := []struct {
		name  string
		entry model.LootEntry
	}{
		{"zero chance", model.LootEntry{BaseItem: "sword", DropChance: 0, Weights: model.RarityWeights{Common: 1}}},
		{"all zero weights", model.LootEntry{BaseItem: "sword", DropChance: 1}},
		{"negative weights", model.LootEntry{BaseItem: "sword", DropChance: 1, Weights: model.RarityWeights{Common: -1}}},
		{"unknown base item", model.LootEntry{BaseItem: "nope", DropChance: 1, Weights: model.RarityWeights{Common: 1}}},
	}

	g := newGenerator(testCatalog())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := g.Roll([]model.LootEntry{tt.entry}, Context{Level: 1}, rng.New(1))
			assert.Empty(t, items)
		})
	}
}

func TestRoll_UnknownBaseItemSkipsOnlyItself(t *testing.T) {
	g := newGenerator(testCatalog())
	table := []model.LootEntry{
		{BaseItem: "nope", DropChance: 1, Weights: model.RarityWeights{Common: 1}},
		{BaseItem: "ring", DropChance: 1, Weights: model.RarityWeights{Common: 1}},
	}

	items := g.Roll(table, Context{Level: 3}, rng.New(9))
	require.Len(t, items, 1)
	assert.Equal(t, model.BaseItemID("ring"), items[0].Base.ID)
}

func TestRoll_EmptyTableDrawsSeed(t *testing.T) {
	g := newGenerator(testCatalog())
	src := rng.Script(0.5)

	assert.Empty(t, g.Roll(nil, Context{}, src))
	assert.Equal(t, 1, src.Consumed())
}

func TestRoll_TierAndRates(t *testing.T) {
	table := []model.LootEntry{{BaseItem: "sword", DropChance: 0.5, Weights: model.RarityWeights{Common: 1}}}

	t.Run("boss doubles chance", func(t *testing.T) {
		g := newGenerator(testCatalog())
		for seed := range uint64(50) {
			items := g.Roll(table, Context{Level: 1, Tier: model.TierBoss}, rng.New(seed))
			assert.Len(t, items, 1, "seed %d", seed)
		}
	})

	t.Run("zero drop rate", func(t *testing.T) {
		rates := config.DefaultRates()
		rates.DropChanceMultiplier = 0
		g := NewGenerator(testCatalog(), ids.NewSequence("test"), &rates)
		for seed := range uint64(50) {
			items := g.Roll(table, Context{Level: 1, Tier: model.TierBoss}, rng.New(seed))
			assert.Empty(t, items, "seed %d", seed)
		}
	})
}

func TestRollRarity(t *testing.T) {
	w := model.RarityWeights{Common: 1, Rare: 1}

	r, ok := RollRarity(w, rng.Script(0.25))
	require.True(t, ok)
	assert.Equal(t, model.RarityCommon, r)

	r, ok = RollRarity(w, rng.Script(0.75))
	require.True(t, ok)
	assert.Equal(t, model.RarityRare, r)

	_, ok = RollRarity(model.RarityWeights{}, rng.Script(0.1))
	assert.False(t, ok)
}

func TestBuild_AffixesByRarity(t *testing.T) {
	c := testCatalog()
	g := newGenerator(c)
	sword := c.BaseItems["sword"]

	t.Run("magic rolls one prefix", func(t *testing.T) {
		src := &rng.Scripted{Ints: []int{0, 0}, Fallback: 0.5}
		it := g.Build(sword, model.RarityMagic, 4, src)

		require.NotNil(t, it.Prefix)
		assert.Nil(t, it.Suffix)
		assert.Equal(t, "Sharp", it.Prefix.Name)
		// 4 × 1.5 = 6
		assert.Equal(t, 6.0, it.Prefix.Modifiers[0].Value)
		// 10 × 1.5 = 15
		assert.Equal(t, 15.0, it.Base.Modifiers[0].Value)
		assert.Equal(t, "Sharp Sword", it.DisplayName())
	})

	t.Run("magic falls back to the other position", func(t *testing.T) {
		ring := c.BaseItems["ring"]
		noPrefixes := testCatalog()
		noPrefixes.Affixes.Prefixes = nil
		src := &rng.Scripted{Ints: []int{0, 0}, Fallback: 0.5}

		it := newGenerator(noPrefixes).Build(ring, model.RarityMagic, 1, src)
		assert.Nil(t, it.Prefix)
		require.NotNil(t, it.Suffix)
		assert.Equal(t, "of Power", it.Suffix.Name)
	})

	t.Run("rare rolls both", func(t *testing.T) {
		it := g.Build(sword, model.RarityRare, 4, rng.New(3))
		assert.Equal(t, 2, it.AffixCount())
		// 3 × 2 = 6
		assert.Equal(t, 6.0, it.Suffix.Modifiers[0].Value)
	})

	t.Run("legendary takes top tier only", func(t *testing.T) {
		for seed := range uint64(20) {
			it := g.Build(sword, model.RarityLegendary, 10, rng.New(seed))
			require.NotNil(t, it.Prefix)
			assert.Equal(t, "Devastating", it.Prefix.Name)
			assert.Equal(t, 36.0, it.Prefix.Modifiers[0].Value)
		}
	})

	t.Run("catalog untouched", func(t *testing.T) {
		assert.Equal(t, 10.0, c.BaseItems["sword"].Modifiers[0].Value)
		assert.Equal(t, 4.0, c.Affixes.Prefixes[0].Modifiers[0].Value)
	})
}

type outcome struct {
	base   model.BaseItemID
	rarity model.Rarity
	prefix string
	suffix string
}

func outcomes(items []model.Item) map[model.BaseItemID]outcome {
	out := make(map[model.BaseItemID]outcome, len(items))
	for _, it := range items {
		o := outcome{base: it.Base.ID, rarity: it.Rarity}
		if it.Prefix != nil {
			o.prefix = it.Prefix.Name
		}
		if it.Suffix != nil {
			o.suffix = it.Suffix.Name
		}
		out[it.Base.ID] = o
	}
	return out
}

// Removing one entry from a table never changes what the other entries roll.
func TestRoll_EntryIndependence(t *testing.T) {
	bases := []model.BaseItemID{"sword", "ring", "helm", "boots"}

	rapid.Check(t, func(t *rapid.T) {
		var table []model.LootEntry
		for _, id := range bases {
			if !rapid.Bool().Draw(t, fmt.Sprintf("include_%s", id)) {
				continue
			}
			table = append(table, model.LootEntry{
				BaseItem:   id,
				DropChance: rapid.Float64Range(0, 1).Draw(t, "chance"),
				Weights: model.RarityWeights{
					Common:    rapid.Float64Range(0, 5).Draw(t, "common"),
					Magic:     rapid.Float64Range(0, 5).Draw(t, "magic"),
					Rare:      rapid.Float64Range(0, 5).Draw(t, "rare"),
					Legendary: rapid.Float64Range(0, 5).Draw(t, "legendary"),
				},
			})
		}
		if len(table) == 0 {
			return
		}
		removed := rapid.IntRange(0, len(table)-1).Draw(t, "removed")
		seed := rapid.Uint64().Draw(t, "seed")
		tier := model.Tier(rapid.IntRange(0, 4).Draw(t, "tier"))

		g := newGenerator(testCatalog())
		full := outcomes(g.Roll(table, Context{Level: 5, Tier: tier}, rng.New(seed)))

		reduced := append(append([]model.LootEntry(nil), table[:removed]...), table[removed+1:]...)
		partial := outcomes(g.Roll(reduced, Context{Level: 5, Tier: tier}, rng.New(seed)))

		delete(full, table[removed].BaseItem)
		if len(full) != len(partial) {
			t.Fatalf("outcomes differ: full=%v partial=%v", full, partial)
		}
		for id, o := range full {
			if partial[id] != o {
				t.Fatalf("entry %s changed: %v != %v", id, o, partial[id])
			}
		}
	})
}
