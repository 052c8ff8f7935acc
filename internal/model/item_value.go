package model

import "math"

// Sell price inputs.
var (
	typeBaseValue = map[ItemType]float64{
		ItemWeapon:    50,
		ItemArmor:     40,
		ItemAccessory: 30,
	}
	rarityValueMultiplier = map[Rarity]float64{
		RarityCommon:    1,
		RarityMagic:     2.5,
		RarityRare:      5,
		RarityLegendary: 10,
	}
)

const (
	valuePerLevel    = 10
	valuePerModifier = 15
	sellRatio        = 0.5
)

// SellValue returns the gold a merchant pays for the item:
//
//	floor(((type_base + level×10) × rarity_multiplier + 15 × modifiers) × 0.5)
//
// Modifiers count those of the base item and both affixes.
func (it *Item) SellValue() Gold {
	v := typeBaseValue[it.Base.Type] + float64(it.Level)*valuePerLevel
	v *= rarityValueMultiplier[it.Rarity]
	v += float64(len(it.Modifiers())) * valuePerModifier
	return Gold(math.Floor(v * sellRatio))
}
