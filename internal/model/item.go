package model

import "strings"

// ItemType is the broad category of a base item.
type ItemType uint8

const (
	ItemWeapon ItemType = iota
	ItemArmor
	ItemAccessory
)

var itemTypeNames = []string{"Weapon", "Armor", "Accessory"}

func (t ItemType) String() string { return enumName(itemTypeNames, int(t)) }

func (t ItemType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ItemType) UnmarshalText(b []byte) error {
	v, err := parseEnum[ItemType]("item type", itemTypeNames, string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// EquipmentSlot is a paperdoll position. Slots are enumerated in
// declaration order wherever equipment is aggregated.
type EquipmentSlot uint8

const (
	SlotMainHand EquipmentSlot = iota
	SlotOffHand
	SlotHelm
	SlotArmor
	SlotGloves
	SlotBoots
	SlotBelt
	SlotRing1
	SlotRing2
	SlotAmulet
)

var slotNames = []string{
	"MainHand", "OffHand", "Helm", "Armor", "Gloves",
	"Boots", "Belt", "Ring1", "Ring2", "Amulet",
}

// AllSlots lists equipment slots in enumeration order.
func AllSlots() []EquipmentSlot {
	slots := make([]EquipmentSlot, len(slotNames))
	for i := range slotNames {
		slots[i] = EquipmentSlot(i)
	}
	return slots
}

func (s EquipmentSlot) String() string { return enumName(slotNames, int(s)) }

func (s EquipmentSlot) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *EquipmentSlot) UnmarshalText(b []byte) error {
	v, err := parseEnum[EquipmentSlot]("equipment slot", slotNames, string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Rarity decides how many affix slots a dropped item may fill.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityMagic
	RarityRare
	RarityLegendary
)

var rarityNames = []string{"Common", "Magic", "Rare", "Legendary"}

// AllRarities lists rarities from weakest to strongest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityMagic, RarityRare, RarityLegendary}
}

func (r Rarity) String() string { return enumName(rarityNames, int(r)) }

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(b []byte) error {
	v, err := parseEnum[Rarity]("rarity", rarityNames, string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// AffixPosition tells whether an affix fills the prefix or suffix slot.
type AffixPosition uint8

const (
	AffixPrefix AffixPosition = iota
	AffixSuffix
)

var affixPositionNames = []string{"Prefix", "Suffix"}

func (p AffixPosition) String() string { return enumName(affixPositionNames, int(p)) }

func (p AffixPosition) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *AffixPosition) UnmarshalText(b []byte) error {
	v, err := parseEnum[AffixPosition]("affix position", affixPositionNames, string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Affix is a named bundle of modifiers attached to an item.
// Tier orders affixes by strength; higher is stronger.
type Affix struct {
	Name      string        `yaml:"name" json:"name"`
	Position  AffixPosition `yaml:"position" json:"position"`
	Tier      int32         `yaml:"tier" json:"tier"`
	Modifiers []Modifier    `yaml:"modifiers" json:"modifiers"`
	// Types restricts the item types the affix can roll on; empty means any.
	Types []ItemType `yaml:"types,omitempty" json:"types,omitempty"`
}

// Fits reports whether the affix may roll on an item of type t.
func (a *Affix) Fits(t ItemType) bool {
	if len(a.Types) == 0 {
		return true
	}
	for _, it := range a.Types {
		if it == t {
			return true
		}
	}
	return false
}

// WeaponScaling is the attribute contribution factor of a weapon's basic attack.
type WeaponScaling struct {
	Strength     float64 `yaml:"strength,omitempty" json:"strength,omitempty"`
	Intelligence float64 `yaml:"intelligence,omitempty" json:"intelligence,omitempty"`
	Dexterity    float64 `yaml:"dexterity,omitempty" json:"dexterity,omitempty"`
}

// ScalingStat returns the attribute sum weighted by the scaling factors.
func (w WeaponScaling) ScalingStat(a Attributes) float64 {
	return float64(a.Strength)*w.Strength +
		float64(a.Intelligence)*w.Intelligence +
		float64(a.Dexterity)*w.Dexterity
}

// TagTwoHanded marks a weapon that also takes the off hand.
const TagTwoHanded = "TwoHanded"

// BaseItem is the content template an Item is rolled from.
type BaseItem struct {
	ID              BaseItemID      `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Type            ItemType        `yaml:"type" json:"type"`
	Tags            []string        `yaml:"tags,omitempty" json:"tags,omitempty"`
	Slots           []EquipmentSlot `yaml:"slots" json:"slots"`
	RequiredLevel   Level           `yaml:"required_level,omitempty" json:"required_level,omitempty"`
	RequiredClasses []string        `yaml:"required_classes,omitempty" json:"required_classes,omitempty"`
	Modifiers       []Modifier      `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Element         Element         `yaml:"element,omitempty" json:"element,omitempty"`
	Scaling         *WeaponScaling  `yaml:"scaling,omitempty" json:"scaling,omitempty"`
	GrantedSkills   []SkillID       `yaml:"granted_skills,omitempty" json:"granted_skills,omitempty"`
}

// FitsSlot reports whether the base item may be equipped in slot.
func (b *BaseItem) FitsSlot(slot EquipmentSlot) bool {
	for _, s := range b.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// HasTag reports whether the base item carries tag, ignoring case.
func (b *BaseItem) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsTwoHanded reports whether the item occupies both hands.
func (b *BaseItem) IsTwoHanded() bool { return b.HasTag(TagTwoHanded) }

// AllowsClass reports whether class may equip the item.
// An empty requirement list allows every class.
func (b *BaseItem) AllowsClass(class string) bool {
	if len(b.RequiredClasses) == 0 {
		return true
	}
	for _, c := range b.RequiredClasses {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// Item is a concrete rolled item.
type Item struct {
	ID     ItemID   `json:"id"`
	Base   BaseItem `json:"base"`
	Rarity Rarity   `json:"rarity"`
	Prefix *Affix   `json:"prefix,omitempty"`
	Suffix *Affix   `json:"suffix,omitempty"`
	Level  Level    `json:"level"`
}

// Modifiers returns base, prefix and suffix modifiers in that order.
func (it *Item) Modifiers() []Modifier {
	mods := make([]Modifier, 0, len(it.Base.Modifiers)+4)
	mods = append(mods, it.Base.Modifiers...)
	if it.Prefix != nil {
		mods = append(mods, it.Prefix.Modifiers...)
	}
	if it.Suffix != nil {
		mods = append(mods, it.Suffix.Modifiers...)
	}
	return mods
}

// DisplayName joins prefix, base name and suffix.
func (it *Item) DisplayName() string {
	parts := make([]string, 0, 3)
	if it.Prefix != nil {
		parts = append(parts, it.Prefix.Name)
	}
	parts = append(parts, it.Base.Name)
	if it.Suffix != nil {
		parts = append(parts, it.Suffix.Name)
	}
	return strings.Join(parts, " ")
}

// AffixCount returns how many affix slots are filled.
func (it *Item) AffixCount() int {
	n := 0
	if it.Prefix != nil {
		n++
	}
	if it.Suffix != nil {
		n++
	}
	return n
}

// Equipment maps each slot to at most one item.
type Equipment map[EquipmentSlot]Item

// Clone returns an independent copy of the equipment map.
func (e Equipment) Clone() Equipment {
	out := make(Equipment, len(e))
	for slot, it := range e {
		out[slot] = it
	}
	return out
}

// Weapon returns the main-hand item, if any.
func (e Equipment) Weapon() (Item, bool) {
	it, ok := e[SlotMainHand]
	return it, ok
}
