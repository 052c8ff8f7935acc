package model

// Tier is the monster rank. It scales loot, gold and experience through the
// catalog's tier rules.
type Tier uint8

const (
	TierCommon Tier = iota
	TierElite
	TierRare
	TierBoss
	TierLegendary
)

var tierNames = []string{"Common", "Elite", "Rare", "Boss", "Legendary"}

func (t Tier) String() string { return enumName(tierNames, int(t)) }

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := parseEnum[Tier]("tier", tierNames, string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RarityWeights is a relative weight per rarity. Weights need not sum to 1.
type RarityWeights struct {
	Common    float64 `yaml:"common" json:"common"`
	Magic     float64 `yaml:"magic" json:"magic"`
	Rare      float64 `yaml:"rare" json:"rare"`
	Legendary float64 `yaml:"legendary" json:"legendary"`
}

// Get returns the weight for rarity r.
func (w RarityWeights) Get(r Rarity) float64 {
	switch r {
	case RarityCommon:
		return w.Common
	case RarityMagic:
		return w.Magic
	case RarityRare:
		return w.Rare
	case RarityLegendary:
		return w.Legendary
	default:
		return 0
	}
}

// Plus returns the per-rarity sum of w and o.
func (w RarityWeights) Plus(o RarityWeights) RarityWeights {
	return RarityWeights{
		Common:    w.Common + o.Common,
		Magic:     w.Magic + o.Magic,
		Rare:      w.Rare + o.Rare,
		Legendary: w.Legendary + o.Legendary,
	}
}

// LootEntry is one independent line of a loot table.
type LootEntry struct {
	BaseItem   BaseItemID    `yaml:"base_item" json:"base_item"`
	DropChance float64       `yaml:"drop_chance" json:"drop_chance"`
	Weights    RarityWeights `yaml:"rarity_weights" json:"rarity_weights"`
}

// LevelRange bounds the player levels a template spawns for.
type LevelRange struct {
	Min Level `yaml:"min" json:"min"`
	Max Level `yaml:"max" json:"max"`
}

// Contains reports whether level is inside the range widened by slack
// on the upper side.
func (r LevelRange) Contains(level Level, slack Level) bool {
	return level >= r.Min && level <= r.Max+slack
}

// MonsterTemplate is static monster content.
type MonsterTemplate struct {
	ID         MonsterTemplateID `yaml:"id" json:"id"`
	Name       string            `yaml:"name" json:"name"`
	Tier       Tier              `yaml:"tier" json:"tier"`
	Levels     LevelRange        `yaml:"levels" json:"levels"`
	Base       BaseStats         `yaml:"base" json:"base"`
	PerLevel   BaseStats         `yaml:"per_level" json:"per_level"`
	BaseExp    Experience        `yaml:"base_exp" json:"base_exp"`
	ExpPerLvl  Experience        `yaml:"exp_per_level" json:"exp_per_level"`
	BaseGold   Gold              `yaml:"base_gold" json:"base_gold"`
	GoldPerLvl Gold              `yaml:"gold_per_level" json:"gold_per_level"`
	LootTable  []LootEntry       `yaml:"loot" json:"loot"`
}

// ExperienceAt returns the base experience reward at level.
func (t MonsterTemplate) ExperienceAt(level Level) Experience {
	return t.BaseExp + t.ExpPerLvl*Experience(max(level-1, 0))
}

// GoldAt returns the base gold reward at level.
func (t MonsterTemplate) GoldAt(level Level) Gold {
	return t.BaseGold + t.GoldPerLvl*Gold(max(level-1, 0))
}

// StatsAt returns the template base stats grown to level.
func (t MonsterTemplate) StatsAt(level Level) BaseStats {
	s := t.Base
	for l := Level(1); l < level; l++ {
		s = s.Plus(t.PerLevel)
	}
	return s
}

// Monster is one encounter instance. Buffs are scoped to the encounter and
// discarded with the monster. Experience and Gold are the base rewards
// before variance and rate multipliers.
type Monster struct {
	ID            MonsterID         `json:"id"`
	Template      MonsterTemplateID `json:"template"`
	Name          string            `json:"name"`
	Tier          Tier              `json:"tier"`
	Level         Level             `json:"level"`
	CurrentHealth Health            `json:"current_health"`
	Base          BaseStats         `json:"base"`
	Stats         CharacterStats    `json:"stats"`
	LootTable     []LootEntry       `json:"loot"`
	Experience    Experience        `json:"experience"`
	Gold          Gold              `json:"gold"`
	Buffs         []Buff            `json:"buffs"`
	Turns         int32             `json:"turns"`
}

// Clone returns a deep copy of m.
func (m *Monster) Clone() *Monster {
	if m == nil {
		return nil
	}
	c := *m
	c.LootTable = append([]LootEntry(nil), m.LootTable...)
	c.Buffs = CloneBuffs(m.Buffs)
	return &c
}

// IsDefeated reports whether health reached zero.
func (m *Monster) IsDefeated() bool { return m.CurrentHealth <= 0 }

// TakeDamage lowers health by d, never below zero. Returns the new health.
func (m *Monster) TakeDamage(d Damage) Health {
	m.CurrentHealth = lower(m.CurrentHealth, Health(d))
	return m.CurrentHealth
}

// Heal raises health by amount up to the resolved maximum.
func (m *Monster) Heal(amount Health) Health {
	before := m.CurrentHealth
	m.CurrentHealth = raise(m.CurrentHealth, amount, m.Stats.MaxHealth)
	return m.CurrentHealth - before
}
