package model

// ClassTemplate is the starting point and growth curve of a playable class.
type ClassTemplate struct {
	Name              string       `yaml:"name" json:"name"`
	Description       string       `yaml:"description,omitempty" json:"description,omitempty"`
	BaseAttributes    Attributes   `yaml:"attributes" json:"attributes"`
	BaseStats         BaseStats    `yaml:"stats" json:"stats"`
	AttributeGrowth   Attributes   `yaml:"attribute_growth" json:"attribute_growth"`
	StatGrowth        BaseStats    `yaml:"stat_growth" json:"stat_growth"`
	StartingSkills    []SkillID    `yaml:"skills" json:"skills"`
	StartingEquipment []BaseItemID `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	StartingGold      Gold         `yaml:"gold" json:"gold"`
	// SlotRules limit which item tags the class may wear per slot. No
	// rules means every slot takes any item that fits it.
	SlotRules []SlotRule `yaml:"slot_rules,omitempty" json:"slot_rules,omitempty"`
}

// SlotRule lists the tags accepted in one slot. An item needs at least
// one of them.
type SlotRule struct {
	Slot EquipmentSlot `yaml:"slot" json:"slot"`
	Tags []string      `yaml:"tags" json:"tags"`
}

// CanWear reports whether the class rules allow base in slot. Slots the
// rules do not name are closed once any rule exists.
func (c *ClassTemplate) CanWear(base *BaseItem, slot EquipmentSlot) bool {
	if len(c.SlotRules) == 0 {
		return true
	}
	for _, r := range c.SlotRules {
		if r.Slot != slot {
			continue
		}
		for _, tag := range r.Tags {
			if base.HasTag(tag) {
				return true
			}
		}
		return false
	}
	return false
}

// LevelTable holds the cumulative experience needed to reach each level.
// Thresholds[0] belongs to level 1 and must be 0.
type LevelTable struct {
	Thresholds []Experience `yaml:"thresholds" json:"thresholds"`
}

// MaxLevel returns the highest reachable level.
func (t LevelTable) MaxLevel() Level {
	if len(t.Thresholds) == 0 {
		return 1
	}
	return Level(len(t.Thresholds))
}

// ExpForLevel returns cumulative experience required to reach level.
// Returns 0 for level <= 1 and the last threshold past the cap.
func (t LevelTable) ExpForLevel(level Level) Experience {
	if level <= 1 || len(t.Thresholds) == 0 {
		return 0
	}
	if level > t.MaxLevel() {
		level = t.MaxLevel()
	}
	return t.Thresholds[level-1]
}

// LevelFor returns the level matching cumulative exp.
// Scans upward from start to find the highest level whose threshold is <= exp.
func (t LevelTable) LevelFor(exp Experience, start Level) Level {
	if start < 1 {
		start = 1
	}
	level := start
	for level < t.MaxLevel() {
		if t.Thresholds[level] > exp {
			break
		}
		level++
	}
	return level
}

// LevelUpPolicy decides what a level-up restores.
type LevelUpPolicy struct {
	RestoreHealth bool `yaml:"restore_health" json:"restore_health"`
	RestoreMana   bool `yaml:"restore_mana" json:"restore_mana"`
}

// RarityRule is how many affixes a rarity rolls and how strong they are.
type RarityRule struct {
	AffixCount  int     `yaml:"affixes" json:"affixes"`
	TopTierOnly bool    `yaml:"top_tier_only,omitempty" json:"top_tier_only,omitempty"`
	Multiplier  float64 `yaml:"multiplier" json:"multiplier"`
}

// TierRule scales rewards of monsters of one tier.
type TierRule struct {
	DropMultiplier float64       `yaml:"drop_multiplier" json:"drop_multiplier"`
	RarityBonus    RarityWeights `yaml:"rarity_bonus" json:"rarity_bonus"`
	GoldMultiplier float64       `yaml:"gold_multiplier" json:"gold_multiplier"`
	ExpMultiplier  float64       `yaml:"exp_multiplier" json:"exp_multiplier"`
}

// NeutralTierRule leaves drops and rewards untouched.
func NeutralTierRule() TierRule {
	return TierRule{DropMultiplier: 1, GoldMultiplier: 1, ExpMultiplier: 1}
}

// AffixPool is the content pool affixes are rolled from.
type AffixPool struct {
	Prefixes []Affix `yaml:"prefixes" json:"prefixes"`
	Suffixes []Affix `yaml:"suffixes" json:"suffixes"`
}

// Candidates returns the affixes at position that fit item type t.
// With topTierOnly only the strongest fitting tier is returned.
func (p AffixPool) Candidates(pos AffixPosition, t ItemType, topTierOnly bool) []Affix {
	src := p.Prefixes
	if pos == AffixSuffix {
		src = p.Suffixes
	}
	var out []Affix
	var top int32
	for i := range src {
		a := src[i]
		if !a.Fits(t) {
			continue
		}
		if topTierOnly {
			switch {
			case len(out) == 0 || a.Tier > top:
				top = a.Tier
				out = append(out[:0], a)
			case a.Tier == top:
				out = append(out, a)
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// SpawnRules control monster selection per wave.
type SpawnRules struct {
	// LevelSlack widens a template's max level when matching the player.
	LevelSlack Level `yaml:"level_slack" json:"level_slack"`
	// LevelJitter is the +/- range of the spawned level around the player's.
	LevelJitter Level `yaml:"level_jitter" json:"level_jitter"`
	// BossEvery makes every n-th wave spawn a Boss tier template, 0 disables.
	BossEvery int32 `yaml:"boss_every" json:"boss_every"`
}

// Catalog is the read-only content an engine runs on. The engine never
// mutates it and holds no other content.
type Catalog struct {
	Classes   map[string]ClassTemplate
	BaseItems map[BaseItemID]BaseItem
	Skills    map[SkillID]Skill
	Monsters  []MonsterTemplate
	Affixes   AffixPool
	Rarities  map[Rarity]RarityRule
	Tiers     map[Tier]TierRule
	Levels    LevelTable
	LevelUp   LevelUpPolicy
	Spawn     SpawnRules
}

// BaseItem looks up a base item.
func (c *Catalog) BaseItem(id BaseItemID) (BaseItem, bool) {
	b, ok := c.BaseItems[id]
	return b, ok
}

// Skill looks up a skill.
func (c *Catalog) Skill(id SkillID) (Skill, bool) {
	s, ok := c.Skills[id]
	return s, ok
}

// Class looks up a class template by name.
func (c *Catalog) Class(name string) (ClassTemplate, bool) {
	t, ok := c.Classes[name]
	return t, ok
}

// Monster looks up a monster template.
func (c *Catalog) Monster(id MonsterTemplateID) (MonsterTemplate, bool) {
	for _, t := range c.Monsters {
		if t.ID == id {
			return t, true
		}
	}
	return MonsterTemplate{}, false
}

// RarityRule returns the rule for r. Missing rules roll no affixes.
func (c *Catalog) RarityRule(r Rarity) RarityRule {
	if rule, ok := c.Rarities[r]; ok {
		return rule
	}
	return RarityRule{Multiplier: 1}
}

// TierRule returns the rule for t, neutral when absent.
func (c *Catalog) TierRule(t Tier) TierRule {
	if rule, ok := c.Tiers[t]; ok {
		return rule
	}
	return NeutralTierRule()
}
