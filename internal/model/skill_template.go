package model

import "fmt"

// SkillKind decides how a skill enters play.
type SkillKind uint8

const (
	// SkillActive is used only when the player picks it as the turn action.
	SkillActive SkillKind = iota
	// SkillPassive never activates; its buff effects are permanent stat modifiers.
	SkillPassive
	// SkillAura is resolved automatically whenever one of its triggers fires.
	SkillAura
)

var skillKindNames = []string{"Active", "Passive", "Aura"}

func (k SkillKind) String() string { return enumName(skillKindNames, int(k)) }

func (k SkillKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *SkillKind) UnmarshalText(b []byte) error {
	v, err := parseEnum[SkillKind]("skill kind", skillKindNames, string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// TargetType is who a skill is aimed at.
type TargetType uint8

const (
	TargetSelf TargetType = iota
	TargetEnemy
	TargetAllEnemies
)

var targetTypeNames = []string{"Self", "Enemy", "AllEnemies"}

func (t TargetType) String() string { return enumName(targetTypeNames, int(t)) }

func (t TargetType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TargetType) UnmarshalText(b []byte) error {
	v, err := parseEnum[TargetType]("target type", targetTypeNames, string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsHostile reports whether the target type aims at enemies.
func (t TargetType) IsHostile() bool { return t == TargetEnemy || t == TargetAllEnemies }

// EffectKind tags the payload of a SkillEffect.
type EffectKind uint8

const (
	EffectDamage EffectKind = iota
	EffectHeal
	EffectBuff
	EffectDebuff
	EffectSummon
)

var effectKindNames = []string{"Damage", "Heal", "Buff", "Debuff", "Summon"}

func (k EffectKind) String() string { return enumName(effectKindNames, int(k)) }

func (k EffectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EffectKind) UnmarshalText(b []byte) error {
	v, err := parseEnum[EffectKind]("effect kind", effectKindNames, string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// DamageEffect deals Base + scaling_stat * Scaling damage of Element.
type DamageEffect struct {
	BaseDamage Damage  `yaml:"base_damage" json:"base_damage"`
	Scaling    float64 `yaml:"scaling" json:"scaling"`
	Element    Element `yaml:"element" json:"element"`
}

// HealEffect restores Base + skill_scaling_stat * Scaling health.
type HealEffect struct {
	BaseHeal Health  `yaml:"base_heal" json:"base_heal"`
	Scaling  float64 `yaml:"scaling" json:"scaling"`
}

// BuffEffect applies Buff for Duration turns. With Replace set, an active
// entry with the same buff id is removed first instead of stacking.
type BuffEffect struct {
	Buff     BuffTemplate `yaml:"buff" json:"buff"`
	Duration int32        `yaml:"duration" json:"duration"`
	Replace  bool         `yaml:"replace,omitempty" json:"replace,omitempty"`
}

// SummonEffect calls an ally built from a monster template for Duration turns.
type SummonEffect struct {
	Template MonsterTemplateID `yaml:"template" json:"template"`
	Duration int32             `yaml:"duration" json:"duration"`
}

// SkillEffect is a tagged union: exactly the payload matching Kind is set.
// EffectBuff and EffectDebuff share the Buff payload.
type SkillEffect struct {
	Kind   EffectKind    `yaml:"kind" json:"kind"`
	Damage *DamageEffect `yaml:"damage,omitempty" json:"damage,omitempty"`
	Heal   *HealEffect   `yaml:"heal,omitempty" json:"heal,omitempty"`
	Buff   *BuffEffect   `yaml:"buff,omitempty" json:"buff,omitempty"`
	Summon *SummonEffect `yaml:"summon,omitempty" json:"summon,omitempty"`
}

// Validate checks that the payload required by Kind is present.
func (e SkillEffect) Validate() error {
	var ok bool
	switch e.Kind {
	case EffectDamage:
		ok = e.Damage != nil
	case EffectHeal:
		ok = e.Heal != nil
	case EffectBuff, EffectDebuff:
		ok = e.Buff != nil && e.Buff.Duration > 0
	case EffectSummon:
		ok = e.Summon != nil && e.Summon.Duration > 0
	default:
		return fmt.Errorf("unknown effect kind %d", e.Kind)
	}
	if !ok {
		return fmt.Errorf("%s effect: missing or invalid payload", e.Kind)
	}
	return nil
}

// TriggerKind is the closed set of skill trigger predicates.
type TriggerKind uint8

const (
	TriggerAlways TriggerKind = iota
	TriggerOnCritical
	TriggerOnKill
	TriggerOnLowHealth
	TriggerOnHighHealth
	TriggerEveryNTurns
	TriggerOnBattleStart
	TriggerOnBattleEnd
	TriggerManaAbove
	TriggerEnemyHealthBelow
)

var triggerKindNames = []string{
	"Always", "OnCritical", "OnKill", "OnLowHealth",
	"OnHighHealth", "EveryNTurns", "OnBattleStart", "OnBattleEnd",
	"ManaAbove", "EnemyHealthBelow",
}

func (k TriggerKind) String() string { return enumName(triggerKindNames, int(k)) }

func (k TriggerKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *TriggerKind) UnmarshalText(b []byte) error {
	v, err := parseEnum[TriggerKind]("trigger kind", triggerKindNames, string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// TriggerCondition gates skill activation. Threshold is a ratio: player
// health for OnLowHealth/OnHighHealth, player mana for ManaAbove and
// monster health for EnemyHealthBelow. Interval is the period of EveryNTurns.
type TriggerCondition struct {
	Kind      TriggerKind `yaml:"kind" json:"kind"`
	Threshold float64     `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Interval  int32       `yaml:"interval,omitempty" json:"interval,omitempty"`
}

// Skill is an immutable skill template.
// Triggers use OR semantics; Effects apply in declaration order.
type Skill struct {
	ID            SkillID            `yaml:"id" json:"id"`
	Name          string             `yaml:"name" json:"name"`
	Description   string             `yaml:"description,omitempty" json:"description,omitempty"`
	Kind          SkillKind          `yaml:"kind" json:"kind"`
	Priority      int32              `yaml:"priority,omitempty" json:"priority,omitempty"`
	ManaCost      Mana               `yaml:"mana_cost" json:"mana_cost"`
	Cooldown      int32              `yaml:"cooldown" json:"cooldown"`
	Target        TargetType         `yaml:"target" json:"target"`
	Effects       []SkillEffect      `yaml:"effects" json:"effects"`
	Triggers      []TriggerCondition `yaml:"triggers,omitempty" json:"triggers,omitempty"`
	RequiredLevel Level              `yaml:"required_level,omitempty" json:"required_level,omitempty"`
}

// TurnInterval returns the EveryNTurns period of the skill, if it has one.
func (s *Skill) TurnInterval() (int32, bool) {
	for _, c := range s.Triggers {
		if c.Kind == TriggerEveryNTurns && c.Interval > 0 {
			return c.Interval, true
		}
	}
	return 0, false
}
