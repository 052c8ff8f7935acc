package model

// EventKind identifies what a BattleEvent records.
type EventKind uint8

const (
	EventMonsterSpawned EventKind = iota
	EventPlayerAttack
	EventPlayerHeal
	EventSkillUsed
	EventSkillDamage
	EventSkillHeal
	EventBuffApplied
	EventDebuffApplied
	EventSummoned
	EventAllyAttack
	EventMonsterAttack
	EventMonsterDefeated
	EventItemDropped
	EventGoldDropped
	EventExperienceGained
	EventPlayerLevelUp
	EventPlayerDefeated
	EventManaRegenerated
	EventNotEnoughMana
	EventActionFallback
)

var eventKindNames = []string{
	"MonsterSpawned",
	"PlayerAttack",
	"PlayerHeal",
	"SkillUsed",
	"SkillDamage",
	"SkillHeal",
	"BuffApplied",
	"DebuffApplied",
	"Summoned",
	"AllyAttack",
	"MonsterAttack",
	"MonsterDefeated",
	"ItemDropped",
	"GoldDropped",
	"ExperienceGained",
	"PlayerLevelUp",
	"PlayerDefeated",
	"ManaRegenerated",
	"NotEnoughMana",
	"ActionFallback",
}

func (k EventKind) String() string { return enumName(eventKindNames, int(k)) }

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(b []byte) error {
	v, err := parseEnum[EventKind]("event kind", eventKindNames, string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// BattleEvent is one entry of the ordered turn log. Only the fields that
// belong to Kind are set.
type BattleEvent struct {
	Kind       EventKind     `json:"kind"`
	Monster    string        `json:"monster,omitempty"`
	Ally       string        `json:"ally,omitempty"`
	Skill      SkillID       `json:"skill,omitempty"`
	Damage     Damage        `json:"damage,omitempty"`
	Critical   bool          `json:"critical,omitempty"`
	Element    Element       `json:"element,omitempty"`
	Health     Health        `json:"health,omitempty"`
	Mana       Mana          `json:"mana,omitempty"`
	Buff       *Buff         `json:"buff,omitempty"`
	Item       *Item         `json:"item,omitempty"`
	Summon     *SummonEffect `json:"summon,omitempty"`
	Gold       Gold          `json:"gold,omitempty"`
	Experience Experience    `json:"experience,omitempty"`
	Level      Level         `json:"level,omitempty"`
	Reason     string        `json:"reason,omitempty"`
}

// Kinds returns the kinds of events in order. Handy for assertions and logs.
func Kinds(events []BattleEvent) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// FindEvent returns the first event of kind k.
func FindEvent(events []BattleEvent, k EventKind) (BattleEvent, bool) {
	for _, e := range events {
		if e.Kind == k {
			return e, true
		}
	}
	return BattleEvent{}, false
}
