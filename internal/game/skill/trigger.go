package skill

import "github.com/udisondev/wavecrawl/internal/model"

// Event is the battle moment a skill is being considered for.
type Event uint8

const (
	// EventAction is the player picking the skill as the turn action.
	EventAction Event = iota
	EventTurnStart
	EventCritical
	EventKill
	EventBattleStart
	EventBattleEnd
)

var eventNames = []string{"Action", "TurnStart", "Critical", "Kill", "BattleStart", "BattleEnd"}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "Unknown"
}

// Context is the battle state trigger conditions are evaluated against.
type Context struct {
	Event Event
	// HealthRatio is the player's current/max health.
	HealthRatio float64
	ManaRatio   float64
	// EnemyHealthRatio is meaningful only when Enemy is set.
	EnemyHealthRatio float64
	Enemy            bool
	// Due holds the EveryNTurns skills whose timer fired this turn.
	Due map[model.SkillID]bool
}

// steady reports whether the event is a regular per-turn check, as opposed
// to a reaction to something that just happened.
func (e Event) steady() bool {
	return e == EventAction || e == EventTurnStart
}

// Satisfied reports whether condition c holds for skill id in ctx.
func Satisfied(c model.TriggerCondition, id model.SkillID, ctx Context) bool {
	switch c.Kind {
	case model.TriggerAlways:
		return ctx.Event.steady()
	case model.TriggerOnCritical:
		return ctx.Event == EventCritical
	case model.TriggerOnKill:
		return ctx.Event == EventKill
	case model.TriggerOnLowHealth:
		return ctx.Event.steady() && ctx.HealthRatio <= c.Threshold
	case model.TriggerOnHighHealth:
		return ctx.Event.steady() && ctx.HealthRatio >= c.Threshold
	case model.TriggerEveryNTurns:
		return ctx.Event.steady() && ctx.Due[id]
	case model.TriggerOnBattleStart:
		return ctx.Event == EventBattleStart
	case model.TriggerOnBattleEnd:
		return ctx.Event == EventBattleEnd
	case model.TriggerManaAbove:
		return ctx.Event.steady() && ctx.ManaRatio >= c.Threshold
	case model.TriggerEnemyHealthBelow:
		return ctx.Event.steady() && ctx.Enemy && ctx.EnemyHealthRatio < c.Threshold
	default:
		return false
	}
}

// Triggered reports whether any of the skill's conditions holds.
// A skill without conditions behaves as Always.
func Triggered(s *model.Skill, ctx Context) bool {
	if len(s.Triggers) == 0 {
		return ctx.Event.steady()
	}
	for _, c := range s.Triggers {
		if Satisfied(c, s.ID, ctx) {
			return true
		}
	}
	return false
}

// HealthRatio returns current/max, 0 when max is not positive.
func HealthRatio(current, maxHealth model.Health) float64 {
	return ratio(float64(current), float64(maxHealth))
}

// ManaRatio returns current/max, 0 when max is not positive.
func ManaRatio(current, maxMana model.Mana) float64 {
	return ratio(float64(current), float64(maxMana))
}

func ratio(current, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return current / limit
}
