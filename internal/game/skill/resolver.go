// Package skill resolves skill activation: gating, ordered effect
// application, cooldowns and EveryNTurns timers.
package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/wavecrawl/internal/game/buff"
	"github.com/udisondev/wavecrawl/internal/game/combat"
	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// CanActivate runs the activation gates without side effects.
//
// Gates, in order:
//  1. passive skills never activate
//  2. cooldown counter must be zero
//  3. current mana must cover the cost
//  4. at least one trigger condition must hold for ctx
func CanActivate(s *model.Skill, p *model.Player, ctx Context) error {
	if s.Kind == model.SkillPassive {
		return fmt.Errorf("skill %s: %w", s.ID, ErrPassive)
	}
	if cd := p.Cooldowns[s.ID]; cd > 0 {
		return fmt.Errorf("skill %s (%d turns left): %w", s.ID, cd, ErrOnCooldown)
	}
	if p.CurrentMana < s.ManaCost {
		return fmt.Errorf("skill %s needs %d mana, have %d: %w", s.ID, s.ManaCost, p.CurrentMana, ErrInsufficientMana)
	}
	if !Triggered(s, ctx) {
		return fmt.Errorf("skill %s on %s: %w", s.ID, ctx.Event, ErrNotTriggered)
	}
	return nil
}

// CheckTarget validates the target the player asked for against the
// skill's target type. Enemy and AllEnemies are interchangeable while a
// single monster is fought.
func CheckTarget(s *model.Skill, requested model.TargetType) error {
	if s.Target.IsHostile() == requested.IsHostile() {
		return nil
	}
	return fmt.Errorf("skill %s targets %s, got %s: %w", s.ID, s.Target, requested, ErrInvalidTarget)
}

// TryActivate gates and then activates s for player p against target.
//
// On success mana is deducted, the cooldown is set, a SkillUsed event is
// emitted and every effect applies in declaration order, one event each.
// Effects keep applying after the target dies. Damage and debuff effects
// are skipped when target is nil.
//
// p and target are mutated in place; callers pass clones.
func TryActivate(s model.Skill, p *model.Player, target *model.Monster, ctx Context, src rng.Source) ([]model.BattleEvent, error) {
	if err := CanActivate(&s, p, ctx); err != nil {
		return nil, err
	}

	p.CurrentMana -= s.ManaCost
	if s.Cooldown > 0 {
		p.Cooldowns[s.ID] = s.Cooldown
	}

	events := make([]model.BattleEvent, 0, len(s.Effects)+1)
	events = append(events, model.BattleEvent{
		Kind:  model.EventSkillUsed,
		Skill: s.ID,
		Mana:  s.ManaCost,
	})

	caster := stats.ResolvePlayer(p)
	for _, eff := range s.Effects {
		ev, ok := applyEffect(s.ID, eff, p, &caster, target, src)
		if ok {
			events = append(events, ev)
		}
	}
	p.Clamp(caster.MaxHealth, caster.MaxMana)

	slog.Debug("skill activated",
		"player", p.Name,
		"skill", s.ID,
		"event", ctx.Event,
		"effects", len(events)-1)

	return events, nil
}

// applyEffect applies one effect. caster is refreshed whenever the
// player's buffs change so later effects see the new stats.
func applyEffect(
	id model.SkillID,
	eff model.SkillEffect,
	p *model.Player,
	caster *model.CharacterStats,
	target *model.Monster,
	src rng.Source,
) (model.BattleEvent, bool) {
	switch eff.Kind {
	case model.EffectDamage:
		if target == nil || eff.Damage == nil {
			return model.BattleEvent{}, false
		}
		res := combat.Compute(combat.SkillAttack(*caster, *eff.Damage, target.Stats.Resistance), src)
		target.TakeDamage(res.Damage)
		return model.BattleEvent{
			Kind:     model.EventSkillDamage,
			Skill:    id,
			Monster:  target.Name,
			Damage:   res.Damage,
			Critical: res.Critical,
			Element:  eff.Damage.Element,
		}, true

	case model.EffectHeal:
		if eff.Heal == nil {
			return model.BattleEvent{}, false
		}
		healed := p.Heal(combat.HealAmount(*caster, *eff.Heal), caster.MaxHealth)
		return model.BattleEvent{Kind: model.EventSkillHeal, Skill: id, Health: healed}, true

	case model.EffectBuff:
		if eff.Buff == nil {
			return model.BattleEvent{}, false
		}
		b := eff.Buff.Buff.Instantiate(eff.Buff.Duration, false)
		p.ActiveBuffs = buff.Apply(p.ActiveBuffs, b, eff.Buff.Replace)
		*caster = stats.ResolvePlayer(p)
		return model.BattleEvent{Kind: model.EventBuffApplied, Skill: id, Buff: &b}, true

	case model.EffectDebuff:
		if target == nil || eff.Buff == nil {
			return model.BattleEvent{}, false
		}
		b := eff.Buff.Buff.Instantiate(eff.Buff.Duration, true)
		target.Buffs = buff.Apply(target.Buffs, b, eff.Buff.Replace)
		target.Stats = stats.ResolveMonster(target)
		target.CurrentHealth = model.ClampHealth(target.CurrentHealth, target.Stats.MaxHealth)
		return model.BattleEvent{Kind: model.EventDebuffApplied, Skill: id, Monster: target.Name, Buff: &b}, true

	case model.EffectSummon:
		if eff.Summon == nil {
			return model.BattleEvent{}, false
		}
		summon := *eff.Summon
		return model.BattleEvent{Kind: model.EventSummoned, Skill: id, Summon: &summon}, true

	default:
		return model.BattleEvent{}, false
	}
}

// Ready reports whether s is off cooldown.
func Ready(s *model.Skill, p *model.Player) bool {
	return p.Cooldowns[s.ID] <= 0
}

// TickCooldowns decrements every cooldown by one turn and removes the
// entries that reached zero.
func TickCooldowns(p *model.Player) {
	for id, cd := range p.Cooldowns {
		if cd <= 1 {
			delete(p.Cooldowns, id)
			continue
		}
		p.Cooldowns[id] = cd - 1
	}
}

// AdvanceTimers advances the EveryNTurns timer of every owned skill and
// returns the skills due this turn. A skill with period n is due on the
// n-th, 2n-th, ... call. Timers run regardless of cooldown.
func AdvanceTimers(p *model.Player) map[model.SkillID]bool {
	due := make(map[model.SkillID]bool)
	for i := range p.Skills {
		s := &p.Skills[i]
		n, ok := s.TurnInterval()
		if !ok {
			continue
		}
		remaining, running := p.SkillTimers[s.ID]
		if !running {
			remaining = n
		}
		remaining--
		if remaining <= 0 {
			due[s.ID] = true
			delete(p.SkillTimers, s.ID)
			continue
		}
		p.SkillTimers[s.ID] = remaining
	}
	return due
}
