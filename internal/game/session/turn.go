package session

import (
	"cmp"
	"errors"
	"log/slog"
	"slices"

	"github.com/udisondev/wavecrawl/internal/game/buff"
	"github.com/udisondev/wavecrawl/internal/game/combat"
	"github.com/udisondev/wavecrawl/internal/game/loot"
	"github.com/udisondev/wavecrawl/internal/game/skill"
	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// turn is the scratch state of one AdvanceTurn call. Everything it
// touches belongs to the cloned session.
type turn struct {
	engine  *Engine
	session *model.Session
	player  *model.Player
	src     rng.Source
	due     map[model.SkillID]bool
	events  []model.BattleEvent
}

func (t *turn) emit(events ...model.BattleEvent) {
	t.events = append(t.events, events...)
}

// run resolves a full combat turn against the current monster.
//
// Sequence:
//  1. turn counters, ledger decay, cooldowns, EveryNTurns timers
//  2. BattleStart auras (first turn of the encounter), TurnStart auras
//  3. the player's action; Critical auras after a critical basic attack
//  4. allies attack
//  5. monster defeated → rewards; otherwise the monster strikes back
//  6. mana regeneration unless the session completed
func (t *turn) run(action model.PlayerAction) {
	m := t.session.Monster
	t.session.Turn++
	m.Turns++

	t.due = startTurn(t.player)
	m.Buffs = buff.Tick(m.Buffs)
	m.Stats = stats.ResolveMonster(m)
	m.CurrentHealth = model.ClampHealth(m.CurrentHealth, m.Stats.MaxHealth)
	clamp(t.player)

	if m.Turns == 1 {
		t.auras(skill.EventBattleStart)
	}
	t.auras(skill.EventTurnStart)

	if !m.IsDefeated() {
		if critical := t.playerAction(action); critical {
			t.auras(skill.EventCritical)
		}
	}

	t.alliesAttack()

	if m.IsDefeated() {
		t.defeatMonster()
	} else {
		t.monsterAttack()
	}

	if t.session.State != model.SessionCompleted {
		t.regenerateMana()
	}
	clamp(t.player)
}

// startTurn applies the turn-boundary bookkeeping of the player and
// returns the EveryNTurns skills due this turn.
func startTurn(p *model.Player) map[model.SkillID]bool {
	p.ActiveBuffs = buff.Tick(p.ActiveBuffs)
	skill.TickCooldowns(p)
	return skill.AdvanceTimers(p)
}

// skillContext snapshots the trigger inputs. m is nil when no monster is
// engaged.
func skillContext(p *model.Player, m *model.Monster, ev skill.Event, due map[model.SkillID]bool) skill.Context {
	s := stats.ResolvePlayer(p)
	ctx := skill.Context{
		Event:       ev,
		HealthRatio: skill.HealthRatio(p.CurrentHealth, s.MaxHealth),
		ManaRatio:   skill.ManaRatio(p.CurrentMana, s.MaxMana),
		Due:         due,
	}
	if m != nil {
		ctx.Enemy = true
		ctx.EnemyHealthRatio = skill.HealthRatio(m.CurrentHealth, m.Stats.MaxHealth)
	}
	return ctx
}

// playerAction resolves the chosen action and reports whether it was a
// critical basic attack. Any failing skill gate degrades to a basic attack.
func (t *turn) playerAction(action model.PlayerAction) bool {
	if action.Kind != model.ActionUseSkill {
		return t.basicAttack()
	}

	sk, err := checkSkillAction(t.player, t.session.Monster, action, t.due)
	if err == nil {
		var events []model.BattleEvent
		events, err = skill.TryActivate(sk, t.player, t.targetFor(&sk, true), skillContext(t.player, t.session.Monster, skill.EventAction, t.due), t.src)
		if err == nil {
			t.absorb(events)
			return false
		}
	}

	if errors.Is(err, skill.ErrInsufficientMana) {
		t.emit(model.BattleEvent{Kind: model.EventNotEnoughMana, Skill: sk.ID, Mana: sk.ManaCost})
	}
	t.emit(model.BattleEvent{Kind: model.EventActionFallback, Skill: action.Skill, Reason: err.Error()})
	slog.Debug("skill action fell back to basic attack",
		"session", t.session.ID,
		"skill", action.Skill,
		"error", err)

	return t.basicAttack()
}

func (t *turn) basicAttack() bool {
	m := t.session.Monster
	ps := stats.ResolvePlayer(t.player)

	var weapon *model.BaseItem
	if it, ok := t.player.Equipment.Weapon(); ok {
		weapon = &it.Base
	}

	res := combat.Compute(combat.BasicAttack(ps, weapon, m.Stats.Resistance), t.src)
	m.TakeDamage(res.Damage)
	ev := model.BattleEvent{
		Kind:     model.EventPlayerAttack,
		Monster:  m.Name,
		Damage:   res.Damage,
		Critical: res.Critical,
		Health:   m.CurrentHealth,
	}
	if weapon != nil {
		ev.Element = weapon.Element
	}
	t.emit(ev)

	if res.Healed > 0 {
		if healed := t.player.Heal(res.Healed, ps.MaxHealth); healed > 0 {
			t.emit(model.BattleEvent{Kind: model.EventPlayerHeal, Health: healed})
		}
	}
	return res.Critical
}

// auras resolves every aura skill for ev in priority order. Gate failures
// are silent skips.
func (t *turn) auras(ev skill.Event) {
	var auras []model.Skill
	for _, s := range t.player.Skills {
		if s.Kind == model.SkillAura {
			auras = append(auras, s)
		}
	}
	slices.SortStableFunc(auras, func(a, b model.Skill) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	live := ev != skill.EventKill && ev != skill.EventBattleEnd
	for i := range auras {
		s := auras[i]
		events, err := skill.TryActivate(s, t.player, t.targetFor(&s, live), skillContext(t.player, t.session.Monster, ev, t.due), t.src)
		if err != nil {
			continue
		}
		t.absorb(events)
	}
}

// targetFor returns the monster hostile skills aim at, or nil when the
// skill is self-targeted or the encounter is over.
func (t *turn) targetFor(s *model.Skill, live bool) *model.Monster {
	if !live || !s.Target.IsHostile() {
		return nil
	}
	return t.session.Monster
}

// absorb appends skill events and materializes summons.
func (t *turn) absorb(events []model.BattleEvent) {
	t.emit(events...)
	for _, ev := range events {
		if ev.Kind == model.EventSummoned && ev.Summon != nil {
			t.summon(*ev.Summon)
		}
	}
}

func (t *turn) summon(eff model.SummonEffect) {
	tmpl, ok := t.engine.catalog.Monster(eff.Template)
	if !ok {
		slog.Debug("summon references unknown monster template", "template", eff.Template)
		return
	}
	level := t.player.Level
	t.session.Allies = append(t.session.Allies, model.Ally{
		ID:             t.engine.ids.NewMonsterID(),
		Template:       tmpl.ID,
		Name:           tmpl.Name,
		Level:          level,
		Stats:          stats.Resolve(model.Attributes{}, tmpl.StatsAt(level), nil, nil),
		RemainingTurns: eff.Duration,
	})
}

// alliesAttack lets every ally hit the monster once, then ages the allies.
func (t *turn) alliesAttack() {
	m := t.session.Monster
	kept := t.session.Allies[:0]
	for _, a := range t.session.Allies {
		if !m.IsDefeated() {
			res := combat.Compute(combat.MonsterAttack(a.Stats, m.Stats.Resistance), t.src)
			m.TakeDamage(res.Damage)
			t.emit(model.BattleEvent{
				Kind:     model.EventAllyAttack,
				Ally:     a.Name,
				Monster:  m.Name,
				Damage:   res.Damage,
				Critical: res.Critical,
				Health:   m.CurrentHealth,
			})
		}
		a.RemainingTurns--
		if a.RemainingTurns > 0 {
			kept = append(kept, a)
		}
	}
	t.session.Allies = kept
}

// defeatMonster runs the end of an encounter.
//
// Order: Kill and BattleEnd auras, MonsterDefeated, loot, gold,
// experience and level-ups, then the wave advances and the monster is
// cleared with its ledger.
func (t *turn) defeatMonster() {
	e := t.engine
	m := t.session.Monster
	p := t.player

	t.auras(skill.EventKill)
	t.auras(skill.EventBattleEnd)

	t.emit(model.BattleEvent{Kind: model.EventMonsterDefeated, Monster: m.Name, Level: m.Level})

	items := e.loot.Roll(m.LootTable, loot.Context{Level: m.Level, Tier: m.Tier}, t.src)
	for i := range items {
		p.Inventory = append(p.Inventory, items[i])
		t.emit(model.BattleEvent{Kind: model.EventItemDropped, Monster: m.Name, Item: &items[i]})
	}

	reward := combat.CalculateReward(m, e.catalog.TierRule(m.Tier), e.rates, t.src)
	if reward.Gold > 0 {
		p.Gold += reward.Gold
		t.emit(model.BattleEvent{Kind: model.EventGoldDropped, Monster: m.Name, Gold: reward.Gold})
	}
	if reward.Experience > 0 {
		t.emit(model.BattleEvent{Kind: model.EventExperienceGained, Experience: reward.Experience})
	}

	class, _ := e.catalog.Class(p.Class)
	for _, l := range combat.AwardExperience(p, reward.Experience, e.catalog.Levels, class, e.catalog.LevelUp) {
		t.emit(model.BattleEvent{Kind: model.EventPlayerLevelUp, Level: l})
	}

	t.session.DefeatedCount++
	t.session.Wave++
	t.session.Monster = nil

	slog.Debug("monster defeated",
		"session", t.session.ID,
		"monster", m.Name,
		"wave", t.session.Wave,
		"items", len(items),
		"exp", reward.Experience,
		"gold", reward.Gold)
}

func (t *turn) monsterAttack() {
	m := t.session.Monster
	p := t.player
	ps := stats.ResolvePlayer(p)

	res := combat.Compute(combat.MonsterAttack(m.Stats, ps.Resistance), t.src)
	p.TakeDamage(res.Damage)
	t.emit(model.BattleEvent{
		Kind:     model.EventMonsterAttack,
		Monster:  m.Name,
		Damage:   res.Damage,
		Critical: res.Critical,
		Health:   p.CurrentHealth,
	})

	if p.IsDead() {
		t.emit(model.BattleEvent{Kind: model.EventPlayerDefeated, Monster: m.Name})
		t.session.State = model.SessionCompleted
		slog.Debug("player defeated",
			"session", t.session.ID,
			"player", p.Name,
			"monster", m.Name,
			"wave", t.session.Wave)
	}
}

func (t *turn) regenerateMana() {
	ps := stats.ResolvePlayer(t.player)
	if restored := t.player.RestoreMana(ps.ManaRegen, ps.MaxMana); restored > 0 {
		t.emit(model.BattleEvent{Kind: model.EventManaRegenerated, Mana: restored})
	}
}
