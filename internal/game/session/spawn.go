package session

import (
	"log/slog"

	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
)

// spawn picks the monster for the current wave and puts it in the session.
//
// Algorithm:
//  1. candidates = templates whose level range holds the player level
//     (upper bound widened by LevelSlack); all templates when none match
//  2. every BossEvery-th wave narrows the candidates to Boss tier, other
//     waves exclude it; either narrowing is skipped when it leaves nothing
//  3. one candidate is drawn uniformly
//  4. level = player level ± LevelJitter, at least 1
//
// Experience and gold of the template are fixed at spawn time.
func (t *turn) spawn() error {
	e := t.engine
	rules := e.catalog.Spawn
	if len(e.catalog.Monsters) == 0 {
		return ErrNoMonsterTemplates
	}

	p := t.player
	var candidates []model.MonsterTemplate
	for _, tmpl := range e.catalog.Monsters {
		if tmpl.Levels.Contains(p.Level, rules.LevelSlack) {
			candidates = append(candidates, tmpl)
		}
	}
	if len(candidates) == 0 {
		candidates = e.catalog.Monsters
	}
	if rules.BossEvery > 0 {
		bossWave := t.session.Wave%rules.BossEvery == 0
		candidates = narrow(candidates, func(tmpl model.MonsterTemplate) bool {
			return (tmpl.Tier == model.TierBoss) == bossWave
		})
	}

	tmpl := candidates[t.src.IntN(len(candidates))]

	level := p.Level
	if j := rules.LevelJitter; j > 0 {
		level += model.Level(t.src.IntN(int(2*j+1))) - j
	}
	level = max(level, 1)

	m := &model.Monster{
		ID:         e.ids.NewMonsterID(),
		Template:   tmpl.ID,
		Name:       tmpl.Name,
		Tier:       tmpl.Tier,
		Level:      level,
		Base:       tmpl.StatsAt(level),
		LootTable:  append([]model.LootEntry(nil), tmpl.LootTable...),
		Experience: tmpl.ExperienceAt(level),
		Gold:       tmpl.GoldAt(level),
	}
	m.Stats = stats.ResolveMonster(m)
	m.CurrentHealth = m.Stats.MaxHealth
	t.session.Monster = m

	t.emit(model.BattleEvent{
		Kind:    model.EventMonsterSpawned,
		Monster: m.Name,
		Level:   m.Level,
		Health:  m.CurrentHealth,
	})
	slog.Debug("monster spawned",
		"session", t.session.ID,
		"wave", t.session.Wave,
		"monster", m.Name,
		"tier", m.Tier,
		"level", m.Level)

	return nil
}

// narrow keeps the templates matching keep, or all of them when none do.
func narrow(templates []model.MonsterTemplate, keep func(model.MonsterTemplate) bool) []model.MonsterTemplate {
	var out []model.MonsterTemplate
	for _, tmpl := range templates {
		if keep(tmpl) {
			out = append(out, tmpl)
		}
	}
	if len(out) == 0 {
		return templates
	}
	return out
}
