// Package session drives the turn loop of a session: monster spawning,
// the player's action, auras, allies, rewards, leveling and the session
// state machine.
//
// Every operation takes a session snapshot and returns a new one; the
// input is never mutated, so a rejected call leaves the caller's value as
// it was.
package session

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/wavecrawl/internal/config"
	"github.com/udisondev/wavecrawl/internal/game/loot"
	"github.com/udisondev/wavecrawl/internal/game/skill"
	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

// Engine resolves turns against one content catalog. It holds no session
// state, so one Engine serves any number of sessions concurrently.
type Engine struct {
	catalog *model.Catalog
	loot    *loot.Generator
	ids     model.IDGenerator
	rates   *config.Rates
}

// NewEngine creates an Engine. rates may be nil for x1 rates.
func NewEngine(catalog *model.Catalog, ids model.IDGenerator, rates *config.Rates) *Engine {
	return &Engine{
		catalog: catalog,
		loot:    loot.NewGenerator(catalog, ids, rates),
		ids:     ids,
		rates:   rates,
	}
}

// Catalog returns the content the engine runs on.
func (e *Engine) Catalog() *model.Catalog { return e.catalog }

// NewSession creates a wave 1 session for a fresh level 1 player of class.
// Starting skills come from the catalog; starting equipment is equipped
// as Common items in the first slot each base item fits.
func (e *Engine) NewSession(id model.SessionID, playerID model.PlayerID, name, class, startedAt string) (*model.Session, error) {
	tmpl, ok := e.catalog.Class(class)
	if !ok {
		return nil, fmt.Errorf("new session %s: class %q: %w", id, class, ErrUnknownClass)
	}

	skills := make([]model.Skill, 0, len(tmpl.StartingSkills))
	for _, sid := range tmpl.StartingSkills {
		s, ok := e.catalog.Skill(sid)
		if !ok {
			return nil, fmt.Errorf("new session %s: class %s skill %s: %w", id, class, sid, ErrInvalidSkillID)
		}
		skills = append(skills, s)
	}

	p := model.NewPlayer(playerID, name, tmpl, skills)
	for _, bid := range tmpl.StartingEquipment {
		base, ok := e.catalog.BaseItem(bid)
		if !ok {
			return nil, fmt.Errorf("new session %s: class %s equipment %s: %w", id, class, bid, ErrItemNotFound)
		}
		it := model.Item{ID: e.ids.NewItemID(), Base: base, Rarity: model.RarityCommon, Level: 1}
		slot, ok := freeSlot(p.Equipment, &base, &tmpl)
		if !ok {
			p.Inventory = append(p.Inventory, it)
			continue
		}
		p.Equipment[slot] = it
		e.grantSkills(p, &base)
	}

	s := stats.ResolvePlayer(p)
	p.CurrentHealth = s.MaxHealth
	p.CurrentMana = s.MaxMana

	return model.NewSession(id, p, startedAt), nil
}

// AdvanceTurn resolves one turn and returns the new session and the
// ordered events of the turn.
//
// Without a current monster the turn only spawns one (MonsterSpawned).
// Otherwise the full turn sequence runs; see turn.run.
func (e *Engine) AdvanceTurn(s *model.Session, action model.PlayerAction, src rng.Source) (*model.Session, []model.BattleEvent, error) {
	if !s.IsActive() {
		return nil, nil, fmt.Errorf("advance session %s (%s): %w", s.ID, s.State, ErrSessionNotActive)
	}

	next := s.Clone()
	t := &turn{engine: e, session: next, player: next.Player, src: src}

	if next.Monster == nil {
		if err := t.spawn(); err != nil {
			return nil, nil, fmt.Errorf("advance session %s: %w", s.ID, err)
		}
		return next, t.events, nil
	}

	t.run(action)
	return next, t.events, nil
}

// ValidateAction reports the error a skill action would hit, without
// resolving anything. AdvanceTurn itself never fails on these: it falls
// back to a basic attack.
func (e *Engine) ValidateAction(s *model.Session, action model.PlayerAction) error {
	if !s.IsActive() {
		return fmt.Errorf("validate action: %w", ErrSessionNotActive)
	}
	if action.Kind != model.ActionUseSkill {
		return nil
	}

	// Gates are checked against the player as the turn will see it:
	// after buffs, cooldowns and timers advanced.
	p := s.Player.Clone()
	due := startTurn(p)
	_, err := checkSkillAction(p, s.Monster, action, due)
	return err
}

// checkSkillAction runs every gate of a player-chosen skill: ownership,
// kind, target, cooldown, mana and trigger.
func checkSkillAction(p *model.Player, m *model.Monster, action model.PlayerAction, due map[model.SkillID]bool) (model.Skill, error) {
	sk, ok := p.Skill(action.Skill)
	if !ok {
		return model.Skill{}, fmt.Errorf("skill %s not owned: %w", action.Skill, ErrInvalidSkillID)
	}
	if err := skill.CheckTarget(&sk, action.Target); err != nil {
		return sk, err
	}
	if err := skill.CanActivate(&sk, p, skillContext(p, m, skill.EventAction, due)); err != nil {
		return sk, err
	}
	return sk, nil
}

// PreviewStats resolves the player's current effective stats without
// consuming a turn.
func PreviewStats(s *model.Session) model.CharacterStats {
	return stats.ResolvePlayer(s.Player)
}

// Pause stops turn processing. Only an in-progress session can pause.
func Pause(s *model.Session) (*model.Session, error) {
	if s.State != model.SessionInProgress {
		return nil, fmt.Errorf("pause session %s (%s): %w", s.ID, s.State, ErrSessionNotActive)
	}
	next := s.Clone()
	next.State = model.SessionPaused
	return next, nil
}

// Resume restarts a paused session.
func Resume(s *model.Session) (*model.Session, error) {
	if s.State != model.SessionPaused {
		return nil, fmt.Errorf("resume session %s (%s): %w", s.ID, s.State, ErrSessionNotPaused)
	}
	next := s.Clone()
	next.State = model.SessionInProgress
	return next, nil
}

// End completes a session that is still running or paused.
func End(s *model.Session) (*model.Session, error) {
	if s.State == model.SessionCompleted {
		return nil, fmt.Errorf("end session %s: %w", s.ID, ErrSessionNotActive)
	}
	next := s.Clone()
	next.State = model.SessionCompleted
	slog.Debug("session ended",
		"session", s.ID,
		"wave", s.Wave,
		"defeated", s.DefeatedCount)
	return next, nil
}
