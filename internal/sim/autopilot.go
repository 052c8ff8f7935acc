// Package sim plays sessions headlessly: an autopilot picks each turn's
// action and a runner drives many sessions concurrently.
package sim

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/udisondev/wavecrawl/internal/game/session"
	"github.com/udisondev/wavecrawl/internal/model"
)

// Autopilot chooses player actions.
type Autopilot struct {
	engine *session.Engine
}

// NewAutopilot creates an autopilot validating against engine.
func NewAutopilot(engine *session.Engine) *Autopilot {
	return &Autopilot{engine: engine}
}

// Choose returns the action for the next turn of s.
//
// Algorithm:
//  1. no monster yet: basic attack (the turn only spawns)
//  2. Active skills by priority, highest first, declaration order on ties
//  3. skip skills above the player level
//  4. the first skill whose action validates (ready, affordable,
//     triggered) is used at its own target type
//  5. otherwise basic attack
func (a *Autopilot) Choose(s *model.Session) model.PlayerAction {
	if s.Monster == nil || !s.IsActive() {
		return model.BasicAttack()
	}

	p := s.Player
	candidates := make([]model.Skill, 0, len(p.Skills))
	for _, sk := range p.Skills {
		if sk.Kind == model.SkillActive && sk.RequiredLevel <= p.Level {
			candidates = append(candidates, sk)
		}
	}
	slices.SortStableFunc(candidates, func(x, y model.Skill) int {
		return cmp.Compare(y.Priority, x.Priority)
	})

	for _, sk := range candidates {
		action := model.UseSkill(sk.ID, sk.Target)
		if a.engine.ValidateAction(s, action) == nil {
			return action
		}
	}
	return model.BasicAttack()
}

// Weights of each modifier kind when comparing items.
var modifierWeights = map[model.ModifierKind]float64{
	model.ModIncreaseDamage:       2,
	model.ModIncreaseHealth:       1,
	model.ModIncreaseMana:         0.8,
	model.ModManaRegen:            1.2,
	model.ModIncreaseStrength:     1,
	model.ModIncreaseIntelligence: 1,
	model.ModIncreaseDexterity:    1,
	model.ModIncreaseVitality:     1,
	model.ModCriticalChance:       100,
	model.ModCriticalDamage:       50,
	model.ModLifeSteal:            80,
	model.ModSkillPower:           1.5,
	model.ModElementModifier:      50,
	model.ModElementResistance:    60,
}

var rarityWeights = map[model.Rarity]float64{
	model.RarityCommon:    1,
	model.RarityMagic:     1.2,
	model.RarityRare:      1.5,
	model.RarityLegendary: 2,
}

// Score rates an item for equipping: weighted modifier sum times a
// rarity bonus. A nil item scores 0.
func Score(it *model.Item) float64 {
	if it == nil {
		return 0
	}
	var score float64
	for _, m := range it.Modifiers() {
		score += m.Value * modifierWeights[m.Kind]
	}
	return score * rarityWeights[it.Rarity]
}

// Upgrade equips every inventory item that outscores what its slot holds.
// A two-handed weapon is weighed against main and off hand together.
// Items the engine refuses are left in the inventory.
func (a *Autopilot) Upgrade(s *model.Session) *model.Session {
	if s.State == model.SessionCompleted {
		return s
	}
	bag := append([]model.Item(nil), s.Player.Inventory...)
	for _, it := range bag {
		for _, slot := range it.Base.Slots {
			if Score(&it) <= a.slotScore(s, slot, &it.Base) {
				continue
			}
			next, err := a.engine.Equip(s, it.ID, slot)
			if err != nil {
				slog.Debug("autopilot skipped upgrade", "session", s.ID, "item", it.ID, "slot", slot, "err", err)
				continue
			}
			s = next
			break
		}
	}
	return s
}

func (a *Autopilot) slotScore(s *model.Session, slot model.EquipmentSlot, incoming *model.BaseItem) float64 {
	score := equippedScore(s, slot)
	if slot == model.SlotMainHand && incoming.IsTwoHanded() {
		score += equippedScore(s, model.SlotOffHand)
	}
	return score
}

func equippedScore(s *model.Session, slot model.EquipmentSlot) float64 {
	it, ok := s.Player.Equipment[slot]
	if !ok {
		return 0
	}
	return Score(&it)
}

// SellLoot sells the whole inventory. Returns the new session and the
// gold received.
func (a *Autopilot) SellLoot(s *model.Session) (*model.Session, model.Gold) {
	var total model.Gold
	for len(s.Player.Inventory) > 0 {
		next, price, err := a.engine.Sell(s, s.Player.Inventory[0].ID)
		if err != nil {
			return s, total
		}
		s = next
		total += price
	}
	return s, total
}
