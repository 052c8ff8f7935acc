package session

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/wavecrawl/internal/game/stats"
	"github.com/udisondev/wavecrawl/internal/model"
)

// Equip moves an inventory item into slot. An item already in the slot
// goes back to the inventory. Skills granted by the base item are added.
// A two-handed weapon in MainHand also sends the OffHand item back.
//
// Checks, in order:
//  1. session not completed
//  2. item is in the inventory
//  3. base item fits slot
//  4. player level and class meet the requirements
//  5. the class slot rules accept the item's tags
//  6. OffHand is not held by a two-handed weapon
func (e *Engine) Equip(s *model.Session, id model.ItemID, slot model.EquipmentSlot) (*model.Session, error) {
	if s.State == model.SessionCompleted {
		return nil, fmt.Errorf("equip %s: %w", id, ErrSessionNotActive)
	}

	idx := slices.IndexFunc(s.Player.Inventory, func(it model.Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("equip %s: %w", id, ErrItemNotFound)
	}
	it := s.Player.Inventory[idx]

	if !it.Base.FitsSlot(slot) {
		return nil, fmt.Errorf("equip %s (%s) in %s: %w", id, it.Base.Name, slot, ErrSlotMismatch)
	}
	if it.Base.RequiredLevel > s.Player.Level {
		return nil, fmt.Errorf("equip %s: level %d < %d: %w", id, s.Player.Level, it.Base.RequiredLevel, ErrRequirementNotMet)
	}
	if !it.Base.AllowsClass(s.Player.Class) {
		return nil, fmt.Errorf("equip %s: class %s: %w", id, s.Player.Class, ErrRequirementNotMet)
	}
	class, _ := e.catalog.Class(s.Player.Class)
	if !class.CanWear(&it.Base, slot) {
		return nil, fmt.Errorf("equip %s: %s cannot wear %s in %s: %w", id, s.Player.Class, it.Base.Name, slot, ErrSlotMismatch)
	}
	if main, ok := s.Player.Equipment[model.SlotMainHand]; ok && slot == model.SlotOffHand && main.Base.IsTwoHanded() {
		return nil, fmt.Errorf("equip %s: %s holds %s: %w", id, slot, main.Base.Name, ErrSlotBlocked)
	}

	next := s.Clone()
	p := next.Player
	p.Inventory = slices.Delete(p.Inventory, idx, idx+1)
	if old, ok := p.Equipment[slot]; ok {
		p.Inventory = append(p.Inventory, old)
		delete(p.Equipment, slot)
		e.revokeSkills(p, &old.Base)
	}
	if slot == model.SlotMainHand && it.Base.IsTwoHanded() {
		if off, ok := p.Equipment[model.SlotOffHand]; ok {
			p.Inventory = append(p.Inventory, off)
			delete(p.Equipment, model.SlotOffHand)
			e.revokeSkills(p, &off.Base)
		}
	}
	p.Equipment[slot] = it
	e.grantSkills(p, &it.Base)
	clamp(p)

	return next, nil
}

// Unequip moves the item in slot back to the inventory and drops the
// skills only it granted.
func (e *Engine) Unequip(s *model.Session, slot model.EquipmentSlot) (*model.Session, error) {
	if s.State == model.SessionCompleted {
		return nil, fmt.Errorf("unequip %s: %w", slot, ErrSessionNotActive)
	}
	if _, ok := s.Player.Equipment[slot]; !ok {
		return nil, fmt.Errorf("unequip %s: %w", slot, ErrItemNotFound)
	}

	next := s.Clone()
	p := next.Player
	it := p.Equipment[slot]
	delete(p.Equipment, slot)
	p.Inventory = append(p.Inventory, it)
	e.revokeSkills(p, &it.Base)
	clamp(p)

	return next, nil
}

// Sell removes an inventory item and pays its sell value in gold.
// Returns the new session and the gold received.
func (e *Engine) Sell(s *model.Session, id model.ItemID) (*model.Session, model.Gold, error) {
	if s.State == model.SessionCompleted {
		return nil, 0, fmt.Errorf("sell %s: %w", id, ErrSessionNotActive)
	}
	idx := slices.IndexFunc(s.Player.Inventory, func(it model.Item) bool { return it.ID == id })
	if idx < 0 {
		return nil, 0, fmt.Errorf("sell %s: %w", id, ErrItemNotFound)
	}

	next := s.Clone()
	p := next.Player
	price := p.Inventory[idx].SellValue()
	p.Inventory = slices.Delete(p.Inventory, idx, idx+1)
	p.Gold += price

	slog.Debug("item sold", "session", s.ID, "item", id, "gold", price)
	return next, price, nil
}

// grantSkills adds the catalog skills base grants that the player lacks.
func (e *Engine) grantSkills(p *model.Player, base *model.BaseItem) {
	for _, id := range base.GrantedSkills {
		if p.HasSkill(id) {
			continue
		}
		if sk, ok := e.catalog.Skill(id); ok {
			p.Skills = append(p.Skills, sk)
		}
	}
}

// revokeSkills removes the skills base granted unless the class starts
// with them or another equipped item still grants them.
func (e *Engine) revokeSkills(p *model.Player, base *model.BaseItem) {
	class, _ := e.catalog.Class(p.Class)
	keep := func(id model.SkillID) bool {
		if slices.Contains(class.StartingSkills, id) {
			return true
		}
		for _, it := range p.Equipment {
			if slices.Contains(it.Base.GrantedSkills, id) {
				return true
			}
		}
		return false
	}

	for _, id := range base.GrantedSkills {
		if keep(id) {
			continue
		}
		p.Skills = slices.DeleteFunc(p.Skills, func(s model.Skill) bool { return s.ID == id })
		delete(p.Cooldowns, id)
		delete(p.SkillTimers, id)
	}
}

// freeSlot returns the first slot base fits and class may wear it in
// that is still empty.
func freeSlot(eq model.Equipment, base *model.BaseItem, class *model.ClassTemplate) (model.EquipmentSlot, bool) {
	for _, slot := range base.Slots {
		if !class.CanWear(base, slot) {
			continue
		}
		if _, taken := eq[slot]; !taken {
			return slot, true
		}
	}
	return 0, false
}

func clamp(p *model.Player) {
	s := stats.ResolvePlayer(p)
	p.Clamp(s.MaxHealth, s.MaxMana)
}
