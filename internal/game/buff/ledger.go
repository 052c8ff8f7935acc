// Package buff owns the decay and expiry of timed effects.
//
// A ledger is an ordered []model.Buff; insertion order is activation order.
// Every function returns a new slice and never modifies its input.
package buff

import "github.com/udisondev/wavecrawl/internal/model"

// Tick advances one turn boundary: every entry loses one remaining turn and
// entries at or below zero are dropped.
func Tick(buffs []model.Buff) []model.Buff {
	if len(buffs) == 0 {
		return nil
	}
	out := make([]model.Buff, 0, len(buffs))
	for _, b := range buffs {
		b.RemainingTurns--
		if b.RemainingTurns <= 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Add appends b. Duplicates stack as independent entries.
func Add(buffs []model.Buff, b model.Buff) []model.Buff {
	out := make([]model.Buff, 0, len(buffs)+1)
	out = append(out, buffs...)
	return append(out, b)
}

// Replace drops every entry with b's id, then appends b.
func Replace(buffs []model.Buff, b model.Buff) []model.Buff {
	return Add(Remove(buffs, b.ID), b)
}

// Remove drops every entry with id.
func Remove(buffs []model.Buff, id model.BuffID) []model.Buff {
	out := make([]model.Buff, 0, len(buffs))
	for _, e := range buffs {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Apply inserts b with Replace or Add semantics.
func Apply(buffs []model.Buff, b model.Buff, replace bool) []model.Buff {
	if replace {
		return Replace(buffs, b)
	}
	return Add(buffs, b)
}

// Has reports whether an entry with id is active.
func Has(buffs []model.Buff, id model.BuffID) bool {
	for _, b := range buffs {
		if b.ID == id {
			return true
		}
	}
	return false
}
