// Package ids generates identifiers for the entities the engine and its
// callers create.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/udisondev/wavecrawl/internal/model"
)

// UUID generates random version 4 identifiers.
type UUID struct{}

func (UUID) NewItemID() model.ItemID       { return model.ItemID(uuid.NewString()) }
func (UUID) NewMonsterID() model.MonsterID { return model.MonsterID(uuid.NewString()) }
func (UUID) NewSessionID() model.SessionID { return model.SessionID(uuid.NewString()) }
func (UUID) NewPlayerID() model.PlayerID   { return model.PlayerID(uuid.NewString()) }

// Sequence generates deterministic identifiers: prefix-kind-n.
// Safe for concurrent use. Replays and tests use it so that identical
// seeds produce byte-identical sessions.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a Sequence whose ids start with prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) id(kind string) string {
	return fmt.Sprintf("%s-%s-%d", s.prefix, kind, s.next.Add(1))
}

func (s *Sequence) NewItemID() model.ItemID       { return model.ItemID(s.id("item")) }
func (s *Sequence) NewMonsterID() model.MonsterID { return model.MonsterID(s.id("monster")) }
func (s *Sequence) NewSessionID() model.SessionID { return model.SessionID(s.id("session")) }
func (s *Sequence) NewPlayerID() model.PlayerID   { return model.PlayerID(s.id("player")) }

// ParseSessionID validates a textual session id produced by UUID.
func ParseSessionID(s string) (model.SessionID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse session id %q: %w", s, err)
	}
	return model.SessionID(u.String()), nil
}
