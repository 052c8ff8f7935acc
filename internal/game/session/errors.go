package session

import (
	"errors"

	"github.com/udisondev/wavecrawl/internal/game/skill"
)

// Sentinel errors for the session orchestrator.
var (
	ErrSessionNotActive   = errors.New("session is not active")
	ErrSessionNotPaused   = errors.New("session is not paused")
	ErrUnknownClass       = errors.New("unknown class")
	ErrNoMonsterTemplates = errors.New("no monster templates")
	ErrItemNotFound       = errors.New("item not found")
	ErrSlotMismatch       = errors.New("item does not fit slot")
	ErrRequirementNotMet  = errors.New("item requirement not met")
	ErrSlotBlocked        = errors.New("slot blocked by two-handed weapon")
)

// Skill errors surfaced by ValidateAction.
var (
	ErrInvalidSkillID   = skill.ErrInvalidSkillID
	ErrInvalidTarget    = skill.ErrInvalidTarget
	ErrInsufficientMana = skill.ErrInsufficientMana
	ErrOnCooldown       = skill.ErrOnCooldown
	ErrNotTriggered     = skill.ErrNotTriggered
)
