package skill

import "errors"

var (
	ErrOnCooldown       = errors.New("skill on cooldown")
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrNotTriggered     = errors.New("no trigger condition satisfied")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrInvalidSkillID   = errors.New("invalid skill id")
	ErrPassive          = errors.New("passive skill cannot be activated")
)
