package model

// Numeric quantities are distinct named types so a Level cannot be added
// to a Health without an explicit conversion.
type (
	Level      int32
	Health     int32
	Mana       int32
	Damage     int32
	Gold       int64
	Experience int64
)

// Identifier types. Values are produced by an IDGenerator owned by the
// caller; the engine never invents them.
type (
	PlayerID          string
	SessionID         string
	ItemID            string
	BaseItemID        string
	SkillID           string
	MonsterID         string
	MonsterTemplateID string
	BuffID            string
)

// IDGenerator supplies fresh identifiers for entities the engine creates
// while resolving a turn (dropped items, spawned monsters).
type IDGenerator interface {
	NewItemID() ItemID
	NewMonsterID() MonsterID
}
