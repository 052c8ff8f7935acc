package model

// SessionState is the lifecycle state of a session.
type SessionState uint8

const (
	SessionInProgress SessionState = iota
	SessionPaused
	SessionCompleted
)

var sessionStateNames = []string{"InProgress", "Paused", "Completed"}

func (s SessionState) String() string { return enumName(sessionStateNames, int(s)) }

func (s SessionState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SessionState) UnmarshalText(b []byte) error {
	v, err := parseEnum[SessionState]("session state", sessionStateNames, string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Ally is a summoned helper. It attacks the current monster once per turn
// until RemainingTurns runs out.
type Ally struct {
	ID             MonsterID         `json:"id"`
	Template       MonsterTemplateID `json:"template"`
	Name           string            `json:"name"`
	Level          Level             `json:"level"`
	Stats          CharacterStats    `json:"stats"`
	RemainingTurns int32             `json:"remaining_turns"`
}

// Session is one player's run across waves and the unit of persistence.
type Session struct {
	ID            SessionID    `json:"id"`
	Player        *Player      `json:"player"`
	Monster       *Monster     `json:"monster,omitempty"`
	Allies        []Ally       `json:"allies,omitempty"`
	DefeatedCount int32        `json:"defeated_count"`
	Wave          int32        `json:"wave"`
	Turn          int32        `json:"turn"`
	State         SessionState `json:"state"`
	StartedAt     string       `json:"started_at"`
}

// NewSession creates an in-progress session at wave 1 with no monster.
func NewSession(id SessionID, player *Player, startedAt string) *Session {
	return &Session{
		ID:        id,
		Player:    player,
		Wave:      1,
		State:     SessionInProgress,
		StartedAt: startedAt,
	}
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.Player != nil {
		c.Player = s.Player.Clone()
	}
	c.Monster = s.Monster.Clone()
	c.Allies = append([]Ally(nil), s.Allies...)
	return &c
}

// IsActive reports whether turns may be processed.
func (s *Session) IsActive() bool { return s.State == SessionInProgress }

// ActionKind distinguishes the player's per-turn choices.
type ActionKind uint8

const (
	ActionBasicAttack ActionKind = iota
	ActionUseSkill
)

var actionKindNames = []string{"BasicAttack", "UseSkill"}

func (k ActionKind) String() string { return enumName(actionKindNames, int(k)) }

// PlayerAction is the player's choice for one turn.
type PlayerAction struct {
	Kind   ActionKind
	Skill  SkillID
	Target TargetType
}

// BasicAttack is the default action.
func BasicAttack() PlayerAction { return PlayerAction{Kind: ActionBasicAttack} }

// UseSkill casts skill id at target.
func UseSkill(id SkillID, target TargetType) PlayerAction {
	return PlayerAction{Kind: ActionUseSkill, Skill: id, Target: target}
}
