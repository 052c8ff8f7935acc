package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/udisondev/wavecrawl/internal/ids"
	"github.com/udisondev/wavecrawl/internal/model"
	"github.com/udisondev/wavecrawl/internal/rng"
)

func TestAdvanceTurn_SkillCooldown(t *testing.T) {
	e := newEngine(testCatalog())
	s := newSession(t, e, dummy(10000, 0))
	cast := model.UseSkill("fireball", model.TargetEnemy)

	used := make([]bool, 0, 4)
	for turn := 1; turn <= 4; turn++ {
		next, events, err := e.AdvanceTurn(s, cast, rng.New(uint64(turn)))
		require.NoError(t, err)

		_, ok := model.FindEvent(events, model.EventSkillUsed)
		used = append(used, ok)
		if !ok {
			ev, found := model.FindEvent(events, model.EventActionFallback)
			require.True(t, found, "turn %d", turn)
			assert.Contains(t, ev.Reason, "on cooldown")
		}
		if turn == 1 {
			require.ErrorIs(t, e.ValidateAction(next, cast), ErrOnCooldown)
		}
		s = next
	}

	assert.Equal(t, []bool{true, false, false, true}, used)
}

func TestAdvanceTurn_SkillDamage(t *testing.T) {
	e := newEngine(testCatalog())
	s := newSession(t, e, dummy(100, 0))

	next, events, err := e.AdvanceTurn(s, model.UseSkill("fireball", model.TargetAllEnemies), rng.New(1))
	require.NoError(t, err)

	assert.Equal(t, []model.EventKind{
		model.EventSkillUsed,
		model.EventSkillDamage,
		model.EventMonsterAttack,
	}, model.Kinds(events))
	assert.Equal(t, model.Damage(10), events[1].Damage)
	assert.Equal(t, model.Health(90), next.Monster.CurrentHealth)
	assert.Equal(t, model.Mana(40), next.Player.CurrentMana)
}

func TestAdvanceTurn_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		action model.PlayerAction
		mana   model.Mana
		want   []model.EventKind
		err    error
	}{
		{
			name:   "not enough mana",
			action: model.UseSkill("fireball", model.TargetEnemy),
			mana:   3,
			want: []model.EventKind{
				model.EventNotEnoughMana,
				model.EventActionFallback,
				model.EventPlayerAttack,
				model.EventMonsterAttack,
			},
			err: ErrInsufficientMana,
		},
		{
			name:   "unknown skill",
			action: model.UseSkill("meteor", model.TargetEnemy),
			mana:   50,
			want:   []model.EventKind{model.EventActionFallback, model.EventPlayerAttack, model.EventMonsterAttack},
			err:    ErrInvalidSkillID,
		},
		{
			name:   "target mismatch",
			action: model.UseSkill("fireball", model.TargetSelf),
			mana:   50,
			want:   []model.EventKind{model.EventActionFallback, model.EventPlayerAttack, model.EventMonsterAttack},
			err:    ErrInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(testCatalog())
			s := newSession(t, e, dummy(1000, 0))
			s.Player.CurrentMana = tt.mana

			require.ErrorIs(t, e.ValidateAction(s, tt.action), tt.err)

			next, events, err := e.AdvanceTurn(s, tt.action, rng.New(1))
			require.NoError(t, err)
			assert.Equal(t, tt.want, model.Kinds(events))
			assert.Equal(t, tt.mana, next.Player.CurrentMana)

			hit, _ := model.FindEvent(events, model.EventPlayerAttack)
			assert.Equal(t, model.Damage(15), hit.Damage)
		})
	}
}

func TestValidateAction(t *testing.T) {
	e := newEngine(testCatalog())
	s := newSession(t, e, dummy(100, 0))

	require.NoError(t, e.ValidateAction(s, model.BasicAttack()))
	require.NoError(t, e.ValidateAction(s, model.UseSkill("fireball", model.TargetEnemy)))

	ended, err := End(s)
	require.NoError(t, err)
	require.ErrorIs(t, e.ValidateAction(ended, model.BasicAttack()), ErrSessionNotActive)
}

func TestAdvanceTurn_BattleStartAura(t *testing.T) {
	c := testCatalog()
	c.Skills["war_cry"] = model.Skill{
		ID:       "war_cry",
		Name:     "War Cry",
		Kind:     model.SkillAura,
		Target:   model.TargetSelf,
		Triggers: []model.TriggerCondition{{Kind: model.TriggerOnBattleStart}},
		Effects: []model.SkillEffect{{
			Kind: model.EffectBuff,
			Buff: &model.BuffEffect{
				Buff:     model.BuffTemplate{ID: "war_cry", Name: "War Cry", Type: model.NewModifier(model.ModIncreaseDamage, 5)},
				Duration: 2,
			},
		}},
	}
	cls := c.Classes["Tester"]
	cls.StartingSkills = append(cls.StartingSkills, "war_cry")
	c.Classes["Tester"] = cls

	e := newEngine(c)
	s := newSession(t, e, dummy(1000, 0))

	s, events, err := e.AdvanceTurn(s, model.BasicAttack(), rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, []model.EventKind{
		model.EventSkillUsed,
		model.EventBuffApplied,
		model.EventPlayerAttack,
		model.EventMonsterAttack,
	}, model.Kinds(events))
	assert.Equal(t, model.Damage(20), events[2].Damage)

	s, events, err = e.AdvanceTurn(s, model.BasicAttack(), rng.New(2))
	require.NoError(t, err)
	assert.Equal(t, []model.EventKind{model.EventPlayerAttack, model.EventMonsterAttack}, model.Kinds(events))
	assert.Equal(t, model.Damage(20), events[0].Damage, "buff still active on turn 2")

	_, events, err = e.AdvanceTurn(s, model.BasicAttack(), rng.New(3))
	require.NoError(t, err)
	assert.Equal(t, model.Damage(15), events[0].Damage, "buff expired")
}

func TestAdvanceTurn_Summon(t *testing.T) {
	e := newEngine(testCatalog())
	s := newSession(t, e, dummy(1000, 0))

	s, events, err := e.AdvanceTurn(s, model.UseSkill("call_wolf", model.TargetSelf), rng.New(1))
	require.NoError(t, err)
	assert.Equal(t, []model.EventKind{
		model.EventSkillUsed,
		model.EventSummoned,
		model.EventAllyAttack,
		model.EventMonsterAttack,
	}, model.Kinds(events))
	assert.Equal(t, "Wolf", events[2].Ally)
	assert.Equal(t, model.Damage(7), events[2].Damage)
	require.Len(t, s.Allies, 1)
	assert.Equal(t, int32(1), s.Allies[0].RemainingTurns)

	s, events, err = e.AdvanceTurn(s, model.BasicAttack(), rng.New(2))
	require.NoError(t, err)
	assert.Equal(t, []model.EventKind{
		model.EventPlayerAttack,
		model.EventAllyAttack,
		model.EventMonsterAttack,
	}, model.Kinds(events))
	assert.Empty(t, s.Allies)
	// 1000 - 7 - 15 - 7
	assert.Equal(t, model.Health(971), s.Monster.CurrentHealth)
}

func TestEquip(t *testing.T) {
	e := newEngine(testCatalog())
	s := newSession(t, e, nil)
	c := e.Catalog()
	s.Player.Inventory = []model.Item{
		{ID: "i1", Base: c.BaseItems["sword"], Level: 1},
		{ID: "i2", Base: c.BaseItems["greatsword"], Level: 1},
		{ID: "i3", Base: c.BaseItems["sword"], Level: 1},
	}

	t.Run("equip", func(t *testing.T) {
		next, err := e.Equip(s, "i1", model.SlotMainHand)
		require.NoError(t, err)

		assert.Equal(t, model.ItemID("i1"), next.Player.Equipment[model.SlotMainHand].ID)
		assert.Len(t, next.Player.Inventory, 2)
		assert.True(t, next.Player.HasSkill("cleave"))
		assert.Equal(t, model.Damage(25), PreviewStats(next).BaseDamage)
		assert.Len(t, s.Player.Inventory, 3, "input untouched")

		swapped, err := e.Equip(next, "i3", model.SlotMainHand)
		require.NoError(t, err)
		assert.Equal(t, model.ItemID("i3"), swapped.Player.Equipment[model.SlotMainHand].ID)
		assert.True(t, swapped.Player.HasSkill("cleave"))

		bare, err := e.Unequip(swapped, model.SlotMainHand)
		require.NoError(t, err)
		assert.Empty(t, bare.Player.Equipment)
		assert.Len(t, bare.Player.Inventory, 3)
		assert.False(t, bare.Player.HasSkill("cleave"))
	})

	t.Run("rejections", func(t *testing.T) {
		_, err := e.Equip(s, "nope", model.SlotMainHand)
		require.ErrorIs(t, err, ErrItemNotFound)

		_, err = e.Equip(s, "i1", model.SlotHelm)
		require.ErrorIs(t, err, ErrSlotMismatch)

		_, err = e.Equip(s, "i2", model.SlotMainHand)
		require.ErrorIs(t, err, ErrRequirementNotMet)

		_, err = e.Unequip(s, model.SlotMainHand)
		require.ErrorIs(t, err, ErrItemNotFound)

		ended, err := End(s)
		require.NoError(t, err)
		_, err = e.Equip(ended, "i1", model.SlotMainHand)
		require.ErrorIs(t, err, ErrSessionNotActive)
	})

	t.Run("paused sessions may change equipment", func(t *testing.T) {
		paused, err := Pause(s)
		require.NoError(t, err)
		_, err = e.Equip(paused, "i1", model.SlotMainHand)
		require.NoError(t, err)
	})
}

func TestAdvanceTurn_Deterministic(t *testing.T) {
	play := func() []model.BattleEvent {
		e := NewEngine(testCatalog(), ids.NewSequence("d"), nil)
		s := newSession(t, e, nil)
		src := rng.New(42)

		var all []model.BattleEvent
		for range 30 {
			next, events, err := e.AdvanceTurn(s, model.UseSkill("fireball", model.TargetEnemy), src)
			if err != nil {
				break
			}
			all = append(all, events...)
			s = next
		}
		return all
	}

	assert.Equal(t, play(), play())
}

// Health and mana stay within [0, max] after any sequence of turns.
func TestAdvanceTurn_ResourcesInRange(t *testing.T) {
	actions := []model.PlayerAction{
		model.BasicAttack(),
		model.UseSkill("fireball", model.TargetEnemy),
		model.UseSkill("fireball", model.TargetSelf),
		model.UseSkill("call_wolf", model.TargetSelf),
		model.UseSkill("cleave", model.TargetEnemy),
		model.UseSkill("unknown", model.TargetEnemy),
	}

	rapid.Check(t, func(t *rapid.T) {
		c := testCatalog()
		c.Monsters[0].LootTable = []model.LootEntry{
			{BaseItem: "ring", DropChance: 0.5, Weights: model.RarityWeights{Common: 1}},
		}
		e := NewEngine(c, ids.NewSequence("r"), nil)
		s, err := e.NewSession("s", "p", "Hero", "Tester", "now")
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		src := rng.New(rapid.Uint64().Draw(t, "seed"))

		turns := rapid.IntRange(1, 60).Draw(t, "turns")
		for i := range turns {
			a := actions[rapid.IntRange(0, len(actions)-1).Draw(t, "action")]
			next, _, err := e.AdvanceTurn(s, a, src)
			if err != nil {
				if s.State == model.SessionCompleted {
					return
				}
				t.Fatalf("turn %d: %v", i, err)
			}
			s = next

			st := PreviewStats(s)
			p := s.Player
			if p.CurrentHealth < 0 || p.CurrentHealth > st.MaxHealth {
				t.Fatalf("turn %d: health %d outside [0, %d]", i, p.CurrentHealth, st.MaxHealth)
			}
			if p.CurrentMana < 0 || p.CurrentMana > st.MaxMana {
				t.Fatalf("turn %d: mana %d outside [0, %d]", i, p.CurrentMana, st.MaxMana)
			}
			if m := s.Monster; m != nil && (m.CurrentHealth < 0 || m.CurrentHealth > m.Stats.MaxHealth) {
				t.Fatalf("turn %d: monster health %d outside [0, %d]", i, m.CurrentHealth, m.Stats.MaxHealth)
			}
		}
	})
}
