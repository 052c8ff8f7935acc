package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavecrawl/internal/model"
)

func testSession(id model.SessionID) *model.Session {
	class := model.ClassTemplate{
		Name:      "Warrior",
		BaseStats: model.BaseStats{MaxHealth: 120, MaxMana: 30, BaseDamage: 15},
	}
	p := model.NewPlayer("p-"+model.PlayerID(id), "Hero", class, nil)
	p.Equipment[model.SlotMainHand] = model.Item{
		ID:     "item-1",
		Base:   model.BaseItem{ID: "rusty_sword", Name: "Rusty Sword", Slots: []model.EquipmentSlot{model.SlotMainHand}},
		Rarity: model.RarityMagic,
		Prefix: &model.Affix{Name: "Sharp", Modifiers: []model.Modifier{model.NewModifier(model.ModIncreaseDamage, 6)}},
		Level:  1,
	}
	p.Cooldowns["power_strike"] = 2
	return model.NewSession(id, p, "2026-10-16T10:00:00Z")
}

func TestSessionRepository_SaveLoad(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	s := testSession("s1")
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s, got)

	s.Wave = 3
	s.Turn = 12
	s.Player.Level = 2
	require.NoError(t, repo.Save(ctx, s), "second save updates in place")

	got, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int32(3), got.Wave)
	assert.Equal(t, model.Level(2), got.Player.Level)
	assert.Equal(t, "Sharp Rusty Sword", func() string {
		it := got.Player.Equipment[model.SlotMainHand]
		return it.DisplayName()
	}())
}

func TestSessionRepository_LoadMissing(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))

	got, err := repo.Load(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_Events(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("s1")))

	turn1 := []model.BattleEvent{
		{Kind: model.EventMonsterSpawned, Monster: "Goblin", Level: 1, Health: 40},
	}
	turn2 := []model.BattleEvent{
		{Kind: model.EventPlayerAttack, Monster: "Goblin", Damage: 18, Critical: true, Health: 22},
		{Kind: model.EventMonsterAttack, Monster: "Goblin", Damage: 6, Health: 114},
	}
	require.NoError(t, repo.AppendEvents(ctx, "s1", 0, turn1))
	require.NoError(t, repo.AppendEvents(ctx, "s1", 1, turn2))
	require.NoError(t, repo.AppendEvents(ctx, "s1", 2, nil))

	recs, err := repo.Events(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	for i, rec := range recs {
		assert.Equal(t, int64(i+1), rec.Seq)
	}
	assert.Equal(t, int32(0), recs[0].Turn)
	assert.Equal(t, int32(1), recs[2].Turn)
	assert.Equal(t, turn1[0], recs[0].Event)
	assert.Equal(t, turn2, []model.BattleEvent{recs[1].Event, recs[2].Event})
}

func TestSessionRepository_AppendEventsUnknownSession(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))

	err := repo.AppendEvents(context.Background(), "absent", 1, []model.BattleEvent{{Kind: model.EventPlayerAttack}})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_ListActive(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	active := testSession("a")
	paused := testSession("b")
	paused.State = model.SessionPaused
	done := testSession("c")
	done.State = model.SessionCompleted
	for _, s := range []*model.Session{active, paused, done} {
		require.NoError(t, repo.Save(ctx, s))
	}

	list, err := repo.ListActive(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []model.SessionID{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []model.SessionID{"a", "b"}, ids)
	for _, s := range list {
		assert.Equal(t, "Warrior", s.Class)
		assert.NotEqual(t, model.SessionCompleted, s.State)
	}

	limited, err := repo.ListActive(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testSession("s1")))
	require.NoError(t, repo.AppendEvents(ctx, "s1", 1, []model.BattleEvent{{Kind: model.EventPlayerAttack}}))
	require.NoError(t, repo.Delete(ctx, "s1"))

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	recs, err := repo.Events(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
