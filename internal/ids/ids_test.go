package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wavecrawl/internal/model"
)

var (
	_ model.IDGenerator = UUID{}
	_ model.IDGenerator = (*Sequence)(nil)
)

func TestUUID_Unique(t *testing.T) {
	g := UUID{}
	a, b := g.NewItemID(), g.NewItemID()
	assert.NotEqual(t, a, b)

	id, err := ParseSessionID(string(g.NewSessionID()))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestParseSessionID_Invalid(t *testing.T) {
	_, err := ParseSessionID("not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse session id")
}

func TestSequence_Deterministic(t *testing.T) {
	s := NewSequence("run1")
	assert.Equal(t, model.ItemID("run1-item-1"), s.NewItemID())
	assert.Equal(t, model.MonsterID("run1-monster-2"), s.NewMonsterID())

	other := NewSequence("run1")
	assert.Equal(t, model.ItemID("run1-item-1"), other.NewItemID())
}

func TestSequence_Concurrent(t *testing.T) {
	s := NewSequence("c")
	var (
		mu   sync.Mutex
		seen = make(map[model.ItemID]bool)
		wg   sync.WaitGroup
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := s.NewItemID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}
