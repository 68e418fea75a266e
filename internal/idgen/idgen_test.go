package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	seq := NewSequence("session")
	assert.Equal(t, "session-1", seq.NewID())
	assert.Equal(t, "session-2", seq.NewID())
}

func TestSequence_Concurrent(t *testing.T) {
	seq := NewSequence("s")

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := seq.NewID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1000)
}

func TestUUID(t *testing.T) {
	id := UUID{}.NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNanoID(t *testing.T) {
	id := NanoID{}.NewID()
	assert.Len(t, id, 12)
	assert.NotEqual(t, id, NanoID{}.NewID())
	assert.Len(t, NanoID{Size: 7}.NewID(), 7)
}

func TestFromScheme(t *testing.T) {
	g, err := FromScheme("")
	require.NoError(t, err)
	assert.IsType(t, UUID{}, g)

	g, err = FromScheme("nanoid")
	require.NoError(t, err)
	assert.IsType(t, NanoID{}, g)

	_, err = FromScheme("snowflake")
	assert.Error(t, err)
}
