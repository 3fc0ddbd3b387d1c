package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextID mints one identifier in its own transaction.
func nextID(t *testing.T, s *Store) string {
	t.Helper()
	ctx := context.Background()
	var id string
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		id, err = tx.NextSampleID(ctx)
		return err
	})
	require.NoError(t, err)
	return id
}

func TestNextSampleIDSequence(t *testing.T) {
	s := openStore(t)
	s.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, "S-2025-0001", nextID(t, s))
	assert.Equal(t, "S-2025-0002", nextID(t, s))
	assert.Equal(t, "S-2025-0003", nextID(t, s))
}

func TestNextSampleIDStrictlyIncreasingAndUnique(t *testing.T) {
	s := openStore(t)
	s.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 25; i++ {
		id := nextID(t, s)
		assert.False(t, seen[id], "identifier %s minted twice", id)
		seen[id] = true
		assert.Greater(t, id, prev, "identifiers must be strictly increasing")
		prev = id
	}
}

func TestNextSampleIDYearRollover(t *testing.T) {
	s := openStore(t)

	s.now = func() time.Time {
		return time.Date(2025, 12, 31, 23, 50, 0, 0, time.UTC)
	}
	assert.Equal(t, "S-2025-0001", nextID(t, s))
	assert.Equal(t, "S-2025-0002", nextID(t, s))

	// First call of the new year resets the counter to 1.
	s.now = func() time.Time {
		return time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC)
	}
	assert.Equal(t, "S-2026-0001", nextID(t, s))
	assert.Equal(t, "S-2026-0002", nextID(t, s))
}

func TestNextSampleIDPadding(t *testing.T) {
	s := openStore(t)
	s.now = func() time.Time {
		return time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)
	}

	var last string
	for i := 0; i < 12; i++ {
		last = nextID(t, s)
	}
	assert.Equal(t, fmt.Sprintf("S-2025-%04d", 12), last)
}
