package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchforge/labtrail/pkg/types"
)

// openStore creates a store on a temp dir with a fixed-offset zone and a
// deferred close.
func openStore(t *testing.T) *Store {
	t.Helper()
	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	s, err := Open(t.TempDir(), loc)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabaseAndSeeds(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, time.UTC)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, DBFileName))
	require.NoError(t, err, "database file should exist")

	// Sequencer meta rows seeded to the current year and zero.
	var year, num string
	require.NoError(t, s.db.QueryRow("SELECT value FROM meta WHERE key=?", metaSeqYear).Scan(&year))
	require.NoError(t, s.db.QueryRow("SELECT value FROM meta WHERE key=?", metaSeqNum).Scan(&num))
	assert.Equal(t, time.Now().UTC().Format("2006"), year)
	assert.Equal(t, "0", num)

	// Initial admin user.
	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, types.RoleAdmin, users[0].Role)
	assert.True(t, users[0].Active)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir, time.UTC)
	require.NoError(t, err)

	// Advance the counter, then reopen: seed must not reset it.
	ctx := context.Background()
	err = s1.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.NextSampleID(ctx)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(dir, time.UTC)
	require.NoError(t, err)
	defer s2.Close()

	var num string
	require.NoError(t, s2.db.QueryRow("SELECT value FROM meta WHERE key=?", metaSeqNum).Scan(&num))
	assert.Equal(t, "1", num, "reopen must not reset the sequencer")
}

func TestCloseIsIdempotentAndGuardsOperations(t *testing.T) {
	s, err := Open(t.TempDir(), time.UTC)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	ctx := context.Background()
	_, err = s.GetSample(ctx, "S-2025-0001")
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	err = s.WithTx(ctx, func(tx *Tx) error { return nil })
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	boom := assert.AnError
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.InsertSample(ctx, &types.Sample{
			ID:        "S-2025-0001",
			Client:    "Acme",
			Status:    types.SampleStatusRegistered,
			Priority:  types.PriorityNormal,
			CreatedAt: s.Now(),
			UpdatedAt: s.Now(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.GetSample(ctx, "S-2025-0001")
	assert.ErrorIs(t, err, types.ErrNotFound, "rolled-back insert must not be visible")
}
