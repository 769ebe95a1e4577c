package singleton

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/domaintest"
)

type row struct {
	ID      id.ID
	Flagged bool
}

type rows struct {
	*domaintest.Table[row]
	clears int
}

func (r *rows) ClearFlag(_ context.Context, field string) error {
	if field != "is_default" {
		return errors.New("unexpected field " + field)
	}
	r.clears++
	r.UpdateWhere(func(v row) (row, bool) {
		if !v.Flagged {
			return v, false
		}
		v.Flagged = false
		return v, true
	})
	return nil
}

func newFixture() (*rows, *domaintest.TxManager, *Enforcer) {
	coll := &rows{Table: domaintest.NewTable[row]()}
	txm := domaintest.NewTxManager(coll.Table)
	return coll, txm, NewEnforcer(txm, txm)
}

func flaggedCount(coll *rows) int {
	return coll.Count(func(r row) bool { return r.Flagged })
}

func save(coll *rows, r row) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		coll.Put(r.ID, r)
		return nil
	}
}

func TestEnforceExclusive_SecondFlagMovesFlag(t *testing.T) {
	ctx := context.Background()
	coll, txm, enf := newFixture()

	a := row{ID: id.New(), Flagged: true}
	b := row{ID: id.New(), Flagged: true}

	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, true, save(coll, a)))
	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, true, save(coll, b)))

	gotA, _ := coll.Get(a.ID)
	gotB, _ := coll.Get(b.ID)
	assert.False(t, gotA.Flagged)
	assert.True(t, gotB.Flagged)
	assert.Equal(t, 1, flaggedCount(coll))
	assert.Equal(t, []string{"addresses.is_default", "addresses.is_default"}, txm.Locks)
}

func TestEnforceExclusive_UnflaggedCandidateLeavesExisting(t *testing.T) {
	ctx := context.Background()
	coll, _, enf := newFixture()

	a := row{ID: id.New(), Flagged: true}
	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, true, save(coll, a)))
	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, false, save(coll, row{ID: id.New()})))

	gotA, _ := coll.Get(a.ID)
	assert.True(t, gotA.Flagged)
	assert.Equal(t, 1, coll.clears)
}

func TestEnforceExclusive_ZeroFlaggedIsAllowed(t *testing.T) {
	ctx := context.Background()
	coll, _, enf := newFixture()

	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, false, save(coll, row{ID: id.New()})))
	assert.Equal(t, 0, flaggedCount(coll))
	assert.Equal(t, 0, coll.clears)
}

func TestEnforceExclusive_FailedPersistRestoresPreviousFlag(t *testing.T) {
	ctx := context.Background()
	coll, txm, enf := newFixture()

	a := row{ID: id.New(), Flagged: true}
	require.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, true, save(coll, a)))

	boom := errors.New("insert failed")
	err := enf.EnforceExclusive(ctx, DefaultAddress, coll, true, func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	gotA, _ := coll.Get(a.ID)
	assert.True(t, gotA.Flagged, "clear must be rolled back with the failed persist")
	assert.Equal(t, 1, txm.Rollbacks)
}

func TestEnforceExclusive_ConcurrentSettersKeepOneFlag(t *testing.T) {
	ctx := context.Background()
	coll, _, enf := newFixture()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := row{ID: id.New(), Flagged: true}
			assert.NoError(t, enf.EnforceExclusive(ctx, DefaultAddress, coll, true, save(coll, r)))
		}()
	}
	wg.Wait()

	assert.Equal(t, writers, coll.Len())
	assert.Equal(t, 1, flaggedCount(coll))
}
