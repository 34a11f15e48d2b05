package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/internal/store"
	"github.com/katalvlaran/lvbnb/knapsack"
)

func openMem(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openMem(t)

	_, ok, err := s.Get(42)
	require.NoError(t, err)
	require.False(t, ok)

	res, err := knapsack.SolveArrays([]float64{60, 100, 120}, []float64{10, 20, 30}, 50)
	require.NoError(t, err)
	rec, err := store.FromResult(res, 3, 50)
	require.NoError(t, err)
	require.NoError(t, s.Put(42, rec))

	got, ok, err := s.Get(42)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 220.0, got.Value)
	require.Equal(t, []int{1, 2}, got.Selection)
	require.Equal(t, 3, got.Items)
	require.True(t, rec.SolvedAt.Equal(got.SolvedAt))
}

func TestFromResult_RejectsUncertified(t *testing.T) {
	res, err := knapsack.SolveArrays([]float64{60, 100, 120}, []float64{10, 20, 30}, 50,
		knapsack.WithNodeBudget(1))
	require.NoError(t, err)
	_, err = store.FromResult(res, 3, 50)
	require.ErrorIs(t, err, store.ErrNotCertified)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := store.Open(store.Config{})
	require.Error(t, err)
}

func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Put(7, store.Record{Value: 1, Selection: []int{0}}))
	require.NoError(t, s.Close())

	s, err = store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Get(7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, got.Value)
}
