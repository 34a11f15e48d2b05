package knapsack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/knapsack"
)

func TestSolveExhaustive(t *testing.T) {
	items, capacity := classic()
	res, err := knapsack.SolveExhaustive(items, capacity)
	require.NoError(t, err)
	require.Equal(t, 220.0, res.Value)
	require.Equal(t, []int{1, 2}, res.Selection)
	require.Equal(t, 7, res.Stats.Leaves) // every feasible subset; {0,1,2} weighs 60

	res, err = knapsack.SolveExhaustive(nil, 5)
	require.NoError(t, err)
	require.Equal(t, 0.0, res.Value)
	require.Empty(t, res.Selection)
}

func TestSolveExhaustive_TooMany(t *testing.T) {
	items := make([]knapsack.Item, knapsack.MaxExhaustiveItems+1)
	for i := range items {
		items[i] = knapsack.Item{Value: 1, Weight: 1}
	}
	_, err := knapsack.SolveExhaustive(items, 3)
	require.ErrorIs(t, err, knapsack.ErrTooManyItems)
	require.ErrorIs(t, err, knapsack.ErrInvalidInput)
}
