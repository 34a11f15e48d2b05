package knapsack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvbnb/knapsack"
)

func TestFrontier_BoundDescSeqAsc(t *testing.T) {
	f := knapsack.NewTestFrontier()
	require.Nil(t, f.Peek())

	f.Push(&knapsack.Node{Bound: 5, Seq: 3})
	f.Push(&knapsack.Node{Bound: 9, Seq: 4})
	f.Push(&knapsack.Node{Bound: 5, Seq: 1})
	f.Push(&knapsack.Node{Bound: 7, Seq: 2})
	f.Push(&knapsack.Node{Bound: 5, Seq: 2})
	require.Equal(t, 5, f.Len())
	require.Equal(t, uint64(4), f.Peek().Seq)

	type key struct {
		b float64
		s uint64
	}
	var got []key
	for f.Len() > 0 {
		n := f.Pop()
		got = append(got, key{n.Bound, n.Seq})
	}
	require.Equal(t, []key{{9, 4}, {7, 2}, {5, 1}, {5, 2}, {5, 3}}, got)
}
