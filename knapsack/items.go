package knapsack

import "sort"

// NewItems zips parallel value and weight arrays into Items.
// Values are not validated here; Prepare and the solvers do that.
//
// Errors: ErrMismatchedLength when len(values) != len(weights).
//
// Complexity: O(n) time and space.
func NewItems(values, weights []float64) ([]Item, error) {
	if len(values) != len(weights) {
		return nil, ErrMismatchedLength
	}
	out := make([]Item, len(values))
	var i int
	for i = range values {
		out[i] = Item{Value: values[i], Weight: weights[i]}
	}

	return out, nil
}

// byRatio implements sort.Interface: Ratio descending, then Index ascending.
type byRatio []PreparedItem

func (b byRatio) Len() int { return len(b) }
func (b byRatio) Less(i, j int) bool {
	if b[i].Ratio == b[j].Ratio {
		return b[i].Index < b[j].Index
	}

	return b[i].Ratio > b[j].Ratio
}
func (b byRatio) Swap(i, j int) { b[i], b[j] = b[j], b[i] }

// Prepare validates items and returns them ranked by value density.
// The ordering (Ratio desc, Index asc) is a precondition of Bound and must not
// change during a search. items is not modified.
//
// Errors: *ItemError wrapping ErrNonFinite, ErrNonPositiveWeight or ErrNegativeValue;
// ErrValueOverflow when the values sum to +Inf.
//
// Complexity: O(n log n) time, O(n) space.
func Prepare(items []Item) ([]PreparedItem, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	out := make([]PreparedItem, len(items))
	var i int
	for i = range items {
		out[i] = PreparedItem{
			Item:  items[i],
			Ratio: items[i].Value / items[i].Weight,
			Index: i,
		}
	}
	sort.Sort(byRatio(out))

	return out, nil
}
