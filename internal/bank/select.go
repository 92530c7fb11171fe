package bank

import (
	"math/big"
	"strings"
)

// Pick is one chosen digit together with its position in the source bank.
type Pick struct {
	Value uint8
	Index int
}

// Selection is the ordered result of SelectMax. Indices are strictly increasing.
type Selection []Pick

// SelectMax chooses exactly k digits of seq, in their original order, so that
// the number they form is the largest possible.
//
// Picks are made greedily from the most significant position down. The pick
// for position p is restricted to indices below n-k+p+1 so that enough digits
// remain for the k-p-1 picks still to come. Within that window the leftmost
// maximum wins, which leaves the widest suffix for later positions.
func SelectMax(seq Sequence, k int) (Selection, error) {
	n := len(seq)
	if n == 0 {
		return nil, &InvalidArgumentError{Reason: "empty sequence", K: k, N: n}
	}
	if k < 1 || k > n {
		return nil, &InvalidArgumentError{Reason: "k must be in [1, n]", K: k, N: n}
	}

	sel := make(Selection, 0, k)
	start := 0
	for pos := 0; pos < k; pos++ {
		end := n - k + pos + 1

		best := start
		for i := start + 1; i < end && seq[best] < 9; i++ {
			if seq[i] > seq[best] {
				best = i
			}
		}

		sel = append(sel, Pick{Value: seq[best], Index: best})
		start = best + 1
	}
	return sel, nil
}

// String returns the selected digits concatenated, most significant first.
func (s Selection) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, p := range s {
		b.WriteByte('0' + p.Value)
	}
	return b.String()
}

// Int returns the joltage spelled by the selection. Selections may be longer
// than any fixed-width integer, so the value is arbitrary precision.
func (s Selection) Int() *big.Int {
	v := new(big.Int)
	if len(s) == 0 {
		return v
	}
	v.SetString(s.String(), 10)
	return v
}

// Indices returns the source positions of the picks.
func (s Selection) Indices() []int {
	idx := make([]int, len(s))
	for i, p := range s {
		idx[i] = p.Index
	}
	return idx
}
