// Package optimize derives candidate combinations that are biased toward
// historically frequent numbers but absent from the observed history.
//
// Both strategies are stateless pure functions over (tally, variant,
// attempt bound). Neither predicts anything: "optimized" means only
// "distinct from every raw historical combination", and after the attempt
// bound is exhausted the last candidate is returned best-effort rather
// than failing.
package optimize

import (
	"github.com/mkarami/lottostats/internal/domain/frequency"
)

// DefaultMaxAttempts is the standard search bound. It is an explicit
// parameter on both strategies so the exhaustion fallback is testable.
const DefaultMaxAttempts = 100

func attempts(n int) int {
	if n <= 0 {
		return DefaultMaxAttempts
	}
	return n
}

// topSpecial returns the single most frequent special ball. The tabulator
// default-fills tables, so the ranked list is never empty in practice; the
// guard keeps the zero value in range regardless.
func topSpecial(t *frequency.Tally) int {
	if ranked := t.Special.Ranked(); len(ranked) > 0 {
		return ranked[0]
	}
	return 1
}

// contains reports whether nums holds n.
func contains(nums []int, n int) bool {
	for _, m := range nums {
		if m == n {
			return true
		}
	}
	return false
}

// lowestUnused returns the smallest integer in [1, max] absent from taken,
// or 0 when the whole range is taken.
func lowestUnused(max int, taken []int) int {
	for n := 1; n <= max; n++ {
		if !contains(taken, n) {
			return n
		}
	}
	return 0
}
