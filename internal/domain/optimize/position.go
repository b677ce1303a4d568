package optimize

import (
	"github.com/mkarami/lottostats/internal/domain/frequency"
	"github.com/mkarami/lottostats/internal/domain/model"
)

// ByPosition is the position-biased strategy. The baseline candidate takes
// the top-ranked number of each per-position frequency list (falling
// through to the next rank when an earlier position already took that
// number, so the five regulars stay distinct) and the single most frequent
// special ball. While the normalized 6-tuple exists in history, attempt i
// perturbs position i mod 5, advancing that position's ranked list; an
// exhausted list substitutes the lowest in-range number not already in the
// candidate. The special ball is never perturbed.
//
// Uniqueness is checked against the full 6-tuple history. After
// maxAttempts the last candidate is returned best-effort.
func ByPosition(t *frequency.Tally, v model.Variant, maxAttempts int) model.Combination {
	bound := attempts(maxAttempts)
	special := topSpecial(t)

	ranked := make([][]int, model.RegularCount)
	for pos := 0; pos < model.RegularCount; pos++ {
		ranked[pos] = t.Positions[pos].Ranked()
	}

	var cand [model.RegularCount]int
	var cursor [model.RegularCount]int
	for pos := 0; pos < model.RegularCount; pos++ {
		cursor[pos] = -1
		pickNext(ranked[pos], &cursor[pos], &cand, pos, v.MaxRegular)
	}
	if _, seen := t.Combos[model.NewCombination(cand, special)]; !seen {
		return model.NewCombination(cand, special)
	}

	for i := 0; i < bound; i++ {
		pos := i % model.RegularCount
		pickNext(ranked[pos], &cursor[pos], &cand, pos, v.MaxRegular)
		if _, seen := t.Combos[model.NewCombination(cand, special)]; !seen {
			return model.NewCombination(cand, special)
		}
	}
	return model.NewCombination(cand, special)
}

// pickNext advances cursor through list until a number not held by another
// position is found and assigns it to cand[pos]. When the list runs out it
// substitutes the lowest unused in-range number; if even those are gone
// the slot keeps its current value.
func pickNext(list []int, cursor *int, cand *[model.RegularCount]int, pos, maxRegular int) {
	others := make([]int, 0, model.RegularCount-1)
	for j, n := range cand {
		if j != pos {
			others = append(others, n)
		}
	}
	for *cursor+1 < len(list) {
		*cursor++
		if n := list[*cursor]; !contains(others, n) {
			cand[pos] = n
			return
		}
	}
	if n := lowestUnused(maxRegular, others); n != 0 {
		cand[pos] = n
	}
}
