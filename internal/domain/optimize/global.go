package optimize

import (
	"sort"

	"github.com/mkarami/lottostats/internal/domain/frequency"
	"github.com/mkarami/lottostats/internal/domain/model"
)

// ByGlobalFrequency is the global-frequency strategy. The baseline takes
// the five most frequent regular numbers overall, position ignored, plus
// the single most frequent special ball. While the sorted regular set
// collides with a historically observed regular set (the special ball does
// not participate in this uniqueness check), the currently least frequent
// candidate member (first index on ties) is replaced with the next
// unused number from the global ranking; once that list is exhausted, the
// lowest in-range number not used so far is substituted instead.
//
// The loop is bounded by maxAttempts and additionally stops as soon as no
// unused in-range number remains, so it terminates even on tiny ranges
// where history covers every number. On exhaustion the last candidate is
// returned best-effort.
func ByGlobalFrequency(t *frequency.Tally, v model.Variant, maxAttempts int) model.Combination {
	bound := attempts(maxAttempts)
	special := topSpecial(t)

	ranked := t.Overall.Ranked()
	var cand [model.RegularCount]int
	used := make(map[int]bool, model.RegularCount)
	for i := 0; i < model.RegularCount && i < len(ranked); i++ {
		cand[i] = ranked[i]
		used[ranked[i]] = true
	}
	cursor := model.RegularCount

	if _, seen := t.RegularSets[sortedSet(cand)]; !seen {
		return model.NewCombination(cand, special)
	}

	for i := 0; i < bound; i++ {
		next, ok := nextUnused(ranked, &cursor, used, v.MaxRegular)
		if !ok {
			break
		}
		used[next] = true
		cand[leastFrequent(t.Overall, cand)] = next
		if _, seen := t.RegularSets[sortedSet(cand)]; !seen {
			break
		}
	}
	return model.NewCombination(cand, special)
}

// leastFrequent returns the index of the candidate member with the lowest
// overall count, first index on ties.
func leastFrequent(overall *frequency.Table, cand [model.RegularCount]int) int {
	idx := 0
	min := overall.Count(cand[0])
	for j := 1; j < model.RegularCount; j++ {
		if c := overall.Count(cand[j]); c < min {
			idx, min = j, c
		}
	}
	return idx
}

// nextUnused advances cursor through the global ranking past used numbers,
// falling back to the lowest unused in-range number when the ranking is
// exhausted. ok is false when no unused number remains at all.
func nextUnused(ranked []int, cursor *int, used map[int]bool, maxRegular int) (int, bool) {
	for *cursor < len(ranked) {
		n := ranked[*cursor]
		*cursor++
		if !used[n] {
			return n, true
		}
	}
	for n := 1; n <= maxRegular; n++ {
		if !used[n] {
			return n, true
		}
	}
	return 0, false
}

func sortedSet(cand [model.RegularCount]int) model.RegularSet {
	var s model.RegularSet
	copy(s[:], cand[:])
	sort.Ints(s[:])
	return s
}
