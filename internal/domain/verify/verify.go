// Package verify cross-checks tabulated counts against their expected
// invariants. Checks are diagnostic only: a failure is reported, never
// raised, so statistics generation always completes with best-effort
// results.
package verify

import (
	"fmt"

	"github.com/mkarami/lottostats/internal/domain/frequency"
	"github.com/mkarami/lottostats/internal/domain/model"
)

// Check is one independent pass/fail diagnostic.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Report collects every check of one verification pass.
type Report struct {
	Checks []Check `json:"checks"`
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the failing checks.
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Run executes all consistency checks over a tally.
func Run(t *frequency.Tally) Report {
	var r Report
	r.add("overall_sum", checkOverallSum(t))
	r.add("special_sum", checkSpecialSum(t))
	r.add("position_sums", checkPositionSums(t))
	r.add("special_mirror", checkSpecialMirror(t))
	r.add("position_overall_agreement", checkPositionOverallAgreement(t))
	r.add("sorted_non_increasing", checkSortedNonIncreasing(t))
	return r
}

func (r *Report) add(name string, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: detail == "", Detail: detail})
}

// Sum of all overall counts must equal validDraws × 5.
func checkOverallSum(t *frequency.Tally) string {
	want := t.ValidDraws * model.RegularCount
	if got := t.Overall.Sum(); got != want {
		return fmt.Sprintf("overall counts sum to %d, want %d", got, want)
	}
	return ""
}

// Sum of all special counts must equal validDraws.
func checkSpecialSum(t *frequency.Tally) string {
	if got := t.Special.Sum(); got != t.ValidDraws {
		return fmt.Sprintf("special counts sum to %d, want %d", got, t.ValidDraws)
	}
	return ""
}

// Each of the six position tables must sum to validDraws.
func checkPositionSums(t *frequency.Tally) string {
	for pos, tbl := range t.Positions {
		if got := tbl.Sum(); got != t.ValidDraws {
			return fmt.Sprintf("position %d counts sum to %d, want %d", pos, got, t.ValidDraws)
		}
	}
	return ""
}

// Slot 5 must hold the same mapping as the special table.
func checkSpecialMirror(t *frequency.Tally) string {
	if !t.Positions[model.RegularCount].Equal(t.Special) {
		return "position 5 table differs from the special-ball table"
	}
	return ""
}

// For every number, counts across positions 0–4 must add up to its
// overall count.
func checkPositionOverallAgreement(t *frequency.Tally) string {
	for _, e := range t.Overall.Sorted() {
		var sum int
		for pos := 0; pos < model.RegularCount; pos++ {
			sum += t.Positions[pos].Count(e.Number)
		}
		if sum != e.Count {
			return fmt.Sprintf("number %d sums to %d across positions, overall count is %d", e.Number, sum, e.Count)
		}
	}
	return ""
}

// Every rendered table must be non-increasing in count order.
func checkSortedNonIncreasing(t *frequency.Tally) string {
	tables := map[string]*frequency.Table{
		"overall": t.Overall,
		"special": t.Special,
	}
	for pos, tbl := range t.Positions {
		tables[fmt.Sprintf("position %d", pos)] = tbl
	}
	for name, tbl := range tables {
		entries := tbl.Sorted()
		for i := 1; i < len(entries); i++ {
			if entries[i].Count > entries[i-1].Count {
				return fmt.Sprintf("%s table is not non-increasing at rank %d", name, i)
			}
		}
	}
	return ""
}
