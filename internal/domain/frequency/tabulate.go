package frequency

import (
	"github.com/mkarami/lottostats/internal/domain/model"
)

// PositionCount is the number of per-position tables: five regular slots
// plus slot 5 for the special ball.
const PositionCount = model.RegularCount + 1

// Tally is the tabulator output for one variant: the three frequency
// tables, the sets of historical identities, and the valid-draw count that
// every table sum is measured against.
type Tally struct {
	ValidDraws  int
	Overall     *Table
	Positions   [PositionCount]*Table
	Special     *Table
	Combos      map[model.Combination]struct{}
	RegularSets map[model.RegularSet]struct{}
}

// Tabulate counts every validated draw into fresh tables.
//
// Regular numbers increment the overall table and the table of the slot
// they were drawn in (original order, not sorted); the special ball
// increments both the special table and slot 5, which therefore always
// mirror each other. Each draw's normalized identities are collected for
// the optimizer's history checks; exact repeats collapse in the sets.
// After counting, every number in range is default-filled so the rendered
// tables cover the full ball range even at zero observations.
func Tabulate(draws []model.Draw, v model.Variant) *Tally {
	t := &Tally{
		ValidDraws:  len(draws),
		Overall:     NewTable(),
		Special:     NewTable(),
		Combos:      make(map[model.Combination]struct{}, len(draws)),
		RegularSets: make(map[model.RegularSet]struct{}, len(draws)),
	}
	for i := range t.Positions {
		t.Positions[i] = NewTable()
	}

	for _, d := range draws {
		for pos, n := range d.Numbers {
			t.Overall.Add(n)
			t.Positions[pos].Add(n)
		}
		t.Special.Add(d.SpecialBall)
		t.Positions[model.RegularCount].Add(d.SpecialBall)

		t.Combos[d.Normalize()] = struct{}{}
		t.RegularSets[d.Regulars()] = struct{}{}
	}

	t.Overall.Fill(v.MaxRegular)
	for pos := 0; pos < model.RegularCount; pos++ {
		t.Positions[pos].Fill(v.MaxRegular)
	}
	t.Special.Fill(v.MaxSpecial)
	t.Positions[model.RegularCount].Fill(v.MaxSpecial)

	return t
}
