// Package stats assembles the per-variant statistics object served to
// consumers. Pure packaging: all computation happens upstream.
package stats

import (
	"strconv"

	"github.com/mkarami/lottostats/internal/domain/frequency"
	"github.com/mkarami/lottostats/internal/domain/model"
)

// Result is the root statistics object for one lottery variant. Frequency
// tables serialize as JSON objects in descending-count order; the
// frequencyAtPosition keys are "0".."5" with slot 5 holding the special
// ball.
type Result struct {
	Type                        string                      `json:"type"`
	TotalDraws                  int                         `json:"totalDraws"`
	Frequency                   *frequency.Table            `json:"frequency"`
	FrequencyAtPosition         map[string]*frequency.Table `json:"frequencyAtPosition"`
	SpecialBallFrequency        *frequency.Table            `json:"specialBallFrequency"`
	OptimizedByPosition         model.Combination           `json:"optimizedByPosition"`
	OptimizedByGeneralFrequency model.Combination           `json:"optimizedByGeneralFrequency"`
}

// Assemble packages a tally and the two optimized combinations under the
// variant's wire name.
func Assemble(v model.Variant, t *frequency.Tally, byPosition, byGlobal model.Combination) *Result {
	positions := make(map[string]*frequency.Table, frequency.PositionCount)
	for pos, tbl := range t.Positions {
		positions[strconv.Itoa(pos)] = tbl
	}
	return &Result{
		Type:                        v.Name,
		TotalDraws:                  t.ValidDraws,
		Frequency:                   t.Overall,
		FrequencyAtPosition:         positions,
		SpecialBallFrequency:        t.Special,
		OptimizedByPosition:         byPosition,
		OptimizedByGeneralFrequency: byGlobal,
	}
}
