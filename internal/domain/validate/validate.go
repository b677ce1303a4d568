// Package validate filters malformed draw records before tabulation.
package validate

import (
	"time"

	"github.com/mkarami/lottostats/internal/domain/model"
)

// DateLayout is the wire format for draw dates.
const DateLayout = "2006-01-02"

// Partition splits raw records into validated draws and a count of
// rejected ones. A record is valid iff it carries exactly five regular
// numbers and a non-null special ball; everything else is counted as
// missing data and excluded. Rejection is reported by the caller, never
// fatal.
//
// An unparseable date does not reject a record: the engine only needs the
// numbers, so the Date field is simply left zero.
func Partition(raws []model.RawDraw) (valid []model.Draw, rejected int) {
	valid = make([]model.Draw, 0, len(raws))
	for _, r := range raws {
		if len(r.Numbers) != model.RegularCount || r.SpecialBall == nil {
			rejected++
			continue
		}
		d := model.Draw{SpecialBall: *r.SpecialBall}
		copy(d.Numbers[:], r.Numbers)
		if ts, err := time.Parse(DateLayout, r.Date); err == nil {
			d.Date = ts
		}
		valid = append(valid, d)
	}
	return valid, rejected
}
