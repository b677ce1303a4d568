package frequency_test

import (
	"encoding/json"
	"testing"

	frequency "github.com/mkarami/lottostats/internal/domain/frequency"
	model "github.com/mkarami/lottostats/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given a counting table", t, func() {
		tbl := frequency.NewTable()

		Convey("When numbers are added", func() {
			tbl.Add(7)
			tbl.Add(3)
			tbl.Add(7)

			Convey("Then counts accumulate", func() {
				So(tbl.Count(7), ShouldEqual, 2)
				So(tbl.Count(3), ShouldEqual, 1)
				So(tbl.Count(99), ShouldEqual, 0)
				So(tbl.Sum(), ShouldEqual, 3)
			})

			Convey("Then Sorted is descending by count", func() {
				entries := tbl.Sorted()
				So(entries[0], ShouldResemble, frequency.Entry{Number: 7, Count: 2})
				So(entries[1], ShouldResemble, frequency.Entry{Number: 3, Count: 1})
			})
		})

		Convey("When counts tie", func() {
			tbl.Add(9)
			tbl.Add(2)
			tbl.Add(5)

			Convey("Then first-seen order breaks the tie", func() {
				So(tbl.Ranked(), ShouldResemble, []int{9, 2, 5})
			})
		})

		Convey("When filled to a range", func() {
			tbl.Add(4)
			tbl.Add(4)
			tbl.Fill(6)

			Convey("Then every number in range is present", func() {
				So(tbl.Len(), ShouldEqual, 6)
				for n := 1; n <= 6; n++ {
					if n == 4 {
						So(tbl.Count(n), ShouldEqual, 2)
					} else {
						So(tbl.Count(n), ShouldEqual, 0)
					}
				}
			})

			Convey("Then filled zeros rank after observed numbers, ascending", func() {
				So(tbl.Ranked(), ShouldResemble, []int{4, 1, 2, 3, 5, 6})
			})
		})
	})
}

func TestTableMarshalJSON(t *testing.T) {
	Convey("Given a filled table", t, func() {
		tbl := frequency.NewTable()
		tbl.Add(3)
		tbl.Add(3)
		tbl.Add(1)
		tbl.Fill(4)

		Convey("Then JSON keys appear in descending-count order", func() {
			data, err := json.Marshal(tbl)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"3":2,"1":1,"2":0,"4":0}`)
		})
	})
}

func drawsOf(rows ...[6]int) []model.Draw {
	draws := make([]model.Draw, len(rows))
	for i, row := range rows {
		copy(draws[i].Numbers[:], row[:5])
		draws[i].SpecialBall = row[5]
	}
	return draws
}

func TestTabulate(t *testing.T) {
	variant := model.Variant{Name: "test", MaxRegular: 70, MaxSpecial: 25}

	Convey("Given a handful of draws", t, func() {
		draws := drawsOf(
			[6]int{10, 20, 30, 40, 50, 7},
			[6]int{20, 10, 30, 41, 50, 7},
			[6]int{1, 2, 3, 4, 5, 6},
		)
		tally := frequency.Tabulate(draws, variant)

		Convey("Then the overall table sums to draws times five", func() {
			So(tally.ValidDraws, ShouldEqual, 3)
			So(tally.Overall.Sum(), ShouldEqual, 15)
			So(tally.Overall.Count(10), ShouldEqual, 2)
			So(tally.Overall.Count(41), ShouldEqual, 1)
		})

		Convey("Then the special table sums to the draw count", func() {
			So(tally.Special.Sum(), ShouldEqual, 3)
			So(tally.Special.Count(7), ShouldEqual, 2)
		})

		Convey("Then every position table sums to the draw count", func() {
			for _, pos := range tally.Positions {
				So(pos.Sum(), ShouldEqual, 3)
			}
		})

		Convey("Then position counts reflect drawn order, not sorted order", func() {
			So(tally.Positions[0].Count(10), ShouldEqual, 1)
			So(tally.Positions[0].Count(20), ShouldEqual, 1)
			So(tally.Positions[1].Count(10), ShouldEqual, 1)
			So(tally.Positions[1].Count(20), ShouldEqual, 1)
		})

		Convey("Then slot 5 mirrors the special table", func() {
			So(tally.Positions[5].Equal(tally.Special), ShouldBeTrue)
		})

		Convey("Then tables are filled across the whole range", func() {
			So(tally.Overall.Len(), ShouldEqual, 70)
			So(tally.Special.Len(), ShouldEqual, 25)
			for pos := 0; pos < 5; pos++ {
				So(tally.Positions[pos].Len(), ShouldEqual, 70)
			}
			So(tally.Positions[5].Len(), ShouldEqual, 25)
		})

		Convey("Then per-position counts add up to the overall count", func() {
			for n := 1; n <= variant.MaxRegular; n++ {
				var sum int
				for pos := 0; pos < 5; pos++ {
					sum += tally.Positions[pos].Count(n)
				}
				So(sum, ShouldEqual, tally.Overall.Count(n))
			}
		})
	})

	Convey("Given exact duplicate draws", t, func() {
		draws := drawsOf(
			[6]int{1, 2, 3, 4, 5, 6},
			[6]int{1, 2, 3, 4, 5, 6},
		)
		tally := frequency.Tabulate(draws, variant)

		Convey("Then counts double but the combination set collapses", func() {
			So(tally.ValidDraws, ShouldEqual, 2)
			So(tally.Overall.Count(1), ShouldEqual, 2)
			So(tally.Special.Count(6), ShouldEqual, 2)
			So(tally.Combos, ShouldHaveLength, 1)
			So(tally.Combos, ShouldContainKey, model.Combination{1, 2, 3, 4, 5, 6})
			So(tally.RegularSets, ShouldHaveLength, 1)
		})
	})

	Convey("Given reordered draws of the same combination", t, func() {
		draws := drawsOf(
			[6]int{1, 2, 3, 4, 5, 6},
			[6]int{5, 4, 3, 2, 1, 6},
		)
		tally := frequency.Tabulate(draws, variant)

		Convey("Then the combination set still collapses to one entry", func() {
			So(tally.Combos, ShouldHaveLength, 1)
		})
	})

	Convey("Given no draws", t, func() {
		tally := frequency.Tabulate(nil, variant)

		Convey("Then all tables are zero but fully populated", func() {
			So(tally.ValidDraws, ShouldEqual, 0)
			So(tally.Overall.Sum(), ShouldEqual, 0)
			So(tally.Overall.Len(), ShouldEqual, 70)
			So(tally.Special.Len(), ShouldEqual, 25)
			So(tally.Combos, ShouldBeEmpty)
		})
	})
}
