package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mkarami/lottostats/internal/domain/model"
)

func rawDraw(date string, first int) model.RawDraw {
	special := first%25 + 1
	return model.RawDraw{
		Date:        date,
		Numbers:     []int{first, first + 1, first + 2, first + 3, first + 4},
		SpecialBall: &special,
	}
}

func TestMemoryStoreAppend(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		Convey("When a record is appended", func() {
			added, err := s.Append(ctx, "powerball", rawDraw("2024-01-03", 5))

			Convey("Then it is stored", func() {
				So(err, ShouldBeNil)
				So(added, ShouldBeTrue)

				count, err := s.Count(ctx, "powerball")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When the same game and date is appended twice", func() {
			first, err1 := s.Append(ctx, "powerball", rawDraw("2024-01-03", 5))
			second, err2 := s.Append(ctx, "powerball", rawDraw("2024-01-03", 20))

			Convey("Then the second append is a no-op", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first, ShouldBeTrue)
				So(second, ShouldBeFalse)

				draws, err := s.List(ctx, "powerball")
				So(err, ShouldBeNil)
				So(len(draws), ShouldEqual, 1)
				So(draws[0].Numbers, ShouldResemble, []int{5, 6, 7, 8, 9})
			})
		})

		Convey("When the same date appears under two games", func() {
			_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-03", 5))
			added, err := s.Append(ctx, "mega-millions", rawDraw("2024-01-03", 12))

			Convey("Then both records are kept", func() {
				So(err, ShouldBeNil)
				So(added, ShouldBeTrue)

				pbCount, _ := s.Count(ctx, "powerball")
				mmCount, _ := s.Count(ctx, "mega-millions")
				So(pbCount, ShouldEqual, 1)
				So(mmCount, ShouldEqual, 1)
			})
		})
	})
}

func TestMemoryStoreList(t *testing.T) {
	Convey("Given a store with several records", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-03", 5))
		_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-06", 12))
		_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-10", 40))

		Convey("When records are listed", func() {
			draws, err := s.List(ctx, "powerball")

			Convey("Then insertion order is preserved", func() {
				So(err, ShouldBeNil)
				So(len(draws), ShouldEqual, 3)
				So(draws[0].Date, ShouldEqual, "2024-01-03")
				So(draws[1].Date, ShouldEqual, "2024-01-06")
				So(draws[2].Date, ShouldEqual, "2024-01-10")
			})
		})

		Convey("When the returned slice is mutated", func() {
			draws, _ := s.List(ctx, "powerball")
			draws[0].Date = "1999-01-01"

			Convey("Then the store is unaffected", func() {
				again, _ := s.List(ctx, "powerball")
				So(again[0].Date, ShouldEqual, "2024-01-03")
			})
		})

		Convey("When an unknown game is listed", func() {
			draws, err := s.List(ctx, "euromillions")

			Convey("Then the result is empty", func() {
				So(err, ShouldBeNil)
				So(len(draws), ShouldEqual, 0)
			})
		})
	})
}

func TestMemoryStoreLatest(t *testing.T) {
	Convey("Given a store with out-of-order appends", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-10", 40))
		_, _ = s.Append(ctx, "powerball", rawDraw("2023-12-30", 2))
		_, _ = s.Append(ctx, "powerball", rawDraw("2024-01-06", 12))

		Convey("When the latest record is requested", func() {
			latest, err := s.Latest(ctx, "powerball")

			Convey("Then the record with the highest date wins", func() {
				So(err, ShouldBeNil)
				So(latest.Date, ShouldEqual, "2024-01-10")
			})
		})

		Convey("When a game has no records", func() {
			_, err := s.Latest(ctx, "euromillions")

			Convey("Then ErrNoDraws is returned", func() {
				So(errors.Is(err, ErrNoDraws), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStoreSeed(t *testing.T) {
	Convey("Given a seed with a duplicate date", t, func() {
		seed := map[string][]model.RawDraw{
			"powerball": {
				rawDraw("2024-01-03", 5),
				rawDraw("2024-01-03", 30),
				rawDraw("2024-01-06", 12),
			},
		}

		Convey("When a store is created with the seed", func() {
			s := NewMemoryStore(WithSeedDraws(seed))
			ctx := context.Background()

			Convey("Then the first occurrence of the duplicate wins", func() {
				draws, err := s.List(ctx, "powerball")
				So(err, ShouldBeNil)
				So(len(draws), ShouldEqual, 2)
				So(draws[0].Numbers, ShouldResemble, []int{5, 6, 7, 8, 9})
			})

			Convey("And appending the seeded date is a no-op", func() {
				added, err := s.Append(ctx, "powerball", rawDraw("2024-01-06", 1))
				So(err, ShouldBeNil)
				So(added, ShouldBeFalse)
			})
		})
	})
}

func TestMemoryStoreConcurrency(t *testing.T) {
	Convey("Given concurrent appends from many goroutines", t, func() {
		s := NewMemoryStore()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					date := fmt.Sprintf("2024-%02d-%02d", id%12+1, j%28+1)
					_, _ = s.Append(ctx, "powerball", rawDraw(date, j%60+1))
				}
			}(i)
		}
		wg.Wait()

		Convey("Then every stored record has a distinct date", func() {
			draws, err := s.List(ctx, "powerball")
			So(err, ShouldBeNil)

			dates := make(map[string]struct{}, len(draws))
			for _, d := range draws {
				dates[d.Date] = struct{}{}
			}
			So(len(dates), ShouldEqual, len(draws))

			count, _ := s.Count(ctx, "powerball")
			So(count, ShouldEqual, len(draws))
		})
	})
}
