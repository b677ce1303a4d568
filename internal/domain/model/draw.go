// Package model contains domain models passed between layers.
package model

import (
	"sort"
	"time"
)

// RegularCount is the number of regular balls in every supported game.
const RegularCount = 5

// RawDraw mirrors the external draw-record shape: an ISO-8601 date, the
// regular numbers in drawn order, and an optional special ball.
type RawDraw struct {
	Date        string `json:"date"`
	Numbers     []int  `json:"numbers"`
	SpecialBall *int   `json:"specialBall"`
}

// Draw is a validated draw record. Numbers keep the original drawn order.
type Draw struct {
	Date        time.Time
	Numbers     [RegularCount]int
	SpecialBall int
}

// Combination is the normalized identity of a full draw: the regular
// numbers sorted ascending followed by the special ball. Two draws are the
// same combination iff their Combinations are equal, regardless of date or
// drawn order.
type Combination [RegularCount + 1]int

// RegularSet is the normalized identity of the five regular numbers only.
type RegularSet [RegularCount]int

// Normalize returns the draw's Combination.
func (d Draw) Normalize() Combination {
	return NewCombination(d.Numbers, d.SpecialBall)
}

// Regulars returns the draw's sorted regular-number identity.
func (d Draw) Regulars() RegularSet {
	var s RegularSet
	copy(s[:], d.Numbers[:])
	sort.Ints(s[:])
	return s
}

// NewCombination builds a Combination from unsorted regular numbers and a
// special ball.
func NewCombination(numbers [RegularCount]int, special int) Combination {
	var c Combination
	copy(c[:RegularCount], numbers[:])
	sort.Ints(c[:RegularCount])
	c[RegularCount] = special
	return c
}

// Regulars returns the combination's regular-number identity.
func (c Combination) Regulars() RegularSet {
	var s RegularSet
	copy(s[:], c[:RegularCount])
	return s
}

// Special returns the combination's special ball.
func (c Combination) Special() int {
	return c[RegularCount]
}
