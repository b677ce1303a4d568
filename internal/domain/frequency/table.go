// Package frequency tabulates per-number and per-position draw counts.
package frequency

import (
	"bytes"
	"sort"
	"strconv"
)

// Table is an order-preserving counting table. It keeps a sparse count per
// number plus the order in which numbers were first seen, so the rendered
// descending-count order has a stable, first-seen tie-break.
type Table struct {
	counts map[int]int
	order  []int
}

// Entry is one rendered table row.
type Entry struct {
	Number int
	Count  int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{counts: make(map[int]int)}
}

// Add increments the count for n, registering it on first sight.
func (t *Table) Add(n int) {
	if _, seen := t.counts[n]; !seen {
		t.order = append(t.order, n)
	}
	t.counts[n]++
}

// Fill ensures every number in [1, max] is present, defaulting unseen
// numbers to zero. The zero entries register in ascending order after
// everything observed, which puts them last among zero-count ties.
func (t *Table) Fill(max int) {
	for n := 1; n <= max; n++ {
		if _, seen := t.counts[n]; !seen {
			t.counts[n] = 0
			t.order = append(t.order, n)
		}
	}
}

// Count returns the count for n, zero when absent.
func (t *Table) Count(n int) int {
	return t.counts[n]
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.order)
}

// Sum returns the total of all counts.
func (t *Table) Sum() int {
	var sum int
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// Sorted renders the table in descending-count order. The sort is stable:
// equal counts keep first-seen order.
func (t *Table) Sorted() []Entry {
	entries := make([]Entry, len(t.order))
	for i, n := range t.order {
		entries[i] = Entry{Number: n, Count: t.counts[n]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// Ranked returns just the numbers of Sorted, most frequent first.
func (t *Table) Ranked() []int {
	entries := t.Sorted()
	nums := make([]int, len(entries))
	for i, e := range entries {
		nums[i] = e.Number
	}
	return nums
}

// Equal reports whether two tables hold the same number→count mapping.
// Insertion order does not participate.
func (t *Table) Equal(o *Table) bool {
	if len(t.counts) != len(o.counts) {
		return false
	}
	for n, c := range t.counts {
		if o.counts[n] != c {
			return false
		}
	}
	return true
}

// MarshalJSON renders the table as a JSON object whose keys appear in
// descending-count order. Consumers that preserve member order see the
// ranking directly; the mapping itself is unchanged for those that don't.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(e.Number))
		buf.WriteString(`":`)
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
