package stockfolio

import (
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of prices, each associated with a
// specific day. Days are unique and the series is always sorted.
type History struct {
	days   []Date
	prices []decimal.Decimal
}

// Len returns the number of points in the history.
func (h *History) Len() int { return len(h.days) }

// Clear removes all points from the history.
func (h *History) Clear() {
	h.days = h.days[:0]
	h.prices = h.prices[:0]
}

// Append adds a point to the history. An existing price on that day is
// overwritten.
func (h *History) Append(on Date, price decimal.Decimal) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.prices[i] = price
		return h
	}
	h.days, h.prices = append(h.days, on), append(h.prices, price)
	h.sort()
	return h
}

// sort restores the chronological order of the series.
func (h *History) sort() {
	sort.Sort(chronological{h})
}

// chronological is a private implementation to keep days and prices sorted together.
type chronological struct{ *History }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.prices[i], s.prices[j] = s.prices[j], s.prices[i]
}

// Get returns the price on exactly 'day', or false.
func (h *History) Get(day Date) (decimal.Decimal, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.prices[i], true
	}
	return decimal.Decimal{}, false
}

// AsOf returns the price on 'day' or the most recent price strictly before
// it. It returns false when no point exists on or before the day.
func (h *History) AsOf(day Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})
	if found {
		return h.prices[i], true
	}
	// i is the insertion point, so i-1 is the last entry before 'day'.
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return h.prices[i-1], true
}

// Before returns the most recent price strictly before 'day', or false.
func (h *History) Before(day Date) (decimal.Decimal, bool) {
	return h.AsOf(day.Add(-1))
}

// First returns the earliest point in the history, or false when empty.
func (h *History) First() (Date, decimal.Decimal, bool) {
	if len(h.days) == 0 {
		return Date{}, decimal.Decimal{}, false
	}
	return h.days[0], h.prices[0], true
}

// Latest returns the latest point in the history, or false when empty.
func (h *History) Latest() (Date, decimal.Decimal, bool) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}, false
	}
	return h.days[last], h.prices[last], true
}

// Values returns an iterator over all day/price pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.prices[i]) {
				return
			}
		}
	}
}
