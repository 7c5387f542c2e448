package stockfolio

import (
	"testing"
)

func TestHistoryAppend(t *testing.T) {
	var h History
	h.Append(MustParse("2018-03-01"), d(75))
	h.Append(MustParse("2018-01-01"), d(150))
	h.Append(MustParse("2018-12-12"), d(600))

	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	first, price, _ := h.First()
	if first != MustParse("2018-01-01") || !price.Equal(d(150)) {
		t.Errorf("First = %v %v, want 2018-01-01 150", first, price)
	}
	last, price, _ := h.Latest()
	if last != MustParse("2018-12-12") || !price.Equal(d(600)) {
		t.Errorf("Latest = %v %v, want 2018-12-12 600", last, price)
	}

	// Appending on an existing day replaces the price.
	h.Append(MustParse("2018-03-01"), d(80))
	if h.Len() != 3 {
		t.Fatalf("Len after overwrite = %d, want 3", h.Len())
	}
	if price, _ := h.Get(MustParse("2018-03-01")); !price.Equal(d(80)) {
		t.Errorf("Get after overwrite = %v, want 80", price)
	}
}

func TestHistoryAsOf(t *testing.T) {
	var h History
	h.Append(MustParse("2018-01-01"), d(150))
	h.Append(MustParse("2018-07-01"), d(75))
	h.Append(MustParse("2018-12-12"), d(600))

	tests := []struct {
		day      string
		expected float64
		found    bool
	}{
		{"2018-01-01", 150, true},
		{"2018-06-30", 150, true},
		{"2018-07-01", 75, true},
		{"2018-12-11", 75, true},
		{"2019-05-05", 600, true},
		{"2017-12-31", 0, false},
	}
	for _, tt := range tests {
		price, ok := h.AsOf(MustParse(tt.day))
		if ok != tt.found {
			t.Errorf("AsOf(%s) found = %v, want %v", tt.day, ok, tt.found)
			continue
		}
		if ok && !price.Equal(d(tt.expected)) {
			t.Errorf("AsOf(%s) = %v, want %v", tt.day, price, tt.expected)
		}
	}
}

func TestHistoryBefore(t *testing.T) {
	var h History
	h.Append(MustParse("2018-01-01"), d(150))
	h.Append(MustParse("2018-07-01"), d(75))

	if price, ok := h.Before(MustParse("2018-07-01")); !ok || !price.Equal(d(150)) {
		t.Errorf("Before(2018-07-01) = %v %v, want 150 true", price, ok)
	}
	if _, ok := h.Before(MustParse("2018-01-01")); ok {
		t.Errorf("Before the first point should not be found")
	}
}

func TestHistoryValues(t *testing.T) {
	var h History
	h.Append(MustParse("2018-07-01"), d(75))
	h.Append(MustParse("2018-01-01"), d(150))

	var days []Date
	for day := range h.Values() {
		days = append(days, day)
	}
	if len(days) != 2 || days[0] != MustParse("2018-01-01") || days[1] != MustParse("2018-07-01") {
		t.Errorf("Values order = %v, want chronological", days)
	}
}
