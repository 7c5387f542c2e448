package stockfolio

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHoldingQuantities(t *testing.T) {
	txs := []Transaction{
		tx("2018-01-01", "187", 5),
		tx("2018-01-01", "186", 7),
		tx("2018-07-01", "187", 20),
		tx("2018-12-01", "187", -10),
	}

	got := HoldingQuantities(txs, nil)
	want := Holdings{"187": d(15), "186": d(7)}
	if !got.Equal(want) {
		t.Errorf("HoldingQuantities = %v, want %v", got, want)
	}

	// Seeded with initial holdings.
	got = HoldingQuantities(txs[2:], Holdings{"187": d(5), "186": d(7)})
	if !got.Equal(want) {
		t.Errorf("HoldingQuantities with seed = %v, want %v", got, want)
	}
}

func TestValueOn(t *testing.T) {
	day := MustParse("2018-05-01")
	prices := PriceTable{day: {"187": d(150), "186": d(221)}}
	holdings := Holdings{"187": d(10), "186": d(2), "185": d(100)}

	// 185 has no price on that day and contributes nothing.
	got := ValueOn(day, holdings, prices)
	if !got.Equal(d(1942)) {
		t.Errorf("ValueOn = %v, want 1942", got)
	}
}

func TestDateCashflow(t *testing.T) {
	day := MustParse("2018-07-01")
	prices := PriceTable{day: {"187": d(75)}}
	previous := &HoldingPeriod{Holdings: Holdings{"187": d(5)}}

	got := dateCashflow(day, Holdings{"187": d(25)}, prices, previous)
	if !got.Equal(d(1500)) {
		t.Errorf("dateCashflow = %v, want 1500", got)
	}
	if got := dateCashflow(day, Holdings{"187": d(25)}, prices, nil); !got.IsZero() {
		t.Errorf("dateCashflow without previous = %v, want 0", got)
	}
}

func TestHoldingPeriods(t *testing.T) {
	prices := PriceTable{
		MustParse("2018-06-30"): {"187": d(150)},
		MustParse("2018-07-01"): {"187": d(75)},
		MustParse("2018-12-01"): {"187": d(150)},
		MustParse("2018-12-05"): {"187": d(150)},
	}
	txs := []Transaction{
		tx("2018-07-01", "187", 20),
		tx("2018-12-01", "187", -10),
	}

	periods, err := HoldingPeriods(txs, prices,
		PeriodBound{Date: MustParse("2018-06-30"), PreviousHoldings: Holdings{"187": d(5)}},
		PeriodBound{Date: MustParse("2018-12-05")},
	)
	if err != nil {
		t.Fatalf("HoldingPeriods: %v", err)
	}
	if len(periods) != 4 {
		t.Fatalf("got %d periods, want 4", len(periods))
	}

	expected := []struct {
		date  string
		value float64
		vac   float64
		rate  float64
	}{
		{"2018-06-30", 750, 750, 0},
		{"2018-07-01", 375, 1875, -0.5},
		{"2018-12-01", 3750, 2250, 1},
		{"2018-12-05", 2250, 2250, 0},
	}
	for i, want := range expected {
		p := periods[i]
		if p.Date != MustParse(want.date) {
			t.Errorf("period %d date = %v, want %s", i, p.Date, want.date)
		}
		if !p.Value.Equal(d(want.value)) {
			t.Errorf("period %d value = %v, want %v", i, p.Value, want.value)
		}
		if !p.ValueAfterCashflow.Equal(d(want.vac)) {
			t.Errorf("period %d value after cashflow = %v, want %v", i, p.ValueAfterCashflow, want.vac)
		}
		if !p.ReturnRate.Equal(d(want.rate)) {
			t.Errorf("period %d return rate = %v, want %v", i, p.ReturnRate, want.rate)
		}
	}
}

func TestHoldingPeriodsMergesSameDay(t *testing.T) {
	prices := PriceTable{
		MustParse("2018-01-01"): {"187": d(150), "186": d(300)},
		MustParse("2018-02-01"): {"187": d(150), "186": d(300)},
	}
	txs := []Transaction{
		tx("2018-01-01", "187", 5),
		tx("2018-01-01", "186", 7),
	}

	periods, err := HoldingPeriods(txs, prices,
		PeriodBound{Date: MustParse("2018-01-01")},
		PeriodBound{Date: MustParse("2018-02-01")},
	)
	if err != nil {
		t.Fatalf("HoldingPeriods: %v", err)
	}
	// Both trades fall on the window start: one boundary, plus the terminal.
	if len(periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(periods))
	}
	if !periods[0].Holdings.Equal(Holdings{"187": d(5), "186": d(7)}) {
		t.Errorf("boundary holdings = %v, want both trades merged", periods[0].Holdings)
	}
}

func TestHoldingPeriodsRejectsEarlyTransaction(t *testing.T) {
	txs := []Transaction{tx("2018-01-01", "187", 5)}
	_, err := HoldingPeriods(txs, PriceTable{},
		PeriodBound{Date: MustParse("2018-06-01")},
		PeriodBound{Date: MustParse("2018-12-01")},
	)
	if !errors.Is(err, ErrTransactionBeforeWindow) {
		t.Fatalf("err = %v, want ErrTransactionBeforeWindow", err)
	}
}

func TestTimeWeightedReturnRate(t *testing.T) {
	prices := PriceTable{
		MustParse("2018-07-01"): {"187": d(75)},
		MustParse("2018-12-12"): {"187": d(600)},
	}

	rate, err := TimeWeightedReturnRate(nil, prices,
		PeriodBound{Date: MustParse("2018-07-01"), PreviousHoldings: Holdings{"187": d(1)}},
		PeriodBound{Date: MustParse("2018-12-12")},
	)
	if err != nil {
		t.Fatalf("TimeWeightedReturnRate: %v", err)
	}
	if !rate.Equal(d(7)) {
		t.Errorf("rate = %v, want 7", rate)
	}
}

// Splitting a window at a transaction-free date and chain-linking the two
// sub-window rates must equal the whole-window rate.
func TestTimeWeightedReturnRateChainLinks(t *testing.T) {
	prices := PriceTable{
		MustParse("2018-06-30"): {"187": d(150)},
		MustParse("2018-07-01"): {"187": d(75)},
		MustParse("2018-09-05"): {"187": d(80)},
		MustParse("2018-12-01"): {"187": d(150)},
		MustParse("2018-12-05"): {"187": d(150)},
	}
	txs := []Transaction{
		tx("2018-07-01", "187", 20),
		tx("2018-12-01", "187", -10),
	}
	mid := MustParse("2018-09-05")

	whole, err := TimeWeightedReturnRate(txs, prices,
		PeriodBound{Date: MustParse("2018-06-30"), PreviousHoldings: Holdings{"187": d(5)}},
		PeriodBound{Date: MustParse("2018-12-05")},
	)
	if err != nil {
		t.Fatalf("whole window: %v", err)
	}

	r1, err := TimeWeightedReturnRate(txs[:1], prices,
		PeriodBound{Date: MustParse("2018-06-30"), PreviousHoldings: Holdings{"187": d(5)}},
		PeriodBound{Date: mid},
	)
	if err != nil {
		t.Fatalf("first sub-window: %v", err)
	}
	r2, err := TimeWeightedReturnRate(txs[1:], prices,
		PeriodBound{Date: mid, PreviousHoldings: Holdings{"187": d(25)}},
		PeriodBound{Date: MustParse("2018-12-05")},
	)
	if err != nil {
		t.Fatalf("second sub-window: %v", err)
	}

	one := decimal.NewFromInt(1)
	chained, _ := one.Add(r1).Mul(one.Add(r2)).Sub(one).Float64()
	w, _ := whole.Float64()
	if math.Abs(chained-w) > 1e-9 {
		t.Errorf("chained = %v, whole = %v", chained, w)
	}
}
