package stockfolio

import "fmt"

// Percent is a rate expressed in percent (5.0 means 5%).
type Percent float64

// Equal compares two percents with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString returns the percent with an explicit sign, or "-" for zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Metric is a percentage metric that may be undefined.
//
// Growth over a zero initial value and annualization over a zero-day span
// have no meaningful result; rather than letting NaN or Inf leak to callers,
// such metrics are explicitly undefined.
type Metric struct {
	value   Percent
	defined bool
}

// DefinedMetric returns a defined metric carrying p.
func DefinedMetric(p Percent) Metric { return Metric{value: p, defined: true} }

// UndefinedMetric returns the undefined metric.
func UndefinedMetric() Metric { return Metric{} }

// Defined reports whether the metric has a value.
func (m Metric) Defined() bool { return m.defined }

// Value returns the metric value and whether it is defined.
func (m Metric) Value() (Percent, bool) { return m.value, m.defined }

func (m Metric) String() string {
	if !m.defined {
		return "n/a"
	}
	return m.value.String()
}
