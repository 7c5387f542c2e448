package stockfolio

import "testing"

func TestMoneyString(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		expected string
	}{
		{1942, "EUR", "€1.942,00"},
		{1234.56, "USD", "$1,234.56"},
		{1500, "CLP", "$1.500"},
	}
	for _, tt := range tests {
		got := M(d(tt.amount), tt.currency).String()
		if got != tt.expected {
			t.Errorf("M(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.expected)
		}
	}
}

func TestPercentEqual(t *testing.T) {
	if !Percent(50).Equal(50.00009) {
		t.Errorf("percents within precision should be equal")
	}
	if Percent(50).Equal(50.1) {
		t.Errorf("percents beyond precision should differ")
	}
}

func TestPercentString(t *testing.T) {
	tests := []struct {
		percent Percent
		plain   string
		signed  string
	}{
		{50, "50.00%", "+50.00%"},
		{-65.1515, "-65.15%", "-65.15%"},
		{0, "0.00%", "-"},
	}
	for _, tt := range tests {
		if got := tt.percent.String(); got != tt.plain {
			t.Errorf("Percent(%v).String() = %q, want %q", float64(tt.percent), got, tt.plain)
		}
		if got := tt.percent.SignedString(); got != tt.signed {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", float64(tt.percent), got, tt.signed)
		}
	}
}

func TestMetric(t *testing.T) {
	if UndefinedMetric().Defined() {
		t.Errorf("UndefinedMetric is defined")
	}
	if UndefinedMetric().String() != "n/a" {
		t.Errorf("UndefinedMetric.String() = %q", UndefinedMetric().String())
	}
	m := DefinedMetric(50)
	if value, ok := m.Value(); !ok || !value.Equal(50) {
		t.Errorf("DefinedMetric(50).Value() = %v %v", value, ok)
	}
	if m.String() != "50.00%" {
		t.Errorf("DefinedMetric(50).String() = %q", m.String())
	}
}
