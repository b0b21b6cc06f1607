package usecase

import "testing"

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		strict bool
		want   float64
		isNil  bool
	}{
		{"plain dollar amount", "$45.00", false, 45.00, false},
		{"dollar with grouping commas", "$1,234.56", false, 1234.56, false},
		{"dollar with spaces", "$ 1 234.56", false, 1234.56, false},
		{"pound accepted loose", "£45.00", false, 45.00, false},
		{"euro accepted loose", "€99.99", false, 99.99, false},
		{"yen accepted loose", "¥1500", false, 1500, false},
		{"bare number accepted loose", "was 29.99 yesterday", false, 29.99, false},
		{"strict accepts dollar", "$45.00", true, 45.00, false},
		{"strict rejects pound", "£45.00", true, 0, true},
		{"strict rejects euro", "€45.00", true, 0, true},
		{"strict rejects peso glyph", "₱45.00", true, 0, true},
		{"strict rejects bare number", "45.00", true, 0, true},
		{"strict rejects dollar next to foreign symbol", "$45.00 (about £36)", true, 0, true},
		{"no number", "Price: see in cart", false, 0, true},
		{"empty string", "", false, 0, true},
		{"whitespace only", "   ", true, 0, true},
		{"zero rejected", "$0.00", false, 0, true},
		{"price inside noise", "Now only $19.99 today!", true, 19.99, false},
		{"non-breaking space separator", "$1 299.00", false, 1299.00, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePrice(tc.text, tc.strict)
			if tc.isNil {
				if got != nil {
					t.Errorf("ParsePrice(%q, %v) = %v, want nil", tc.text, tc.strict, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePrice(%q, %v) = nil, want %v", tc.text, tc.strict, tc.want)
			}
			if *got != tc.want {
				t.Errorf("ParsePrice(%q, %v) = %v, want %v", tc.text, tc.strict, *got, tc.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	testCases := []struct {
		name  string
		price *float64
		want  string
	}{
		{"simple amount", price(45), "$45.00"},
		{"cents kept", price(19.99), "$19.99"},
		{"thousands separator", price(1234.5), "$1,234.50"},
		{"millions", price(1234567.89), "$1,234,567.89"},
		{"nil gets placeholder", nil, PriceUnavailable},
		{"negative gets placeholder", price(-3), PriceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCurrency(tc.price); got != tc.want {
				t.Errorf("FormatCurrency = %q, want %q", got, tc.want)
			}
		})
	}
}
