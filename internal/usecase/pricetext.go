package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	// $ 1,234.56 / £1 234,99-style amounts with an explicit currency symbol
	symbolPriceRegex = regexp.MustCompile(`([$£€¥])\s*([0-9][0-9,.\s\x{00a0}]*)`)

	// Bare numeric amounts like "1,234.56" or "45"
	barePriceRegex = regexp.MustCompile(`([0-9]+(?:[0-9,.\s\x{00a0}]*[0-9])?(?:\.[0-9]{1,2})?)`)

	// Any non-dollar currency symbol disqualifies the text in strict mode
	foreignSymbolRegex = regexp.MustCompile(`[£€¥₱₹₩]`)
)

// PriceUnavailable is rendered when no numeric price can be shown.
const PriceUnavailable = "Price unavailable"

// ParsePrice extracts the first currency-like amount from loose page text.
// In strict mode only a $-prefixed amount is accepted and any foreign
// currency symbol anywhere in the text rejects it outright, so a peso price
// rendered with a dollar-like glyph is never misread as USD. Returns nil
// when no plausible positive number is found; never panics.
func ParsePrice(text string, strictUSD bool) *float64 {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if strictUSD {
		if foreignSymbolRegex.MatchString(text) {
			return nil
		}
		m := symbolPriceRegex.FindStringSubmatch(text)
		if m == nil || m[1] != "$" {
			return nil
		}
		return parseAmount(m[2])
	}

	if m := symbolPriceRegex.FindStringSubmatch(text); m != nil {
		if v := parseAmount(m[2]); v != nil {
			return v
		}
	}

	if m := barePriceRegex.FindStringSubmatch(text); m != nil {
		return parseAmount(m[1])
	}

	return nil
}

// parseAmount strips grouping separators and parses the remaining number.
// Returns nil for unparseable or non-positive values.
func parseAmount(raw string) *float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', ' ':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	cleaned = strings.TrimRight(cleaned, ".")

	if cleaned == "" {
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value <= 0 {
		return nil
	}

	return &value
}

// FormatCurrency renders a price as a USD display string, with thousands
// separators. Nil gets the fixed unavailable placeholder.
func FormatCurrency(price *float64) string {
	if price == nil || *price != *price || *price < 0 { // nil, NaN, nonsense
		return PriceUnavailable
	}

	s := strconv.FormatFloat(*price, 'f', 2, 64)

	// Insert thousands separators into the integer part
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return "$" + b.String() + fracPart
}
