package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a statement amount into an exact decimal,
// normalizing the separator conventions seen across bank exports:
// "1 234,56", "1.234,56", "1,234.56", "-45,32", "2500.00". Binary
// floats are never involved, so repeated imports cannot drift.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' || r == ' ' || r == '\'' {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		// The rightmost separator is the decimal mark; the other one
		// is a thousands separator.
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			// Multiple commas with no dot: thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q", raw)
	}
	return d, nil
}
