// Package fee holds the rental pricing rules: one currency unit per 100 pages
// of the rented book, charged monthly after the free first month.
package fee

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MonthlyFee is pages/100 rounded to 2 decimal places. Callers validate that
// pages is positive before calling.
func MonthlyFee(pages int) decimal.Decimal {
	return decimal.NewFromInt(int64(pages)).Div(hundred).Round(2)
}

// ExtensionCost is monthly*months rounded to 2 decimal places. Callers reject
// months < 1 before calling.
func ExtensionCost(monthly decimal.Decimal, months int) decimal.Decimal {
	return monthly.Mul(decimal.NewFromInt(int64(months))).Round(2)
}

// MonthsFromDays converts a day span into whole 30-day months, rounding up.
// Calendar months are deliberately not used anywhere in fee math.
func MonthsFromDays(days int) int {
	if days < 1 {
		return 0
	}
	return (days + 29) / 30
}

var numRe = regexp.MustCompile(`\d+\.?\d*`)

// Parse extracts the first numeric substring from a formatted fee such as
// "$120.00". Malformed or empty input yields zero rather than an error; the
// backend formats fees as display strings and the exact framing varies.
func Parse(s string) decimal.Decimal {
	m := numRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TotalCharges sums amounts and rounds once at the end, not per term.
func TotalCharges(amounts []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum.Round(2)
}

// Format renders an amount the way the wire contract does: "$3.20".
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
