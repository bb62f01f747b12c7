package fee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMonthlyFee(t *testing.T) {
	require.Equal(t, "3.20", MonthlyFee(320).StringFixed(2))
	require.Equal(t, "2.18", MonthlyFee(218).StringFixed(2))
	require.Equal(t, "0.01", MonthlyFee(1).StringFixed(2))
}

func TestMonthlyFee_Monotonic(t *testing.T) {
	prev := decimal.Zero
	for pages := 1; pages <= 1000; pages += 37 {
		cur := MonthlyFee(pages)
		require.True(t, cur.GreaterThanOrEqual(prev), "fee must not decrease at %d pages", pages)
		prev = cur
	}
}

func TestExtensionCost(t *testing.T) {
	monthly := MonthlyFee(320)
	require.Equal(t, "3.20", ExtensionCost(monthly, 1).StringFixed(2))
	require.Equal(t, "9.60", ExtensionCost(monthly, 3).StringFixed(2))
}

func TestMonthsFromDays(t *testing.T) {
	require.Equal(t, 0, MonthsFromDays(0))
	require.Equal(t, 0, MonthsFromDays(-30))
	require.Equal(t, 1, MonthsFromDays(1))
	require.Equal(t, 1, MonthsFromDays(30))
	require.Equal(t, 2, MonthsFromDays(31))
	require.Equal(t, 3, MonthsFromDays(90))
}

func TestParse(t *testing.T) {
	require.Equal(t, "120.00", Parse("$120.00").StringFixed(2))
	require.Equal(t, "80.50", Parse("$80.50").StringFixed(2))
	require.Equal(t, "3.20", Parse("3.20").StringFixed(2))
	require.True(t, Parse("").IsZero())
	require.True(t, Parse("free").IsZero())
}

func TestTotalCharges(t *testing.T) {
	require.Equal(t, "0.00", TotalCharges(nil).StringFixed(2))

	got := TotalCharges([]decimal.Decimal{Parse("$120.00"), Parse("$80.50")})
	require.Equal(t, "200.50", got.StringFixed(2))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "$3.20", Format(MonthlyFee(320)))
	require.Equal(t, "$0.00", Format(decimal.Zero))
}
