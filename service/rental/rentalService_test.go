package rentalsvc

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"rentaldesk/model"
	"rentaldesk/util/fee"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExtendRental_MovesDueDateByFixed30DayMonths(t *testing.T) {
	r := model.Rental{
		StartDate: day("2026-01-10"),
		DueDate:   day("2026-02-09"),
		Status:    model.RentalActive,
		TotalFee:  decimal.Zero,
	}

	got := extendRental(r, fee.MonthlyFee(320), 2)
	require.Equal(t, day("2026-04-10"), got.DueDate)
	require.Equal(t, 2, got.ExtendedMonths)
	require.Equal(t, model.RentalExtended, got.Status)
}

func TestExtendRental_AccruesExactlyMonthsTimesMonthly(t *testing.T) {
	monthly := fee.MonthlyFee(218) // 2.18
	r := model.Rental{
		DueDate:  day("2026-02-09"),
		Status:   model.RentalActive,
		TotalFee: decimal.RequireFromString("4.36"),
	}

	got := extendRental(r, monthly, 3)
	require.Equal(t, "10.90", got.TotalFee.StringFixed(2)) // 4.36 + 3*2.18
	require.NotEqual(t, model.RentalReturned, got.Status)
}

func TestExtendRental_Repeatable(t *testing.T) {
	monthly := fee.MonthlyFee(100) // 1.00
	r := model.Rental{DueDate: day("2026-02-09"), Status: model.RentalActive, TotalFee: decimal.Zero}

	r = extendRental(r, monthly, 1)
	r = extendRental(r, monthly, 1)
	require.Equal(t, "2.00", r.TotalFee.StringFixed(2))
	require.Equal(t, 2, r.ExtendedMonths)
	require.Equal(t, day("2026-04-10"), r.DueDate)
}

func TestReturnRental_FreezesFeeAndSetsEndDate(t *testing.T) {
	r := model.Rental{
		DueDate:  day("2026-02-09"),
		Status:   model.RentalExtended,
		TotalFee: decimal.RequireFromString("6.40"),
	}

	end := day("2026-03-01")
	got := returnRental(r, end)
	require.Equal(t, model.RentalReturned, got.Status)
	require.NotNil(t, got.EndDate)
	require.Equal(t, end, *got.EndDate)
	require.Equal(t, "6.40", got.TotalFee.StringFixed(2))
}

func TestWireStatus_CollapsesExtendedToActive(t *testing.T) {
	require.Equal(t, model.RentalActive, model.Rental{Status: model.RentalActive}.WireStatus())
	require.Equal(t, model.RentalActive, model.Rental{Status: model.RentalExtended}.WireStatus())
	require.Equal(t, model.RentalReturned, model.Rental{Status: model.RentalReturned}.WireStatus())
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrAlreadyReturned, Code(makeErr(ErrAlreadyReturned)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
