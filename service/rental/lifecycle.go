package rentalsvc

import (
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk/model"
	"rentaldesk/util/fee"
)

// Pure state transitions. The database row is the authority; these compute
// the projection the repository then persists.

func extendRental(r model.Rental, monthly decimal.Decimal, months int) model.Rental {
	r.DueDate = r.DueDate.Add(time.Duration(months) * daysPerMonth * 24 * time.Hour)
	r.TotalFee = r.TotalFee.Add(fee.ExtensionCost(monthly, months)).Round(2)
	r.ExtendedMonths += months
	r.Status = model.RentalExtended
	return r
}

func returnRental(r model.Rental, end time.Time) model.Rental {
	r.EndDate = &end
	r.Status = model.RentalReturned
	// TotalFee stays frozen: charges accrue on extension, never on return.
	return r
}
