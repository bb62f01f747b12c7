package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalActive   RentalStatus = "active"
	RentalExtended RentalStatus = "extended"
	RentalReturned RentalStatus = "returned"
)

// Rental is one student's borrowing of one book. DueDate starts at
// StartDate+30d (the free month) and moves forward 30 days per extension
// month. EndDate is the return date and is null exactly while the rental is
// not returned.
type Rental struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"user_id"`
	BookID         int64           `json:"book_id"`
	StartDate      time.Time       `json:"start_date"`
	DueDate        time.Time       `json:"free_month_ends"`
	EndDate        *time.Time      `json:"end_date,omitempty"`
	Status         RentalStatus    `json:"status"`
	TotalFee       decimal.Decimal `json:"total_fee"`
	ExtendedMonths int             `json:"extended_months"`
}

// WireStatus collapses the stored status to the two states the clients
// consume: anything not returned reads as active.
func (r Rental) WireStatus() RentalStatus {
	if r.Status == RentalReturned {
		return RentalReturned
	}
	return RentalActive
}

type CreateRentalReq struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required"`
}

type ExtendRentalReq struct {
	ExtraDays int `json:"extra_days" validate:"required,gt=0"`
}
