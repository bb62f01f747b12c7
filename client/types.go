package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the normalized rental state. The backend's status field is free
// text; decoding collapses it to these two values (see normalize.go).
type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
)

type Student struct {
	ID    string
	StuID string
	Name  string
	Email string
}

type Book struct {
	Title            string
	Author           string
	Pages            int
	CoverURL         string
	OLID             string
	FirstPublishYear int
}

// Rental is the normalized record every view works from. FreeMonthEnds is
// zero when the backend sent neither a due date nor an end date.
type Rental struct {
	ID            string
	Student       *Student
	BookTitle     string
	BookAuthor    string
	Pages         int
	StartDate     time.Time
	FreeMonthEnds time.Time
	EndDate       *time.Time
	Status        Status
	MonthlyFee    decimal.Decimal
	TotalFee      decimal.Decimal
}

func (r Rental) Returned() bool { return r.EndDate != nil }

// Overdue reports whether the free period has lapsed without a return.
// Comparison is at calendar-date granularity, the time of day of `now` is
// dropped before the subtraction.
func (r Rental) Overdue(now time.Time) bool {
	if r.Status != StatusActive || r.FreeMonthEnds.IsZero() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return DaysRemaining(r.FreeMonthEnds, today) < 0
}

// DaysRemaining is ceil((due - now) / 24h). Zero means due today; negative
// means overdue.
func DaysRemaining(due, now time.Time) int {
	d := due.Sub(now)
	const day = 24 * time.Hour
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}
