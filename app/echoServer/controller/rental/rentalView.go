package rental

import (
	"time"

	"github.com/labstack/echo/v4"

	"rentaldesk/model"
	rentalsvc "rentaldesk/service/rental"
	"rentaldesk/util/fee"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

// detailView is the rental object returned by create/extend/return. The book
// is flattened to its title there, matching the wire contract.
func detailView(d *rentalsvc.Detail) echo.Map {
	return echo.Map{
		"id":              d.Rental.ID,
		"book":            d.Book.Title,
		"start_date":      formatDate(d.Rental.StartDate),
		"end_date":        formatDatePtr(d.Rental.EndDate),
		"free_month_ends": formatDate(d.Rental.DueDate),
		"status":          d.Rental.WireStatus(),
		"backend_status":  d.Rental.Status,
		"total_fee":       fee.Format(d.Rental.TotalFee),
		"monthly_fee":     fee.Format(d.MonthlyFee()),
	}
}

func bookView(b model.Book) echo.Map {
	return echo.Map{
		"title":     b.Title,
		"author":    b.Author,
		"pages":     b.Pages,
		"cover_url": b.CoverURL,
	}
}

func studentView(s *model.Student) any {
	if s == nil {
		return nil
	}
	return echo.Map{
		"id":         s.ID,
		"name":       s.StudentName,
		"email":      s.Email,
		"student_id": s.StuID,
	}
}

// rowView is one entry of the rentals list: full student + book snapshot,
// display-formatted fees, and the status collapsed for clients alongside the
// stored one.
func rowView(r rentalsvc.Row) echo.Map {
	return echo.Map{
		"id":              r.Rental.ID,
		"student":         studentView(r.Student),
		"book":            bookView(r.Book),
		"start_date":      formatDate(r.Rental.StartDate),
		"end_date":        formatDatePtr(r.Rental.EndDate),
		"free_month_ends": formatDate(r.Rental.DueDate),
		"monthly_fee":     fee.Format(fee.MonthlyFee(r.Book.Pages)),
		"total_fee":       fee.Format(r.Rental.TotalFee),
		"status":          r.Rental.WireStatus(),
		"backend_status":  r.Rental.Status,
	}
}

// historyView is a rowView without the student, used by the per-student
// endpoint where the student is the envelope.
func historyView(r rentalsvc.Row) echo.Map {
	return echo.Map{
		"id":              r.Rental.ID,
		"book":            bookView(r.Book),
		"start_date":      formatDate(r.Rental.StartDate),
		"end_date":        formatDatePtr(r.Rental.EndDate),
		"free_month_ends": formatDate(r.Rental.DueDate),
		"monthly_fee":     fee.Format(fee.MonthlyFee(r.Book.Pages)),
		"total_fee":       fee.Format(r.Rental.TotalFee),
		"status":          r.Rental.WireStatus(),
	}
}
