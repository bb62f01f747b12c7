package client

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk/util/fee"
)

// Summary holds the dashboard counters. All counts are scoped to the
// filtered view; TotalCharges alone is summed over the entire collection
// regardless of the active filter.
type Summary struct {
	Total        int
	Active       int
	Returned     int
	Overdue      int
	TotalCharges decimal.Decimal
}

// Profile is the per-student block shown when a single student is selected.
// It covers the student's full history and ignores any search term.
type Profile struct {
	Total    int
	Active   int
	Returned int
	Overdue  int
}

// Filter keeps rentals matching both the student selection and the search
// term. An empty or "all" studentID selects every student. The term matches
// as a case-insensitive substring of the book title, the student name or the
// student identifier; an empty term matches everything.
func Filter(rentals []Rental, term, studentID string) []Rental {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Rental, 0, len(rentals))
	for _, r := range rentals {
		if !studentMatch(r, studentID) || !searchMatch(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func studentMatch(r Rental, studentID string) bool {
	if studentID == "" || studentID == "all" {
		return true
	}
	return r.Student != nil && r.Student.ID == studentID
}

func searchMatch(r Rental, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.BookTitle), term) {
		return true
	}
	if r.Student == nil {
		return false
	}
	return strings.Contains(strings.ToLower(r.Student.Name), term) ||
		strings.Contains(strings.ToLower(r.Student.StuID), term)
}

// Summarize computes the dashboard counters. `view` is the filtered slice
// the counts describe; `all` is the unfiltered collection the grand fee
// total is taken from.
func Summarize(all, view []Rental, now time.Time) Summary {
	s := Summary{Total: len(view)}
	for _, r := range view {
		if r.Status == StatusActive {
			s.Active++
			if r.Overdue(now) {
				s.Overdue++
			}
		} else {
			s.Returned++
		}
	}
	fees := make([]decimal.Decimal, 0, len(all))
	for _, r := range all {
		fees = append(fees, r.TotalFee)
	}
	s.TotalCharges = fee.TotalCharges(fees)
	return s
}

// StudentProfile counts over one student's full rental history, applying
// only the student filter.
func StudentProfile(all []Rental, studentID string, now time.Time) Profile {
	var p Profile
	for _, r := range all {
		if !studentMatch(r, studentID) {
			continue
		}
		p.Total++
		if r.Status == StatusActive {
			p.Active++
			if r.Overdue(now) {
				p.Overdue++
			}
		} else {
			p.Returned++
		}
	}
	return p
}
