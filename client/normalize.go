package client

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"rentaldesk/util/fee"
)

const dateLayout = "2006-01-02"

// flexID accepts a JSON string or number and keeps it as a string. Record
// ids show up both ways depending on the endpoint.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// The list endpoints answer either an envelope ({"results": [...]} or
// {"rentals": [...]}) or a bare top-level array; both are valid success
// shapes and the body types below accept either.

type studentListBody struct {
	Results []rawStudent
}

func (l *studentListBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Results)
	}
	var env struct {
		Results []rawStudent `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Results = env.Results
	return nil
}

type bookListBody struct {
	Results []rawSearchBook
}

func (l *bookListBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Results)
	}
	var env struct {
		Results []rawSearchBook `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Results = env.Results
	return nil
}

type rentalListBody struct {
	Rentals []rawRental
}

func (l *rentalListBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Rentals)
	}
	var env struct {
		Rentals []rawRental `json:"rentals"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Rentals = env.Rentals
	return nil
}

// studentRentalsBody is the per-student history response; the bare-array form
// carries no student envelope.
type studentRentalsBody struct {
	Student rawStudent
	Rentals []rawRental
}

func (b *studentRentalsBody) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &b.Rentals)
	}
	var env struct {
		Student rawStudent  `json:"student"`
		Rentals []rawRental `json:"rentals"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.Student, b.Rentals = env.Student, env.Rentals
	return nil
}

type rawStudent struct {
	ID    flexID `json:"id"`
	StuID string `json:"stu_id"`
	Name  string `json:"student_name"`
	Email string `json:"email"`
}

func (r rawStudent) normalize() Student {
	return Student{ID: string(r.ID), StuID: r.StuID, Name: r.Name, Email: r.Email}
}

// rawBook accepts either a full book object or a bare title string; the
// create/extend/return responses flatten the book to its title.
type rawBook struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Pages    int    `json:"pages"`
	CoverURL string `json:"cover_url"`
}

func (r *rawBook) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.Title)
	}
	type alias rawBook
	return json.Unmarshal(b, (*alias)(r))
}

// rawSearchBook is the /api/books/search/ result shape, which uses camelCase
// keys unlike the rest of the API.
type rawSearchBook struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Pages            int    `json:"pages"`
	CoverURL         string `json:"coverUrl"`
	OLID             string `json:"olid"`
	FirstPublishYear int    `json:"firstPublishYear"`
}

func (r rawSearchBook) normalize() Book {
	return Book{
		Title:            r.Title,
		Author:           r.Author,
		Pages:            r.Pages,
		CoverURL:         r.CoverURL,
		OLID:             r.OLID,
		FirstPublishYear: r.FirstPublishYear,
	}
}

type rawRental struct {
	ID            flexID      `json:"id"`
	Student       *rawStudent `json:"student"`
	Book          rawBook     `json:"book"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	FreeMonthEnds string      `json:"free_month_ends"`
	MonthlyFee    string      `json:"monthly_fee"`
	TotalFee      string      `json:"total_fee"`
	Status        string      `json:"status"`
	BackendStatus string      `json:"backend_status"`
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// normalize maps a raw wire record onto the typed shape. The backend status
// is free text: anything containing "active" (case-insensitive) is Active,
// everything else is Returned. A present end_date always means Returned,
// even when the status text disagrees; the mismatch is logged.
func (r rawRental) normalize(log *slog.Logger) Rental {
	out := Rental{
		ID:         string(r.ID),
		BookTitle:  r.Book.Title,
		BookAuthor: r.Book.Author,
		Pages:      r.Book.Pages,
		MonthlyFee: fee.Parse(r.MonthlyFee),
		TotalFee:   fee.Parse(r.TotalFee),
	}
	if r.Student != nil {
		s := r.Student.normalize()
		out.Student = &s
	}
	if t, ok := parseDate(r.StartDate); ok {
		out.StartDate = t
	}
	if t, ok := parseDate(r.EndDate); ok {
		out.EndDate = &t
	}
	if t, ok := parseDate(r.FreeMonthEnds); ok {
		out.FreeMonthEnds = t
	} else if out.EndDate != nil {
		out.FreeMonthEnds = *out.EndDate
	}

	statusText := r.Status
	if statusText == "" {
		statusText = r.BackendStatus
	}
	if strings.Contains(strings.ToLower(statusText), "active") {
		out.Status = StatusActive
	} else {
		out.Status = StatusReturned
	}

	if out.EndDate != nil && out.Status == StatusActive {
		if log != nil {
			log.Warn("rental has end_date but active status, treating as returned",
				"rental_id", out.ID, "status", statusText)
		}
		out.Status = StatusReturned
	}
	return out
}

func normalizeRentals(raws []rawRental, log *slog.Logger) []Rental {
	out := make([]Rental, 0, len(raws))
	for _, r := range raws {
		out = append(out, r.normalize(log))
	}
	return out
}
