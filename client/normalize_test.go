package client

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalize_StatusFromFreeText(t *testing.T) {
	cases := []struct {
		text string
		want Status
	}{
		{"active", StatusActive},
		{"Active", StatusActive},
		{"ACTIVE (extended)", StatusActive},
		{"currently active", StatusActive},
		{"returned", StatusReturned},
		{"done", StatusReturned},
		{"", StatusReturned},
	}
	for _, tc := range cases {
		r := rawRental{ID: "1", Status: tc.text, FreeMonthEnds: "2026-03-01"}.normalize(discard())
		require.Equal(t, tc.want, r.Status, "status text %q", tc.text)
	}
}

func TestNormalize_BackendStatusIsFallbackOnly(t *testing.T) {
	// status is authoritative; an extended rental arrives as status "active"
	// with backend_status "extended" and must stay active
	r := rawRental{ID: "1", Status: "active", BackendStatus: "extended", FreeMonthEnds: "2026-03-01"}.normalize(discard())
	require.Equal(t, StatusActive, r.Status)

	// only when status is absent does the raw backend text get consulted
	r = rawRental{ID: "2", BackendStatus: "Active", FreeMonthEnds: "2026-03-01"}.normalize(discard())
	require.Equal(t, StatusActive, r.Status)
}

func TestNormalize_FreeMonthEndsFallsBackToEndDate(t *testing.T) {
	r := rawRental{ID: "1", Status: "returned", EndDate: "2026-02-10"}.normalize(discard())
	require.NotNil(t, r.EndDate)
	require.Equal(t, *r.EndDate, r.FreeMonthEnds)

	// neither date known
	r = rawRental{ID: "2", Status: "active"}.normalize(discard())
	require.True(t, r.FreeMonthEnds.IsZero())
}

func TestNormalize_EndDateWinsOverActiveText(t *testing.T) {
	r := rawRental{
		ID:            "1",
		Status:        "active",
		EndDate:       "2026-02-10",
		FreeMonthEnds: "2026-02-01",
	}.normalize(discard())
	require.Equal(t, StatusReturned, r.Status)
	require.True(t, r.Returned())
}

func TestNormalize_Fees(t *testing.T) {
	r := rawRental{ID: "1", Status: "active", MonthlyFee: "$3.20", TotalFee: "$9.60", FreeMonthEnds: "2026-03-01"}.normalize(discard())
	require.Equal(t, "3.2", r.MonthlyFee.String())
	require.Equal(t, "9.6", r.TotalFee.String())

	// malformed fee strings decay to zero, never an error
	r = rawRental{ID: "2", Status: "active", TotalFee: "n/a", FreeMonthEnds: "2026-03-01"}.normalize(discard())
	require.True(t, r.TotalFee.IsZero())
}

func TestFlexID_StringOrNumber(t *testing.T) {
	var raw rawRental
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7}`), &raw))
	require.Equal(t, flexID("7"), raw.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "7"}`), &raw))
	require.Equal(t, flexID("7"), raw.ID)
}

func TestRawBook_ObjectOrTitleString(t *testing.T) {
	var raw rawRental
	require.NoError(t, json.Unmarshal([]byte(`{"book": {"title": "Dune", "author": "Frank Herbert", "pages": 412}}`), &raw))
	require.Equal(t, "Dune", raw.Book.Title)
	require.Equal(t, 412, raw.Book.Pages)

	require.NoError(t, json.Unmarshal([]byte(`{"book": "Dune"}`), &raw))
	require.Equal(t, "Dune", raw.Book.Title)
}

func TestDaysRemaining(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	now := day("2026-02-10")
	require.Equal(t, 0, DaysRemaining(day("2026-02-10"), now))
	require.Equal(t, 1, DaysRemaining(day("2026-02-11"), now))
	require.Equal(t, -1, DaysRemaining(day("2026-02-09"), now))
	require.Equal(t, 30, DaysRemaining(day("2026-03-12"), now))
}

func TestOverdue_Boundary(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	r := Rental{Status: StatusActive, FreeMonthEnds: day("2026-02-10")}

	require.False(t, r.Overdue(day("2026-02-09")))
	// due today is not overdue yet
	require.False(t, r.Overdue(day("2026-02-10")))
	require.True(t, r.Overdue(day("2026-02-11")))

	// time of day is dropped before comparison
	require.False(t, r.Overdue(time.Date(2026, 2, 10, 23, 59, 0, 0, time.UTC)))

	// returned rentals are never overdue, however old
	r.Status = StatusReturned
	require.False(t, r.Overdue(day("2030-01-01")))

	// no known due date means no overdue verdict
	r = Rental{Status: StatusActive}
	require.False(t, r.Overdue(day("2026-02-10")))
}
