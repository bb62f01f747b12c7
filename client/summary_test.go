package client

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func aliceRentals(t *testing.T) []Rental {
	alice := &Student{ID: "1", StuID: "stu-0001", Name: "Alice"}
	bob := &Student{ID: "2", StuID: "stu-0002", Name: "Bob"}
	returnedAt := day(t, "2026-01-20")
	return []Rental{
		{
			ID: "10", Student: alice, BookTitle: "Dune",
			FreeMonthEnds: day(t, "2026-02-09"), // yesterday
			Status:        StatusActive,
			TotalFee:      money("4.12"),
		},
		{
			ID: "11", Student: alice, BookTitle: "Neuromancer",
			EndDate: &returnedAt, FreeMonthEnds: returnedAt,
			Status:   StatusReturned,
			TotalFee: money("2.71"),
		},
		{
			ID: "12", Student: bob, BookTitle: "Snow Crash",
			FreeMonthEnds: day(t, "2026-03-01"),
			Status:        StatusActive,
			TotalFee:      money("4.40"),
		},
	}
}

func TestSummarize_AliceScenario(t *testing.T) {
	all := aliceRentals(t)
	now := day(t, "2026-02-10")

	view := Filter(all, "", "1")
	s := Summarize(all, view, now)

	require.Equal(t, 2, s.Total)
	require.Equal(t, 1, s.Active)
	require.Equal(t, 1, s.Returned)
	require.Equal(t, 1, s.Overdue)
}

func TestSummarize_TotalChargesIsGlobal(t *testing.T) {
	all := aliceRentals(t)
	now := day(t, "2026-02-10")

	// filtered down to one student, charges still cover everyone
	view := Filter(all, "", "1")
	s := Summarize(all, view, now)
	require.True(t, s.TotalCharges.Equal(money("11.23")), "got %s", s.TotalCharges)

	// empty view, same grand total
	s = Summarize(all, nil, now)
	require.Equal(t, 0, s.Total)
	require.True(t, s.TotalCharges.Equal(money("11.23")))
}

func TestFilter_SearchTerm(t *testing.T) {
	all := aliceRentals(t)

	// matches book title, case-insensitive substring
	require.Len(t, Filter(all, "dUnE", ""), 1)
	// matches student name
	require.Len(t, Filter(all, "alice", ""), 2)
	// matches student identifier
	require.Len(t, Filter(all, "stu-0002", ""), 1)
	// no match yields empty, not nil-panic
	require.Empty(t, Filter(all, "zzzz", ""))
	// empty term keeps the full student-filtered set
	require.Len(t, Filter(all, "", ""), 3)
	require.Len(t, Filter(all, "   ", "all"), 3)
	// both predicates must hold
	require.Empty(t, Filter(all, "snow", "1"))
}

func TestStudentProfile_IgnoresSearchTerm(t *testing.T) {
	all := aliceRentals(t)
	now := day(t, "2026-02-10")

	// the profile always covers the student's full history; callers apply
	// search terms to the list view only
	p := StudentProfile(all, "1", now)
	require.Equal(t, Profile{Total: 2, Active: 1, Returned: 1, Overdue: 1}, p)

	p = StudentProfile(all, "2", now)
	require.Equal(t, Profile{Total: 1, Active: 1}, p)

	p = StudentProfile(all, "404", now)
	require.Equal(t, Profile{}, p)
}
