package analyticssvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"rentaldesk/model"
	bookrepo "rentaldesk/repository/book"
	rentalrepo "rentaldesk/repository/rental"
	studentrepo "rentaldesk/repository/student"
)

var ErrStudentNotFound = errors.New("student not found")

const topBooksLimit = 5

type Overview struct {
	TotalRentals   int64
	ActiveRentals  int64
	TotalRevenue   decimal.Decimal
	TotalStudents  int64
	TotalBooks     int64
	TopBooks       []rentalrepo.TopBook
	RevenueByMonth []rentalrepo.MonthRevenue
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	// Recommendations suggests unrented books by authors the student has
	// rented before. An empty list is a valid result.
	Recommendations(ctx context.Context, studentID int64) ([]model.Book, error)
}

type service struct {
	rentals  rentalrepo.Repo
	students studentrepo.Repo
	books    bookrepo.Repo
}

func New(rr rentalrepo.Repo, sr studentrepo.Repo, br bookrepo.Repo) Service {
	return &service{rentals: rr, students: sr, books: br}
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	total, active, err := s.rentals.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.rentals.RevenueTotal(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.students.Count(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.books.Count(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.rentals.TopBooks(ctx, topBooksLimit)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.rentals.RevenueByMonth(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalRentals:   total,
		ActiveRentals:  active,
		TotalRevenue:   revenue.Round(2),
		TotalStudents:  students,
		TotalBooks:     books,
		TopBooks:       top,
		RevenueByMonth: byMonth,
	}, nil
}

func (s *service) Recommendations(ctx context.Context, studentID int64) ([]model.Book, error) {
	student, err := s.students.ByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.rentals.RecommendationsForUser(ctx, student.UserID, topBooksLimit)
}
