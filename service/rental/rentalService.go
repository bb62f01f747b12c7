package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk/model"
	bookrepo "rentaldesk/repository/book"
	"rentaldesk/repository/openlibrary"
	rentalrepo "rentaldesk/repository/rental"
	studentrepo "rentaldesk/repository/student"
	"rentaldesk/util/fee"
)

// errors used by controllers

type ErrCode string

const (
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrRentalNotFound  ErrCode = "RENTAL_NOT_FOUND"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrNoPageCount     ErrCode = "NO_PAGE_COUNT"
	ErrBadExtension    ErrCode = "BAD_EXTENSION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// freePeriod is the no-charge window granted on every new rental. Months are
// a fixed 30 days everywhere in fee math, never calendar months.
const freePeriod = 30 * 24 * time.Hour

const daysPerMonth = 30

// Detail is a rental together with its book snapshot, as returned by the
// mutating operations.
type Detail struct {
	Rental model.Rental
	Book   model.Book
}

// MonthlyFee is derived from the immutable page snapshot, so it never changes
// after creation.
func (d Detail) MonthlyFee() decimal.Decimal { return fee.MonthlyFee(d.Book.Pages) }

type Row = rentalrepo.Row

type Service interface {
	// Create rents a book (found locally or fetched from the external
	// catalog) to a student. The first month is free: total_fee starts at
	// zero and the due date at start+30d.
	Create(ctx context.Context, studentID int64, title string) (*Detail, error)

	// Extend moves the due date forward by whole 30-day months and accrues
	// the extension cost. extraDays is what clients send (months*30); partial
	// months round up.
	Extend(ctx context.Context, rentalID int64, extraDays int) (*Detail, error)

	// Return marks an active rental returned and freezes its total fee.
	// A second return of the same rental is an error, not a no-op.
	Return(ctx context.Context, rentalID int64) (*Detail, error)

	ListAll(ctx context.Context) ([]Row, decimal.Decimal, error)
	ByStudent(ctx context.Context, studentID int64) (*model.Student, []Row, decimal.Decimal, error)
}

type service struct {
	db       *sql.DB
	rentals  rentalrepo.Repo
	books    bookrepo.Repo
	students studentrepo.Repo
	ol       openlibrary.Repo
	now      func() time.Time
}

func New(db *sql.DB, rr rentalrepo.Repo, br bookrepo.Repo, sr studentrepo.Repo, ol openlibrary.Repo) Service {
	return &service{db: db, rentals: rr, books: br, students: sr, ol: ol, now: time.Now}
}

func (s *service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, studentID int64, title string) (out *Detail, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, makeErr(ErrBookNotFound)
	}

	student, err := s.students.ByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrStudentNotFound)
		}
		return nil, err
	}

	book, err := s.findOrFetchBook(ctx, title)
	if err != nil {
		return nil, err
	}
	if book.Pages <= 0 {
		return nil, makeErr(ErrNoPageCount)
	}

	start := s.today()
	rental := model.Rental{
		UserID:    student.UserID,
		BookID:    book.ID,
		StartDate: start,
		DueDate:   start.Add(freePeriod),
		Status:    model.RentalActive,
		TotalFee:  decimal.Zero,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.rentals.Insert(ctx, tx, &rental); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &Detail{Rental: rental, Book: *book}, nil
}

// findOrFetchBook resolves a title against the local snapshot table first and
// falls back to the external catalog, persisting what it finds.
func (s *service) findOrFetchBook(ctx context.Context, title string) (*model.Book, error) {
	book, err := s.books.ByTitle(ctx, title)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	book, err = s.ol.Lookup(ctx, title)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	if err := s.books.Insert(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *service) Extend(ctx context.Context, rentalID int64, extraDays int) (out *Detail, err error) {
	months := fee.MonthsFromDays(extraDays)
	if months < 1 {
		return nil, makeErr(ErrBadExtension)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}
	if rental.Status == model.RentalReturned {
		return nil, makeErr(ErrAlreadyReturned)
	}

	book, err := s.books.ByID(ctx, rental.BookID)
	if err != nil {
		return nil, err
	}

	updated := extendRental(*rental, fee.MonthlyFee(book.Pages), months)
	if err = s.rentals.ApplyExtension(ctx, tx, updated.ID, updated.DueDate, updated.TotalFee, months); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &Detail{Rental: updated, Book: *book}, nil
}

func (s *service) Return(ctx context.Context, rentalID int64) (out *Detail, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	rental, err := s.rentals.GetForUpdate(ctx, tx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrRentalNotFound)
		}
		return nil, err
	}
	if rental.Status == model.RentalReturned {
		return nil, makeErr(ErrAlreadyReturned)
	}

	book, err := s.books.ByID(ctx, rental.BookID)
	if err != nil {
		return nil, err
	}

	updated := returnRental(*rental, s.today())
	if err = s.rentals.MarkReturned(ctx, tx, updated.ID, *updated.EndDate, updated.TotalFee); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &Detail{Rental: updated, Book: *book}, nil
}

func (s *service) ListAll(ctx context.Context) ([]Row, decimal.Decimal, error) {
	rows, err := s.rentals.ListAll(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return rows, sumFees(rows), nil
}

func (s *service) ByStudent(ctx context.Context, studentID int64) (*model.Student, []Row, decimal.Decimal, error) {
	student, err := s.students.ByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, decimal.Zero, makeErr(ErrStudentNotFound)
		}
		return nil, nil, decimal.Zero, err
	}

	rows, err := s.rentals.ListByUser(ctx, student.UserID)
	if err != nil {
		return nil, nil, decimal.Zero, err
	}
	return student, rows, sumFees(rows), nil
}

func sumFees(rows []Row) decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(rows))
	for _, r := range rows {
		amounts = append(amounts, r.Rental.TotalFee)
	}
	return fee.TotalCharges(amounts)
}
