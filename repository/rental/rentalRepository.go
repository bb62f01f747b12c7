package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"rentaldesk/model"
)

// Row is a rental joined with its book snapshot and, when the borrowing user
// has a student profile, that profile.
type Row struct {
	Rental  model.Rental
	Book    model.Book
	Student *model.Student
}

type TopBook struct {
	Book        model.Book
	RentalCount int64
}

type MonthRevenue struct {
	Month   string // YYYY-MM
	Revenue decimal.Decimal
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error)
	ApplyExtension(ctx context.Context, tx *sql.Tx, rentalID int64, due time.Time, total decimal.Decimal, months int) error
	MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64, end time.Time, total decimal.Decimal) error

	ListAll(ctx context.Context) ([]Row, error)
	ListByUser(ctx context.Context, userID int64) ([]Row, error)

	// Analytics
	CountAll(ctx context.Context) (total, active int64, err error)
	RevenueTotal(ctx context.Context) (decimal.Decimal, error)
	RevenueByMonth(ctx context.Context) ([]MonthRevenue, error)
	TopBooks(ctx context.Context, limit int) ([]TopBook, error)
	RecommendationsForUser(ctx context.Context, userID int64, limit int) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (user_id, book_id, start_date, due_date, status, total_fee)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		m.UserID, m.BookID, m.StartDate, m.DueDate, m.Status, m.TotalFee,
	).Scan(&m.ID)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, rentalID int64) (*model.Rental, error) {
	const q = `
		SELECT id, user_id, book_id, start_date, due_date, end_date, status, total_fee, extended_months
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	m := &model.Rental{}
	err := tx.QueryRowContext(ctx, q, rentalID).Scan(
		&m.ID, &m.UserID, &m.BookID, &m.StartDate, &m.DueDate, &m.EndDate,
		&m.Status, &m.TotalFee, &m.ExtendedMonths,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) ApplyExtension(ctx context.Context, tx *sql.Tx, rentalID int64, due time.Time, total decimal.Decimal, months int) error {
	const q = `
		UPDATE rentals
		SET due_date = $2,
			total_fee = $3,
			extended_months = extended_months + $4,
			status = 'extended'
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, due, total, months)
	return err
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, rentalID int64, end time.Time, total decimal.Decimal) error {
	const q = `
		UPDATE rentals
		SET status = 'returned',
			end_date = $2,
			total_fee = $3
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, rentalID, end, total)
	return err
}

const rowSelect = `
	SELECT
		r.id, r.user_id, r.book_id, r.start_date, r.due_date, r.end_date,
		r.status, r.total_fee, r.extended_months,
		b.id, b.title, b.author, b.pages, b.cover_url, b.olid, b.first_publish_year,
		s.id, s.user_id, s.stu_id, s.student_name, s.email, s.date_created
	FROM rentals r
	JOIN books b ON b.id = r.book_id
	LEFT JOIN students s ON s.user_id = r.user_id`

func (r *repo) ListAll(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		ORDER BY r.start_date DESC, r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, rowSelect+`
		WHERE r.user_id = $1
		ORDER BY r.start_date DESC, r.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var row Row
		var (
			sID          sql.NullInt64
			sUserID      sql.NullInt64
			sStuID       sql.NullString
			sName        sql.NullString
			sEmail       sql.NullString
			sDateCreated sql.NullTime
		)
		if err := rows.Scan(
			&row.Rental.ID, &row.Rental.UserID, &row.Rental.BookID,
			&row.Rental.StartDate, &row.Rental.DueDate, &row.Rental.EndDate,
			&row.Rental.Status, &row.Rental.TotalFee, &row.Rental.ExtendedMonths,
			&row.Book.ID, &row.Book.Title, &row.Book.Author, &row.Book.Pages,
			&row.Book.CoverURL, &row.Book.OLID, &row.Book.FirstPublishYear,
			&sID, &sUserID, &sStuID, &sName, &sEmail, &sDateCreated,
		); err != nil {
			return nil, err
		}
		if sID.Valid {
			row.Student = &model.Student{
				ID:          sID.Int64,
				UserID:      sUserID.Int64,
				StuID:       sStuID.String,
				StudentName: sName.String,
				Email:       sEmail.String,
				DateCreated: sDateCreated.Time,
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Analytics

func (r *repo) CountAll(ctx context.Context) (int64, int64, error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status <> 'returned')
		FROM rentals`
	var total, active int64
	err := r.db.QueryRowContext(ctx, q).Scan(&total, &active)
	return total, active, err
}

func (r *repo) RevenueTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_fee), 0) FROM rentals`).Scan(&total)
	return total, err
}

func (r *repo) RevenueByMonth(ctx context.Context) ([]MonthRevenue, error) {
	const q = `
		SELECT to_char(start_date, 'YYYY-MM') AS month, SUM(total_fee)
		FROM rentals
		GROUP BY month
		ORDER BY month`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRevenue
	for rows.Next() {
		var m MonthRevenue
		if err := rows.Scan(&m.Month, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) TopBooks(ctx context.Context, limit int) ([]TopBook, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.pages, b.cover_url, b.olid, b.first_publish_year,
			COUNT(r.id) AS rental_count
		FROM books b
		JOIN rentals r ON r.book_id = b.id
		GROUP BY b.id
		ORDER BY rental_count DESC, b.id
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopBook
	for rows.Next() {
		var t TopBook
		if err := rows.Scan(
			&t.Book.ID, &t.Book.Title, &t.Book.Author, &t.Book.Pages,
			&t.Book.CoverURL, &t.Book.OLID, &t.Book.FirstPublishYear,
			&t.RentalCount,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// RecommendationsForUser suggests unrented books by authors the user has
// already rented from.
func (r *repo) RecommendationsForUser(ctx context.Context, userID int64, limit int) ([]model.Book, error) {
	const q = `
		SELECT b.id, b.title, b.author, b.pages, b.cover_url, b.olid, b.first_publish_year
		FROM books b
		WHERE b.author IN (
			SELECT DISTINCT b2.author
			FROM rentals r2
			JOIN books b2 ON b2.id = r2.book_id
			WHERE r2.user_id = $1
		)
		AND b.id NOT IN (
			SELECT r3.book_id FROM rentals r3 WHERE r3.user_id = $1
		)
		ORDER BY b.id
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Pages, &b.CoverURL, &b.OLID, &b.FirstPublishYear); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
