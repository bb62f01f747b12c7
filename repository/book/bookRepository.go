package bookrepo

import (
	"context"
	"database/sql"

	"rentaldesk/model"
)

type Repo interface {
	Insert(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ByTitle(ctx context.Context, title string) (*model.Book, error)
	SearchByTitle(ctx context.Context, q string) ([]model.Book, error)
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, author, pages, cover_url, olid, first_publish_year)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Pages, b.CoverURL, b.OLID, b.FirstPublishYear,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author, pages, cover_url, olid, first_publish_year
		FROM books
		WHERE id = $1`
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Pages, &b.CoverURL, &b.OLID, &b.FirstPublishYear,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ByTitle matches the full title case-insensitively, oldest row first so a
// re-rented title maps to the same snapshot.
func (r *repo) ByTitle(ctx context.Context, title string) (*model.Book, error) {
	const q = `
		SELECT id, title, author, pages, cover_url, olid, first_publish_year
		FROM books
		WHERE lower(title) = lower($1)
		ORDER BY id
		LIMIT 1`
	b := &model.Book{}
	err := r.db.QueryRowContext(ctx, q, title).Scan(
		&b.ID, &b.Title, &b.Author, &b.Pages, &b.CoverURL, &b.OLID, &b.FirstPublishYear,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) SearchByTitle(ctx context.Context, q string) ([]model.Book, error) {
	const query = `
		SELECT id, title, author, pages, cover_url, olid, first_publish_year
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, q)
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

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
