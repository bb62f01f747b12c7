package studentrepo

import (
	"context"
	"database/sql"

	"rentaldesk/model"
)

type Repo interface {
	// CreateUser and CreateProfile run inside one transaction: a student is
	// always backed by a login user.
	CreateUser(ctx context.Context, tx *sql.Tx, u *model.User) error
	CreateProfile(ctx context.Context, tx *sql.Tx, s *model.Student) error

	EmailExists(ctx context.Context, email string) (bool, error)
	ByID(ctx context.Context, id int64) (*model.Student, error)
	List(ctx context.Context, search string) ([]model.Student, error)
	Count(ctx context.Context) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) CreateUser(ctx context.Context, tx *sql.Tx, u *model.User) error {
	return tx.QueryRowContext(ctx, `
		INSERT INTO users(username, email, password_hash)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) CreateProfile(ctx context.Context, tx *sql.Tx, s *model.Student) error {
	return tx.QueryRowContext(ctx, `
		INSERT INTO students(user_id, stu_id, student_name, email)
		VALUES ($1,$2,$3,$4)
		RETURNING id, date_created`,
		s.UserID, s.StuID, s.StudentName, s.Email,
	).Scan(&s.ID, &s.DateCreated)
}

func (r *repo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		email,
	).Scan(&exists)
	return exists, err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Student, error) {
	s := &model.Student{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, stu_id, student_name, email, date_created
		FROM students
		WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.UserID, &s.StuID, &s.StudentName, &s.Email, &s.DateCreated)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) List(ctx context.Context, search string) ([]model.Student, error) {
	const q = `
		SELECT id, user_id, stu_id, student_name, email, date_created
		FROM students
		WHERE $1 = '' OR student_name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY student_name, id`
	rows, err := r.db.QueryContext(ctx, q, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.UserID, &s.StuID, &s.StudentName, &s.Email, &s.DateCreated); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}
