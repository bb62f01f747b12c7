package studentsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentaldesk/model"
	studentrepo "rentaldesk/repository/student"
	"rentaldesk/util/hash"
	jwtutil "rentaldesk/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken ErrCode = "EMAIL_TAKEN"
	ErrNotFound   ErrCode = "NOT_FOUND"
	ErrBadInput   ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// DefaultPassword is the well-known bootstrap password given to students
// created by staff. Students are expected to change it on first login.
const DefaultPassword = "Password@123"

type Created struct {
	Student model.Student
	Tokens  jwtutil.Pair
}

type Service interface {
	Add(ctx context.Context, req model.AddStudentReq) (*Created, error)
	List(ctx context.Context, search string) ([]model.Student, error)
	ByID(ctx context.Context, id int64) (*model.Student, error)
}

type service struct {
	db     *sql.DB
	r      studentrepo.Repo
	secret string
}

func New(db *sql.DB, r studentrepo.Repo, secret string) Service {
	return &service{db: db, r: r, secret: secret}
}

// Add creates the backing login user and the student profile in one
// transaction.
func (s *service) Add(ctx context.Context, req model.AddStudentReq) (out *Created, err error) {
	name := strings.TrimSpace(req.StudentName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" {
		return nil, makeErr(ErrBadInput)
	}

	taken, err := s.r.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, makeErr(ErrEmailTaken)
	}

	hashed, err := hash.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
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

	u := &model.User{Username: name, Email: email, PasswordHash: hashed}
	if err = s.r.CreateUser(ctx, tx, u); err != nil {
		return nil, err
	}

	st := model.Student{
		UserID:      u.ID,
		StuID:       uuid.NewString(),
		StudentName: name,
		Email:       email,
	}
	if err = s.r.CreateProfile(ctx, tx, &st); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	tokens, err := jwtutil.IssuePair(s.secret, u.ID, u.Email, time.Hour, 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &Created{Student: st, Tokens: tokens}, nil
}

func (s *service) List(ctx context.Context, search string) ([]model.Student, error) {
	return s.r.List(ctx, strings.TrimSpace(search))
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return st, nil
}
