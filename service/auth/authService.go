package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"rentaldesk/model"
	userrepo "rentaldesk/repository/user"
	"rentaldesk/util/hash"
	jwtutil "rentaldesk/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrNoAccount     ErrCode = "NO_ACCOUNT"
	ErrInvalidCreds  ErrCode = "INVALID_CREDS"
	ErrBadInput      ErrCode = "BAD_INPUT"
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

const (
	accessTTL  = time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, jwtutil.Pair, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, jwtutil.Pair, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, jwtutil.Pair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || req.Password == "" {
		return nil, jwtutil.Pair{}, makeErr(ErrBadInput)
	}

	if _, err := s.ur.ByEmail(ctx, email); err == nil {
		return nil, jwtutil.Pair{}, makeErr(ErrEmailTaken)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, jwtutil.Pair{}, err
	}
	taken, err := s.ur.UsernameExists(ctx, username)
	if err != nil {
		return nil, jwtutil.Pair{}, err
	}
	if taken {
		return nil, jwtutil.Pair{}, makeErr(ErrUsernameTaken)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, jwtutil.Pair{}, err
	}

	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, jwtutil.Pair{}, derr
		}
		return nil, jwtutil.Pair{}, err
	}

	tokens, err := jwtutil.IssuePair(s.secret, u.ID, u.Email, accessTTL, refreshTTL)
	if err != nil {
		return nil, jwtutil.Pair{}, err
	}
	return u, tokens, nil
}

// mapDuplicateErr covers the race the pre-check cannot: the unique index fires
// inside the insert.
func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "users_email") || strings.Contains(msg, "email") {
			return makeErr(ErrEmailTaken)
		}
		if strings.Contains(cn, "users_username") || strings.Contains(msg, "username") {
			return makeErr(ErrUsernameTaken)
		}
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, jwtutil.Pair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, jwtutil.Pair{}, makeErr(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, jwtutil.Pair{}, makeErr(ErrNoAccount)
		}
		return nil, jwtutil.Pair{}, err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, jwtutil.Pair{}, makeErr(ErrInvalidCreds)
	}

	tokens, err := jwtutil.IssuePair(s.secret, u.ID, u.Email, accessTTL, refreshTTL)
	if err != nil {
		return nil, jwtutil.Pair{}, err
	}
	return u, tokens, nil
}
