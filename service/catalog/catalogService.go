package catalogsvc

import (
	"context"
	"errors"
	"strings"

	"rentaldesk/model"
	bookrepo "rentaldesk/repository/book"
	"rentaldesk/repository/openlibrary"
)

var ErrEmptyTitle = errors.New("title is required")

type Service interface {
	// Search returns locally known editions matching the title, falling back
	// to the external catalog when nothing matches. An empty result is a
	// valid empty state, not an error.
	Search(ctx context.Context, title string) ([]model.Book, error)
}

type service struct {
	books bookrepo.Repo
	ol    openlibrary.Repo
}

func New(books bookrepo.Repo, ol openlibrary.Repo) Service {
	return &service{books: books, ol: ol}
}

func (s *service) Search(ctx context.Context, title string) ([]model.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	local, err := s.books.SearchByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	b, err := s.ol.Lookup(ctx, title)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return []model.Book{}, nil
	}
	return []model.Book{*b}, nil
}
