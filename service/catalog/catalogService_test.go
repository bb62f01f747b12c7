package catalogsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"rentaldesk/model"
	catalogsvc "rentaldesk/service/catalog"
)

type bookRepoMock struct {
	insertFn func(ctx context.Context, b *model.Book) error
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
	byTitle  func(ctx context.Context, title string) (*model.Book, error)
	searchFn func(ctx context.Context, q string) ([]model.Book, error)
	countFn  func(ctx context.Context) (int64, error)
}

func (m *bookRepoMock) Insert(ctx context.Context, b *model.Book) error { return m.insertFn(ctx, b) }
func (m *bookRepoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *bookRepoMock) ByTitle(ctx context.Context, title string) (*model.Book, error) {
	return m.byTitle(ctx, title)
}
func (m *bookRepoMock) SearchByTitle(ctx context.Context, q string) ([]model.Book, error) {
	return m.searchFn(ctx, q)
}
func (m *bookRepoMock) Count(ctx context.Context) (int64, error) { return m.countFn(ctx) }

type olMock struct {
	lookupFn func(ctx context.Context, title string) (*model.Book, error)
}

func (m *olMock) Lookup(ctx context.Context, title string) (*model.Book, error) {
	return m.lookupFn(ctx, title)
}

func TestSearch_EmptyTitle(t *testing.T) {
	s := catalogsvc.New(&bookRepoMock{}, &olMock{})
	_, err := s.Search(context.Background(), "  ")
	require.ErrorIs(t, err, catalogsvc.ErrEmptyTitle)
}

func TestSearch_LocalHit(t *testing.T) {
	m := &bookRepoMock{
		searchFn: func(ctx context.Context, q string) ([]model.Book, error) {
			return []model.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 412}}, nil
		},
	}
	ol := &olMock{lookupFn: func(ctx context.Context, title string) (*model.Book, error) {
		t.Fatal("external catalog must not be hit on a local match")
		return nil, nil
	}}
	s := catalogsvc.New(m, ol)

	got, err := s.Search(context.Background(), "Dune")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Frank Herbert", got[0].Author)
}

func TestSearch_ExternalFallback(t *testing.T) {
	m := &bookRepoMock{
		searchFn: func(ctx context.Context, q string) ([]model.Book, error) { return nil, nil },
	}
	ol := &olMock{lookupFn: func(ctx context.Context, title string) (*model.Book, error) {
		return &model.Book{Title: "Atomic Habits", Author: "James Clear", Pages: 320}, nil
	}}
	s := catalogsvc.New(m, ol)

	got, err := s.Search(context.Background(), "Atomic Habits")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 320, got[0].Pages)
}

func TestSearch_NothingFound(t *testing.T) {
	m := &bookRepoMock{
		searchFn: func(ctx context.Context, q string) ([]model.Book, error) { return nil, nil },
	}
	ol := &olMock{lookupFn: func(ctx context.Context, title string) (*model.Book, error) {
		return nil, nil
	}}
	s := catalogsvc.New(m, ol)

	got, err := s.Search(context.Background(), "no such book")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearch_ExternalError(t *testing.T) {
	m := &bookRepoMock{
		searchFn: func(ctx context.Context, q string) ([]model.Book, error) { return nil, nil },
	}
	ol := &olMock{lookupFn: func(ctx context.Context, title string) (*model.Book, error) {
		return nil, errors.New("upstream down")
	}}
	s := catalogsvc.New(m, ol)

	_, err := s.Search(context.Background(), "Dune")
	require.Error(t, err)
}
