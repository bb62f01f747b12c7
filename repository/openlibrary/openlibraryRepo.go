package openlibrary

import (
	"context"

	"rentaldesk/model"
)

// Repo is the external catalog boundary. Lookup returns nil when no edition
// matches the title.
type Repo interface {
	Lookup(ctx context.Context, title string) (*model.Book, error)
}
