package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/query"
)

// ErrNotFound is returned when a record cannot be located.
var ErrNotFound = errors.New("store: not found")

// LinkQuery is the storage contract for list rendering: the predicate
// selects rows, Sort orders them and the window bounds the fetch.
// Bounded with a non-positive Limit fetches nothing rather than everything.
type LinkQuery struct {
	Predicate query.Predicate
	Sort      query.Sort
	Offset    int
	Limit     int
	Bounded   bool
}

// Repository defines base helpers reused by entity-specific interfaces.
type Repository[T any] interface {
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
}

// LinkRepository reads and writes link records.
type LinkRepository interface {
	Repository[domain.Link]
	GetByName(ctx context.Context, name string) (*domain.Link, error)
	Find(ctx context.Context, q LinkQuery) ([]domain.Link, error)
	Count(ctx context.Context, predicate query.Predicate) (int, error)
}

// AuthorDirectory resolves author logins and display names.
type AuthorDirectory interface {
	Repository[domain.Author]
	LoginsByRealName(ctx context.Context, names []string) ([]string, error)
	RealName(ctx context.Context, login string) (string, error)
}

// CategoryDirectory resolves category titles.
type CategoryDirectory interface {
	Repository[domain.Category]
	Title(ctx context.Context, name, kind string) (string, error)
}

// FormRepository stores named forms evaluated by list tags.
type FormRepository interface {
	Repository[domain.Form]
	GetByName(ctx context.Context, name string) (*domain.Form, error)
	List(ctx context.Context) ([]domain.Form, error)
}
