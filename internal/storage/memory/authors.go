package memory

import (
	"context"
	"strings"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

type AuthorRepository struct {
	base baseMemoryRepo[domain.Author]
}

var _ store.AuthorDirectory = (*AuthorRepository)(nil)

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{
		base: newBaseMemoryRepo("author", func(a *domain.Author) *domain.RecordMeta { return &a.RecordMeta }),
	}
}

func (r *AuthorRepository) Create(ctx context.Context, a *domain.Author) error {
	if a == nil {
		return store.ErrNotFound
	}
	return r.base.create(ctx, a)
}

func (r *AuthorRepository) Update(ctx context.Context, a *domain.Author) error {
	return r.base.update(ctx, a)
}

func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	return r.base.getByID(ctx, id)
}

func (r *AuthorRepository) LoginsByRealName(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	var logins []string
	for _, author := range r.base.all() {
		if _, ok := wanted[author.RealName]; ok {
			logins = append(logins, author.Login)
		}
	}
	return logins, nil
}

func (r *AuthorRepository) RealName(ctx context.Context, login string) (string, error) {
	author, err := r.base.find(func(a *domain.Author) bool { return strings.EqualFold(a.Login, login) })
	if err != nil {
		return "", err
	}
	return author.RealName, nil
}
