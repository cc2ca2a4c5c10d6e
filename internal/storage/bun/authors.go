package bunrepo

import (
	"context"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/uptrace/bun"
)

type AuthorRepository struct {
	base baseRepository[domain.Author]
}

var _ store.AuthorDirectory = (*AuthorRepository)(nil)

func NewAuthorRepository(db *bun.DB) *AuthorRepository {
	extract := func(a *domain.Author) *domain.RecordMeta { return &a.RecordMeta }
	handlers := metaHandlers(
		func() *domain.Author { return &domain.Author{} },
		extract,
		"name",
		func(a *domain.Author) string { return a.Login },
	)
	return &AuthorRepository{
		base: newBaseRepository[domain.Author](db, handlers, extract),
	}
}

func (r *AuthorRepository) Create(ctx context.Context, a *domain.Author) error {
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
	var logins []string
	err := conn(ctx, r.base.db).NewSelect().
		Model((*domain.Author)(nil)).
		Column("name").
		Where("?TableAlias.real_name IN (?)", bun.In(names)).
		OrderExpr("?TableAlias.id ASC").
		Scan(ctx, &logins)
	if err != nil {
		return nil, mapError(err)
	}
	return logins, nil
}

func (r *AuthorRepository) RealName(ctx context.Context, login string) (string, error) {
	record, err := r.base.repo.GetTx(ctx, conn(ctx, r.base.db), withColumn("name", login))
	if err != nil {
		return "", mapError(err)
	}
	return record.RealName, nil
}
