package bunrepo

import (
	"context"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/uptrace/bun"
)

type CategoryRepository struct {
	base baseRepository[domain.Category]
}

var _ store.CategoryDirectory = (*CategoryRepository)(nil)

func NewCategoryRepository(db *bun.DB) *CategoryRepository {
	extract := func(c *domain.Category) *domain.RecordMeta { return &c.RecordMeta }
	handlers := metaHandlers(
		func() *domain.Category { return &domain.Category{} },
		extract,
		"name",
		func(c *domain.Category) string { return c.Name },
	)
	return &CategoryRepository{
		base: newBaseRepository[domain.Category](db, handlers, extract),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return r.base.create(ctx, c)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.base.update(ctx, c)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.base.getByID(ctx, id)
}

func (r *CategoryRepository) Title(ctx context.Context, name, kind string) (string, error) {
	record, err := r.base.repo.GetTx(ctx, conn(ctx, r.base.db),
		withColumn("name", name),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(?TableAlias.type) = LOWER(?)", kind)
		},
	)
	if err != nil {
		return "", mapError(err)
	}
	return record.Title, nil
}
