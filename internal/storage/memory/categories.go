package memory

import (
	"context"
	"strings"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

type CategoryRepository struct {
	base baseMemoryRepo[domain.Category]
}

var _ store.CategoryDirectory = (*CategoryRepository)(nil)

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		base: newBaseMemoryRepo("category", func(c *domain.Category) *domain.RecordMeta { return &c.RecordMeta }),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if c == nil {
		return store.ErrNotFound
	}
	return r.base.create(ctx, c)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return r.base.update(ctx, c)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.base.getByID(ctx, id)
}

func (r *CategoryRepository) Title(ctx context.Context, name, kind string) (string, error) {
	category, err := r.base.find(func(c *domain.Category) bool {
		return c.Name == name && strings.EqualFold(c.Type, kind)
	})
	if err != nil {
		return "", err
	}
	return category.Title, nil
}
