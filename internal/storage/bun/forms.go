package bunrepo

import (
	"context"
	"strings"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/uptrace/bun"
)

type FormRepository struct {
	base baseRepository[domain.Form]
}

var _ store.FormRepository = (*FormRepository)(nil)

func NewFormRepository(db *bun.DB) *FormRepository {
	extract := func(f *domain.Form) *domain.RecordMeta { return &f.RecordMeta }
	handlers := metaHandlers(
		func() *domain.Form { return &domain.Form{} },
		extract,
		"name",
		func(f *domain.Form) string { return f.Name },
	)
	return &FormRepository{
		base: newBaseRepository[domain.Form](db, handlers, extract),
	}
}

func (r *FormRepository) Create(ctx context.Context, f *domain.Form) error {
	return r.base.create(ctx, f)
}

func (r *FormRepository) Update(ctx context.Context, f *domain.Form) error {
	return r.base.update(ctx, f)
}

func (r *FormRepository) GetByID(ctx context.Context, id int64) (*domain.Form, error) {
	return r.base.getByID(ctx, id)
}

func (r *FormRepository) GetByName(ctx context.Context, name string) (*domain.Form, error) {
	record, err := r.base.repo.GetTx(ctx, conn(ctx, r.base.db),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(?TableAlias.name) = ?", strings.ToLower(strings.TrimSpace(name)))
		},
	)
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

func (r *FormRepository) List(ctx context.Context) ([]domain.Form, error) {
	forms := make([]domain.Form, 0)
	if err := conn(ctx, r.base.db).NewSelect().Model(&forms).OrderExpr("?TableAlias.id ASC").Scan(ctx); err != nil {
		return nil, mapError(err)
	}
	return forms, nil
}
