package bunrepo

import (
	"context"
	"math"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/goliatone/go-linklist/pkg/query"
	"github.com/uptrace/bun"
)

type LinkRepository struct {
	base baseRepository[domain.Link]
}

var _ store.LinkRepository = (*LinkRepository)(nil)

func NewLinkRepository(db *bun.DB) *LinkRepository {
	extract := func(l *domain.Link) *domain.RecordMeta { return &l.RecordMeta }
	handlers := metaHandlers(
		func() *domain.Link { return &domain.Link{} },
		extract,
		"linkname",
		func(l *domain.Link) string { return l.Name },
	)
	return &LinkRepository{
		base: newBaseRepository[domain.Link](db, handlers, extract),
	}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	return r.base.create(ctx, link)
}

func (r *LinkRepository) Update(ctx context.Context, link *domain.Link) error {
	return r.base.update(ctx, link)
}

func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*domain.Link, error) {
	return r.base.getByID(ctx, id)
}

func (r *LinkRepository) GetByName(ctx context.Context, name string) (*domain.Link, error) {
	record, err := r.base.repo.GetTx(ctx, conn(ctx, r.base.db), withColumn("linkname", name))
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

func (r *LinkRepository) Count(ctx context.Context, predicate query.Predicate) (int, error) {
	if predicate.IsEmptyResult() {
		return 0, nil
	}
	q := conn(ctx, r.base.db).NewSelect().Model((*domain.Link)(nil))
	q = withPredicate(predicate)(q)
	return q.Count(ctx)
}

// Find runs SELECT * FROM links WHERE <predicate> ORDER BY <sort> with the
// requested window.
func (r *LinkRepository) Find(ctx context.Context, lq store.LinkQuery) ([]domain.Link, error) {
	rows := make([]domain.Link, 0)
	if lq.Predicate.IsEmptyResult() {
		return rows, nil
	}
	// A bounded window with no room can never return rows; bun drops LIMIT 0.
	if lq.Bounded && lq.Limit <= 0 {
		return rows, nil
	}

	q := conn(ctx, r.base.db).NewSelect().Model(&rows)
	q = withPredicate(lq.Predicate)(q)
	q = withSort(lq.Sort)(q)

	offset := lq.Offset
	if offset < 0 {
		offset = 0
	}
	switch {
	case lq.Bounded:
		q = q.Limit(lq.Limit)
	case offset > 0:
		// SQLite rejects OFFSET without LIMIT and bun drops negative limits.
		q = q.Limit(math.MaxInt32)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, mapError(err)
	}
	return rows, nil
}
