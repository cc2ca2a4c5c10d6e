package memory

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/goliatone/go-linklist/pkg/query"
)

type LinkRepository struct {
	base baseMemoryRepo[domain.Link]
}

var _ store.LinkRepository = (*LinkRepository)(nil)

func NewLinkRepository() *LinkRepository {
	return &LinkRepository{
		base: newBaseMemoryRepo("link", func(l *domain.Link) *domain.RecordMeta { return &l.RecordMeta }),
	}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) error {
	if link == nil {
		return store.ErrNotFound
	}
	if link.Date.IsZero() {
		link.Date = time.Now().UTC()
	}
	return r.base.create(ctx, link)
}

func (r *LinkRepository) Update(ctx context.Context, link *domain.Link) error {
	return r.base.update(ctx, link)
}

func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*domain.Link, error) {
	return r.base.getByID(ctx, id)
}

func (r *LinkRepository) GetByName(ctx context.Context, name string) (*domain.Link, error) {
	return r.base.find(func(l *domain.Link) bool { return l.Name == name })
}

func (r *LinkRepository) Count(ctx context.Context, predicate query.Predicate) (int, error) {
	return len(r.filter(predicate)), nil
}

func (r *LinkRepository) Find(ctx context.Context, q store.LinkQuery) ([]domain.Link, error) {
	rows := r.filter(q.Predicate)
	if q.Sort.Random {
		rand.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	} else {
		orders := q.Sort.Orders
		if len(orders) == 0 {
			orders = query.ParseSort(query.DefaultSort).Orders
		}
		sort.SliceStable(rows, func(i, j int) bool {
			for _, order := range orders {
				cmp := compareLinks(rows[i], rows[j], order.Column)
				if cmp == 0 {
					continue
				}
				if order.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	start := q.Offset
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}
	end := len(rows)
	if q.Bounded {
		if q.Limit <= 0 {
			return []domain.Link{}, nil
		}
		if start+q.Limit < end {
			end = start + q.Limit
		}
	}
	return rows[start:end], nil
}

func (r *LinkRepository) filter(predicate query.Predicate) []domain.Link {
	if predicate.IsEmptyResult() {
		return nil
	}
	all := r.base.all()
	out := make([]domain.Link, 0, len(all))
	for _, link := range all {
		if predicate.Matches(link.Field) {
			out = append(out, link)
		}
	}
	return out
}

func compareLinks(a, b domain.Link, column string) int {
	switch column {
	case "id":
		return compareInt(a.ID, b.ID)
	case "date":
		return a.Date.Compare(b.Date)
	default:
		return strings.Compare(a.Field(column), b.Field(column))
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
