package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

type baseMemoryRepo[T any] struct {
	mu        sync.RWMutex
	records   map[int64]T
	nextID    int64
	extract   func(*T) *domain.RecordMeta
	entityStr string
}

func newBaseMemoryRepo[T any](entity string, extract func(*T) *domain.RecordMeta) baseMemoryRepo[T] {
	return baseMemoryRepo[T]{
		records:   make(map[int64]T),
		extract:   extract,
		entityStr: entity,
	}
}

func (r *baseMemoryRepo[T]) create(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	base.EnsureUUID()
	if base.ID == 0 {
		r.nextID++
		base.ID = r.nextID
	} else if base.ID > r.nextID {
		r.nextID = base.ID
	}
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) update(ctx context.Context, record *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.extract(record)
	if base.ID == 0 {
		return store.ErrNotFound
	}
	if _, ok := r.records[base.ID]; !ok {
		return store.ErrNotFound
	}
	base.UpdatedAt = time.Now().UTC()
	r.records[base.ID] = *record
	return nil
}

func (r *baseMemoryRepo[T]) getByID(ctx context.Context, id int64) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copy := record
	return &copy, nil
}

// find returns the first record in id order accepted by match.
func (r *baseMemoryRepo[T]) find(match func(*T) bool) (*T, error) {
	for _, record := range r.all() {
		if match(&record) {
			copy := record
			return &copy, nil
		}
	}
	return nil, store.ErrNotFound
}

// all returns a snapshot of every record ordered by id.
func (r *baseMemoryRepo[T]) all() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return r.extract(&out[i]).ID < r.extract(&out[j]).ID
	})
	return out
}
