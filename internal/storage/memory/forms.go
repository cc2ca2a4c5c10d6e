package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
)

type FormRepository struct {
	base baseMemoryRepo[domain.Form]
	// serialises the name uniqueness check with the insert
	createMu sync.Mutex
}

var _ store.FormRepository = (*FormRepository)(nil)

func NewFormRepository() *FormRepository {
	return &FormRepository{
		base: newBaseMemoryRepo("form", func(f *domain.Form) *domain.RecordMeta { return &f.RecordMeta }),
	}
}

func formKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *FormRepository) Create(ctx context.Context, f *domain.Form) error {
	if f == nil {
		return store.ErrNotFound
	}
	if formKey(f.Name) == "" {
		return fmt.Errorf("form name is required")
	}
	r.createMu.Lock()
	defer r.createMu.Unlock()
	if _, err := r.GetByName(ctx, f.Name); err == nil {
		return fmt.Errorf("form %s already exists", f.Name)
	}
	return r.base.create(ctx, f)
}

func (r *FormRepository) Update(ctx context.Context, f *domain.Form) error {
	return r.base.update(ctx, f)
}

func (r *FormRepository) GetByID(ctx context.Context, id int64) (*domain.Form, error) {
	return r.base.getByID(ctx, id)
}

func (r *FormRepository) GetByName(ctx context.Context, name string) (*domain.Form, error) {
	key := formKey(name)
	return r.base.find(func(f *domain.Form) bool { return formKey(f.Name) == key })
}

func (r *FormRepository) List(ctx context.Context) ([]domain.Form, error) {
	return r.base.all(), nil
}
