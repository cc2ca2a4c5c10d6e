package bunrepo

import (
	"context"
	"time"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type baseRepository[T any] struct {
	repo    repository.Repository[*T]
	db      *bun.DB
	extract func(*T) *domain.RecordMeta
}

func newBaseRepository[T any](db *bun.DB, handlers repository.ModelHandlers[*T], extract func(*T) *domain.RecordMeta) baseRepository[T] {
	return baseRepository[T]{
		repo:    repository.MustNewRepository[*T](db, handlers),
		db:      db,
		extract: extract,
	}
}

// metaHandlers builds the repository handlers shared by every entity. The
// UUID column is the repository identity; the numeric id stays the primary key.
func metaHandlers[T any](newRecord func() *T, extract func(*T) *domain.RecordMeta, identifier string, identifierValue func(*T) string) repository.ModelHandlers[*T] {
	return repository.ModelHandlers[*T]{
		NewRecord:          newRecord,
		GetID:              func(record *T) uuid.UUID { return extract(record).UUID },
		SetID:              func(record *T, id uuid.UUID) { extract(record).UUID = id },
		GetIdentifier:      func() string { return identifier },
		GetIdentifierValue: identifierValue,
	}
}

func (r baseRepository[T]) create(ctx context.Context, record *T) error {
	base := r.extract(record)
	base.EnsureUUID()
	now := time.Now().UTC()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
	created, err := r.repo.CreateTx(ctx, conn(ctx, r.db), record)
	if err != nil {
		return mapError(err)
	}
	if created != nil && created != record {
		*record = *created
	}
	return nil
}

func (r baseRepository[T]) update(ctx context.Context, record *T) error {
	base := r.extract(record)
	base.UpdatedAt = time.Now().UTC()
	_, err := r.repo.UpdateTx(ctx, conn(ctx, r.db), record)
	return mapError(err)
}

func (r baseRepository[T]) getByID(ctx context.Context, id int64) (*T, error) {
	record, err := r.repo.GetTx(ctx, conn(ctx, r.db), withID(id))
	if err != nil {
		return nil, mapError(err)
	}
	return record, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if repository.IsRecordNotFound(err) {
		return store.ErrNotFound
	}
	return err
}
