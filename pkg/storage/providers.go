package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	bunrepo "github.com/goliatone/go-linklist/internal/storage/bun"
	"github.com/goliatone/go-linklist/internal/storage/memory"
	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Providers exposes all repositories needed by services.
type Providers struct {
	Links       store.LinkRepository
	Authors     store.AuthorDirectory
	Categories  store.CategoryDirectory
	Forms       store.FormRepository
	Transaction store.TransactionManager
}

// Models lists every persisted entity.
func Models() []any {
	return []any{
		(*domain.Link)(nil),
		(*domain.Author)(nil),
		(*domain.Category)(nil),
		(*domain.Form)(nil),
	}
}

// NewMemoryProviders returns repositories backed by in-memory maps.
func NewMemoryProviders() Providers {
	return Providers{
		Links:       memory.NewLinkRepository(),
		Authors:     memory.NewAuthorRepository(),
		Categories:  memory.NewCategoryRepository(),
		Forms:       memory.NewFormRepository(),
		Transaction: &store.NopTransactionManager{},
	}
}

// NewBunProviders wires Bun-backed repositories using go-repository-bun.
// The caller owns the *bun.DB lifecycle.
func NewBunProviders(db *bun.DB) Providers {
	if db == nil {
		panic("storage: bun DB is required")
	}

	// Register models so go-persistence-bun migrations can pick them up.
	persistence.RegisterModel(Models()...)

	return Providers{
		Links:       bunrepo.NewLinkRepository(db),
		Authors:     bunrepo.NewAuthorRepository(db),
		Categories:  bunrepo.NewCategoryRepository(db),
		Forms:       bunrepo.NewFormRepository(db),
		Transaction: bunrepo.NewTransactionManager(db),
	}
}

// OpenSQLite opens a SQLite database through sqliteshim and creates the
// link tables when missing.
func OpenSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, errors.New("storage: sqlite dsn is required")
	}
	sqldb, err := sql.Open(sqliteshim.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates every table in Models if it does not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	return nil
}
