package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-linklist/pkg/domain"
	"github.com/goliatone/go-linklist/pkg/interfaces/store"
	"github.com/goliatone/go-linklist/pkg/query"
)

func TestProvidersRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, "file:providers_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	backends := map[string]Providers{
		"memory": NewMemoryProviders(),
		"bun":    NewBunProviders(db),
	}
	for name, providers := range backends {
		t.Run(name, func(t *testing.T) {
			err := providers.Transaction.WithinTransaction(ctx, func(ctx context.Context) error {
				return providers.Links.Create(ctx, &domain.Link{Name: "Go", URL: "https://go.dev", Category: "tools"})
			})
			if err != nil {
				t.Fatalf("create in transaction: %v", err)
			}
			count, err := providers.Links.Count(ctx, query.Universal())
			if err != nil || count != 1 {
				t.Fatalf("expected one link, got %d err=%v", count, err)
			}
			if _, err := providers.Forms.GetByName(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestOpenSQLiteRequiresDSN(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
