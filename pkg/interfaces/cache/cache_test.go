package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "author:ada", "Ada Lovelace", time.Minute)
	_ = c.Set(ctx, "category:tools", "Tools", 0)

	if v, ok, _ := c.Get(ctx, "author:ada"); !ok || v != "Ada Lovelace" {
		t.Fatalf("expected cached value, got %v ok=%v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "author:ada"); ok {
		t.Fatalf("expected entry to expire")
	}
	if _, ok, _ := c.Get(ctx, "category:tools"); !ok {
		t.Fatalf("expected entry without ttl to persist")
	}

	_ = c.Delete(ctx, "category:tools")
	if _, ok, _ := c.Get(ctx, "category:tools"); ok {
		t.Fatalf("expected deleted entry to miss")
	}
}
