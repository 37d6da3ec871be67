package database

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("HitAndMiss", func(t *testing.T) {
		cache := NewMemoryCache()

		if _, ok := cache.Get(ctx, "absent"); ok {
			t.Error("Expected miss for absent key")
		}

		cache.Set(ctx, "k", []byte("v"), time.Minute)
		got, ok := cache.Get(ctx, "k")
		if !ok {
			t.Fatal("Expected hit")
		}
		if string(got) != "v" {
			t.Errorf("Got %q, want %q", got, "v")
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		cache := NewMemoryCache()
		now := time.Now()
		cache.now = func() time.Time { return now }

		cache.Set(ctx, "k", []byte("v"), time.Minute)

		now = now.Add(59 * time.Second)
		if _, ok := cache.Get(ctx, "k"); !ok {
			t.Error("Entry expired early")
		}

		now = now.Add(2 * time.Second)
		if _, ok := cache.Get(ctx, "k"); ok {
			t.Error("Entry should have expired")
		}
	})
}
