package database

import (
	"errors"
	"testing"
)

func TestBadgerStore(t *testing.T) {
	store, err := OpenBadger(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	t.Run("RoundTrip", func(t *testing.T) {
		type record struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}

		key := GlobalKey(BucketThemeMode)
		if err := store.Put(key, record{Name: "dark", Count: 2}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		var got record
		if err := store.Get(key, &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "dark" || got.Count != 2 {
			t.Errorf("Got %+v, want {dark 2}", got)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		var v string
		err := store.Get(GlobalKey("missing"), &v)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := UserKey(BucketLastSearch, "alice")
		if err := store.Put(key, "batman"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Put(key, "superman"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		var got string
		if err := store.Get(key, &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "superman" {
			t.Errorf("Got %q, want %q", got, "superman")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		key := GlobalKey(BucketCurrentUser)
		if err := store.Put(key, "bob"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Delete(key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		var v string
		if err := store.Get(key, &v); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		// Deleting an absent key is not an error
		if err := store.Delete(key); err != nil {
			t.Errorf("Delete of absent key failed: %v", err)
		}
	})
}

func TestKeyIsolation(t *testing.T) {
	store := NewMemoryStore()

	// Usernames must never collide with each other or with other buckets,
	// even when they embed separator-looking characters.
	keys := []Key{
		UserKey(BucketFavorites, "alice"),
		UserKey(BucketFavorites, "alice.b"),
		UserKey(BucketLastSearch, "alice"),
		UserKey("favorites.alice", ""),
		GlobalKey(BucketFavorites),
	}
	for i, key := range keys {
		if err := store.Put(key, i); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	if store.Len() != len(keys) {
		t.Fatalf("Expected %d distinct keys, got %d", len(keys), store.Len())
	}
	for i, key := range keys {
		var got int
		if err := store.Get(key, &got); err != nil {
			t.Fatalf("Get %s failed: %v", key, err)
		}
		if got != i {
			t.Errorf("Key %s: got %d, want %d", key, got, i)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	key := UserKey(BucketRecentSearches, "carol")
	if err := store.Put(key, []string{"dune", "alien"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var got []string
	if err := store.Get(key, &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 || got[0] != "dune" || got[1] != "alien" {
		t.Errorf("Got %v, want [dune alien]", got)
	}

	var missing []string
	if err := store.Get(UserKey(BucketRecentSearches, "dave"), &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
