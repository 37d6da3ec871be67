package database

import (
	"errors"
)

// ErrNotFound is returned when a key has no value in the store.
var ErrNotFound = errors.New("store: key not found")

// Bucket names the logical entities kept in the local store. Per-user
// buckets are qualified with a username through Key; process-wide buckets
// leave the user empty.
const (
	BucketCurrentUser    = "currentUser"
	BucketAccounts       = "allAccounts"
	BucketFavorites      = "favorites"
	BucketLastSearch     = "lastSearch"
	BucketRecentSearches = "recentSearches"
	BucketThemeMode      = "themeMode"
	BucketTrendingWindow = "trendingWindow"
)

// Key addresses one value in the store. The bucket and username are kept
// as separate fields and joined with a non-printable separator when
// rendered, so a username can never collide with another bucket's keys.
type Key struct {
	Bucket string
	User   string
}

// UserKey builds a per-user key.
func UserKey(bucket, user string) Key {
	return Key{Bucket: bucket, User: user}
}

// GlobalKey builds a process-wide key.
func GlobalKey(bucket string) Key {
	return Key{Bucket: bucket}
}

// bytes renders the key for the underlying store. The 0x00 separator is
// not representable in usernames, which are validated printable input.
func (k Key) bytes() []byte {
	b := make([]byte, 0, len(k.Bucket)+1+len(k.User))
	b = append(b, k.Bucket...)
	b = append(b, 0x00)
	b = append(b, k.User...)
	return b
}

// String renders the key for log messages.
func (k Key) String() string {
	if k.User == "" {
		return k.Bucket
	}
	return k.Bucket + "/" + k.User
}

// Store is the durable local key/value facade every other component reads
// and writes through. Values are JSON-encoded; each logical entity is one
// serialized value per key, written whole on every mutation.
type Store interface {
	// Get decodes the value at key into v, returning ErrNotFound when
	// the key is absent.
	Get(key Key, v any) error
	// Put encodes v and writes it at key, replacing any previous value.
	Put(key Key, v any) error
	// Delete removes the value at key. Deleting an absent key is not an
	// error.
	Delete(key Key) error
	Close() error
}
