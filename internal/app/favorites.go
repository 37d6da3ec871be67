package app

import (
	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

// ToggleFavorite adds the movie to the active user's favorites, or
// removes it when an entry with the same ID is already present. The full
// snapshot passed in is what gets saved. Toggling twice is an identity.
// Without an active session this is a no-op.
func (a *App) ToggleFavorite(movie models.Movie) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return
	}

	removed := false
	kept := a.favorites[:0]
	for _, fav := range a.favorites {
		if fav.ID == movie.ID {
			removed = true
			continue
		}
		kept = append(kept, fav)
	}
	if removed {
		a.favorites = kept
	} else {
		a.favorites = append(a.favorites, movie)
	}

	key := database.UserKey(database.BucketFavorites, a.session.Username)
	if err := a.store.Put(key, a.favorites); err != nil {
		a.logf("Failed to persist favorites: %v", err)
	}
}

// IsFavorite reports whether the active user has favorited the movie.
// Always false without a session.
func (a *App) IsFavorite(movieID int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, fav := range a.favorites {
		if fav.ID == movieID {
			return true
		}
	}
	return false
}
