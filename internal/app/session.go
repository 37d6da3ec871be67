package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

// Register creates a new account. It does not sign the user in.
func (a *App) Register(username, password string) error {
	return a.accounts.Register(username, password)
}

// Login authenticates against the account store and, on success, makes
// the user's namespace active: their favorites, last search and search
// history are loaded (absent records mean fresh defaults) and a session
// record is persisted for restore. Logging in while another session is
// active behaves as an implicit logout followed by the new login.
func (a *App) Login(username, password string) error {
	canonical, err := a.accounts.Authenticate(username, password)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		a.logf("Replacing active session for %q", a.session.Username)
		a.detachLocked()
	}

	session := &models.Session{
		ID:        uuid.New(),
		Username:  canonical,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.Put(database.GlobalKey(database.BucketCurrentUser), session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	a.session = session
	a.loadNamespaceLocked(canonical)
	a.logf("Logged in %q", canonical)
	return nil
}

// Logout destroys the active session and detaches from the user's
// namespace. The user's persisted data is kept; only the in-memory state
// and the session record go away. A no-op when nobody is signed in.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		return
	}
	username := a.session.Username

	if err := a.store.Delete(database.GlobalKey(database.BucketCurrentUser)); err != nil {
		a.logf("Failed to remove session record: %v", err)
	}
	a.detachLocked()
	a.logf("Logged out %q", username)
}

// RestoreSession picks up a persisted session record from a previous
// process, trusting the durable store without re-validating credentials.
// Intended to run once at startup.
func (a *App) RestoreSession() error {
	var session models.Session
	err := a.store.Get(database.GlobalKey(database.BucketCurrentUser), &session)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = &session
	a.loadNamespaceLocked(session.Username)
	a.logf("Restored session for %q", session.Username)
	return nil
}

// detachLocked clears the session and all per-user in-memory state, and
// invalidates in-flight requests: their results would target a namespace
// that is no longer active. Callers hold a.mu.
func (a *App) detachLocked() {
	a.session = nil
	a.favorites = nil
	a.lastSearch = ""
	a.recentSearches = nil
	a.trendingSeq++
	a.searchSeq++
	a.isLoading = false
}

// loadNamespaceLocked swaps in a user's persisted state wholesale; the
// previous user's state is never merged. Callers hold a.mu.
func (a *App) loadNamespaceLocked(username string) {
	var favorites []models.Movie
	a.getOrEmpty(database.UserKey(database.BucketFavorites, username), &favorites)
	a.favorites = favorites

	var lastSearch string
	a.getOrEmpty(database.UserKey(database.BucketLastSearch, username), &lastSearch)
	a.lastSearch = lastSearch

	var recent []string
	a.getOrEmpty(database.UserKey(database.BucketRecentSearches, username), &recent)
	a.recentSearches = recent
}
