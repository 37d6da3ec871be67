// Package app owns the client-side application state: the current
// session, the trending and search result lists, the per-user favorites
// set and search history, and the persisted preference scalars. UI
// collaborators invoke its operations in response to user input and read
// state back through Snapshot; the package itself knows nothing about
// rendering or routing.
package app

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
	"github.com/lwalker/moviedeck/internal/services"
)

// App is the single shared application-state object. All mutation goes
// through its methods; concurrent calls are safe, and a request that was
// superseded while in flight never writes its result back.
type App struct {
	store    database.Store
	tmdb     *services.TMDBService
	accounts *services.AccountService
	logger   *log.Logger

	mu             sync.Mutex
	session        *models.Session
	trending       []models.Movie
	results        []models.Movie
	page           int
	hasMore        bool
	filters        models.FilterSet
	window         models.TimeWindow
	theme          models.ThemeMode
	favorites      []models.Movie
	lastSearch     string
	recentSearches []string
	isLoading      bool
	lastError      error
	noMatches      bool

	// Monotonic request tags; a resolving response whose tag no longer
	// matches was superseded and is discarded.
	trendingSeq uint64
	searchSeq   uint64
}

// New wires an App over its collaborators and loads the process-wide
// preference scalars from the store. Call RestoreSession afterwards to
// pick up a previously signed-in user.
func New(store database.Store, tmdb *services.TMDBService, accounts *services.AccountService, logger *log.Logger) *App {
	a := &App{
		store:    store,
		tmdb:     tmdb,
		accounts: accounts,
		logger:   logger,
		theme:    models.ThemeLight,
		window:   models.WindowWeek,
	}

	var theme models.ThemeMode
	if err := store.Get(database.GlobalKey(database.BucketThemeMode), &theme); err == nil && (theme == models.ThemeLight || theme == models.ThemeDark) {
		a.theme = theme
	}

	var window models.TimeWindow
	if err := store.Get(database.GlobalKey(database.BucketTrendingWindow), &window); err == nil && window.IsValid() {
		a.window = window
	}

	return a
}

// Snapshot is a copy of the observable state at one instant. Slices are
// copied so the caller can hold them across further mutations.
type Snapshot struct {
	Trending       []models.Movie
	Results        []models.Movie
	Page           int
	HasMore        bool
	IsLoading      bool
	LastError      error
	NoMatches      bool
	Filters        models.FilterSet
	Window         models.TimeWindow
	Theme          models.ThemeMode
	Session        *models.Session
	Favorites      []models.Movie
	LastSearch     string
	RecentSearches []string
}

// Snapshot returns the current observable state.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Trending:       append([]models.Movie(nil), a.trending...),
		Results:        append([]models.Movie(nil), a.results...),
		Page:           a.page,
		HasMore:        a.hasMore,
		IsLoading:      a.isLoading,
		LastError:      a.lastError,
		NoMatches:      a.noMatches,
		Filters:        a.filters,
		Window:         a.window,
		Theme:          a.theme,
		Favorites:      append([]models.Movie(nil), a.favorites...),
		LastSearch:     a.lastSearch,
		RecentSearches: append([]string(nil), a.recentSearches...),
	}
	if a.session != nil {
		sess := *a.session
		snap.Session = &sess
	}
	return snap
}

// SetFilters replaces the active filter set. Filters are per-process UI
// state and are not persisted.
func (a *App) SetFilters(filters models.FilterSet) {
	a.mu.Lock()
	a.filters = filters
	a.mu.Unlock()
}

// MovieDetail fetches a single movie's extended record. Detail lookups
// are read-through; they touch no engine state.
func (a *App) MovieDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	return a.tmdb.MovieDetail(ctx, movieID)
}

// ImageURL resolves a poster or backdrop path to a full URL.
func (a *App) ImageURL(path string) string {
	return a.tmdb.ImageURL(path)
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.store.Close()
}

// logf logs through the injected logger when one is present.
func (a *App) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf(format, args...)
	}
}

// getOrEmpty reads a per-user record, treating an absent key as the zero
// value. Other store failures are logged; no fallback persistence exists.
func (a *App) getOrEmpty(key database.Key, v any) {
	if err := a.store.Get(key, v); err != nil && !errors.Is(err, database.ErrNotFound) {
		a.logf("Failed to read %s: %v", key, err)
	}
}
