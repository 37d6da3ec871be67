package app

import (
	"context"
	"strings"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
	"github.com/lwalker/moviedeck/internal/services"
)

// maxRecentSearches bounds the per-user search history.
const maxRecentSearches = 3

// LoadTrending fetches the trending list for a window and applies the
// filter set locally — the trending endpoint has no server-side filter
// support. A nil filters argument keeps the active set; an empty window
// keeps the active window. On success the trending list is replaced
// wholesale: trending is always a fresh single page.
//
// An empty result under a non-empty filter is the "no matches" condition,
// not an error; LastError stays nil and NoMatches is set. A fetch failure
// sets LastError and leaves the previous list untouched.
func (a *App) LoadTrending(ctx context.Context, filters *models.FilterSet, window models.TimeWindow) error {
	a.mu.Lock()
	if filters != nil {
		a.filters = *filters
	}
	if window != "" {
		a.window = window
	}
	activeFilters := a.filters
	activeWindow := a.window

	a.trendingSeq++
	seq := a.trendingSeq
	a.isLoading = true
	a.lastError = nil
	a.noMatches = false
	a.mu.Unlock()

	movies, err := a.tmdb.Trending(ctx, activeWindow)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.trendingSeq {
		// Superseded by a newer trending load or a logout; this result
		// must not overwrite newer state.
		a.logf("Discarding stale trending response for window %q", activeWindow)
		return nil
	}
	a.isLoading = false

	if err != nil {
		a.lastError = err
		return err
	}

	filtered := activeFilters.Apply(movies)
	a.logf("Trending %q: %d movies, %d after filtering", activeWindow, len(movies), len(filtered))

	a.trending = filtered
	if len(filtered) == 0 && !activeFilters.IsEmpty() {
		a.noMatches = true
	}
	return nil
}

// Search runs a remote search, delegating filtering to the API. A blank
// query is a no-op: no network call, no state change, no error. Page 1
// replaces the accumulated result list; higher pages append to it — the
// caller decides whether this is a fresh search or "load more", and must
// not start a second load-more while IsLoading is set.
//
// Any non-blank query records the search term for the active user
// namespace, whether or not the fetch itself succeeds.
func (a *App) Search(ctx context.Context, query string, page int, filters *models.FilterSet) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if page < 1 {
		page = 1
	}

	a.mu.Lock()
	if filters != nil {
		a.filters = *filters
	}
	activeFilters := a.filters
	a.recordSearchLocked(query)

	// Only a fresh search starts a new logical request; load-more pages
	// ride on the one already current.
	if page == 1 {
		a.searchSeq++
	}
	seq := a.searchSeq
	a.isLoading = true
	a.lastError = nil
	a.noMatches = false
	a.mu.Unlock()

	result, err := a.tmdb.SearchMovies(ctx, query, page, activeFilters)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.searchSeq {
		a.logf("Discarding stale search response for %q page %d", query, page)
		return nil
	}
	a.isLoading = false

	if err != nil {
		a.lastError = err
		return err
	}

	if page == 1 {
		a.results = result.Results
	} else {
		a.results = append(a.results, result.Results...)
	}
	a.page = page
	a.hasMore = len(result.Results) == services.PageSize
	return nil
}

// recordSearchLocked updates the last-search scalar and the bounded
// search history, persisting both when a user namespace is active.
// Callers hold a.mu.
func (a *App) recordSearchLocked(query string) {
	a.lastSearch = query

	recent := make([]string, 0, maxRecentSearches+1)
	recent = append(recent, query)
	for _, q := range a.recentSearches {
		if q != query {
			recent = append(recent, q)
		}
	}
	if len(recent) > maxRecentSearches {
		recent = recent[:maxRecentSearches]
	}
	a.recentSearches = recent

	if a.session == nil {
		return
	}
	user := a.session.Username
	if err := a.store.Put(database.UserKey(database.BucketLastSearch, user), query); err != nil {
		a.logf("Failed to persist last search: %v", err)
	}
	if err := a.store.Put(database.UserKey(database.BucketRecentSearches, user), recent); err != nil {
		a.logf("Failed to persist recent searches: %v", err)
	}
}
