package app

import (
	"context"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

// ToggleTheme flips the color scheme between light and dark and persists
// the choice. Theme mode is process-wide, not per-user.
func (a *App) ToggleTheme() models.ThemeMode {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.theme = a.theme.Toggle()
	if err := a.store.Put(database.GlobalKey(database.BucketThemeMode), a.theme); err != nil {
		a.logf("Failed to persist theme mode: %v", err)
	}
	return a.theme
}

// ToggleTrendingWindow flips the trending window between day and week,
// persists it, and re-fetches trending with the new window and the
// active filter set. The re-fetch supersedes any trending load already
// in flight, so the old window's data can never land after the switch.
func (a *App) ToggleTrendingWindow(ctx context.Context) error {
	a.mu.Lock()
	a.window = a.window.Toggle()
	window := a.window
	if err := a.store.Put(database.GlobalKey(database.BucketTrendingWindow), window); err != nil {
		a.logf("Failed to persist trending window: %v", err)
	}
	a.mu.Unlock()

	return a.LoadTrending(ctx, nil, window)
}
