package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeWindow is the trending aggregation period supported by the remote API.
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// IsValid checks if the time window is one the remote API accepts.
func (w TimeWindow) IsValid() bool {
	return w == WindowDay || w == WindowWeek
}

// Toggle returns the other time window.
func (w TimeWindow) Toggle() TimeWindow {
	if w == WindowDay {
		return WindowWeek
	}
	return WindowDay
}

// ThemeMode is the UI color scheme preference.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Toggle returns the other theme mode.
func (t ThemeMode) Toggle() ThemeMode {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Credential is a registered account record. Records are append-only:
// registration creates them and nothing in this core mutates or deletes
// them afterwards.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session identifies the currently signed-in user. A session is created by
// login, restored at startup from the durable store, and destroyed by
// logout.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
