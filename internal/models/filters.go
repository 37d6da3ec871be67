package models

// FilterSet represents the user-chosen narrowing criteria for a result
// list. Every field is optional: the zero value places no constraint and
// is never sent to the remote API.
type FilterSet struct {
	Genre  *int     `json:"genre,omitempty"`
	Year   *int     `json:"year,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// IsEmpty reports whether no field of the filter set is set.
func (f FilterSet) IsEmpty() bool {
	return f.Genre == nil && f.Year == nil && f.Rating == nil
}

// Matches reports whether a movie passes every set field of the filter.
// Unset fields never exclude a movie.
func (f FilterSet) Matches(m Movie) bool {
	if f.Genre != nil && !m.HasGenre(*f.Genre) {
		return false
	}
	if f.Year != nil && m.ReleaseYear() != *f.Year {
		return false
	}
	if f.Rating != nil && m.VoteAverage < *f.Rating {
		return false
	}
	return true
}

// Apply filters a movie list client-side, preserving order. A fully unset
// filter returns the input slice untouched.
func (f FilterSet) Apply(movies []Movie) []Movie {
	if f.IsEmpty() {
		return movies
	}
	filtered := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if f.Matches(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
