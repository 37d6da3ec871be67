package models

import (
	"strconv"
	"strings"
)

// Movie represents a single catalog entry as returned by the remote API.
// List endpoints (trending, search) return this shape; the detail-only
// fields live on MovieDetail.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
}

// ReleaseYear parses the year out of the "YYYY-MM-DD" release date.
// Returns 0 when the date is absent or malformed.
func (m Movie) ReleaseYear() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// HasGenre reports whether the movie is tagged with the given genre ID.
func (m Movie) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// CastMember is a credited actor on a movie.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// CrewMember is a credited crew member on a movie.
type CrewMember struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits holds the cast and crew lists attached to a detail response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a related video (trailer, teaser, clip) attached to a movie.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps the nested videos payload of a detail response.
type VideoList struct {
	Results []Video `json:"results"`
}

// MovieDetail is the extended single-movie shape, fetched with videos and
// credits appended to the response.
type MovieDetail struct {
	Movie
	Runtime int       `json:"runtime"`
	Budget  int64     `json:"budget"`
	Revenue int64     `json:"revenue"`
	Tagline string    `json:"tagline"`
	Genres  []Genre   `json:"genres"`
	Credits Credits   `json:"credits"`
	Videos  VideoList `json:"videos"`
}

// Trailer picks the video to play for this movie: the first YouTube video
// of type "Trailer", falling back to any YouTube video. Returns nil when
// nothing playable exists.
func (d *MovieDetail) Trailer() *Video {
	var fallback *Video
	for i := range d.Videos.Results {
		v := &d.Videos.Results[i]
		if !strings.EqualFold(v.Site, "YouTube") {
			continue
		}
		if v.Type == "Trailer" {
			return v
		}
		if fallback == nil {
			fallback = v
		}
	}
	return fallback
}
