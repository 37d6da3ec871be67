package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*TMDBService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewTMDBService(TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		ImageBaseURL: "https://image.example/w500",
	}, nil)
	return svc, server
}

func writeMovies(w http.ResponseWriter, page int, movies []models.Movie) {
	if movies == nil {
		movies = []models.Movie{}
	}
	json.NewEncoder(w).Encode(map[string]any{
		"page":          page,
		"results":       movies,
		"total_pages":   10,
		"total_results": 200,
	})
}

func TestTrending(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		writeMovies(w, 1, []models.Movie{{ID: 7, Title: "Dune"}})
	})

	movies, err := svc.Trending(context.Background(), models.WindowWeek)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != 7 {
		t.Errorf("Got %v, want one movie with ID 7", movies)
	}
	if gotPath != "/trending/movie/week" {
		t.Errorf("Got path %q", gotPath)
	}
	if gotQuery.Get("api_key") != "test-key" {
		t.Errorf("Missing api_key parameter")
	}
	if gotQuery.Get("language") != "en-US" {
		t.Errorf("Missing language parameter")
	}

	if _, err := svc.Trending(context.Background(), "month"); err == nil {
		t.Error("Expected error for invalid window")
	}
}

func TestSearchMoviesParams(t *testing.T) {
	var gotQuery url.Values
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeMovies(w, 2, nil)
	})

	t.Run("FiltersSet", func(t *testing.T) {
		genre, year, rating := 28, 1999, 7.5
		filters := models.FilterSet{Genre: &genre, Year: &year, Rating: &rating}

		page, err := svc.SearchMovies(context.Background(), "  matrix  ", 2, filters)
		if err != nil {
			t.Fatalf("SearchMovies failed: %v", err)
		}
		if page.Page != 2 {
			t.Errorf("Got page %d, want 2", page.Page)
		}

		want := map[string]string{
			"query":                "matrix",
			"page":                 "2",
			"include_adult":        "false",
			"with_genres":          "28",
			"primary_release_year": "1999",
			"vote_average.gte":     "7.5",
		}
		for key, value := range want {
			if got := gotQuery.Get(key); got != value {
				t.Errorf("Param %s = %q, want %q", key, got, value)
			}
		}
	})

	t.Run("UnsetFiltersOmitted", func(t *testing.T) {
		if _, err := svc.SearchMovies(context.Background(), "matrix", 1, models.FilterSet{}); err != nil {
			t.Fatalf("SearchMovies failed: %v", err)
		}
		for _, key := range []string{"with_genres", "primary_release_year", "vote_average.gte"} {
			if _, present := gotQuery[key]; present {
				t.Errorf("Unset filter %s was sent as %q", key, gotQuery.Get(key))
			}
		}
	})

	t.Run("BlankQuery", func(t *testing.T) {
		if _, err := svc.SearchMovies(context.Background(), "   ", 1, models.FilterSet{}); !errors.Is(err, ErrBlankQuery) {
			t.Errorf("Expected ErrBlankQuery, got %v", err)
		}
	})
}

func TestErrorTaxonomy(t *testing.T) {
	t.Run("Unauthorized", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		if _, err := svc.Trending(context.Background(), models.WindowDay); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		if _, err := svc.MovieDetail(context.Background(), 42); !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Upstream", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := svc.Trending(context.Background(), models.WindowDay)
		var uerr *UpstreamError
		if !errors.As(err, &uerr) || uerr.StatusCode != http.StatusBadGateway {
			t.Errorf("Expected UpstreamError 502, got %v", err)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"page": 1}`)
		})
		_, err := svc.Trending(context.Background(), models.WindowDay)
		var uerr *UpstreamError
		if !errors.As(err, &uerr) {
			t.Errorf("Expected UpstreamError for missing results, got %v", err)
		}
	})

	t.Run("Network", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close() // nothing listening anymore

		svc := NewTMDBService(TMDBConfig{APIKey: "k", BaseURL: server.URL}, nil)
		_, err := svc.Trending(context.Background(), models.WindowDay)
		var nerr *NetworkError
		if !errors.As(err, &nerr) {
			t.Errorf("Expected NetworkError, got %v", err)
		}
	})
}

func TestMovieDetail(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("Got path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "videos,credits" {
			t.Errorf("append_to_response = %q", got)
		}
		fmt.Fprint(w, `{
			"id": 603, "title": "The Matrix", "runtime": 136,
			"genres": [{"id": 28, "name": "Action"}],
			"videos": {"results": [{"key": "abc", "site": "YouTube", "type": "Trailer"}]},
			"credits": {"cast": [{"id": 1, "name": "Keanu Reeves", "character": "Neo"}]}
		}`)
	})

	detail, err := svc.MovieDetail(context.Background(), 603)
	if err != nil {
		t.Fatalf("MovieDetail failed: %v", err)
	}
	if detail.Title != "The Matrix" || detail.Runtime != 136 {
		t.Errorf("Got %+v", detail)
	}
	if trailer := detail.Trailer(); trailer == nil || trailer.Key != "abc" {
		t.Errorf("Trailer lookup failed: %+v", trailer)
	}
	if len(detail.Credits.Cast) != 1 || detail.Credits.Cast[0].Character != "Neo" {
		t.Errorf("Credits missing: %+v", detail.Credits)
	}
}

func TestResponseCache(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeMovies(w, 1, []models.Movie{{ID: 1, Title: "Cached"}})
	}))
	t.Cleanup(server.Close)

	svc := NewTMDBService(TMDBConfig{
		APIKey:      "k",
		BaseURL:     server.URL,
		Cache:       database.NewMemoryCache(),
		TrendingTTL: time.Minute,
	}, nil)

	for i := 0; i < 3; i++ {
		movies, err := svc.Trending(context.Background(), models.WindowDay)
		if err != nil {
			t.Fatalf("Trending failed: %v", err)
		}
		if len(movies) != 1 || movies[0].Title != "Cached" {
			t.Fatalf("Bad result on call %d: %v", i, movies)
		}
	}

	if hits.Load() != 1 {
		t.Errorf("Upstream hit %d times, want 1", hits.Load())
	}
}

func TestImageURL(t *testing.T) {
	svc := NewTMDBService(TMDBConfig{ImageBaseURL: "https://image.example/w500"}, nil)
	if got := svc.ImageURL("/poster.jpg"); got != "https://image.example/w500/poster.jpg" {
		t.Errorf("Got %q", got)
	}
	if got := svc.ImageURL(""); got != "" {
		t.Errorf("Got %q for empty path", got)
	}
}
