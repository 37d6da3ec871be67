package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/lwalker/moviedeck/internal/database"
	"github.com/lwalker/moviedeck/internal/models"
)

// PageSize is the remote API's fixed page length for list endpoints. A
// page shorter than this signals that no further pages exist.
const PageSize = 20

// TMDBService handles interactions with The Movie Database API
type TMDBService struct {
	client       *http.Client
	apiKey       string
	baseURL      string
	imageBaseURL string
	cache        database.Cache
	trendingTTL  time.Duration
	detailTTL    time.Duration
	logger       *log.Logger
}

// TMDBConfig holds TMDB service configuration
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration

	// Cache is optional; when set, trending and detail responses are
	// served from it inside their TTLs.
	Cache       database.Cache
	TrendingTTL time.Duration
	DetailTTL   time.Duration
}

// NewTMDBService creates a new TMDB service
func NewTMDBService(cfg TMDBConfig, logger *log.Logger) *TMDBService {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &TMDBService{
		client:       &http.Client{Timeout: timeout},
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		cache:        cfg.Cache,
		trendingTTL:  cfg.TrendingTTL,
		detailTTL:    cfg.DetailTTL,
		logger:       logger,
	}
}

// SearchPage is one page of search results.
type SearchPage struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// doRequest performs an HTTP request to the TMDB API and maps failures
// into the error taxonomy.
func (s *TMDBService) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s", s.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// The API authenticates via the api_key query parameter
	q := req.URL.Query()
	q.Set("api_key", s.apiKey)
	q.Set("language", "en-US")
	for key, values := range params {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	return body, nil
}

// cachedRequest serves the request from the cache when possible, storing
// successful responses for ttl.
func (s *TMDBService) cachedRequest(ctx context.Context, cacheKey, endpoint string, params url.Values, ttl time.Duration) ([]byte, error) {
	if s.cache != nil {
		if body, ok := s.cache.Get(ctx, cacheKey); ok {
			if s.logger != nil {
				s.logger.Printf("Cache hit for %s", cacheKey)
			}
			return body, nil
		}
	}

	body, err := s.doRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, body, ttl)
	}
	return body, nil
}

// Trending retrieves the trending movie list for a time window. The
// endpoint has no server-side filter support; callers filter locally.
func (s *TMDBService) Trending(ctx context.Context, window models.TimeWindow) ([]models.Movie, error) {
	if !window.IsValid() {
		return nil, fmt.Errorf("invalid time window: %q", window)
	}

	endpoint := fmt.Sprintf("/trending/movie/%s", window)
	cacheKey := fmt.Sprintf("tmdb:trending:%s", window)

	body, err := s.cachedRequest(ctx, cacheKey, endpoint, nil, s.trendingTTL)
	if err != nil {
		return nil, err
	}

	var response struct {
		Page    int             `json:"page"`
		Results *[]models.Movie `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "malformed trending response"}
	}
	if response.Results == nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "trending response missing results"}
	}

	return *response.Results, nil
}

// MovieDetail retrieves a movie's extended record, with related videos
// and credits appended in the same response.
func (s *TMDBService) MovieDetail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	cacheKey := fmt.Sprintf("tmdb:detail:%d", movieID)

	params := url.Values{}
	params.Set("append_to_response", "videos,credits")

	body, err := s.cachedRequest(ctx, cacheKey, endpoint, params, s.detailTTL)
	if err != nil {
		return nil, err
	}

	var detail models.MovieDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "malformed detail response"}
	}

	return &detail, nil
}

// SearchMovies searches the catalog, delegating filtering to the remote
// API. Set filter fields become query parameters; unset fields are
// omitted entirely.
func (s *TMDBService) SearchMovies(ctx context.Context, query string, page int, filters models.FilterSet) (*SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrBlankQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", "false")
	if filters.Genre != nil {
		params.Set("with_genres", strconv.Itoa(*filters.Genre))
	}
	if filters.Year != nil {
		params.Set("primary_release_year", strconv.Itoa(*filters.Year))
	}
	if filters.Rating != nil {
		params.Set("vote_average.gte", strconv.FormatFloat(*filters.Rating, 'f', -1, 64))
	}

	body, err := s.doRequest(ctx, "/search/movie", params)
	if err != nil {
		return nil, err
	}

	var response struct {
		Page         int             `json:"page"`
		Results      *[]models.Movie `json:"results"`
		TotalPages   int             `json:"total_pages"`
		TotalResults int             `json:"total_results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "malformed search response"}
	}
	if response.Results == nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Message: "search response missing results"}
	}

	if s.logger != nil {
		s.logger.Printf("Search %q (page %d) found %d results", query, response.Page, len(*response.Results))
	}

	return &SearchPage{
		Page:         response.Page,
		Results:      *response.Results,
		TotalPages:   response.TotalPages,
		TotalResults: response.TotalResults,
	}, nil
}

// ImageURL returns the full URL for an image path
func (s *TMDBService) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return s.imageBaseURL + path
}
