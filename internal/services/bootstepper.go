// BootStepper catalog API implementation of [Catalog]
//
// Endpoint shapes follow the public search/detail/step-sheet API; every
// payload field the catalog is known to duck-type is declared here once and
// coalesced in normalize.go.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultCatalogBaseURL = "https://api.bootstepper.com"
	defaultSearchLimit    = 10
	defaultRateLimit      = 5.0

	apiKeyHeader = "X-BootStepper-API-Key"
)

// RawSong is the nested song association on a catalog record.
type RawSong struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// RawDanceSong wraps the possibly-absent song association.
type RawDanceSong struct {
	Song *RawSong `json:"song"`
}

// RawDance is a catalog record as returned by search or detail endpoints.
//
// Several concepts arrive under one of two field names (counts/count,
// walls/wallCount, stepSheetUrl/stepsheet); both are declared and coalesced by
// [NormalizeDance]. Numeric fields are pointers so absence is distinguishable
// from zero.
type RawDance struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	DifficultyLevel      string         `json:"difficultyLevel"`
	Counts               *float64       `json:"counts"`
	Count                *float64       `json:"count"`
	Walls                *float64       `json:"walls"`
	WallCount            *float64       `json:"wallCount"`
	StepSheetURL         string         `json:"stepSheetUrl"`
	StepSheet            string         `json:"stepsheet"`
	OriginalStepSheetURL string         `json:"originalStepSheetUrl"`
	StepSheetID          string         `json:"stepSheetId"`
	DanceSongs           []RawDanceSong `json:"danceSongs"`
}

// RawStepRow is one row of step-sheet content. Rows are unstructured bags of
// optional fields; heading/title and text/description/instruction are synonyms.
type RawStepRow struct {
	Heading     string `json:"heading"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
	Counts      any    `json:"counts"`
	Note        string `json:"note"`
}

type searchResponse struct {
	Items []RawDance `json:"items"`
}

type stepSheetResponse struct {
	Content []RawStepRow `json:"content"`
}

// BootStepperService implements [Catalog] against the BootStepper HTTP API.
//
// All requests carry the API key header and pass through a [rate.Limiter] so
// back-to-back searches stay under the catalog's request budget.
type BootStepperService struct {
	baseURL    string
	apiKey     string
	limit      int
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewBootStepperService creates a catalog client from configuration.
// The API key is injected here, never compiled in.
func NewBootStepperService(cfg shared.CatalogConfig, client *http.Client) *BootStepperService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCatalogBaseURL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultSearchLimit
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &BootStepperService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limit:      cfg.Limit,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		httpClient: client,
	}
}

// Name returns the catalog's display name.
func (b *BootStepperService) Name() string {
	return "BootStepper"
}

// doRequest performs a rate-limited, keyed GET against the catalog API.
func (b *BootStepperService) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := b.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(apiKeyHeader, b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: status 404", shared.ErrDanceNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: catalog API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search issues a keyed text query against the catalog.
//
// An empty or whitespace-only query is a no-op: no request is issued and an
// empty result is returned.
func (b *BootStepperService) Search(ctx context.Context, query string) ([]models.Dance, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("/dances/search?query=%s&limit=%d", url.QueryEscape(query), b.limit)

	var response searchResponse
	if err := b.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	dances := make([]models.Dance, len(response.Items))
	for i := range response.Items {
		dances[i] = NormalizeDance(&response.Items[i])
	}

	return dances, nil
}

// GetByID fetches the extended detail record for a dance.
func (b *BootStepperService) GetByID(ctx context.Context, id string) (*models.Dance, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing dance id", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/dances/getById?id=%s", url.QueryEscape(id))

	var raw RawDance
	if err := b.doRequest(ctx, endpoint, &raw); err != nil {
		return nil, err
	}

	dance := NormalizeDance(&raw)
	return &dance, nil
}

// GetStepSheet fetches step-sheet content by step-sheet identifier.
func (b *BootStepperService) GetStepSheet(ctx context.Context, id string) ([]models.StepRow, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing step sheet id", shared.ErrInvalidArgument)
	}

	endpoint := fmt.Sprintf("/dances/getStepSheet?id=%s", url.QueryEscape(id))

	var response stepSheetResponse
	if err := b.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	rows := make([]models.StepRow, 0, len(response.Content))
	for _, raw := range response.Content {
		row := NormalizeStepRow(raw)
		if row != (models.StepRow{}) {
			rows = append(rows, row)
		}
	}

	return rows, nil
}
