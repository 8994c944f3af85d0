package fdc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/smartshelf/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new FoodData Central API client
func NewClient(apiKey, baseURL string) *Client {
	// FDC allows 1000 requests per hour
	// rate.Limit is requests per second, so 1000/3600 ≈ 0.278 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// searchRequest is the FDC search request body
type searchRequest struct {
	Query    string   `json:"query"`
	DataType []string `json:"dataType,omitempty"`
}

// SearchFoods searches FoodData Central for the given query. When
// foundationOnly is set the search is restricted to Foundation-typed
// entries; callers fall back to an unfiltered search themselves.
func (c *Client) SearchFoods(ctx context.Context, query string, foundationOnly bool) (*domain.FDCSearchResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqBody := searchRequest{Query: query}
	if foundationOnly {
		reqBody.DataType = []string{"Foundation"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/foods/search?api_key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: creating search request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: nutrition provider reported 429", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[FDC] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var searchResp domain.FDCSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", domain.ErrUpstream, err)
	}

	log.Printf("[FDC] Found %d foods for query: %q", len(searchResp.Foods), query)
	return &searchResp, nil
}
