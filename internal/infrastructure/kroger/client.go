package kroger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/smartshelf/backend/internal/domain"
	"golang.org/x/time/rate"
)

// searchResponse is the provider's product search envelope
type searchResponse struct {
	Data []productItem `json:"data"`
}

// productItem is one raw product search result
type productItem struct {
	ProductID   string   `json:"productId"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Categories  []string `json:"categories"`
	Items       []struct {
		Price struct {
			Regular json.Number `json:"regular"`
		} `json:"price"`
	} `json:"items"`
}

// Client performs authenticated product search against the catalog
// provider, gated by the shared Budget and TokenManager.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenManager
	budget     *Budget
	limiter    *rate.Limiter
}

// NewClient creates a catalog client. The smoothing limiter keeps bursts
// of per-ingredient searches from hammering the provider; the daily
// quota itself is enforced by the Budget.
func NewClient(baseURL string, tokens *TokenManager, budget *Budget) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		tokens:  tokens,
		budget:  budget,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// SearchProducts searches the catalog for products matching the term.
// The budget is reserved before any token work so a refresh can never
// consume quota. An empty slice with a nil error means no matches.
func (c *Client) SearchProducts(ctx context.Context, term, locationID string, limit int) ([]domain.CatalogProduct, error) {
	if err := c.budget.Reserve(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.doSearch(ctx, token, term, locationID, limit)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token rejected mid-lifetime: refresh once and retry once.
		resp.Body.Close()
		c.tokens.Invalidate()
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = c.doSearch(ctx, token, term, locationID, limit)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			return nil, &domain.AuthError{StatusCode: http.StatusUnauthorized}
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: provider reported 429 for %q", domain.ErrRateLimited, term)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[KROGER] Search error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("%w: decoding search response: %v", domain.ErrUpstream, err)
	}

	products := make([]domain.CatalogProduct, 0, len(search.Data))
	for _, item := range search.Data {
		product, err := mapProduct(item)
		if err != nil {
			log.Printf("[KROGER] Skipping unparseable product for %q: %v", term, err)
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

// doSearch issues one bearer-authenticated search request. The caller
// owns the response body.
func (c *Client) doSearch(ctx context.Context, token, term, locationID string, limit int) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/products", c.baseURL)
	params := url.Values{}
	params.Set("filter.term", term)
	params.Set("filter.locationId", locationID)
	params.Set("filter.limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating search request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return resp, nil
}
