package kroger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/smartshelf/backend/internal/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultTokenMargin is subtracted from the provider-reported TTL so a
// token is never used within a minute of its real expiry.
const DefaultTokenMargin = 60 * time.Second

// tokenResponse is the provider's client-credentials grant response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenManager owns the catalog provider's bearer token lifecycle.
// Token returns a bearer valid for at least the safety margin,
// refreshing transparently when needed. Concurrent refreshes coalesce
// into a single grant request.
type TokenManager struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	scope        string
	margin       time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// NewTokenManager creates a token manager for the given credentials.
// A margin <= 0 falls back to DefaultTokenMargin.
func NewTokenManager(baseURL, clientID, clientSecret, scope string, margin time.Duration) *TokenManager {
	if margin <= 0 {
		margin = DefaultTokenMargin
	}
	return &TokenManager{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		margin:       margin,
	}
}

// Token returns a bearer token valid for at least the safety margin.
// A blocking refresh is performed when the current token is absent or
// inside the margin; expiresAt already accounts for the margin.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.token != "" && time.Now().Before(m.expiresAt) {
		token := m.token
		m.mu.Unlock()
		return token, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do("refresh", func() (interface{}, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate forces the next Token call to refresh. Used after the
// provider rejects a request as unauthenticated.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}

// refresh performs the client-credentials grant. Refresh failures are
// not retried here; the caller decides.
func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", m.scope)

	endpoint := fmt.Sprintf("%s/connect/oauth2/token", m.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.AuthError{Err: err}
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Printf("[KROGER] Token request failed: %v", err)
		return "", &domain.AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[KROGER] Token grant rejected - Status: %d, Body: %s", resp.StatusCode, string(body))
		return "", &domain.AuthError{StatusCode: resp.StatusCode}
	}

	var grant tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Err: err}
	}
	if grant.AccessToken == "" {
		return "", &domain.AuthError{StatusCode: resp.StatusCode, Err: fmt.Errorf("empty access_token in grant response")}
	}

	expiresAt := time.Now().Add(time.Duration(grant.ExpiresIn)*time.Second - m.margin)

	m.mu.Lock()
	m.token = grant.AccessToken
	m.expiresAt = expiresAt
	m.mu.Unlock()

	log.Printf("[KROGER] Obtained access token, valid until %s", expiresAt.Format(time.RFC3339))
	return grant.AccessToken, nil
}
