package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshLeeway refreshes the token this long before its actual expiry.
const refreshLeeway = 60 * time.Second

// tokenCache holds the process-wide OAuth bearer token. Concurrent requests
// may both trigger a refresh; the grant is idempotent so duplicates are
// harmless, only wasteful.
type tokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
}

// token returns a cached bearer token, refreshing it via the
// client-credentials grant when absent or close to expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", errors.New("oauth credentials not configured")
	}

	c.tokens.mu.Lock()
	defer c.tokens.mu.Unlock()

	if c.tokens.token != "" && time.Until(c.tokens.expiry) > refreshLeeway {
		return c.tokens.token, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("oauth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("oauth failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return "", fmt.Errorf("failed to parse oauth response: %w", err)
	}
	if grant.AccessToken == "" {
		return "", errors.New("oauth response missing access_token")
	}
	if grant.ExpiresIn == 0 {
		grant.ExpiresIn = 3600
	}

	c.tokens.token = grant.AccessToken
	c.tokens.expiry = time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second)

	return c.tokens.token, nil
}
