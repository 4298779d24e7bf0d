// Package geocode proxies the Mappls reverse-geocoding APIs, keeping the
// OAuth credentials and API key server-side. Lookups walk an ordered list of
// provider strategies; the first one that yields results wins and intermediate
// failures are logged and suppressed.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTokenURL     = "https://outpost.mappls.com/api/security/oauth/token"
	defaultAtlasBaseURL = "https://atlas.mappls.com"
	defaultAPIBaseURL   = "https://apis.mappls.com"
	defaultTimeout      = 10 * time.Second

	// confidenceThreshold gates single-result OAuth responses; anything at or
	// below it falls through to the API-key provider.
	confidenceThreshold = 0.5
)

var (
	// ErrNoResults means every strategy was exhausted; the caller should ask
	// the user to enter the address manually.
	ErrNoResults = errors.New("no address found, enter manually")

	// ErrNotConfigured means neither OAuth credentials nor an API key are set.
	ErrNotConfigured = errors.New("geocoding credentials not configured")
)

// Config holds provider credentials and endpoints. Base URLs are overridable
// for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	APIKey       string
	TokenURL     string
	AtlasBaseURL string
	APIBaseURL   string
	Timeout      time.Duration
}

func (c Config) withDefaults() Config {
	if c.TokenURL == "" {
		c.TokenURL = defaultTokenURL
	}
	if c.AtlasBaseURL == "" {
		c.AtlasBaseURL = defaultAtlasBaseURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Result is one resolved address in the shape the original API exposed.
type Result struct {
	HouseNumber      string `json:"houseNumber"`
	HouseName        string `json:"houseName"`
	POI              string `json:"poi"`
	Street           string `json:"street"`
	SubSubLocality   string `json:"subSubLocality"`
	SubLocality      string `json:"subLocality"`
	Locality         string `json:"locality"`
	Village          string `json:"village"`
	District         string `json:"district"`
	SubDistrict      string `json:"subDistrict"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	ELoc             string `json:"eLoc"`
	Lat              string `json:"lat"`
	Lng              string `json:"lng"`
	FormattedAddress string `json:"formatted_address"`
}

// Client resolves coordinates to addresses. The cached OAuth token lives on
// the client, not in a package variable, so instances and tests stay isolated.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     *tokenCache
}

// NewClient creates a geocoding client with a bounded HTTP timeout.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     &tokenCache{},
	}
}

// Configured reports whether at least one lookup path has credentials.
func (c *Client) Configured() bool {
	return (c.cfg.ClientID != "" && c.cfg.ClientSecret != "") || c.cfg.APIKey != ""
}

type strategy struct {
	name string
	run  func(ctx context.Context, lat, lng string) ([]Result, error)
}

// Reverse translates a coordinate pair into candidate addresses, trying each
// strategy in order and returning the first non-empty result set.
func (c *Client) Reverse(ctx context.Context, lat, lng string) ([]Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	strategies := []strategy{
		{"oauth geocode", c.placeGeocode},
		{"oauth reverse-geocode", c.reverseGeocode},
		{"api-key fallback", c.apiKeyReverse},
	}

	for _, s := range strategies {
		results, err := s.run(ctx, lat, lng)
		if err != nil {
			log.Printf("geocode: %s strategy failed: %v", s.name, err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	return nil, ErrNoResults
}

// placeGeocode queries the primary OAuth endpoint. A multi-result response is
// mapped wholesale; a single-result response must clear the confidence gate.
func (c *Client) placeGeocode(ctx context.Context, lat, lng string) ([]Result, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/places/geocode?address=%s",
		c.cfg.AtlasBaseURL, url.QueryEscape(lat+","+lng))
	body, err := c.getJSON(ctx, endpoint, token)
	if err != nil {
		return nil, err
	}

	return parseCopResults(body, lat, lng)
}

// reverseGeocode queries the alternative OAuth endpoint shape.
func (c *Client) reverseGeocode(ctx context.Context, lat, lng string) ([]Result, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/places/reverse-geocode/json?lat=%s&lng=%s",
		c.cfg.AtlasBaseURL, url.QueryEscape(lat), url.QueryEscape(lng))
	body, err := c.getJSON(ctx, endpoint, token)
	if err != nil {
		return nil, err
	}

	return parseCopResults(body, lat, lng)
}

// apiKeyReverse queries the non-OAuth provider endpoint. When its top result
// lacks an eLoc, one forward-geocoding round-trip on the formatted address
// tries to recover it.
func (c *Client) apiKeyReverse(ctx context.Context, lat, lng string) ([]Result, error) {
	if c.cfg.APIKey == "" {
		return nil, errors.New("api key not configured")
	}

	endpoint := fmt.Sprintf("%s/advancedmaps/v1/%s/rev_geocode?lat=%s&lng=%s",
		c.cfg.APIBaseURL, url.PathEscape(c.cfg.APIKey), url.QueryEscape(lat), url.QueryEscape(lng))
	body, err := c.getJSON(ctx, endpoint, "")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Results []providerResult `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse fallback response: %w", err)
	}

	results := make([]Result, 0, len(payload.Results))
	for _, r := range payload.Results {
		results = append(results, r.toResult(lat, lng))
	}

	if len(results) > 0 && results[0].ELoc == "" {
		if eLoc := c.recoverELoc(ctx, results[0].FormattedAddress); eLoc != "" {
			results[0].ELoc = eLoc
		}
	}

	return results, nil
}

// recoverELoc forward-geocodes a formatted address for its eLoc. Best-effort;
// failures are logged and ignored.
func (c *Client) recoverELoc(ctx context.Context, address string) string {
	if address == "" {
		return ""
	}

	token, err := c.token(ctx)
	if err != nil {
		log.Printf("geocode: eLoc recovery skipped: %v", err)
		return ""
	}

	endpoint := fmt.Sprintf("%s/api/places/geocode?address=%s",
		c.cfg.AtlasBaseURL, url.QueryEscape(address))
	body, err := c.getJSON(ctx, endpoint, token)
	if err != nil {
		log.Printf("geocode: eLoc recovery failed: %v", err)
		return ""
	}

	var payload struct {
		CopResults struct {
			ELoc string `json:"eLoc"`
		} `json:"copResults"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.CopResults.ELoc
}

func (c *Client) getJSON(ctx context.Context, endpoint, bearer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// providerResult is the superset of fields the provider returns across its
// response shapes.
type providerResult struct {
	HouseNumber      string      `json:"houseNumber"`
	HouseName        string      `json:"houseName"`
	POI              string      `json:"poi"`
	Street           string      `json:"street"`
	SubSubLocality   string      `json:"subSubLocality"`
	SubLocality      string      `json:"subLocality"`
	Locality         string      `json:"locality"`
	Village          string      `json:"village"`
	District         string      `json:"district"`
	SubDistrict      string      `json:"subDistrict"`
	City             string      `json:"city"`
	State            string      `json:"state"`
	Pincode          string      `json:"pincode"`
	ELoc             string      `json:"eLoc"`
	Latitude         json.Number `json:"latitude"`
	Longitude        json.Number `json:"longitude"`
	Lat              json.Number `json:"lat"`
	Lng              json.Number `json:"lng"`
	FormattedAddress string      `json:"formattedAddress"`
	Formatted        string      `json:"formatted_address"`
	Address          string      `json:"address"`
	ConfidenceScore  float64     `json:"confidenceScore"`
}

func (r providerResult) toResult(queryLat, queryLng string) Result {
	lat := firstNonEmpty(r.Latitude.String(), r.Lat.String(), queryLat)
	lng := firstNonEmpty(r.Longitude.String(), r.Lng.String(), queryLng)

	formatted := firstNonEmpty(r.FormattedAddress, r.Formatted, r.Address)
	if formatted == "" {
		formatted = joinNonEmpty(", ", r.Locality, r.City, r.State)
	}

	return Result{
		HouseNumber:      r.HouseNumber,
		HouseName:        r.HouseName,
		POI:              r.POI,
		Street:           r.Street,
		SubSubLocality:   r.SubSubLocality,
		SubLocality:      r.SubLocality,
		Locality:         r.Locality,
		Village:          r.Village,
		District:         r.District,
		SubDistrict:      r.SubDistrict,
		City:             r.City,
		State:            r.State,
		Pincode:          r.Pincode,
		ELoc:             r.ELoc,
		Lat:              lat,
		Lng:              lng,
		FormattedAddress: formatted,
	}
}

// parseCopResults handles the two OAuth response shapes: an array (every
// entry mapped) or a single object (kept only above the confidence gate).
func parseCopResults(body []byte, lat, lng string) ([]Result, error) {
	var envelope struct {
		CopResults json.RawMessage `json:"copResults"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	raw := strings.TrimSpace(string(envelope.CopResults))
	if raw == "" || raw == "null" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") {
		var many []providerResult
		if err := json.Unmarshal(envelope.CopResults, &many); err != nil {
			return nil, fmt.Errorf("failed to parse provider results: %w", err)
		}
		results := make([]Result, 0, len(many))
		for _, r := range many {
			results = append(results, r.toResult(lat, lng))
		}
		return results, nil
	}

	var single providerResult
	if err := json.Unmarshal(envelope.CopResults, &single); err != nil {
		return nil, fmt.Errorf("failed to parse provider result: %w", err)
	}
	if single.ConfidenceScore <= confidenceThreshold {
		log.Printf("geocode: discarding low-confidence result (score %.2f)", single.ConfidenceScore)
		return nil, nil
	}
	return []Result{single.toResult(lat, lng)}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
