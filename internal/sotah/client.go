package sotah

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned when the API rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// API is the subset of the sotah HTTP API the dashboard consumes.
// It is implemented by *Client and can be faked in tests.
type API interface {
	Ping(ctx context.Context) error
	Boot(ctx context.Context) (*Boot, error)
	Realms(ctx context.Context, region RegionName) ([]Realm, error)
	Login(ctx context.Context, email, password string) (Profile, error)
	Register(ctx context.Context, email, password string) (Profile, error)
	ReloadUser(ctx context.Context, token string) (User, error)
	Preferences(ctx context.Context, token string) (*UserPreference, error)
	SavePreferences(ctx context.Context, token string, pref UserPreference) (*UserPreference, error)
	Pricelists(ctx context.Context, token string, region RegionName, realm RealmSlug) ([]Pricelist, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the sotah HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL    = "https://api.sotah.info"
	defaultUserAgent = "realmboard/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// treated as http.
func NewClient(apiURL string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Ping checks API availability.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, "/ping", "", nil, nil)
}

// Boot fetches regions, item classes, professions and expansions.
func (c *Client) Boot(ctx context.Context) (*Boot, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload Boot
	if err := c.do(ctx, http.MethodGet, "/boot", "", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Realms fetches the realm list of a region in server order.
func (c *Client) Realms(ctx context.Context, region RegionName) ([]Realm, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(string(region)) == "" {
		return nil, fmt.Errorf("region name required")
	}
	var payload realmsResponse
	path := "/region/" + url.PathEscape(string(region)) + "/realms"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Realms, nil
}

// Login exchanges credentials for a profile.
func (c *Client) Login(ctx context.Context, email, password string) (Profile, error) {
	return c.credentials(ctx, "/login", email, password)
}

// Register creates an account and returns its profile.
func (c *Client) Register(ctx context.Context, email, password string) (Profile, error) {
	return c.credentials(ctx, "/users", email, password)
}

func (c *Client) credentials(ctx context.Context, path, email, password string) (Profile, error) {
	if c == nil {
		return Profile{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return Profile{}, fmt.Errorf("email and password required")
	}
	var payload Profile
	body := loginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := c.do(ctx, http.MethodPost, path, "", body, &payload); err != nil {
		return Profile{}, err
	}
	return payload, nil
}

// ReloadUser resolves the user that owns token.
func (c *Client) ReloadUser(ctx context.Context, token string) (User, error) {
	if c == nil {
		return User{}, fmt.Errorf("client is nil")
	}
	var payload User
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &payload); err != nil {
		return User{}, err
	}
	return payload, nil
}

// Preferences fetches the stored user preference. A user without stored
// preferences yields (nil, nil).
func (c *Client) Preferences(ctx context.Context, token string) (*UserPreference, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserPreference
	err := c.do(ctx, http.MethodGet, "/user/preferences", token, nil, &payload)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// SavePreferences stores pref for the token's user.
func (c *Client) SavePreferences(ctx context.Context, token string, pref UserPreference) (*UserPreference, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UserPreference
	if err := c.do(ctx, http.MethodPut, "/user/preferences", token, pref, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Pricelists fetches the token user's pricelists for one realm.
func (c *Client) Pricelists(ctx context.Context, token string, region RegionName, realm RealmSlug) ([]Pricelist, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if region == "" || realm == "" {
		return nil, fmt.Errorf("region and realm required")
	}
	path := "/user/pricelists/region/" + url.PathEscape(string(region)) + "/realm/" + url.PathEscape(string(realm))
	var payload pricelistsResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Pricelists, nil
}

var errNotFound = errors.New("not found")

func (c *Client) do(ctx context.Context, method, path, token string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("api %s: %w", path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("api %s: %w", path, errNotFound)
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
