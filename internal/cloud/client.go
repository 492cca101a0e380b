// Package cloud mirrors the local profile to a remote sync service so
// progress survives reinstalls and follows the user across machines.
// The local database stays authoritative; sync is push/pull on demand.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abhisek/texdrill/internal/store"
)

var (
	// ErrNotFound means the service has no profile for this key yet.
	ErrNotFound = errors.New("no remote profile found")
	// ErrNotConfigured means the sync URL or API key is missing.
	ErrNotConfigured = errors.New("sync is not configured")
)

const defaultTimeout = 30 * time.Second

// Client talks to the profile sync service.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.client = h }
}

// New returns a Client for the sync service at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromEnv builds a Client from TEXDRILL_SYNC_URL and TEXDRILL_SYNC_KEY.
// Returns ErrNotConfigured when either is unset.
func FromEnv() (*Client, error) {
	url := os.Getenv("TEXDRILL_SYNC_URL")
	key := os.Getenv("TEXDRILL_SYNC_KEY")
	if url == "" || key == "" {
		return nil, ErrNotConfigured
	}
	return New(url, key), nil
}

// Pull fetches the remote profile. Returns ErrNotFound when the service
// has never seen a push for this key.
func (c *Client) Pull(ctx context.Context) (*store.ProfileData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/profile", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("pull profile: HTTP %d", resp.StatusCode)
	}

	var data store.ProfileData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode remote profile: %w", err)
	}
	return &data, nil
}

// Push uploads the profile, replacing whatever the service holds.
func (c *Client) Push(ctx context.Context, data *store.ProfileData) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/v1/profile", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("push profile: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("push profile: HTTP %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}
