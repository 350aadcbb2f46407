// Package qonversion provides a minimal client for the Qonversion v3 API:
// identity resolution plus user, property and entitlement fetches.
package qonversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mihaimyh/qondesk/pkg/qondesk"
)

const (
	// DefaultBaseURL is the production Qonversion API endpoint.
	DefaultBaseURL = "https://api.qonversion.io/v3/"

	defaultHTTPTimeout = 10 * time.Second

	endpointIdentities   = "identities"
	endpointUsers        = "users"
	endpointProperties   = "users/properties"
	endpointEntitlements = "users/entitlements"
)

// ErrIdentityNotFound is returned by ResolveIdentity when the email is not
// known to Qonversion. It is a legitimate outcome, not a failure.
var ErrIdentityNotFound = errors.New("qonversion identity not found")

// Config holds client configuration.
type Config struct {
	// ProjectKey is the Qonversion project key used as the bearer credential
	// (required).
	ProjectKey string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient overrides the HTTP client. Defaults to a client with a
	// 10 second timeout.
	HTTPClient *http.Client

	// Logger is optional structured logging. Defaults to no-op.
	Logger qondesk.Logger

	// Metrics is optional operation tracking. Defaults to no-op.
	Metrics qondesk.Metrics
}

// Client issues authenticated requests to the Qonversion API.
// A single client (and its underlying HTTP client) is shared by all calls.
type Client struct {
	baseURL    string
	projectKey string
	httpClient *http.Client
	logger     qondesk.Logger
	metrics    qondesk.Metrics
}

// NewClient creates a new Qonversion API client.
func NewClient(config Config) (*Client, error) {
	projectKey := strings.TrimSpace(config.ProjectKey)

	// Allow the key to be provided as a Bearer token and strip the prefix.
	if strings.HasPrefix(strings.ToLower(projectKey), "bearer ") {
		projectKey = strings.TrimSpace(projectKey[len("bearer "):])
	}
	if projectKey == "" {
		return nil, qondesk.ErrNotConfigured
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = &qondesk.NoopLogger{}
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &qondesk.NoopMetrics{}
	}

	return &Client{
		baseURL:    baseURL,
		projectKey: projectKey,
		httpClient: httpClient,
		logger:     logger,
		metrics:    metrics,
	}, nil
}

// ResolveIdentity resolves an email address to a Qonversion user id.
// A 404 response maps to ErrIdentityNotFound; any other non-2xx status or
// transport failure is an error.
func (c *Client) ResolveIdentity(ctx context.Context, email string) (*Identity, error) {
	var identity Identity
	status, err := c.get(ctx, endpointIdentities, "identities/"+encodeEmail(email), &identity)
	if status == http.StatusNotFound {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return &identity, nil
}

// GetUser fetches the user record. Callers treat failures as absent data.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	_, err := c.get(ctx, endpointUsers, "users/"+url.PathEscape(userID), &user)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserProperties fetches the user property list. Callers treat failures
// as absent data.
func (c *Client) GetUserProperties(ctx context.Context, userID string) ([]Property, error) {
	var resp propertiesResponse
	_, err := c.get(ctx, endpointProperties, "users/"+url.PathEscape(userID)+"/properties", &resp)
	if err != nil {
		return nil, fmt.Errorf("get user properties: %w", err)
	}
	return resp.Properties, nil
}

// GetEntitlements fetches the user's entitlements, most recent first.
// Callers treat failures as absent data.
func (c *Client) GetEntitlements(ctx context.Context, userID string) ([]Entitlement, error) {
	var resp entitlementsResponse
	_, err := c.get(ctx, endpointEntitlements, "users/"+url.PathEscape(userID)+"/entitlements", &resp)
	if err != nil {
		return nil, fmt.Errorf("get entitlements: %w", err)
	}
	return resp.Data, nil
}

// get issues a GET request and decodes the JSON body into out.
// It returns the HTTP status code (0 on transport failure) so callers can
// special-case 404 before inspecting the error.
func (c *Client) get(ctx context.Context, endpoint, path string, out interface{}) (int, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.projectKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordAPICall(endpoint, "error")
		c.metrics.RecordAPICallDuration(endpoint, time.Since(start))
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	c.metrics.RecordAPICall(endpoint, strconv.Itoa(res.StatusCode))
	c.metrics.RecordAPICallDuration(endpoint, time.Since(start))

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Debug("qonversion API returned non-2xx status",
			qondesk.Field{Key: "endpoint", Value: endpoint},
			qondesk.Field{Key: "status", Value: res.StatusCode},
		)
		return res.StatusCode, fmt.Errorf("qonversion API error: status %d", res.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return res.StatusCode, fmt.Errorf("parse response: %w", err)
	}
	return res.StatusCode, nil
}

// encodeEmail percent-encodes an email for use as a path segment the way
// rawurlencode does: "@" must become "%40" and spaces "%20".
func encodeEmail(email string) string {
	return strings.ReplaceAll(url.QueryEscape(email), "+", "%20")
}
