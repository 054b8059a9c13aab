// Package directory resolves user identities against the WebTele directory
// service and memoizes the results with a time-bounded in-process cache.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUserIDRequired is returned when a lookup is attempted with an empty id.
var ErrUserIDRequired = errors.New("user ID is required")

// UserInfo is a resolved directory record. A record with Err set is a
// degraded fallback (placeholder name, empty email); callers treat it as a
// valid result and surface the error reason only for diagnostics.
type UserInfo struct {
	UserID   string         `json:"userId"`
	UserName string         `json:"userName"`
	Email    string         `json:"email"`
	RawData  map[string]any `json:"rawData,omitempty"`
	Err      string         `json:"error,omitempty"`
}

// Fetcher fetches a directory record for a user id.
type Fetcher interface {
	Fetch(ctx context.Context, userID string) (*UserInfo, error)
}

// Client is an HTTP client for the WebTele directory service. Records are
// fetched from <baseURL>/<userId> and expose FormattedName and OfficialEmail.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Fetch(ctx context.Context, userID string) (*UserInfo, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	// Ids come straight from the request path; escape so a "/" or "?" in one
	// cannot change which resource is fetched.
	lookupURL := c.baseURL + "/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("directory error (status %d): %s", resp.StatusCode, string(body))
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding directory response: %w", err)
	}

	info := &UserInfo{
		UserID:   userID,
		UserName: stringField(raw, "FormattedName"),
		Email:    stringField(raw, "OfficialEmail"),
		RawData:  raw,
	}
	if info.UserName == "" {
		info.UserName = FallbackName(userID)
	}
	return info, nil
}

// FallbackName is the placeholder display name used when the directory has no
// formatted name for a user, or the lookup failed entirely.
func FallbackName(userID string) string {
	return "User " + userID
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}
