package service

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

	"github.com/bytedance/sonic"
	"golang.org/x/oauth2"
)

const DefaultAPIURL = "https://api.github.com"

var (
	ErrGithubUserNotFound = errors.New("github user not found")
	ErrGithubRateLimited  = errors.New("github rate limit reached")
)

// Event is the subset of a GitHub events API item we use.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient authenticates with token when given (higher rate limit);
// anonymous otherwise.
func NewClient(ctx context.Context, baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultAPIURL
	}
	hc := &http.Client{Timeout: 15 * time.Second}
	if token = strings.TrimSpace(token); token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		hc.Timeout = 15 * time.Second
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}
}

// PublicEvents: GET /users/{login}/events/public
func (c *Client) PublicEvents(ctx context.Context, login string, perPage int) ([]Event, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}
	endpoint := fmt.Sprintf("%s/users/%s/events/public?per_page=%d", c.BaseURL, url.PathEscape(login), perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "emptrack-backend")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("github read: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrGithubUserNotFound
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return nil, ErrGithubRateLimited
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("github: unexpected status %d", resp.StatusCode)
	}

	var events []Event
	if err := sonic.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("github decode: %w", err)
	}
	return events, nil
}
