package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://60s.viki.moe/v2"
	DefaultUserAgent = "daily60s/1.0 (github.com/pfrederiksen/daily60s)"
	DefaultTimeout   = 30 * time.Second

	digestPath  = "/60s"
	historyPath = "/today_in_history"
	gamesPath   = "/epic"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20

	snippetLimit = 200
)

// Client fetches the 60s API feeds.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// New creates a Client against baseURL. Zero values fall back to the defaults.
func New(baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// FetchDigest fetches and parses the daily digest.
func (c *Client) FetchDigest(ctx context.Context) (*Digest, error) {
	body, err := c.get(ctx, digestPath)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	d, err := ParseDigest(body)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	return d, nil
}

// FetchHistory fetches and parses today's historical events.
func (c *Client) FetchHistory(ctx context.Context) ([]HistoryEvent, error) {
	body, err := c.get(ctx, historyPath)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	events, err := ParseHistory(body)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return events, nil
}

// FetchGames fetches and parses the Epic free-game promotions.
func (c *Client) FetchGames(ctx context.Context) ([]GamePromotion, error) {
	body, err := c.get(ctx, gamesPath)
	if err != nil {
		return nil, fmt.Errorf("epic: %w", err)
	}

	games, err := ParseGames(body)
	if err != nil {
		return nil, fmt.Errorf("epic: %w", err)
	}
	return games, nil
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrTransport, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	return body, nil
}

// classify maps a transport failure onto ErrTimeout or ErrTransport.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// snippet trims a response body for error messages, cutting on a rune
// boundary.
func snippet(body []byte) string {
	s := strings.TrimSpace(strings.ToValidUTF8(string(body), "\uFFFD"))
	if r := []rune(s); len(r) > snippetLimit {
		s = string(r[:snippetLimit]) + "..."
	}
	return s
}
