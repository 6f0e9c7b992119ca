package menuboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

const maxErrorBody = 64 << 10

// ErrNotLoggedIn is returned by calls that need a session when none is stored.
var ErrNotLoggedIn = fmt.Errorf("menuboard: not logged in: %w", ErrUnauthorized)

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

// Client is the menuboard SDK entry point.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	sessions  SessionStore
	obs       *observer
	now       func() time.Time
}

// New creates a Client for the API served at baseURL (scheme and host,
// without the /api prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("menuboard: parse base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("menuboard: base url %q must be absolute http(s)", baseURL)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}
	sessions := cfg.sessions
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		base:      base,
		http:      hc,
		userAgent: cfg.userAgent,
		sessions:  sessions,
		obs:       obs,
		now:       time.Now,
	}, nil
}

// Restaurants returns the restaurant service.
func (c *Client) Restaurants() *RestaurantService {
	return &RestaurantService{c: c}
}

// MenuItems returns the menu item service.
func (c *Client) MenuItems() *MenuItemService {
	return &MenuItemService{c: c}
}

type call struct {
	op     string
	method string
	path   []string
	query  url.Values
	body   any
	auth   authMode
}

func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(cl.op, start, err) }()

	token, err := c.token(ctx, cl.auth)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, cl, token)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("menuboard: %s: %w", cl.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := decodeAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			// The server no longer accepts the stored token.
			if cerr := c.sessions.Clear(ctx); cerr != nil {
				return errors.Join(apiErr, cerr)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("menuboard: %s: decode response: %w", cl.op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call, token string) (*http.Request, error) {
	u := c.base.JoinPath(append([]string{"api"}, cl.path...)...)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader = http.NoBody
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("menuboard: %s: encode request: %w", cl.op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("menuboard: %s: build request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// token returns the stored bearer token for the auth mode. Expired
// sessions are treated as absent.
func (c *Client) token(ctx context.Context, mode authMode) (string, error) {
	if mode == authNone {
		return "", nil
	}
	s, err := c.sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	if s == nil || s.Token == "" || s.Expired(c.now()) {
		if mode == authRequired {
			return "", ErrNotLoggedIn
		}
		return "", nil
	}
	return s.Token, nil
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
