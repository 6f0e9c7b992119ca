package menuboard

import (
	"context"
	"net/http"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Session, error) {
	return c.authenticate(ctx, "register", "register", credentials{Email: email, Password: password, Name: name})
}

// Login exchanges credentials for a session and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "login", "login", credentials{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, op, path string, body credentials) (*Session, error) {
	var s Session
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodPost,
		path:   []string{"auth", path},
		body:   body,
	}, &s)
	if err != nil {
		return nil, err
	}
	if err := c.sessions.Save(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Logout forgets the stored session. Tokens are stateless, so the server is not called.
func (c *Client) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}

// Session returns the stored session, or nil when logged out or expired.
func (c *Client) Session(ctx context.Context) (*Session, error) {
	s, err := c.sessions.Load(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	if s.Expired(c.now()) {
		return nil, nil
	}
	return s, nil
}

// IsLoggedIn reports whether a usable session is stored.
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	s, err := c.Session(ctx)
	return err == nil && s != nil
}

// Profile fetches the current user from the server.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	err := c.do(ctx, call{
		op:     "profile",
		method: http.MethodGet,
		path:   []string{"auth", "profile"},
		auth:   authRequired,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
