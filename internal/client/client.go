// Package client is a Go client for the kabar API. It keeps the session
// cookie in a jar and caches the authenticated user the way a browser
// session store would, so callers can ask "who am I" without a round trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/kabarin/kabar/internal/entities"
)

// APIError carries the status code and message of a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    *entities.PublicUser `json:"data"`
}

// Client talks to the kabar API. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu   sync.RWMutex
	user *entities.PublicUser
}

// New creates a client for the API at baseURL. The session cookie issued on
// register/login is kept in an in-memory jar and sent on subsequent requests.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*entities.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	c.setUser(env.Data)
	return env.Data, nil
}

// Login authenticates and starts a session.
func (c *Client) Login(ctx context.Context, email, password string) (*entities.PublicUser, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	c.setUser(env.Data)
	return env.Data, nil
}

// Logout ends the session. The cached user is cleared even if the request
// fails; the server keeps no session state to clean up.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	c.setUser(nil)
	return err
}

// Me fetches the current user and refreshes the cache. A 401 means the
// session is gone (expired or never existed): the cache resets to
// unauthenticated and no error is returned.
func (c *Client) Me(ctx context.Context) (*entities.PublicUser, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.setUser(nil)
			return nil, nil
		}
		return nil, err
	}

	c.setUser(env.Data)
	return env.Data, nil
}

// CurrentUser returns the cached user from the last successful auth call, or
// nil when unauthenticated.
func (c *Client) CurrentUser() *entities.PublicUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// IsAuthenticated reports whether a user is cached.
func (c *Client) IsAuthenticated() bool {
	return c.CurrentUser() != nil
}

func (c *Client) setUser(user *entities.PublicUser) {
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
