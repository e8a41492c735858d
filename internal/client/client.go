// Package client is a Go client for the portfolio API. It keeps the session
// token in a SessionStore, attaches it to every request and drops it as soon
// as the server answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/portfolio/internal/model"
)

// APIError is a non-2xx response decoded from the {"error": ...} body.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the API rooted at BaseURL (for example
// "http://localhost:5000/api").
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Store   SessionStore
	// OnUnauthorized runs after a 401 cleared the stored token. Interactive
	// front ends use it to send the user back to the login screen.
	OnUnauthorized func()
}

func New(baseURL string, store SessionStore) *Client {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Store:   store,
	}
}

type authResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (model.PublicUser, error) {
	var res authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res); err != nil {
		return model.PublicUser{}, err
	}
	if err := c.Store.SaveToken(res.Token); err != nil {
		return model.PublicUser{}, err
	}
	return res.User, nil
}

// Register creates an admin account and stores its token.
func (c *Client) Register(ctx context.Context, email, password, name string) (model.PublicUser, error) {
	var res authResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, &res); err != nil {
		return model.PublicUser{}, err
	}
	if err := c.Store.SaveToken(res.Token); err != nil {
		return model.PublicUser{}, err
	}
	return res.User, nil
}

// Me fetches the account behind the stored token.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.Do(ctx, http.MethodPut, "/auth/password", map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}, nil)
}

// Logout forgets the token locally. The server keeps no session to end.
func (c *Client) Logout() error {
	return c.Store.ClearToken()
}

// Restore resumes a stored session by calling /auth/me. Any failure clears
// the token. ok is false when there was nothing to restore or it failed.
func (c *Client) Restore(ctx context.Context) (u model.User, ok bool, err error) {
	tok, err := c.Store.CurrentToken()
	if err != nil || tok == "" {
		return model.User{}, false, err
	}
	u, err = c.Me(ctx)
	if err != nil {
		if cerr := c.Store.ClearToken(); cerr != nil {
			return model.User{}, false, cerr
		}
		if IsUnauthorized(err) {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}
	return u, true, nil
}

// Do sends a JSON request to path and decodes a JSON response into out
// (skipped when out is nil). Non-2xx answers become *APIError; a 401 also
// clears the stored token and fires OnUnauthorized.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tok, err := c.Store.CurrentToken()
	if err != nil {
		return err
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var payload struct {
		Error  string       `json:"error"`
		Errors []FieldError `json:"errors"`
	}
	if json.NewDecoder(resp.Body).Decode(&payload) == nil {
		apiErr.Message = payload.Error
		apiErr.Fields = payload.Errors
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.Store.ClearToken()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
	}
	return apiErr
}
