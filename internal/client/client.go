// Package client is a small Go client for the user-management API.
// Credentials are held in memory only and sent as HTTP Basic auth on
// every call, mirroring the server's per-request authentication.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is the sanitized record shape the API returns.
type User struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Phone     *string   `json:"phone"`
}

// APIError carries the HTTP status and the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Users   []User `json:"users"`
}

type Client struct {
	baseURL string
	http    *http.Client

	email    string
	password string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetCredentials stores the Basic auth pair used for subsequent calls.
func (c *Client) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

// Register creates a new account. Does not require credentials.
func (c *Client) Register(ctx context.Context, name, email, password string, phone *string) (*User, error) {
	body := map[string]interface{}{"name": name, "email": email, "password": password}
	if phone != nil {
		body["phone"] = *phone
	}
	env, err := c.do(ctx, http.MethodPost, "/users", body, false)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Login verifies the stored credentials by listing users and returns
// the caller's own record from the result.
func (c *Client) Login(ctx context.Context) (*User, error) {
	users, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == c.email {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("authenticated as %s but record not present in listing", c.email)
}

// List returns all users.
func (c *Client) List(ctx context.Context) ([]User, error) {
	env, err := c.do(ctx, http.MethodGet, "/users", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, id uint64) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, true)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateProfile sends a partial profile update; nil fields are omitted.
func (c *Client) UpdateProfile(ctx context.Context, name, email, phone *string) (*User, error) {
	body := map[string]interface{}{}
	if name != nil {
		body["name"] = *name
	}
	if email != nil {
		body["email"] = *email
	}
	if phone != nil {
		body["phone"] = *phone
	}
	env, err := c.do(ctx, http.MethodPut, "/api/user/profile", body, true)
	if err != nil {
		return nil, err
	}
	if email != nil {
		c.email = *email
	}
	return env.User, nil
}

// ChangePassword replaces the caller's own password and updates the
// stored credential on success.
func (c *Client) ChangePassword(ctx context.Context, newPassword, repeat string) error {
	body := map[string]interface{}{
		"new_password":        newPassword,
		"new_password_repeat": repeat,
	}
	if _, err := c.do(ctx, http.MethodPut, "/api/user/password", body, true); err != nil {
		return err
	}
	c.password = newPassword
	return nil
}

// AdminChangePassword resets another user's password (administrator only).
func (c *Client) AdminChangePassword(ctx context.Context, id uint64, newPassword string) error {
	body := map[string]interface{}{"new_password": newPassword}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/users/%d/change-password", id), body, true)
	return err
}

// Delete removes a record by id (own record only).
func (c *Client) Delete(ctx context.Context, id uint64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, true)
	return err
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, false)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool) (*envelope, error) {
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.SetBasicAuth(c.email, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || env.Result == "error" {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}
