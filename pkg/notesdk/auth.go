package notesdk

import (
	"context"
	"net/http"
)

// Register creates an account and stores the session cookie.
func (c *Client) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password, http.StatusCreated)
}

// Login signs in and stores the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password, http.StatusOK)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string, status int) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, status); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Logout asks the server to expire the session cookie and drops any bearer
// token. The token itself stays valid until it expires.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	c.BearerToken = ""
	return checkStatusNoContent(resp)
}

// Me returns the signed in user.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}
