package usersdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// User management operations. All of these require a held token; the
// server rejects them with 401 otherwise.

// ListUsers retrieves a page of users. Page and limit fall back to the
// server defaults when <= 0; search filters by email or username and is
// omitted when empty.
func (c *Client) ListUsers(ctx context.Context, page, limit int, search string) (*PaginatedEnvelope[User], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		query.Set("search", search)
	}

	resp, err := c.do(ctx, http.MethodGet, "/users", query, nil)
	if err != nil {
		return nil, err
	}
	return decodePaginated[User](c, resp)
}

// GetUser retrieves a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*Envelope[User], error) {
	resp, err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[User](c, resp)
}

// CreateUser creates a user without establishing a session, unlike
// Register which is the self-service variant of the same shape.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*Envelope[User], error) {
	resp, err := c.do(ctx, http.MethodPost, "/users", nil, req)
	if err != nil {
		return nil, err
	}
	return decode[User](c, resp)
}

// UpdateUser applies a partial update to the user with the given ID.
// Nil fields in req are left unchanged server-side.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*Envelope[User], error) {
	resp, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, req)
	if err != nil {
		return nil, err
	}
	return decode[User](c, resp)
}

// DeleteUser removes the user with the given ID.
func (c *Client) DeleteUser(ctx context.Context, id string) (*Envelope[DeleteResult], error) {
	resp, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[DeleteResult](c, resp)
}
