package usersdk

import "time"

// ============================================================================
// Envelope Types
// ============================================================================

// Envelope is the response wrapper every backend endpoint returns.
// The payload in Data must not be trusted unless Success is true and
// Data is non-nil; a false Success and a transport error are equivalent
// failure signals for callers.
type Envelope[T any] struct {
	// Success reports whether the operation succeeded server-side
	Success bool `json:"success"`

	// Data is the operation payload, present only on success
	Data *T `json:"data,omitempty"`

	// Message is an optional human-readable message
	Message string `json:"message,omitempty"`

	// Error is an optional server-supplied error string
	Error string `json:"error,omitempty"`
}

// PaginatedEnvelope wraps a list payload together with pagination metadata.
// This is returned from the GET /users endpoint.
type PaginatedEnvelope[T any] struct {
	Envelope[[]T]

	// Pagination describes the page window the Data slice covers
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the window of a paginated list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ============================================================================
// User Types
// ============================================================================

// User represents an account in the user-management service.
type User struct {
	// ID is the unique identifier assigned by the backend
	ID string `json:"_id"`

	// Email is the account's email address, unique per account
	Email string `json:"email"`

	// Username is the account's display handle
	Username string `json:"username"`

	// FirstName is the optional given name
	FirstName string `json:"firstName,omitempty"`

	// LastName is the optional family name
	LastName string `json:"lastName,omitempty"`

	// IsActive reports whether the account is enabled
	IsActive bool `json:"isActive"`

	// LastLogin is the time of the most recent successful login, if any
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// CreatedAt is when the account was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the account was last modified
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest contains the fields for registration and for the
// admin create-user operation. Both endpoints accept the same shape.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginRequest contains the credentials for the login operation.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest contains the updatable profile fields. Pointer
// fields distinguish "leave unchanged" (nil) from an explicit zero
// value, so a partial update touches only what the caller set.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// LoginData is the payload of a successful login: the authenticated
// user together with the bearer token the server issued for the
// session. The token is extracted and persisted by Client.Login.
type LoginData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// DeleteResult is the payload of a successful delete-user operation.
type DeleteResult struct {
	Message string `json:"message"`
}
