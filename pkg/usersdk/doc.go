/*
Package usersdk provides a client for the user-management REST API.

# Overview

The package is organized around a single type:

  - Client: a stateless request helper plus the currently held bearer
    token. One method exists per backend operation.

Create a Client with the service base URL:

	client := usersdk.New("http://localhost:3000/api")

	// Authenticate; the issued token is stored on the client
	env, err := client.Login(ctx, usersdk.LoginRequest{
		Email:    "a@b.com",
		Password: "pw",
	})

	// Authenticated operations attach the token automatically
	users, err := client.ListUsers(ctx, 1, 10, "")

# Response Envelopes

Every endpoint responds with the same wrapper:

	{"success": true, "data": {...}, "message": "...", "error": "..."}

Methods return the parsed envelope rather than the bare payload, so
callers can distinguish "the request worked" (nil error) from "the
operation succeeded" (Success true and Data present). A false Success
and a returned error are equivalent failure signals; never read Data
without checking both.

# Errors

Two kinds of failure are surfaced:

  - *APIError: the server answered with a status >= 400. Carries the
    status code and the server's message (or a generic one).
  - wrapped transport errors: the network was unreachable or the body
    was not valid JSON.

Use IsNotFound and IsUnauthorized for the common status checks.

# Token Persistence

Inject a CredentialStore to keep the session across process restarts:

	client := usersdk.New(baseURL, usersdk.WithCredentials(store))
	if err := client.LoadCredentials(ctx); err != nil {
		// storage failure, not "no session"
	}

LoadCredentials discards persisted JWTs whose expiry has passed.
Logout clears both the in-memory token and the persisted copy.

# Thread Safety

A Client is safe for concurrent use. Token state is guarded by a
read/write lock; requests themselves go through the shared
http.Client. A client-side rate limiter (golang.org/x/time/rate)
throttles outgoing requests and can be tuned or disabled with
WithRateLimit.
*/
package usersdk
