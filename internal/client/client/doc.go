// Package client talks to the prepa REST backend.
//
// # Overview
//
// The package provides:
//  1. The Client interface: login, registration, profile, alerts and
//     employees endpoints.
//  2. HTTPClient, its net/http implementation. Every request goes through an
//     authenticating http.RoundTripper that attaches the current access token
//     and, when the server answers 401 with the "token_not_valid" code,
//     refreshes the token once and replays the request once.
//  3. Local database bootstrap (InitDatabase, RunMigrations) for the SQLite
//     file that persists the session.
//
// # Session invalidation
//
// When the session cannot be recovered (no refresh token, expired refresh
// token, refresh rejected, or a 401 that is not about a stale token) the
// token store is cleared and, unless the failing call was the login request
// itself, the SessionHandler registered with WithSessionHandler receives a
// SessionEvent pointing at the login entry point. The package never
// navigates anywhere on its own.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError, which matches ErrUnauthorized,
// ErrNotFound, ErrNoActiveAccount, ErrUsernameTaken, ErrEmailTaken and the
// other sentinels through errors.Is. Transport failures are returned as
// produced by net/http; IsUnavailable detects them.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Concurrent refreshes of the same
// refresh token are coalesced into one call. All operations accept
// context.Context.
package client
