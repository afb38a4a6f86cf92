// Package common contains shared constants and sentinel errors used across
// prepa client components.
package common

// Authorization header and scheme carried on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
)

// RequestIDHeaderName tags every outbound request so that client and server
// log lines can be correlated.
const RequestIDHeaderName = "X-Request-ID"

// Keys under which the session is persisted in the local metadata table.
// They are fixed so that a restarted client can resume the session.
const (
	StorageAccessTokenKey  = "access_token"
	StorageRefreshTokenKey = "refresh_token"
	StorageUsernameKey     = "user_name"
)

// TokenNotValidCode is the value of the "code" field in a 401 body when the
// presented access token is stale rather than the credentials being wrong.
const TokenNotValidCode = "token_not_valid"

// API paths, relative to the configured base URL.
const (
	PathToken           = "auth/token/"
	PathTokenRefresh    = "auth/token-refresh/"
	PathRegister        = "auth/register/"
	PathCurrentUser     = "auth/current-user/"
	PathCurrentUserMe   = "auth/current-user/me/"
	PathCurrentPassword = "auth/current-user-password/me/"
	PathUserDelete      = "auth/user-delete/me/"
	PathAlerts          = "alertes/"
	PathEmployees       = "employes/"
	PathEmployeesAdd    = "employes/add/"
)

// LoginRedirectPath is the login entry point the presentation layer is sent to
// when the session cannot be recovered.
const LoginRedirectPath = "/login/"
