package models

// LoginRequest is the body of auth/token/. A nil RecaptchaToken is sent as
// JSON null, as the browser client does before the captcha is solved.
type LoginRequest struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	RecaptchaToken *string `json:"recaptcha_token"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// RefreshRequest is the body of auth/token-refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse carries the new access token and, when the server rotates
// refresh tokens, a new refresh token.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}
