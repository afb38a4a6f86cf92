// Package models defines the API payloads exchanged by the prepa client.
package models

// User is the account representation returned by the auth endpoints.
type User struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// DisplayName is what the client caches and shows for the signed-in user.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// RegisterRequest is the body of auth/register/.
type RegisterRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	RecaptchaToken *string `json:"recaptcha_token"`
}

// PasswordChange is the body of auth/current-user-password/me/.
type PasswordChange struct {
	Password string `json:"password"`
}
