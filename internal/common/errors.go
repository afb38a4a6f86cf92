// Package common defines shared constants and sentinel errors used across
// the client layers of prepa. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrRefreshTokenMissing = errors.New("refresh token missing")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Input validation errors.
	ErrorValidation = errors.New("validation error")
)
