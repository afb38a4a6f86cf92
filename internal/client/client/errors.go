package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Sentinel errors matched by *APIError through errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrBadRequest      = errors.New("bad request")
	ErrServer          = errors.New("server error")
	ErrNoActiveAccount = errors.New("no active account")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
)

// Server codes carried in error bodies.
const (
	codeNoActiveAccount = "no_active_account"
	codeUsernameTaken   = "username_already_exists"
	codeEmailTaken      = "email_already_exists"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Code is the machine-readable reason, either a bare JSON string body
	// ("no_active_account") or the "code" field of an object body.
	Code   string
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	switch {
	case e.Code != "" && e.Detail != "":
		msg += fmt.Sprintf(" (%s: %s)", e.Code, e.Detail)
	case e.Code != "":
		msg += fmt.Sprintf(" (%s)", e.Code)
	case e.Detail != "":
		msg += fmt.Sprintf(" (%s)", e.Detail)
	}
	return msg
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrServer:
		return e.StatusCode >= http.StatusInternalServerError
	case ErrNoActiveAccount:
		return e.Code == codeNoActiveAccount
	case ErrUsernameTaken:
		return e.Code == codeUsernameTaken
	case ErrEmailTaken:
		return e.Code == codeEmailTaken
	}
	return false
}

func newAPIError(status int, body []byte) *APIError {
	code, detail := parseErrorBody(body)
	return &APIError{StatusCode: status, Code: code, Detail: detail, Body: body}
}

// parseErrorBody understands the two shapes the backend produces: a bare JSON
// string, and an object with "code" and "detail" (or "error") fields.
func parseErrorBody(body []byte) (code, detail string) {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, ""
	}

	var obj struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Detail == "" {
			obj.Detail = obj.Error
		}
		return obj.Code, obj.Detail
	}

	return "", strings.TrimSpace(string(body))
}

// IsUnavailable reports whether err is a transport failure, i.e. no response
// was received from the server.
func IsUnavailable(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue)
}
