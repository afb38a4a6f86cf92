package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/prepa/internal/client/models"
	"github.com/dmitrijs2005/prepa/internal/common"
)

// MinPasswordLength is the shortest password accepted on signup and on
// password change.
const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every rejected field of a form. It matches
// common.ErrorValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

type validator struct {
	fields []FieldError
}

func (v *validator) add(field, msg string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: msg})
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
		return false
	}
	return true
}

func (v *validator) email(field, value string) {
	if v.required(field, value) && !emailRegex.MatchString(value) {
		v.add(field, "must be a valid e-mail address")
	}
}

func (v *validator) password(password, confirm string) {
	if v.required("password", password) && utf8.RuneCountInString(password) < MinPasswordLength {
		v.add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if v.required("confirm_password", confirm) && confirm != password {
		v.add("confirm_password", "passwords do not match")
	}
}

func (v *validator) oneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// RegisterForm is the signup form.
type RegisterForm struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the signup form.
func (f RegisterForm) Validate() error {
	var v validator
	v.required("first_name", f.FirstName)
	v.required("last_name", f.LastName)
	v.required("username", f.Username)
	v.email("email", f.Email)
	v.password(f.Password, f.ConfirmPassword)
	return v.err()
}

func validateProfile(u models.User) error {
	var v validator
	v.required("first_name", u.FirstName)
	v.required("last_name", u.LastName)
	v.required("username", u.Username)
	v.email("email", u.Email)
	return v.err()
}

func validateCredentials(username, password string) error {
	var v validator
	v.required("username", username)
	v.required("password", password)
	return v.err()
}

func validatePasswordChange(password, confirm string) error {
	var v validator
	v.password(password, confirm)
	return v.err()
}

func validateAlert(in models.AlertInput) error {
	var v validator
	if in.Employee <= 0 {
		v.add("employe", "is required")
	}
	if in.DetectionModel <= 0 {
		v.add("modeleIA", "is required")
	}
	v.required("typeEpiManquants", in.MissingEquipment)
	v.oneOf("statut", in.Status, models.AlertStatusNew, models.AlertStatusInProgress, models.AlertStatusResolved, models.AlertStatusIgnored)
	v.oneOf("niveau", in.Level, models.AlertLevelLow, models.AlertLevelMedium, models.AlertLevelHigh, models.AlertLevelCritical)
	return v.err()
}

func validateEmployee(e models.Employee) error {
	var v validator
	v.required("name", e.Name)
	v.required("surname", e.Surname)
	v.required("poste", e.Position)
	v.required("department", e.Department)
	v.oneOf("status", e.Status, models.EmployeeActive, models.EmployeeInactive, models.EmployeeOnLeave, models.EmployeeRetired)
	return v.err()
}
