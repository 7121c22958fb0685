package main

import (
	"errors"
	"net/http"
)

// Request errors double as client-facing messages, so they keep the exact
// wording the frontend expects.
var (
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrMissingExpenseField = errors.New("category, date, and price are required")
	ErrBadDateFormat       = errors.New("Invalid date format. Use ISO format.")
	ErrPriceNotNumber      = errors.New("price must be a number")
	ErrEmailTaken          = errors.New("User already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrMissingAuth         = errors.New("Authorization header missing")
	ErrTokenExpired        = errors.New("Token expired")
	ErrTokenInvalid        = errors.New("Invalid token")
	ErrUserNotFound        = errors.New("User not found")
)

// statusForError maps a request error to its HTTP status. Anything outside
// the taxonomy is an internal error.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrMissingExpenseField),
		errors.Is(err, ErrBadDateFormat),
		errors.Is(err, ErrPriceNotNumber):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingAuth),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
