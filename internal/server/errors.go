// Package server provides the HTTP REST API for the career coach.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrNotFound indicates a user-owned resource was not found
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates a request body over the accepted size
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailTaken *ErrEmailAlreadyExists
		badCreds   *ErrInvalidCredentials
		noUser     *ErrUserNotFound
		notFound   *ErrNotFound
		invalid    *ErrValidation
		tooLarge   *ErrPayloadTooLarge
	)
	switch {
	case errors.As(err, &emailTaken):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &noUser), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the client-facing text for err.
func publicMessage(err error) string {
	var (
		emailTaken *ErrEmailAlreadyExists
		badCreds   *ErrInvalidCredentials
		noUser     *ErrUserNotFound
		notFound   *ErrNotFound
		invalid    *ErrValidation
		tooLarge   *ErrPayloadTooLarge
	)
	switch {
	case errors.As(err, &emailTaken):
		return "Email already in use"
	case errors.As(err, &badCreds):
		return "Invalid credentials"
	case errors.As(err, &noUser):
		return "User not found"
	case errors.As(err, &notFound):
		return "Not found"
	case errors.As(err, &invalid):
		return invalid.Message
	case errors.As(err, &tooLarge):
		return "Payload too large"
	default:
		return "Internal server error"
	}
}
