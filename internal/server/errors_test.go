package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	userID := uuid.New()
	assert.Equal(t, "email already registered: test@example.com", (&ErrEmailAlreadyExists{Email: "test@example.com"}).Error())
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "user not found: "+userID.String(), (&ErrUserNotFound{UserID: userID}).Error())
	assert.Equal(t, "progress item not found: "+userID.String(), (&ErrNotFound{Resource: "progress item", ID: userID}).Error())
	assert.Equal(t, "validation error: email - invalid format", (&ErrValidation{Field: "email", Message: "invalid format"}).Error())
	assert.Equal(t, "Missing fields", (&ErrValidation{Message: "Missing fields"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expected    int
		wantMessage string
	}{
		{"ErrEmailAlreadyExists", &ErrEmailAlreadyExists{Email: "test@example.com"}, http.StatusConflict, "Email already in use"},
		{"ErrInvalidCredentials", &ErrInvalidCredentials{}, http.StatusUnauthorized, "Invalid credentials"},
		{"ErrUserNotFound", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound, "User not found"},
		{"ErrNotFound", &ErrNotFound{Resource: "progress item"}, http.StatusNotFound, "Not found"},
		{"ErrValidation", &ErrValidation{Message: "Missing fields"}, http.StatusBadRequest, "Missing fields"},
		{"wrapped", fmt.Errorf("register: %w", &ErrEmailAlreadyExists{}), http.StatusConflict, "Email already in use"},
		{"ErrPayloadTooLarge", &ErrPayloadTooLarge{Limit: 1 << 20}, http.StatusRequestEntityTooLarge, "Payload too large"},
		{"Unknown error", assert.AnError, http.StatusInternalServerError, "Internal server error"},
		{"Nil error", nil, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
			assert.Equal(t, tt.wantMessage, publicMessage(tt.err))
		})
	}
}
