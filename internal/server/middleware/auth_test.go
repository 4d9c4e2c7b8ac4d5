package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts only the tokens registered on it.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]uuid.UUID)}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{userID: userID}, nil
}

type testClaims struct {
	userID uuid.UUID
}

func (c *testClaims) GetUserID() uuid.UUID {
	return c.userID
}

func serve(t *testing.T, v TokenValidator, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()
	var (
		called bool
		seen   uuid.UUID
	)
	handler := AuthMiddleware(v)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		id, err := GetUserID(r)
		require.NoError(t, err)
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, seen, called
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["message"]
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	v := newTestTokenValidator()
	userID := uuid.New()
	v.validTokens["valid-test-token-123"] = userID

	for _, header := range []string{"Bearer valid-test-token-123", "bearer valid-test-token-123", "Bearer  valid-test-token-123"} {
		t.Run(header, func(t *testing.T) {
			w, seen, called := serve(t, v, header)
			assert.True(t, called)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, userID, seen)
		})
	}
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	v := newTestTokenValidator()

	for _, header := range []string{"", "token123", "Bearer", "Basic dXNlcjpwYXNz", "Bearer a b"} {
		t.Run(header, func(t *testing.T) {
			w, _, called := serve(t, v, header)
			assert.False(t, called, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, MessageUnauthorized, decodeMessage(t, w))
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w, _, called := serve(t, newTestTokenValidator(), "Bearer forged")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MessageInvalidToken, decodeMessage(t, w))
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(WithUserID(context.Background(), userID))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)

	wrongType := context.WithValue(context.Background(), userIDKey, "not-a-uuid")
	_, err = GetUserID(httptest.NewRequest(http.MethodGet, "/", nil).WithContext(wrongType))
	assert.Error(t, err)
}
