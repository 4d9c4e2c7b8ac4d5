package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsCredentials(t *testing.T) {
	kv := sanitizeKVs([]any{"email", "a@b.com", "password", "hunter2", "Authorization", "Bearer x", "api_key", "k"})

	assert.Equal(t, []any{"email", "a@b.com", "password", "[REDACTED]", "Authorization", "[REDACTED]", "api_key", "[REDACTED]"}, kv)
}

func TestSanitizeKVs_OddLength(t *testing.T) {
	kv := sanitizeKVs([]any{"path", "/api", "dangling"})
	assert.Equal(t, []any{"path", "/api", "dangling"}, kv)
}

func TestSanitizeKVs_NonStringKey(t *testing.T) {
	kv := sanitizeKVs([]any{42, "value"})
	assert.Equal(t, []any{42, "value"}, kv)
}

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "production", ""} {
		l, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, l)
	}
}

func TestNop_With(t *testing.T) {
	l := Nop().With("task", "roadmap")
	assert.NotPanics(t, func() {
		l.Info("hello", "attempt", 1)
		l.Warn("warn")
	})
}
