package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawQuery string
		want     string
	}{
		{"no query", "/api/inspections", "", "/api/inspections"},
		{"benign query", "/api/inspections", "page=2", "/api/inspections?page=2"},
		{"token redacted", "/login", "token=abc123", "/login?token=[REDACTED]"},
		{"mixed", "/x", "page=1&api_key=secret", "/x?page=1&api_key=[REDACTED]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizePath(tt.path, tt.rawQuery))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	t.Run("x-forwarded-for chain", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		assert.Equal(t, "203.0.113.7", getClientIP(r))
	})

	t.Run("x-real-ip", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Real-IP", "203.0.113.9")
		assert.Equal(t, "203.0.113.9", getClientIP(r))
	})

	t.Run("remote addr fallback", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.1:4242"
		assert.Equal(t, "192.0.2.1", getClientIP(r))
	})
}

func TestShouldSkip(t *testing.T) {
	m := NewRequestLoggingMiddleware(newTestLogger())

	assert.True(t, m.shouldSkip("/health"))
	assert.True(t, m.shouldSkip("/metrics"))
	assert.False(t, m.shouldSkip("/api/inspections"))
}
