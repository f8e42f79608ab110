package service

import (
	"context"
	"testing"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(allowList []string) *userService {
	return NewUserService(nil, allowList, newTestLogger()).(*userService)
}

// =============================================================================
// Allow-List Matching
// =============================================================================

func TestMatchAllowList(t *testing.T) {
	svc := newTestUserService([]string{"Dana Reyes", "Miguel Ortiz", "Åsa Lund"})

	tests := []struct {
		name      string
		input     string
		canonical string
		ok        bool
	}{
		{"exact match", "Dana Reyes", "Dana Reyes", true},
		{"lowercase", "dana reyes", "Dana Reyes", true},
		{"uppercase", "MIGUEL ORTIZ", "Miguel Ortiz", true},
		{"mixed case", "mIgUeL oRtIz", "Miguel Ortiz", true},
		{"unicode fold", "åsa lund", "Åsa Lund", true},
		{"unknown name", "Jordan Blake", "", false},
		{"partial name", "Dana", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, ok := svc.matchAllowList(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.canonical, canonical)
		})
	}
}

// =============================================================================
// Login Rejections (no session store touched)
// =============================================================================

func TestLogin_EmptyName(t *testing.T) {
	svc := newTestUserService([]string{"Dana Reyes"})

	_, err := svc.Login(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestLogin_UnknownName(t *testing.T) {
	svc := newTestUserService([]string{"Dana Reyes"})

	_, err := svc.Login(context.Background(), "Jordan Blake")
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

// =============================================================================
// Token Helpers
// =============================================================================

func TestGenerateSessionToken(t *testing.T) {
	a, err := generateSessionToken()
	require.NoError(t, err)
	b, err := generateSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, SessionTokenBytes*2) // hex encoding doubles the length
	assert.NotEqual(t, a, b)
}

func TestHashSessionToken_Deterministic(t *testing.T) {
	assert.Equal(t, hashSessionToken("abc"), hashSessionToken("abc"))
	assert.NotEqual(t, hashSessionToken("abc"), hashSessionToken("abd"))
	assert.Len(t, hashSessionToken("abc"), 64) // hex SHA-256
}
