package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/store"
	"golang.org/x/text/cases"
)

// =============================================================================
// Configuration Constants
// =============================================================================

const (
	// SessionTokenBytes is the number of random bytes for session tokens.
	// 32 bytes = 256 bits of entropy; the token is hex-encoded to 64
	// characters for the cookie.
	SessionTokenBytes = 32

	// SessionDuration is how long a session remains valid.
	SessionDuration = 7 * 24 * time.Hour
)

// =============================================================================
// Interface Definition
// =============================================================================

// LoginResult carries the session identity and the raw token to set as a
// cookie. The raw token is never stored server-side.
type LoginResult struct {
	User  domain.User
	Token string
}

// UserService defines the allow-list authentication boundary.
//
// There are no accounts and no passwords: a login takes a plaintext display
// name, checks case-insensitive membership in a small fixed allow-list, and
// on success establishes a session identity equal to the matched canonical
// name.
type UserService interface {
	// Login authenticates a display name against the allow-list and creates
	// a new session. Returns domain.EUNAUTHORIZED when the name is not on
	// the list.
	Login(ctx context.Context, displayName string) (*LoginResult, error)

	// Logout invalidates a session by its raw token.
	// Idempotent: an unknown token is not an error.
	Logout(ctx context.Context, token string) error

	// GetBySessionToken validates a raw session token and returns the
	// session identity. Returns domain.EUNAUTHORIZED if the token is
	// invalid or expired.
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)

	// DeleteExpiredSessions removes all expired sessions.
	// Intended for periodic cleanup.
	DeleteExpiredSessions(ctx context.Context) error
}

// =============================================================================
// Implementation
// =============================================================================

// userService is the concrete implementation of UserService.
type userService struct {
	sessions  *store.SessionStore
	allowList []string
	logger    *slog.Logger
	folder    cases.Caser
	now       func() time.Time
}

// NewUserService creates a new UserService.
//
// allowList holds the canonical display names permitted to sign in; matching
// is case-insensitive via Unicode case folding.
func NewUserService(sessions *store.SessionStore, allowList []string, logger *slog.Logger) UserService {
	return &userService{
		sessions:  sessions,
		allowList: allowList,
		logger:    logger,
		folder:    cases.Fold(),
		now:       time.Now,
	}
}

// =============================================================================
// Login
// =============================================================================

// Login authenticates a display name and creates a session.
func (s *userService) Login(ctx context.Context, displayName string) (*LoginResult, error) {
	const op = "user.login"

	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, domain.Invalid(op, "display name is required")
	}

	canonical, ok := s.matchAllowList(name)
	if !ok {
		s.logger.Info("login rejected", "name", name)
		return nil, domain.Unauthorized(op, "unknown inspector name")
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate session token")
	}

	err = s.sessions.Create(ctx, store.Session{
		TokenHash: hashSessionToken(token),
		UserName:  canonical,
		ExpiresAt: s.now().Add(SessionDuration),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create session")
	}

	s.logger.Info("login", "user", canonical)

	return &LoginResult{
		User:  domain.User{Name: canonical},
		Token: token,
	}, nil
}

// matchAllowList returns the canonical allow-list entry matching name
// case-insensitively, if any.
func (s *userService) matchAllowList(name string) (string, bool) {
	folded := s.folder.String(name)
	for _, entry := range s.allowList {
		if s.folder.String(entry) == folded {
			return entry, true
		}
	}
	return "", false
}

// =============================================================================
// Logout
// =============================================================================

// Logout invalidates a session by its raw token.
func (s *userService) Logout(ctx context.Context, token string) error {
	const op = "user.logout"

	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, hashSessionToken(token)); err != nil {
		return domain.Internal(err, op, "failed to delete session")
	}
	return nil
}

// =============================================================================
// Session Validation
// =============================================================================

// GetBySessionToken validates a raw token and returns the session identity.
func (s *userService) GetBySessionToken(ctx context.Context, token string) (*domain.User, error) {
	const op = "user.get_by_session_token"

	if token == "" {
		return nil, domain.Unauthorized(op, "session token is required")
	}

	sess, err := s.sessions.Get(ctx, hashSessionToken(token))
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domain.Unauthorized(op, "invalid or expired session")
		}
		return nil, domain.Internal(err, op, "failed to validate session")
	}

	return &domain.User{Name: sess.UserName}, nil
}

// DeleteExpiredSessions removes all expired sessions.
func (s *userService) DeleteExpiredSessions(ctx context.Context) error {
	const op = "user.delete_expired_sessions"

	if err := s.sessions.DeleteExpired(ctx); err != nil {
		return domain.Internal(err, op, "failed to delete expired sessions")
	}
	return nil
}

// =============================================================================
// Token Helpers
// =============================================================================

// generateSessionToken produces a cryptographically random raw token.
func generateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashSessionToken returns the hex SHA-256 of the raw token.
// Only the hash is persisted.
func hashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
