package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// =============================================================================
// SessionStore Implementation
// =============================================================================

// Session is a persisted login session. Only the SHA-256 hash of the raw
// token is stored; the raw token lives in the client cookie.
type Session struct {
	TokenHash string
	UserName  string
	ExpiresAt time.Time
}

// SessionStore persists login sessions in PostgreSQL.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create inserts a new session.
func (s *SessionStore) Create(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token_hash, user_name, expires_at)
		VALUES ($1, $2, $3)`,
		sess.TokenHash, sess.UserName, sess.ExpiresAt,
	)
	if err != nil {
		return &StoreError{Op: "CreateSession", Err: err}
	}
	return nil
}

// Get returns the unexpired session with the given token hash.
// Returns ErrNotFound (wrapped) when absent or expired.
func (s *SessionStore) Get(ctx context.Context, tokenHash string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT token_hash, user_name, expires_at
		FROM sessions
		WHERE token_hash = $1 AND expires_at > now()`,
		tokenHash,
	).Scan(&sess.TokenHash, &sess.UserName, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, &StoreError{Op: "GetSession", Err: ErrNotFound}
		}
		return Session{}, &StoreError{Op: "GetSession", Err: err}
	}
	return sess, nil
}

// Delete removes the session with the given token hash. Idempotent.
func (s *SessionStore) Delete(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = $1`, tokenHash,
	)
	if err != nil {
		return &StoreError{Op: "DeleteSession", Err: err}
	}
	return nil
}

// DeleteExpired removes all expired sessions. Intended for periodic cleanup.
func (s *SessionStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= now()`,
	)
	if err != nil {
		return &StoreError{Op: "DeleteExpiredSessions", Err: err}
	}
	return nil
}
