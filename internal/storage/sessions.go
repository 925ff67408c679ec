package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"spendlog/internal/models"
)

// SessionInfo pairs a session row with its user.
type SessionInfo struct {
	User         *models.User
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CreateSession creates a new session for a user.
func (db *DB) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES ($1, $2, $3, $4)",
		token, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetSession looks up a session by token together with its user.
// Expiry is not checked here; callers decide what an expired session means.
func (db *DB) GetSession(ctx context.Context, token string) (*SessionInfo, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.created_at, s.expires_at, s.last_activity
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = $1
	`, token)

	var u models.User
	var info SessionInfo
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&info.ExpiresAt, &info.LastActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info.User = &u
	return &info, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(ctx context.Context, token string, newExpiresAt time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		"UPDATE sessions SET last_activity = $1, expires_at = $2 WHERE token = $3",
		time.Now().UTC(), newExpiresAt.UTC(), token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(ctx context.Context, token string) error {
	_, err := db.conn.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpiredSessions removes all sessions that expired before now.
func (db *DB) DeleteExpiredSessions(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= $1", time.Now().UTC())
	return err
}
