package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/bookx/internal/shared"
)

// SessionRepository maps opaque session tokens to user IDs
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a session for userID and returns its token
func (r *SessionRepository) Create(userID string) (string, error) {
	token := shared.GenerateID()

	_, err := r.db.Exec(`INSERT INTO sessions (token, user_id, created_at) VALUES (?, ?, ?)`, token, userID, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	return token, nil
}

// UserID resolves a token to its user
func (r *SessionRepository) UserID(token string) (string, error) {
	var userID string
	err := r.db.QueryRow(`SELECT user_id FROM sessions WHERE token = ?`, token).Scan(&userID)
	if notFound(err) {
		return "", fmt.Errorf("%w: session", ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session: %w", err)
	}
	return userID, nil
}

// Delete ends a session. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(token string) error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
