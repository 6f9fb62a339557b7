package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
)

var _ models.Repository[*models.User] = (*UserRepository)(nil)

// UserRepository implements [models.Repository] for user [models.User] persistence.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a generated ID. Taken usernames or emails return [ErrDuplicate].
func (r *UserRepository) Create(user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, user.Username(), user.Email(), user.PasswordHash(), user.CreatedAt())
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: username or email %s", ErrDuplicate, user.Email())
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.SetID(id)
	return nil
}

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row scanner) (*models.User, error) {
	var (
		id           string
		username     string
		email        string
		passwordHash string
		createdAt    time.Time
	)

	if err := row.Scan(&id, &username, &email, &passwordHash, &createdAt); err != nil {
		return nil, err
	}

	user := models.NewUser(username, email, passwordHash)
	user.SetID(id)
	user.SetCreatedAt(createdAt)
	return user, nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id string) (*models.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if notFound(err) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by exact username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username)

	user, err := scanUser(row)
	if notFound(err) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Exists reports whether username or email is already registered
func (r *UserRepository) Exists(username, email string) (bool, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, username, email).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query users: %w", err)
	}
	return n > 0, nil
}
