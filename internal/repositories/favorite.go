package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/bookx/internal/models"
	"github.com/desertthunder/bookx/internal/shared"
)

var _ models.Repository[*models.StoredFavorite] = (*FavoriteRepository)(nil)

// FavoriteRepository persists [models.StoredFavorite] rows. Duplicate titles are stored as separate rows.
type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a favorite with a generated ID
func (r *FavoriteRepository) Create(fav *models.StoredFavorite) error {
	if err := fav.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO user_favorites (id, user_id, book_title, added_at) VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(query, id, fav.UserID(), fav.Title(), fav.CreatedAt()); err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}

	fav.SetID(id)
	return nil
}

func scanFavorite(row scanner) (*models.StoredFavorite, error) {
	var (
		id      string
		userID  string
		title   string
		addedAt time.Time
	)

	if err := row.Scan(&id, &userID, &title, &addedAt); err != nil {
		return nil, err
	}

	fav := models.NewStoredFavorite(userID, title)
	fav.SetID(id)
	fav.SetCreatedAt(addedAt)
	return fav, nil
}

// Get retrieves a favorite by ID
func (r *FavoriteRepository) Get(id string) (*models.StoredFavorite, error) {
	row := r.db.QueryRow(`SELECT id, user_id, book_title, added_at FROM user_favorites WHERE id = ?`, id)

	fav, err := scanFavorite(row)
	if notFound(err) {
		return nil, fmt.Errorf("%w: favorite %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite: %w", err)
	}
	return fav, nil
}

// ListByUser returns a user's favorites, most recently added first
func (r *FavoriteRepository) ListByUser(userID string) ([]*models.StoredFavorite, error) {
	query := `
		SELECT id, user_id, book_title, added_at
		FROM user_favorites
		WHERE user_id = ?
		ORDER BY added_at DESC, rowid DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*models.StoredFavorite{}
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return favorites, nil
}
