// package models defines the data model for the book recommendation client
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	// ID returns the unique identifier for this model
	ID() string
	// CreatedAt returns when this model was created
	CreatedAt() time.Time
	// Validate checks if the model's data is valid and returns an error if not
	Validate() error
}

// Repository defines the interface for data access operations.
//
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	// Create inserts a new model into the database
	Create(model T) error
	// Get retrieves a model by its ID
	Get(id string) (T, error)
}
