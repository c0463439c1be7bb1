package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
)

// MediaRepository defines the interface for catalog persistence operations.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type MediaRepository interface {
	// Create persists a new media record.
	// Returns ErrDuplicateMedia if a record with the same ID already exists.
	Create(ctx context.Context, record *model.MediaRecord) error

	// GetByID retrieves a media record by its unique identifier.
	// Returns ErrMediaNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error)

	// ListPage retrieves one page of records, newest first by creation time.
	// Returns an empty slice if the page is beyond the end of the catalog.
	ListPage(ctx context.Context, offset, limit int) ([]*model.MediaRecord, error)

	// Count returns the total number of records in the catalog.
	Count(ctx context.Context) (int64, error)
}
