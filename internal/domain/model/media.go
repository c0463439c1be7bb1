package model

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MediaRecord represents one catalog entry: a video the administrator
// uploaded through the bot. Records are append-only and never mutated
// after creation.
type MediaRecord struct {
	ID           uuid.UUID
	FileID       string // opaque media handle understood by the source provider
	Title        string
	ThumbnailURL string
	CreatedAt    time.Time
}

var (
	ErrEmptyFileID  = errors.New("file ID cannot be empty")
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrTitleTooLong = errors.New("title exceeds maximum length of 255 characters")
)

const maxTitleLength = 255

// NewMediaRecord creates a new MediaRecord with a generated ID.
// The file ID is opaque to this package; it is only ever forwarded
// back to the source provider for delivery.
func NewMediaRecord(fileID, title, thumbnailURL string) (*MediaRecord, error) {
	if fileID == "" {
		return nil, ErrEmptyFileID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	return &MediaRecord{
		ID:           uuid.New(),
		FileID:       fileID,
		Title:        title,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    time.Now(),
	}, nil
}

// CatalogPage is an immutable paginated view of the catalog,
// as assembled by the listing workflow and held by the listing cache.
type CatalogPage struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
	Items      []*MediaRecord `json:"items"`
}
