package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewMediaRecord(t *testing.T) {
	tests := []struct {
		name         string
		fileID       string
		title        string
		thumbnailURL string
		wantErr      error
	}{
		{"valid record", "BAACAgUAAxkBAAIB", "Trailer", "https://cdn.example.com/t.jpg", nil},
		{"valid without thumbnail", "BAACAgUAAxkBAAIB", "Trailer", "", nil},
		{"empty file ID", "", "Trailer", "", ErrEmptyFileID},
		{"empty title", "BAACAgUAAxkBAAIB", "", "", ErrEmptyTitle},
		{"title too long", "BAACAgUAAxkBAAIB", strings.Repeat("a", 256), "", ErrTitleTooLong},
		{"title at max length", "BAACAgUAAxkBAAIB", strings.Repeat("a", 255), "", nil},
		{"multi-byte title at max length", "BAACAgUAAxkBAAIB", strings.Repeat("é", 255), "", nil},
		{"multi-byte title too long", "BAACAgUAAxkBAAIB", strings.Repeat("é", 256), "", ErrTitleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := NewMediaRecord(tt.fileID, tt.title, tt.thumbnailURL)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewMediaRecord() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewMediaRecord() unexpected error: %v", err)
			}
			if record.ID == uuid.Nil {
				t.Error("ID should be generated")
			}
			if record.FileID != tt.fileID {
				t.Errorf("FileID = %v, want %v", record.FileID, tt.fileID)
			}
			if record.Title != tt.title {
				t.Errorf("Title = %v, want %v", record.Title, tt.title)
			}
			if record.ThumbnailURL != tt.thumbnailURL {
				t.Errorf("ThumbnailURL = %v, want %v", record.ThumbnailURL, tt.thumbnailURL)
			}
			if record.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}
		})
	}
}

func TestNewMediaRecord_UniqueIDs(t *testing.T) {
	a, err := NewMediaRecord("file-a", "A", "")
	if err != nil {
		t.Fatalf("NewMediaRecord() failed: %v", err)
	}
	b, err := NewMediaRecord("file-b", "B", "")
	if err != nil {
		t.Fatalf("NewMediaRecord() failed: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both = %v", a.ID)
	}
}
