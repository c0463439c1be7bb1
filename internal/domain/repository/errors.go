package repository

import "errors"

var (
	// ErrMediaNotFound is returned when a media record cannot be found.
	ErrMediaNotFound = errors.New("media record not found")

	// ErrDuplicateMedia is returned when attempting to create a record that already exists.
	ErrDuplicateMedia = errors.New("media record already exists")

	// ErrSourceUnavailable is returned when the source provider fails to
	// resolve a handle or serve its bytes.
	ErrSourceUnavailable = errors.New("media source unavailable")

	// ErrPublishFailed is returned when the content host rejects an upload.
	ErrPublishFailed = errors.New("content host publish failed")
)
