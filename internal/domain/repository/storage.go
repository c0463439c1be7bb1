package repository

import "context"

// MediaSource defines the interface for fetching binary content from the
// source media provider by opaque handle.
// Implementations should be provided by the transport layer (e.g., Telegram).
type MediaSource interface {
	// FetchFile resolves the handle against the provider's file API and
	// downloads the bytes. Returns ErrSourceUnavailable if resolution or
	// the download returns a non-success status.
	FetchFile(ctx context.Context, fileID string) ([]byte, error)
}

// ContentHost defines the interface for publishing binary content to a
// durable host that serves it at a public URL.
// Implementations should be provided by the infrastructure layer (e.g., MinIO, S3).
type ContentHost interface {
	// Publish stores the bytes under key and returns the publicly
	// resolvable URL. Returns ErrPublishFailed on any non-success
	// response from the host.
	Publish(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
