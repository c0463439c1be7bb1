package repository

import "context"

// Messenger defines the outbound interface to the chat transport.
// Implementations (e.g., Telegram) own rate-limit queuing and retry of
// these calls; workflows never retry them.
type Messenger interface {
	// Reply sends a text message to the given chat. When markdown is true
	// the text is rendered with the transport's markdown formatting.
	Reply(ctx context.Context, chatID int64, text string, markdown bool) error

	// SendVideo delivers the video identified by the opaque handle to the chat.
	SendVideo(ctx context.Context, chatID int64, fileID string) error

	// DeleteMessage removes a message from the chat.
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// CatalogEvents publishes notifications about catalog changes for
// companion surfaces. Implementations may be a no-op when eventing is
// not configured.
type CatalogEvents interface {
	// PublishMediaCreated announces a newly persisted record.
	PublishMediaCreated(ctx context.Context, event MediaCreatedEvent) error
}

// MediaCreatedEvent is the payload published after a successful upload.
type MediaCreatedEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}
