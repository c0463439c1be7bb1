package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/cache"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/metrics"
)

// defaultTitle is used when the submission carries no caption.
const defaultTitle = "Untitled Video"

const unauthorizedMessage = "🚫 You are not authorized to upload videos here."

// UploadInput describes one inbound media submission from the chat transport.
type UploadInput struct {
	SenderID        int64
	ChatID          int64
	MessageID       int
	FileID          string // opaque handle of the video itself
	Caption         string
	ThumbnailFileID string // optional
}

// UploadService handles administrator media submissions: authorization,
// optional thumbnail relay, catalog persistence, cache invalidation, and
// the acknowledgment reply.
type UploadService interface {
	HandleUpload(ctx context.Context, input UploadInput) error
}

// UploadServiceConfig holds configuration for UploadService.
type UploadServiceConfig struct {
	// AdminID is the single identity allowed to upload.
	AdminID int64
	// BotUsername is used to build the shareable deep link in the acknowledgment.
	BotUsername string
}

type uploadService struct {
	repo      repository.MediaRepository
	relay     MediaRelay
	listing   cache.ListingCache
	messenger repository.Messenger
	events    repository.CatalogEvents // nil when eventing is not configured

	adminID     int64
	botUsername string
}

// NewUploadService creates a new UploadService instance.
// events may be nil; catalog notifications are then skipped.
func NewUploadService(
	repo repository.MediaRepository,
	relay MediaRelay,
	listing cache.ListingCache,
	messenger repository.Messenger,
	events repository.CatalogEvents,
	cfg UploadServiceConfig,
) UploadService {
	return &uploadService{
		repo:        repo,
		relay:       relay,
		listing:     listing,
		messenger:   messenger,
		events:      events,
		adminID:     cfg.AdminID,
		botUsername: cfg.BotUsername,
	}
}

// HandleUpload runs the upload workflow for one submission.
//
// The listing cache is invalidated after a successful persist and before
// the acknowledgment is sent, so any listing request issued after the
// administrator sees the confirmation reads fresh data.
func (s *uploadService) HandleUpload(ctx context.Context, input UploadInput) error {
	if input.SenderID != s.adminID {
		if err := s.messenger.DeleteMessage(ctx, input.ChatID, input.MessageID); err != nil {
			slog.Warn("failed to delete unauthorized submission",
				"chat_id", input.ChatID,
				"message_id", input.MessageID,
				"error", err,
			)
		}
		if err := s.messenger.Reply(ctx, input.ChatID, unauthorizedMessage, false); err != nil {
			return fmt.Errorf("notify unauthorized sender: %w", err)
		}
		return nil
	}

	// The transport surface sees many non-upload media events; only
	// video attachments are actionable, everything else is dropped
	// without a reply.
	if input.FileID == "" {
		return nil
	}

	title := strings.TrimSpace(input.Caption)
	if title == "" {
		title = defaultTitle
	}

	// A video without a thumbnail is still useful: relay failure here
	// degrades the record instead of aborting the upload, and the
	// acknowledgment names the degradation.
	var thumbnailURL string
	var thumbnailFailed bool
	if input.ThumbnailFileID != "" {
		url, err := s.relay.RelayThumbnail(ctx, input.ThumbnailFileID)
		if err != nil {
			thumbnailFailed = true
			slog.Warn("thumbnail relay failed, continuing without thumbnail",
				"chat_id", input.ChatID,
				"error", err,
			)
		} else {
			thumbnailURL = url
		}
	}

	record, err := model.NewMediaRecord(input.FileID, title, thumbnailURL)
	if err != nil {
		return fmt.Errorf("build media record: %w", err)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if replyErr := s.messenger.Reply(ctx, input.ChatID, "❌ Failed to save the video. Please try again.", false); replyErr != nil {
			slog.Warn("failed to send persist-failure reply", "chat_id", input.ChatID, "error", replyErr)
		}
		return fmt.Errorf("create media record: %w", err)
	}

	// Persist succeeded; the record is now visible to resolution and
	// listing. Invalidation failure is logged, not fatal: the stale
	// window is bounded by the cache TTL.
	if err := s.listing.InvalidateAll(ctx); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusError, metrics.CacheTypeListing).Inc()
		slog.Warn("failed to invalidate listing cache after upload",
			"record_id", record.ID,
			"error", err,
		)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpInvalidate, metrics.CacheStatusSuccess, metrics.CacheTypeListing).Inc()
	}

	if s.events != nil {
		event := repository.MediaCreatedEvent{
			ID:        record.ID.String(),
			Title:     record.Title,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		}
		if err := s.events.PublishMediaCreated(ctx, event); err != nil {
			slog.Warn("failed to publish media.created event",
				"record_id", record.ID,
				"error", err,
			)
		}
	}

	if err := s.messenger.Reply(ctx, input.ChatID, s.buildAcknowledgment(record, thumbnailFailed), true); err != nil {
		return fmt.Errorf("send upload acknowledgment: %w", err)
	}

	return nil
}

// buildAcknowledgment composes the confirmation sent to the administrator.
func (s *uploadService) buildAcknowledgment(record *model.MediaRecord, thumbnailFailed bool) string {
	var b strings.Builder
	b.WriteString("✅ *Video saved*\n")
	fmt.Fprintf(&b, "ID: `%s`\n", record.ID)
	fmt.Fprintf(&b, "Link: %s\n", s.buildShareLink(record.ID.String()))
	switch {
	case thumbnailFailed:
		b.WriteString("⚠️ Thumbnail upload failed; the video was saved without one.")
	case record.ThumbnailURL != "":
		fmt.Fprintf(&b, "Thumbnail: %s", record.ThumbnailURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildShareLink constructs the public deep link for a record.
// Format: https://t.me/{bot}?start=video_{id}
func (s *uploadService) buildShareLink(id string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", s.botUsername, startPayloadPrefix, id)
}
