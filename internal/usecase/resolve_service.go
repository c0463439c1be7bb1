package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/cache"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/metrics"
)

// startPayloadPrefix is the recognized prefix of a share-link payload.
const startPayloadPrefix = "video_"

const (
	welcomeMessage = "👋 *Welcome!*\nOpen a shared video link to receive the video here."

	malformedLinkMessage = "⚠️ That link looks malformed. Please use the full shared link."

	goneMessage = "😔 This video is no longer available."

	deliveryFailedMessage = "⚠️ Could not deliver the video right now. Please try again later."

	resolveFailedMessage = "❌ Something went wrong. Please try again."
)

// ResolveService handles the /start command: it resolves a short public
// identifier to the internal media handle and delivers the video.
type ResolveService interface {
	HandleStart(ctx context.Context, chatID int64, payload string) error
}

type resolveService struct {
	repo      repository.MediaRepository
	handles   *cache.HandleCache
	messenger repository.Messenger
}

// NewResolveService creates a new ResolveService instance.
func NewResolveService(
	repo repository.MediaRepository,
	handles *cache.HandleCache,
	messenger repository.Messenger,
) ResolveService {
	return &resolveService{
		repo:      repo,
		handles:   handles,
		messenger: messenger,
	}
}

// HandleStart runs the resolution workflow for one /start command.
// An absent payload is a plain welcome, not an error. A malformed link and
// a missing record produce distinct user-visible messages.
func (s *resolveService) HandleStart(ctx context.Context, chatID int64, payload string) error {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return s.messenger.Reply(ctx, chatID, welcomeMessage, true)
	}

	shortID := strings.TrimPrefix(payload, startPayloadPrefix)
	if shortID == "" {
		return s.messenger.Reply(ctx, chatID, malformedLinkMessage, false)
	}

	handle, err := s.resolveHandle(ctx, shortID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return s.messenger.Reply(ctx, chatID, goneMessage, false)
		}
		if replyErr := s.messenger.Reply(ctx, chatID, resolveFailedMessage, false); replyErr != nil {
			slog.Warn("failed to send resolve-failure reply", "chat_id", chatID, "error", replyErr)
		}
		return fmt.Errorf("resolve short id %q: %w", shortID, err)
	}

	if err := s.messenger.Reply(ctx, chatID, "🎬 Here is your video!", false); err != nil {
		slog.Warn("failed to send delivery acknowledgment", "chat_id", chatID, "error", err)
	}

	// Delivery failure (e.g. outbound rate limiting exhausted) surfaces a
	// retry-later message; it must not take down the per-chat sequence.
	if err := s.messenger.SendVideo(ctx, chatID, handle); err != nil {
		slog.Warn("video delivery failed", "chat_id", chatID, "error", err)
		if replyErr := s.messenger.Reply(ctx, chatID, deliveryFailedMessage, false); replyErr != nil {
			slog.Warn("failed to send delivery-failure reply", "chat_id", chatID, "error", replyErr)
		}
	}

	return nil
}

// resolveHandle maps a short id to its media handle, filling the handle
// cache lazily. Misses are not cached: an id that gains a record later
// becomes resolvable without a restart. Concurrent resolution of the same
// missing key may each query the store; the read is idempotent and cheap,
// so no coalescing is needed here.
func (s *resolveService) resolveHandle(ctx context.Context, shortID string) (string, error) {
	if handle, ok := s.handles.Lookup(shortID); ok {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeHandle).Inc()
		return handle, nil
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeHandle).Inc()

	// Short ids that cannot be record ids are indistinguishable from
	// stale links to the user: both are "no longer available".
	id, err := uuid.Parse(shortID)
	if err != nil {
		return "", repository.ErrMediaNotFound
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	s.handles.Store(shortID, record.FileID)
	metrics.HandleCacheSize.Set(float64(s.handles.Len()))
	return record.FileID, nil
}
