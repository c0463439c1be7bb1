package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/metrics"
)

const (
	thumbnailExtension   = ".jpg"
	thumbnailContentType = "image/jpeg"
)

// MediaRelay moves binary content from the source provider to the durable
// content host, producing a canonical public URL. It holds no state; each
// call is one outbound read and one outbound write.
type MediaRelay interface {
	// RelayThumbnail fetches the bytes behind the handle and publishes them
	// under a fresh, collision-free key. Returns the public URL.
	RelayThumbnail(ctx context.Context, fileID string) (string, error)
}

type mediaRelay struct {
	source repository.MediaSource
	host   repository.ContentHost
}

// NewMediaRelay creates a MediaRelay over the given source and host.
func NewMediaRelay(source repository.MediaSource, host repository.ContentHost) MediaRelay {
	return &mediaRelay{
		source: source,
		host:   host,
	}
}

// RelayThumbnail downloads the thumbnail bytes and publishes them.
// The destination key is generated fresh per call; reusing a key would
// silently overwrite an earlier publish.
func (r *mediaRelay) RelayThumbnail(ctx context.Context, fileID string) (string, error) {
	data, err := r.source.FetchFile(ctx, fileID)
	if err != nil {
		metrics.RelayOperationsTotal.WithLabelValues(metrics.RelayStageFetch, metrics.RelayStatusError).Inc()
		return "", err
	}
	metrics.RelayOperationsTotal.WithLabelValues(metrics.RelayStageFetch, metrics.RelayStatusSuccess).Inc()

	key := uuid.New().String() + thumbnailExtension

	url, err := r.host.Publish(ctx, key, data, thumbnailContentType)
	if err != nil {
		metrics.RelayOperationsTotal.WithLabelValues(metrics.RelayStagePublish, metrics.RelayStatusError).Inc()
		return "", err
	}
	metrics.RelayOperationsTotal.WithLabelValues(metrics.RelayStagePublish, metrics.RelayStatusSuccess).Inc()

	return url, nil
}
