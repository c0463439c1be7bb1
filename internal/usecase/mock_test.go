package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
)

// mockMediaRepository provides a configurable mock for MediaRepository.
type mockMediaRepository struct {
	createFn   func(ctx context.Context, record *model.MediaRecord) error
	getByIDFn  func(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error)
	listPageFn func(ctx context.Context, offset, limit int) ([]*model.MediaRecord, error)
	countFn    func(ctx context.Context) (int64, error)

	getByIDCalls  atomic.Int32
	listPageCalls atomic.Int32
	countCalls    atomic.Int32
}

func (m *mockMediaRepository) Create(ctx context.Context, record *model.MediaRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return nil
}

func (m *mockMediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	m.getByIDCalls.Add(1)
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrMediaNotFound
}

func (m *mockMediaRepository) ListPage(ctx context.Context, offset, limit int) ([]*model.MediaRecord, error) {
	m.listPageCalls.Add(1)
	if m.listPageFn != nil {
		return m.listPageFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockMediaRepository) Count(ctx context.Context) (int64, error) {
	m.countCalls.Add(1)
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// mockMediaSource provides a configurable mock for MediaSource.
type mockMediaSource struct {
	fetchFileFn func(ctx context.Context, fileID string) ([]byte, error)
}

func (m *mockMediaSource) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	if m.fetchFileFn != nil {
		return m.fetchFileFn(ctx, fileID)
	}
	return []byte{0xFF, 0xD8}, nil
}

// mockContentHost provides a configurable mock for ContentHost.
type mockContentHost struct {
	publishFn func(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

func (m *mockContentHost) Publish(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if m.publishFn != nil {
		return m.publishFn(ctx, key, data, contentType)
	}
	return "https://cdn.example.com/" + key, nil
}

// sentMessage records one outbound Reply call.
type sentMessage struct {
	chatID   int64
	text     string
	markdown bool
}

// mockMessenger records outbound transport calls and allows failure injection.
type mockMessenger struct {
	mu       sync.Mutex
	replies  []sentMessage
	videos   []string // file IDs sent, in order
	deleted  []int    // message IDs deleted, in order
	replyErr error
	sendErr  error
	delErr   error
}

func (m *mockMessenger) Reply(ctx context.Context, chatID int64, text string, markdown bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replyErr != nil {
		return m.replyErr
	}
	m.replies = append(m.replies, sentMessage{chatID: chatID, text: text, markdown: markdown})
	return nil
}

func (m *mockMessenger) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.videos = append(m.videos, fileID)
	return nil
}

func (m *mockMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *mockMessenger) lastReply() (sentMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.replies) == 0 {
		return sentMessage{}, false
	}
	return m.replies[len(m.replies)-1], true
}

// mockCatalogEvents records published events.
type mockCatalogEvents struct {
	mu        sync.Mutex
	published []repository.MediaCreatedEvent
	err       error
}

func (m *mockCatalogEvents) PublishMediaCreated(ctx context.Context, event repository.MediaCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, event)
	return nil
}

// mockListingCache is an in-memory ListingCache double with call tracking
// and failure injection. It ignores TTL; expiry behavior is covered by the
// cache package's own tests.
type mockListingCache struct {
	mu              sync.Mutex
	pages           map[int]*model.CatalogPage
	invalidateCalls int
	getErr          error
	putErr          error
	invalidateErr   error
}

func newMockListingCache() *mockListingCache {
	return &mockListingCache{pages: make(map[int]*model.CatalogPage)}
}

func (m *mockListingCache) Get(ctx context.Context, page int) (*model.CatalogPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.pages[page], nil
}

func (m *mockListingCache) Put(ctx context.Context, page int, snapshot *model.CatalogPage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.pages[page] = snapshot
	return nil
}

func (m *mockListingCache) InvalidateAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidateCalls++
	if m.invalidateErr != nil {
		return m.invalidateErr
	}
	m.pages = make(map[int]*model.CatalogPage)
	return nil
}

// mockMediaRelay provides a configurable mock for MediaRelay.
type mockMediaRelay struct {
	relayThumbnailFn func(ctx context.Context, fileID string) (string, error)
}

func (m *mockMediaRelay) RelayThumbnail(ctx context.Context, fileID string) (string, error) {
	if m.relayThumbnailFn != nil {
		return m.relayThumbnailFn(ctx, fileID)
	}
	return "https://cdn.example.com/thumb.jpg", nil
}
