package bot

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	telegrambot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
)

// mockFileResolver provides a configurable mock for fileResolver.
type mockFileResolver struct {
	getFileFn func(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error)
	linkFn    func(f *models.File) string
}

func (m *mockFileResolver) GetFile(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error) {
	if m.getFileFn != nil {
		return m.getFileFn(ctx, params)
	}
	return &models.File{FileID: params.FileID, FilePath: "videos/file.mp4"}, nil
}

func (m *mockFileResolver) FileDownloadLink(f *models.File) string {
	if m.linkFn != nil {
		return m.linkFn(f)
	}
	return ""
}

func newFetchTransport(resolver fileResolver) *Transport {
	return &Transport{
		resolver:   resolver,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
	}
}

func TestTransport_FetchFile(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	var resolvedID string
	resolver := &mockFileResolver{
		getFileFn: func(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error) {
			resolvedID = params.FileID
			return &models.File{FileID: params.FileID, FilePath: "thumbs/a.jpg"}, nil
		},
		linkFn: func(f *models.File) string { return srv.URL + "/" + f.FilePath },
	}

	tr := newFetchTransport(resolver)
	data, err := tr.FetchFile(context.Background(), "thumb-file-id")
	if err != nil {
		t.Fatalf("FetchFile failed: %v", err)
	}

	if resolvedID != "thumb-file-id" {
		t.Errorf("resolved file ID = %v, want thumb-file-id", resolvedID)
	}
	if string(data) != string(payload) {
		t.Errorf("data = %v, want %v", data, payload)
	}
}

func TestTransport_FetchFile_ResolutionFailure(t *testing.T) {
	resolver := &mockFileResolver{
		getFileFn: func(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error) {
			return nil, errors.New("file not found")
		},
	}

	tr := newFetchTransport(resolver)
	_, err := tr.FetchFile(context.Background(), "bad-id")
	if !errors.Is(err, repository.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestTransport_FetchFile_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := &mockFileResolver{
		linkFn: func(f *models.File) string { return srv.URL },
	}

	tr := newFetchTransport(resolver)
	_, err := tr.FetchFile(context.Background(), "file-id")
	if !errors.Is(err, repository.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestTransport_FetchFile_DownloadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	resolver := &mockFileResolver{
		linkFn: func(f *models.File) string { return srv.URL },
	}

	tr := newFetchTransport(resolver)
	_, err := tr.FetchFile(context.Background(), "file-id")
	if !errors.Is(err, repository.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}
