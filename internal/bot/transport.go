package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	telegrambot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
)

// fileResolver abstracts the handle-resolution calls of *telegrambot.Bot
// for testability.
type fileResolver interface {
	GetFile(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// TransportConfig holds configuration for the Telegram transport.
type TransportConfig struct {
	Token         string
	WebhookURL    string // full public URL the webhook is registered at
	WebhookSecret string
	FetchTimeout  time.Duration // bound on handle resolution + download
}

// Transport wraps the Telegram client. It implements repository.Messenger
// for outbound delivery and repository.MediaSource for binary fetches.
// Rate-limit queuing and retry of outbound calls is owned by the client
// library; nothing here retries.
type Transport struct {
	bot        *telegrambot.Bot
	resolver   fileResolver
	httpClient *http.Client
	logger     *slog.Logger

	webhookURL    string
	webhookSecret string

	dispatcher *Dispatcher
}

// NewTransport creates the Telegram transport. Inbound updates are routed
// through the dispatcher bound later via Bind; updates arriving before that
// are dropped.
func NewTransport(cfg TransportConfig, logger *slog.Logger) (*Transport, error) {
	t := &Transport{
		logger:        logger,
		webhookURL:    cfg.WebhookURL,
		webhookSecret: cfg.WebhookSecret,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
	}

	// Handlers run synchronously on the client's update loop so updates
	// reach the dispatcher in arrival order; the dispatcher queues them
	// and returns immediately.
	b, err := telegrambot.New(cfg.Token,
		telegrambot.WithDefaultHandler(t.onUpdate),
		telegrambot.WithWebhookSecretToken(cfg.WebhookSecret),
		telegrambot.WithNotAsyncHandlers(),
	)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	t.bot = b
	t.resolver = b
	return t, nil
}

// Bind attaches the dispatcher that receives inbound updates.
func (t *Transport) Bind(d *Dispatcher) {
	t.dispatcher = d
}

// onUpdate hands one inbound update to the dispatcher. Dispatch fixes the
// update's per-sender queue position before returning, so calling it here
// in order is what preserves arrival order end to end.
func (t *Transport) onUpdate(ctx context.Context, _ *telegrambot.Bot, update *models.Update) {
	if t.dispatcher == nil {
		t.logger.Warn("update received before dispatcher was bound")
		return
	}
	t.dispatcher.Dispatch(ctx, update)
}

// RegisterWebhook registers the webhook URL with Telegram.
func (t *Transport) RegisterWebhook(ctx context.Context) error {
	ok, err := t.bot.SetWebhook(ctx, &telegrambot.SetWebhookParams{
		URL:         t.webhookURL,
		SecretToken: t.webhookSecret,
	})
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	if !ok {
		return fmt.Errorf("set webhook: rejected by telegram")
	}
	t.logger.Info("webhook registered", slog.String("url", t.webhookURL))
	return nil
}

// WebhookHandler returns the HTTP handler that accepts transport-pushed
// events. Mount it on the single secret-bearing route; no other path is a
// valid entry point.
func (t *Transport) WebhookHandler() http.HandlerFunc {
	return t.bot.WebhookHandler()
}

// StartWebhook processes queued webhook updates until ctx is cancelled.
func (t *Transport) StartWebhook(ctx context.Context) {
	t.bot.StartWebhook(ctx)
}

// Reply sends a text message to the given chat.
func (t *Transport) Reply(ctx context.Context, chatID int64, text string, markdown bool) error {
	params := &telegrambot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markdown {
		params.ParseMode = models.ParseModeMarkdown
	}
	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// SendVideo delivers the video identified by the opaque handle to the chat.
func (t *Transport) SendVideo(ctx context.Context, chatID int64, fileID string) error {
	_, err := t.bot.SendVideo(ctx, &telegrambot.SendVideoParams{
		ChatID: chatID,
		Video:  &models.InputFileString{Data: fileID},
	})
	if err != nil {
		return fmt.Errorf("send video to chat %d: %w", chatID, err)
	}
	return nil
}

// DeleteMessage removes a message from the chat.
func (t *Transport) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ok, err := t.bot.DeleteMessage(ctx, &telegrambot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("delete message %d in chat %d: %w", messageID, chatID, err)
	}
	if !ok {
		return fmt.Errorf("delete message %d in chat %d: rejected", messageID, chatID)
	}
	return nil
}

// FetchFile resolves the handle against Telegram's file API and downloads
// the bytes. Timeouts and non-success statuses both map to
// repository.ErrSourceUnavailable.
func (t *Transport) FetchFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := t.resolver.GetFile(ctx, &telegrambot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("%w: resolve file %q: %v", repository.ErrSourceUnavailable, fileID, err)
	}

	link := t.resolver.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: download file %q: %v", repository.ErrSourceUnavailable, fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: download file %q: status %d", repository.ErrSourceUnavailable, fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read file %q: %v", repository.ErrSourceUnavailable, fileID, err)
	}

	return data, nil
}

// Compile-time verification of the collaborator interfaces.
var (
	_ repository.Messenger   = (*Transport)(nil)
	_ repository.MediaSource = (*Transport)(nil)
)
