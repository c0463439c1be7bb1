package bot

import (
	"context"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/sanjeetk-dev/videograb-server/internal/usecase"
)

const startCommand = "/start"

// Handlers adapts inbound transport events to the upload and resolution
// workflows.
type Handlers struct {
	upload  usecase.UploadService
	resolve usecase.ResolveService
}

// NewHandlers creates the handler set for the bot surface.
func NewHandlers(upload usecase.UploadService, resolve usecase.ResolveService) *Handlers {
	return &Handlers{
		upload:  upload,
		resolve: resolve,
	}
}

// Register installs the handlers into the dispatcher table.
func (h *Handlers) Register(d *Dispatcher) {
	d.Register(EventCommand, h.HandleCommand)
	d.Register(EventVideo, h.HandleVideo)
}

// HandleCommand processes slash commands. Only /start is recognized;
// everything else is ignored.
func (h *Handlers) HandleCommand(ctx context.Context, update *models.Update) error {
	msg := update.Message

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return nil
	}

	// "/start@botname payload" addresses this bot in a group.
	command, _, _ := strings.Cut(fields[0], "@")
	if command != startCommand {
		return nil
	}

	var payload string
	if len(fields) > 1 {
		payload = fields[1]
	}

	return h.resolve.HandleStart(ctx, msg.Chat.ID, payload)
}

// HandleVideo processes video attachments by forwarding them to the
// upload workflow, which owns authorization.
func (h *Handlers) HandleVideo(ctx context.Context, update *models.Update) error {
	msg := update.Message

	input := usecase.UploadInput{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		FileID:    msg.Video.FileID,
		Caption:   msg.Caption,
	}
	if msg.From != nil {
		input.SenderID = msg.From.ID
	}
	if msg.Video.Thumbnail != nil {
		input.ThumbnailFileID = msg.Video.Thumbnail.FileID
	}

	return h.upload.HandleUpload(ctx, input)
}
