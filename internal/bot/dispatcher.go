package bot

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/go-telegram/bot/models"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
)

// EventKind classifies an inbound transport event.
type EventKind string

const (
	// EventCommand is a text message starting with a slash command.
	EventCommand EventKind = "command"
	// EventVideo is a message carrying a video attachment.
	EventVideo EventKind = "video"
)

// HandlerFunc processes one classified update.
type HandlerFunc func(ctx context.Context, update *models.Update) error

const genericFailureMessage = "❌ Something went wrong. Please try again."

// queuedUpdate is one accepted update waiting in a sender's queue.
type queuedUpdate struct {
	ctx     context.Context
	kind    EventKind
	handler HandlerFunc
	update  *models.Update
}

// Dispatcher routes inbound updates to registered handlers by event kind.
// Updates from one sender execute strictly sequentially in the order
// Dispatch accepted them: a second command from the same user does not
// begin until the first has fully completed, including its reply. Updates
// from different senders run concurrently.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventKind]HandlerFunc

	// queues holds the pending updates per sender. A key is present
	// exactly while a drain goroutine for that sender is alive, so at
	// most one handler runs per sender at any time.
	queueMu sync.Mutex
	queues  map[int64][]queuedUpdate

	messenger repository.Messenger
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher with an empty handler table.
// The messenger is used only for the generic failure reply when a handler
// panics.
func NewDispatcher(messenger repository.Messenger, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers:  make(map[EventKind]HandlerFunc),
		queues:    make(map[int64][]queuedUpdate),
		messenger: messenger,
		logger:    logger,
	}
}

// Register installs the handler for an event kind, replacing any previous one.
func (d *Dispatcher) Register(kind EventKind, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[kind] = h
}

// Dispatch accepts one update and returns without waiting for its handler.
// The sender's queue position is fixed before Dispatch returns, so callers
// that invoke Dispatch in arrival order get arrival-order processing per
// sender.
func (d *Dispatcher) Dispatch(ctx context.Context, update *models.Update) {
	kind, ok := classify(update)
	if !ok {
		return
	}

	d.mu.RLock()
	handler, registered := d.handlers[kind]
	d.mu.RUnlock()
	if !registered {
		return
	}

	sender := senderID(update)
	item := queuedUpdate{ctx: ctx, kind: kind, handler: handler, update: update}

	d.queueMu.Lock()
	pending, active := d.queues[sender]
	d.queues[sender] = append(pending, item)
	d.queueMu.Unlock()

	if !active {
		go d.drain(sender)
	}
}

// drain processes one sender's queue in FIFO order and exits once the
// queue is empty, removing it. The next Dispatch for that sender starts a
// fresh drain.
func (d *Dispatcher) drain(sender int64) {
	for {
		d.queueMu.Lock()
		pending := d.queues[sender]
		if len(pending) == 0 {
			delete(d.queues, sender)
			d.queueMu.Unlock()
			return
		}
		item := pending[0]
		d.queues[sender] = pending[1:]
		d.queueMu.Unlock()

		d.process(item)
	}
}

// process runs one queued update with panic containment, so a handler
// crash neither kills the drain loop nor silently drops the chat.
func (d *Dispatcher) process(item queuedUpdate) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("panic in update handler",
				slog.String("kind", string(item.kind)),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			d.notifyFailure(item.ctx, item.update)
		}
	}()

	if err := item.handler(item.ctx, item.update); err != nil {
		d.logger.Error("update handler failed",
			slog.String("kind", string(item.kind)),
			slog.Int64("sender_id", senderID(item.update)),
			slog.Any("error", err),
		)
	}
}

func (d *Dispatcher) notifyFailure(ctx context.Context, update *models.Update) {
	if update.Message == nil {
		return
	}
	if err := d.messenger.Reply(ctx, update.Message.Chat.ID, genericFailureMessage, false); err != nil {
		d.logger.Warn("failed to send generic failure reply",
			slog.Int64("chat_id", update.Message.Chat.ID),
			slog.Any("error", err),
		)
	}
}

// classify maps an update to its event kind. Updates that are neither
// commands nor video submissions are not actionable.
func classify(update *models.Update) (EventKind, bool) {
	msg := update.Message
	if msg == nil {
		return "", false
	}
	if msg.Video != nil {
		return EventVideo, true
	}
	if len(msg.Text) > 0 && msg.Text[0] == '/' {
		return EventCommand, true
	}
	return "", false
}

// senderID extracts the sender identity used for ordering. Channel posts
// and service messages without a sender serialize under a single key.
func senderID(update *models.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	return 0
}
