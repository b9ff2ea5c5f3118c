// Package conversation owns the chat session state and runs the
// redact-then-query pipeline for each submission.
//
// A submission moves through
//
//	Idle -> UserAppended -> RedactPending -> RedactOk -> QueryPending -> BotAppended -> Idle
//
// and any failure on the way lands in BotErrorAppended -> Idle. Every
// accepted submission appends exactly one user message and exactly one bot
// message; loading is cleared in the same critical section as the bot append.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/logging"
	"github.com/diogo/redactchat/internal/models"
)

// Pipeline is the pair of remote stages a submission goes through
type Pipeline interface {
	Redact(ctx context.Context, text string) (string, error)
	Query(ctx context.Context, redacted string) (string, error)
}

// Orchestrator holds one chat session. It is safe for concurrent use, but
// only one submission may be in flight at a time.
type Orchestrator struct {
	pipeline Pipeline
	logger   *zap.Logger
	now      func() time.Time
	inflight *semaphore.Weighted

	mu       sync.RWMutex
	id       string
	messages []models.Message
	input    string
	loading  bool
	token    string
	cancel   context.CancelFunc
	closed   bool
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithClock overrides time.Now for message timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates an empty session driving p
func New(p Pipeline, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		pipeline: p,
		now:      time.Now,
		inflight: semaphore.NewWeighted(1),
		id:       uuid.NewString(),
		messages: []models.Message{},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.OrNop(o.logger).With(zap.String("session", o.id))
	return o
}

// ID returns the session id
func (o *Orchestrator) ID() string {
	return o.id
}

// SetInput replaces the input buffer
func (o *Orchestrator) SetInput(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.input = text
}

// Input returns the input buffer
func (o *Orchestrator) Input() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.input
}

// Messages returns a copy of the conversation in display order
func (o *Orchestrator) Messages() []models.Message {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]models.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// Len returns the number of messages
func (o *Orchestrator) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.messages)
}

// LastReply returns the most recent successful bot message, if any
func (o *Orchestrator) LastReply() (models.Message, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for i := len(o.messages) - 1; i >= 0; i-- {
		if m := o.messages[i]; !m.IsUser && !m.Error {
			return m, true
		}
	}
	return models.Message{}, false
}

// Loading reports whether a pipeline is in flight
func (o *Orchestrator) Loading() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loading
}

// Submit runs a full submission and returns the bot message it appended.
// Empty or whitespace-only text is a no-op and returns nil, nil.
func (o *Orchestrator) Submit(ctx context.Context, text string) (*models.Message, error) {
	sub, err := o.Begin(text)
	if err != nil || sub == nil {
		return nil, err
	}
	reply := sub.Run(ctx)
	return &reply, nil
}

// Begin clears the input, appends the user message and raises loading.
// The returned Submission must be Run to finish it. Empty input returns
// nil, nil; a closed session returns ErrClosed, and a submission while
// another is in flight returns ErrBusy. Neither changes anything.
func (o *Orchestrator) Begin(text string) (*Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if o.Closed() {
		return nil, apierrors.ErrClosed
	}
	if !o.inflight.TryAcquire(1) {
		return nil, apierrors.ErrBusy
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		o.inflight.Release(1)
		return nil, apierrors.ErrClosed
	}

	token := uuid.NewString()
	o.input = ""
	o.messages = append(o.messages, models.NewUserMessage(text, o.now()))
	o.loading = true
	o.token = token

	o.logger.Debug("submission started",
		zap.String("token", token),
		zap.Int("chars", len(text)))

	return &Submission{o: o, token: token, text: text}, nil
}

// Close ends the session. An in-flight pipeline is cancelled and its
// result is discarded.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	o.token = ""
	o.loading = false
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.logger.Debug("session closed", zap.Int("messages", len(o.messages)))
}

// Closed reports whether Close was called
func (o *Orchestrator) Closed() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.closed
}

// attach registers the cancel func of the running pipeline; it reports
// false when the session was closed in between
func (o *Orchestrator) attach(token string, cancel context.CancelFunc) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.token != token {
		return false
	}
	o.cancel = cancel
	return true
}

// finish appends the bot message and drops loading in one step. Results
// whose token is no longer current are discarded.
func (o *Orchestrator) finish(token string, reply models.Message) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cancel = nil
	if o.closed || o.token != token {
		return false
	}
	o.messages = append(o.messages, reply)
	o.loading = false
	o.token = ""
	return true
}
