package conversation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	apierrors "github.com/diogo/redactchat/internal/errors"
	"github.com/diogo/redactchat/internal/models"
)

// Submission is an accepted user message whose pipeline has not finished
type Submission struct {
	o     *Orchestrator
	token string
	text  string

	once  sync.Once
	reply models.Message
}

// Token identifies the submission
func (s *Submission) Token() string {
	return s.token
}

// Text returns the trimmed user text
func (s *Submission) Text() string {
	return s.text
}

// Run executes redact then query and appends the bot message. Failures
// become an error message; Run itself never fails. Loading is cleared on
// every path. Only the first call runs the pipeline; later calls return
// the same reply.
func (s *Submission) Run(ctx context.Context) models.Message {
	s.once.Do(func() {
		s.reply = s.run(ctx)
	})
	return s.reply
}

func (s *Submission) run(ctx context.Context) models.Message {
	o := s.o
	defer o.inflight.Release(1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	var reply models.Message
	defer func() {
		if !o.finish(s.token, reply) {
			o.logger.Debug("submission result discarded", zap.String("token", s.token))
		}
	}()

	if !o.attach(s.token, cancel) {
		reply = models.NewErrorMessage(apierrors.ErrClosed, o.now())
		return reply
	}

	answer, err := s.pipeline(ctx)
	if err != nil {
		o.logger.Warn("submission failed",
			zap.String("token", s.token),
			zap.String("stage", stageOf(err)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		reply = models.NewErrorMessage(err, o.now())
		return reply
	}

	o.logger.Info("submission answered",
		zap.String("token", s.token),
		zap.Int("reply_chars", len(answer)),
		zap.Duration("elapsed", time.Since(start)))
	reply = models.NewBotMessage(answer, o.now())
	return reply
}

// pipeline runs the two stages. The query stage only ever sees the
// redacted text.
func (s *Submission) pipeline(ctx context.Context) (string, error) {
	o := s.o

	stageStart := time.Now()
	redacted, err := Redact(ctx, o.pipeline, s.text)
	if err != nil {
		return "", err
	}
	o.logger.Debug("redact stage done",
		zap.String("token", s.token),
		zap.Int("chars", len(redacted)),
		zap.Duration("elapsed", time.Since(stageStart)))

	stageStart = time.Now()
	answer, err := Query(ctx, o.pipeline, redacted)
	if err != nil {
		return "", err
	}
	o.logger.Debug("query stage done",
		zap.String("token", s.token),
		zap.Duration("elapsed", time.Since(stageStart)))

	return answer, nil
}

func stageOf(err error) string {
	if stage := apierrors.GetStage(err); stage != "" {
		return stage
	}
	return "transport"
}
