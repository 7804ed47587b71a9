package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/greasemeter/place-index/internal/usecase"
)

// SessionJanitor periodically evicts idle map sessions.
type SessionJanitor struct {
	*BaseWorker
	sessions *usecase.SessionUseCase
	interval time.Duration
}

func NewSessionJanitor(sessions *usecase.SessionUseCase, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		BaseWorker: NewBaseWorker("session-janitor", logger),
		sessions:   sessions,
		interval:   interval,
	}
}

func (w *SessionJanitor) Start(ctx context.Context) error {
	w.Logger().Info("Session janitor started",
		zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.StopChan():
			return nil
		case <-ticker.C:
			w.sessions.Sweep(time.Now())
		}
	}
}
