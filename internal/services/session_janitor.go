package services

import (
	"context"
	"time"

	"github.com/terraincognita07/quitpath/internal/logger"
)

type SessionJanitor struct {
	sessions *SessionService
	interval time.Duration
}

func NewSessionJanitor(sessions *SessionService, interval time.Duration) *SessionJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionJanitor{sessions: sessions, interval: interval}
}

func (janitor *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(janitor.interval)
	go func() {
		defer ticker.Stop()

		janitor.run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				janitor.run()
			}
		}
	}()
}

func (janitor *SessionJanitor) run() {
	removed, err := janitor.sessions.Prune()
	if err != nil {
		logger.Warn("sessions: prune failed", "err", err)
		return
	}
	if removed > 0 {
		logger.Debug("sessions: pruned expired sessions", "count", removed)
	}
}
