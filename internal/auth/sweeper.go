package auth

import (
	"context"
	"log/slog"
	"time"
)

// Sweeper deletes expired session rows on an interval. It is constructed in
// main and stopped on shutdown; nothing here reaches for package state.
type Sweeper struct {
	svc      *Service
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	return &Sweeper{
		svc:      svc,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			n, err := s.svc.SweepExpired(context.Background())
			if err != nil {
				slog.Error("sweeping expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("swept expired sessions", "count", n)
			}
		}
	}
}

// Stop halts the sweep loop and waits for the in-flight pass to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
