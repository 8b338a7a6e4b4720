package worker

import (
	"time"

	"prompt_market/internal/domain/payment/repository"
	"prompt_market/pkg/logger"

	"go.uber.org/zap"
)

// ExpirySweeper periodically fails prepared rows that outlived their
// expiry window, so abandoned checkouts cannot be confirmed later.
type ExpirySweeper struct {
	repo     repository.PaymentRepository
	interval time.Duration
	stop     chan struct{}
}

// NewExpirySweeper creates a sweeper; Start launches it.
func NewExpirySweeper(repo repository.PaymentRepository, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ExpirySweeper{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the sweep loop in its own goroutine.
func (s *ExpirySweeper) Start() {
	go s.run()
	logger.Log.Info("payment expiry sweeper started", zap.Duration("interval", s.interval))
}

func (s *ExpirySweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *ExpirySweeper) sweep() {
	expired, err := s.repo.ExpireStale(time.Now())
	if err != nil {
		logger.Log.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		logger.Log.Info("expired stale payment preparations", zap.Int64("count", expired))
	}
}

// Stop terminates the sweep loop.
func (s *ExpirySweeper) Stop() {
	close(s.stop)
}
