package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"prompt_market/internal/domain/payment/model"

	"github.com/stretchr/testify/assert"
)

type stubPaymentRepository struct {
	sweeps  int64
	expired int64
	err     error
}

func (s *stubPaymentRepository) CreatePreparation(prep *model.PaymentPreparation) error { return nil }

func (s *stubPaymentRepository) GetPreparedByOrderID(orderID string) (*model.PaymentPreparation, error) {
	return nil, nil
}

func (s *stubPaymentRepository) MarkFailed(id, reason string) error { return nil }

func (s *stubPaymentRepository) ConfirmAndSettle(prep *model.PaymentPreparation, paymentKey, method string, approvedAt *time.Time) error {
	return nil
}

func (s *stubPaymentRepository) ExpireStale(now time.Time) (int64, error) {
	atomic.AddInt64(&s.sweeps, 1)
	return s.expired, s.err
}

func TestSweeper(t *testing.T) {
	t.Run("Ticks invoke the expiry sweep", func(t *testing.T) {
		repo := &stubPaymentRepository{expired: 2}
		s := &ExpirySweeper{
			repo:     repo,
			interval: 10 * time.Millisecond,
			stop:     make(chan struct{}),
		}

		s.Start()
		time.Sleep(50 * time.Millisecond)
		s.Stop()

		assert.GreaterOrEqual(t, atomic.LoadInt64(&repo.sweeps), int64(1))
	})

	t.Run("Sweep errors do not kill the loop", func(t *testing.T) {
		repo := &stubPaymentRepository{err: errors.New("db down")}
		s := &ExpirySweeper{
			repo:     repo,
			interval: 10 * time.Millisecond,
			stop:     make(chan struct{}),
		}

		s.Start()
		time.Sleep(50 * time.Millisecond)
		s.Stop()

		assert.GreaterOrEqual(t, atomic.LoadInt64(&repo.sweeps), int64(2))
	})

	t.Run("Default interval replaces a zero interval", func(t *testing.T) {
		s := NewExpirySweeper(&stubPaymentRepository{}, 0)
		assert.Equal(t, 5*time.Minute, s.interval)
	})
}
