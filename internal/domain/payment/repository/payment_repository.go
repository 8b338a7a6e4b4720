package repository

import (
	"errors"
	"time"

	"prompt_market/internal/domain/payment/model"
	purchaseModel "prompt_market/internal/domain/purchase/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotPrepared means a conditional transition found the row no longer
// in prepared state; a concurrent confirmation or the sweeper got there
// first.
var ErrNotPrepared = errors.New("preparation is not in prepared state")

type PaymentRepository interface {
	CreatePreparation(prep *model.PaymentPreparation) error
	GetPreparedByOrderID(orderID string) (*model.PaymentPreparation, error)
	MarkFailed(id, reason string) error
	ConfirmAndSettle(prep *model.PaymentPreparation, paymentKey, method string, approvedAt *time.Time) error
	ExpireStale(now time.Time) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePreparation(prep *model.PaymentPreparation) error {
	return r.db.Create(prep).Error
}

// GetPreparedByOrderID fetches the live intent for an order. Confirmed
// and failed rows are invisible here, which is what makes confirmation
// single-use per record.
func (r *paymentRepository) GetPreparedByOrderID(orderID string) (*model.PaymentPreparation, error) {
	var prep model.PaymentPreparation
	if err := r.db.Where("order_id = ? AND status = ?", orderID, model.StatusPrepared).
		First(&prep).Error; err != nil {
		return nil, err
	}
	return &prep, nil
}

// MarkFailed records a gateway decline. Conditional on prepared status
// so a racing confirmation cannot be overwritten.
func (r *paymentRepository) MarkFailed(id, reason string) error {
	result := r.db.Model(&model.PaymentPreparation{}).
		Where("id = ? AND status = ?", id, model.StatusPrepared).
		Updates(map[string]interface{}{
			"status":         model.StatusFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPrepared
	}
	return nil
}

// ConfirmAndSettle flips the row to confirmed and writes the purchase
// record in one transaction, so a settled payment always has its
// purchase. The conditional update guards against concurrent confirms;
// the purchase insert ignores conflicts because the unique
// (user_id, prompt_id) constraint may already hold a row from an
// earlier settlement.
func (r *paymentRepository) ConfirmAndSettle(prep *model.PaymentPreparation, paymentKey, method string, approvedAt *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PaymentPreparation{}).
			Where("id = ? AND status = ?", prep.ID, model.StatusPrepared).
			Updates(map[string]interface{}{
				"status":         model.StatusConfirmed,
				"payment_key":    paymentKey,
				"payment_method": method,
				"approved_at":    approvedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotPrepared
		}

		purchase := &purchaseModel.Purchase{
			UserID:   prep.UserID,
			PromptID: prep.PromptID,
			Price:    prep.Amount,
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(purchase).Error
	})
}

// ExpireStale fails every prepared row past its expiry window and
// returns how many were flipped.
func (r *paymentRepository) ExpireStale(now time.Time) (int64, error) {
	result := r.db.Model(&model.PaymentPreparation{}).
		Where("status = ? AND expires_at < ?", model.StatusPrepared, now).
		Updates(map[string]interface{}{
			"status":         model.StatusFailed,
			"failure_reason": "EXPIRED: preparation passed its expiry window",
		})
	return result.RowsAffected, result.Error
}
