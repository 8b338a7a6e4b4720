package repository

import (
	"errors"

	"prompt_market/internal/domain/purchase/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicatePurchase maps the unique (user_id, prompt_id) violation.
var ErrDuplicatePurchase = errors.New("purchase already exists")

type PurchaseRepository interface {
	Create(purchase *model.Purchase) error
	GetByUserAndPrompt(userID, promptID string) (*model.Purchase, error)
	HasPurchased(userID, promptID string) (bool, error)
	ListByUser(userID string, offset, limit int) ([]model.Purchase, int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(purchase *model.Purchase) error {
	if err := r.db.Create(purchase).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePurchase
		}
		return err
	}
	return nil
}

// GetByUserAndPrompt returns the prior purchase, gorm.ErrRecordNotFound
// when there is none, or the underlying store error. Callers must treat
// the three outcomes differently.
func (r *purchaseRepository) GetByUserAndPrompt(userID, promptID string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.Where("user_id = ? AND prompt_id = ?", userID, promptID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) HasPurchased(userID, promptID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Purchase{}).
		Where("user_id = ? AND prompt_id = ?", userID, promptID).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) ListByUser(userID string, offset, limit int) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	query := r.db.Model(&model.Purchase{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}

	return purchases, total, nil
}

// isUniqueViolation detects postgres error 23505 from the pgx driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
