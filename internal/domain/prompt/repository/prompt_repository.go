package repository

import (
	"prompt_market/internal/domain/prompt/model"

	"gorm.io/gorm"
)

type PromptRepository interface {
	Create(prompt *model.Prompt) error
	GetByID(id string) (*model.Prompt, error)
	List(status, category string, offset, limit int) ([]model.Prompt, int64, error)
	ListBySeller(sellerID string, offset, limit int) ([]model.Prompt, int64, error)
	Update(prompt *model.Prompt) error
	UpdateStatus(id, status, rejectReason string) error
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(prompt *model.Prompt) error {
	return r.db.Create(prompt).Error
}

func (r *promptRepository) GetByID(id string) (*model.Prompt, error) {
	var prompt model.Prompt
	if err := r.db.Where("id = ?", id).First(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) List(status, category string, offset, limit int) ([]model.Prompt, int64, error) {
	var prompts []model.Prompt
	var total int64

	query := r.db.Model(&model.Prompt{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Listing never leaks the paid content column.
	if err := query.Omit("content").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&prompts).Error; err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

func (r *promptRepository) ListBySeller(sellerID string, offset, limit int) ([]model.Prompt, int64, error) {
	var prompts []model.Prompt
	var total int64

	query := r.db.Model(&model.Prompt{}).Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&prompts).Error; err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

func (r *promptRepository) Update(prompt *model.Prompt) error {
	return r.db.Save(prompt).Error
}

func (r *promptRepository) UpdateStatus(id, status, rejectReason string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if rejectReason != "" {
		updates["reject_reason"] = rejectReason
	}
	return r.db.Model(&model.Prompt{}).Where("id = ?", id).Updates(updates).Error
}
