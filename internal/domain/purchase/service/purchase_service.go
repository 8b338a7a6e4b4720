package service

import (
	"prompt_market/internal/domain/purchase/model"
	"prompt_market/internal/domain/purchase/repository"
)

// PurchaseService exposes a user's library of purchased prompts.
type PurchaseService interface {
	ListByUser(userID string, page, limit int) ([]model.Purchase, int64, error)
	HasPurchased(userID, promptID string) (bool, error)
}

type purchaseService struct {
	repo repository.PurchaseRepository
}

func NewPurchaseService(repo repository.PurchaseRepository) PurchaseService {
	return &purchaseService{repo: repo}
}

func (s *purchaseService) ListByUser(userID string, page, limit int) ([]model.Purchase, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByUser(userID, (page-1)*limit, limit)
}

func (s *purchaseService) HasPurchased(userID, promptID string) (bool, error) {
	return s.repo.HasPurchased(userID, promptID)
}
