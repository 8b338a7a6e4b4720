package service

import (
	"errors"

	"prompt_market/internal/domain/prompt/model"
	"prompt_market/internal/domain/prompt/repository"
	userModel "prompt_market/internal/domain/user/model"
)

// PurchaseChecker answers whether a user already owns a prompt.
// Implemented by the purchase repository; kept as a local interface so
// the catalog does not import the purchase domain wholesale.
type PurchaseChecker interface {
	HasPurchased(userID, promptID string) (bool, error)
}

// PromptService covers the catalog: selling, review, browsing.
type PromptService interface {
	CreatePrompt(sellerID string, input CreatePromptInput) (*model.Prompt, error)
	GetPrompt(id string, viewerID string, viewerRole int) (*model.Prompt, error)
	Explore(category string, page, limit int) ([]model.Prompt, int64, error)
	ListBySeller(sellerID string, page, limit int) ([]model.Prompt, int64, error)
	ListPending(page, limit int) ([]model.Prompt, int64, error)
	Review(id string, approve bool, rejectReason string) error
}

// CreatePromptInput is the seller submission.
type CreatePromptInput struct {
	Title        string
	Description  string
	Content      string
	Price        int64
	IsFree       bool
	Category     string
	ThumbnailURL string
}

type promptService struct {
	repo      repository.PromptRepository
	purchases PurchaseChecker
}

// NewPromptService creates the catalog service.
func NewPromptService(repo repository.PromptRepository, purchases PurchaseChecker) PromptService {
	return &promptService{repo: repo, purchases: purchases}
}

// CreatePrompt stores a seller submission in pending review state.
func (s *promptService) CreatePrompt(sellerID string, input CreatePromptInput) (*model.Prompt, error) {
	if input.IsFree {
		input.Price = 0
	}
	if !input.IsFree && input.Price <= 0 {
		return nil, errors.New("paid prompts require a positive price")
	}

	prompt := &model.Prompt{
		Title:        input.Title,
		Description:  input.Description,
		Content:      input.Content,
		Price:        input.Price,
		IsFree:       input.IsFree,
		Category:     input.Category,
		ThumbnailURL: input.ThumbnailURL,
		SellerID:     sellerID,
		Status:       model.StatusPending,
	}

	if err := s.repo.Create(prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// GetPrompt returns the detail view. The paid content is included only
// for free prompts, the seller, admins, and buyers who purchased it.
func (s *promptService) GetPrompt(id string, viewerID string, viewerRole int) (*model.Prompt, error) {
	prompt, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if s.canSeeContent(prompt, viewerID, viewerRole) {
		return prompt, nil
	}

	redacted := *prompt
	redacted.Content = ""
	return &redacted, nil
}

func (s *promptService) canSeeContent(prompt *model.Prompt, viewerID string, viewerRole int) bool {
	if prompt.IsFree {
		return true
	}
	if viewerID == "" {
		return false
	}
	if viewerID == prompt.SellerID || viewerRole == userModel.RoleAdmin {
		return true
	}
	owned, err := s.purchases.HasPurchased(viewerID, prompt.ID)
	if err != nil {
		return false
	}
	return owned
}

// Explore lists approved prompts for the public storefront.
func (s *promptService) Explore(category string, page, limit int) ([]model.Prompt, int64, error) {
	offset, limit := paginate(page, limit)
	return s.repo.List(model.StatusApproved, category, offset, limit)
}

func (s *promptService) ListBySeller(sellerID string, page, limit int) ([]model.Prompt, int64, error) {
	offset, limit := paginate(page, limit)
	return s.repo.ListBySeller(sellerID, offset, limit)
}

// ListPending is the admin review queue.
func (s *promptService) ListPending(page, limit int) ([]model.Prompt, int64, error) {
	offset, limit := paginate(page, limit)
	return s.repo.List(model.StatusPending, "", offset, limit)
}

// Review approves or rejects a pending prompt.
func (s *promptService) Review(id string, approve bool, rejectReason string) error {
	prompt, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if prompt.Status != model.StatusPending {
		return errors.New("prompt is not pending review")
	}

	if approve {
		return s.repo.UpdateStatus(id, model.StatusApproved, "")
	}
	return s.repo.UpdateStatus(id, model.StatusRejected, rejectReason)
}

func paginate(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}
