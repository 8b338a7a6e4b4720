package service

import (
	"errors"
	"testing"

	"prompt_market/internal/domain/prompt/model"
	userModel "prompt_market/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPromptRepository is a mock of PromptRepository
type MockPromptRepository struct {
	mock.Mock
}

func (m *MockPromptRepository) Create(prompt *model.Prompt) error {
	args := m.Called(prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) GetByID(id string) (*model.Prompt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Prompt), args.Error(1)
}

func (m *MockPromptRepository) List(status, category string, offset, limit int) ([]model.Prompt, int64, error) {
	args := m.Called(status, category, offset, limit)
	return args.Get(0).([]model.Prompt), args.Get(1).(int64), args.Error(2)
}

func (m *MockPromptRepository) ListBySeller(sellerID string, offset, limit int) ([]model.Prompt, int64, error) {
	args := m.Called(sellerID, offset, limit)
	return args.Get(0).([]model.Prompt), args.Get(1).(int64), args.Error(2)
}

func (m *MockPromptRepository) Update(prompt *model.Prompt) error {
	args := m.Called(prompt)
	return args.Error(0)
}

func (m *MockPromptRepository) UpdateStatus(id, status, rejectReason string) error {
	args := m.Called(id, status, rejectReason)
	return args.Error(0)
}

// MockPurchaseChecker is a mock of PurchaseChecker
type MockPurchaseChecker struct {
	mock.Mock
}

func (m *MockPurchaseChecker) HasPurchased(userID, promptID string) (bool, error) {
	args := m.Called(userID, promptID)
	return args.Bool(0), args.Error(1)
}

func paidPrompt(id, sellerID string) *model.Prompt {
	p := &model.Prompt{
		Title:    "Cold email generator",
		Content:  "secret paid content",
		Price:    5000,
		Status:   model.StatusApproved,
		SellerID: sellerID,
	}
	p.ID = id
	return p
}

func TestCreatePrompt(t *testing.T) {
	t.Run("Submission lands in pending state", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		mockRepo.On("Create", mock.AnythingOfType("*model.Prompt")).Return(nil)

		prompt, err := service.CreatePrompt("seller-1", CreatePromptInput{
			Title: "Cold email generator",
			Price: 5000,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, prompt.Status)
		assert.Equal(t, "seller-1", prompt.SellerID)
	})

	t.Run("Free prompt forces price to zero", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		mockRepo.On("Create", mock.AnythingOfType("*model.Prompt")).Return(nil)

		prompt, err := service.CreatePrompt("seller-1", CreatePromptInput{
			Title:  "Freebie",
			Price:  5000,
			IsFree: true,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), prompt.Price)
	})

	t.Run("Paid prompt needs a positive price", func(t *testing.T) {
		service := NewPromptService(new(MockPromptRepository), new(MockPurchaseChecker))

		_, err := service.CreatePrompt("seller-1", CreatePromptInput{Title: "Broken"})

		assert.Error(t, err)
	})
}

func TestGetPrompt(t *testing.T) {
	t.Run("Anonymous viewer gets redacted content", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		mockRepo.On("GetByID", "prompt-1").Return(paidPrompt("prompt-1", "seller-1"), nil)

		prompt, err := service.GetPrompt("prompt-1", "", 0)

		assert.NoError(t, err)
		assert.Empty(t, prompt.Content)
	})

	t.Run("Buyer who purchased sees content", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		checker := new(MockPurchaseChecker)
		service := NewPromptService(mockRepo, checker)

		mockRepo.On("GetByID", "prompt-1").Return(paidPrompt("prompt-1", "seller-1"), nil)
		checker.On("HasPurchased", "buyer-1", "prompt-1").Return(true, nil)

		prompt, err := service.GetPrompt("prompt-1", "buyer-1", userModel.RoleUser)

		assert.NoError(t, err)
		assert.Equal(t, "secret paid content", prompt.Content)
	})

	t.Run("Non-buyer gets redacted content", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		checker := new(MockPurchaseChecker)
		service := NewPromptService(mockRepo, checker)

		mockRepo.On("GetByID", "prompt-1").Return(paidPrompt("prompt-1", "seller-1"), nil)
		checker.On("HasPurchased", "buyer-2", "prompt-1").Return(false, nil)

		prompt, err := service.GetPrompt("prompt-1", "buyer-2", userModel.RoleUser)

		assert.NoError(t, err)
		assert.Empty(t, prompt.Content)
	})

	t.Run("Seller sees own content without a purchase check", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		checker := new(MockPurchaseChecker)
		service := NewPromptService(mockRepo, checker)

		mockRepo.On("GetByID", "prompt-1").Return(paidPrompt("prompt-1", "seller-1"), nil)

		prompt, err := service.GetPrompt("prompt-1", "seller-1", userModel.RoleSeller)

		assert.NoError(t, err)
		assert.NotEmpty(t, prompt.Content)
		checker.AssertNotCalled(t, "HasPurchased", mock.Anything, mock.Anything)
	})

	t.Run("Free prompt is readable by anyone", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		free := paidPrompt("prompt-2", "seller-1")
		free.IsFree = true
		mockRepo.On("GetByID", "prompt-2").Return(free, nil)

		prompt, err := service.GetPrompt("prompt-2", "", 0)

		assert.NoError(t, err)
		assert.NotEmpty(t, prompt.Content)
	})
}

func TestReview(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		pending := paidPrompt("prompt-1", "seller-1")
		pending.Status = model.StatusPending
		mockRepo.On("GetByID", "prompt-1").Return(pending, nil)
		mockRepo.On("UpdateStatus", "prompt-1", model.StatusApproved, "").Return(nil)

		err := service.Review("prompt-1", true, "")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Reject records the reason", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		pending := paidPrompt("prompt-1", "seller-1")
		pending.Status = model.StatusPending
		mockRepo.On("GetByID", "prompt-1").Return(pending, nil)
		mockRepo.On("UpdateStatus", "prompt-1", model.StatusRejected, "low quality").Return(nil)

		err := service.Review("prompt-1", false, "low quality")

		assert.NoError(t, err)
	})

	t.Run("Already reviewed cannot be reviewed again", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		mockRepo.On("GetByID", "prompt-1").Return(paidPrompt("prompt-1", "seller-1"), nil)

		err := service.Review("prompt-1", true, "")

		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing prompt propagates the error", func(t *testing.T) {
		mockRepo := new(MockPromptRepository)
		service := NewPromptService(mockRepo, new(MockPurchaseChecker))

		mockRepo.On("GetByID", "prompt-x").Return(nil, errors.New("not found"))

		err := service.Review("prompt-x", true, "")

		assert.Error(t, err)
	})
}
