package service

import (
	"context"
	"fmt"
	"time"

	"prompt_market/internal/domain/prompt/model"
	"prompt_market/pkg/cache"
	"prompt_market/pkg/logger"

	"go.uber.org/zap"
)

// CachedPromptService wraps PromptService with a redis read cache on the
// hot paths (detail and explore listing). Writes invalidate.
type CachedPromptService struct {
	inner PromptService
	cache cache.CacheService
}

const (
	promptCacheKeyPrefix  = "prompt:"
	exploreCacheKeyPrefix = "explore:"
	promptCacheTTL        = time.Hour
	exploreCacheTTL       = 5 * time.Minute
)

// NewCachedPromptService decorates a PromptService with caching.
func NewCachedPromptService(inner PromptService, c cache.CacheService) PromptService {
	return &CachedPromptService{inner: inner, cache: c}
}

func promptCacheKey(id string) string {
	return promptCacheKeyPrefix + id
}

func exploreCacheKey(category string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", exploreCacheKeyPrefix, category, page, limit)
}

func (s *CachedPromptService) CreatePrompt(sellerID string, input CreatePromptInput) (*model.Prompt, error) {
	prompt, err := s.inner.CreatePrompt(sellerID, input)
	if err != nil {
		return nil, err
	}
	s.invalidateListings()
	return prompt, nil
}

// GetPrompt caches only the redacted view; anything carrying paid
// content goes straight to the inner service.
func (s *CachedPromptService) GetPrompt(id string, viewerID string, viewerRole int) (*model.Prompt, error) {
	if viewerID != "" {
		return s.inner.GetPrompt(id, viewerID, viewerRole)
	}

	ctx := context.Background()
	var cached model.Prompt
	if err := s.cache.Get(ctx, promptCacheKey(id), &cached); err == nil {
		return &cached, nil
	}

	prompt, err := s.inner.GetPrompt(id, "", 0)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, promptCacheKey(id), prompt, promptCacheTTL); err != nil {
		logger.Log.Warn("prompt cache set failed", zap.String("prompt_id", id), zap.Error(err))
	}
	return prompt, nil
}

func (s *CachedPromptService) Explore(category string, page, limit int) ([]model.Prompt, int64, error) {
	ctx := context.Background()
	key := exploreCacheKey(category, page, limit)

	var cached struct {
		Prompts []model.Prompt `json:"prompts"`
		Total   int64          `json:"total"`
	}
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached.Prompts, cached.Total, nil
	}

	prompts, total, err := s.inner.Explore(category, page, limit)
	if err != nil {
		return nil, 0, err
	}

	cached.Prompts = prompts
	cached.Total = total
	if err := s.cache.Set(ctx, key, cached, exploreCacheTTL); err != nil {
		logger.Log.Warn("explore cache set failed", zap.Error(err))
	}

	return prompts, total, nil
}

func (s *CachedPromptService) ListBySeller(sellerID string, page, limit int) ([]model.Prompt, int64, error) {
	return s.inner.ListBySeller(sellerID, page, limit)
}

func (s *CachedPromptService) ListPending(page, limit int) ([]model.Prompt, int64, error) {
	return s.inner.ListPending(page, limit)
}

func (s *CachedPromptService) Review(id string, approve bool, rejectReason string) error {
	if err := s.inner.Review(id, approve, rejectReason); err != nil {
		return err
	}

	ctx := context.Background()
	if err := s.cache.Delete(ctx, promptCacheKey(id)); err != nil {
		logger.Log.Warn("prompt cache invalidation failed", zap.String("prompt_id", id), zap.Error(err))
	}
	s.invalidateListings()
	return nil
}

func (s *CachedPromptService) invalidateListings() {
	if err := s.cache.InvalidatePattern(context.Background(), exploreCacheKeyPrefix+"*"); err != nil {
		logger.Log.Warn("explore cache invalidation failed", zap.Error(err))
	}
}
