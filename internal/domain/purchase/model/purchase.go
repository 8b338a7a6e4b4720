package model

import (
	baseModel "prompt_market/pkg/model"
)

// Purchase records a settled sale. The (user_id, prompt_id) pair is
// unique, which is what the duplicate-purchase guard relies on.
type Purchase struct {
	baseModel.BaseModel
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_prompt" json:"userId"`
	PromptID string `gorm:"type:uuid;not null;uniqueIndex:idx_purchases_user_prompt" json:"promptId"`
	Price    int64  `gorm:"not null" json:"price"`
}
