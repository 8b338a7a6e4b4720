package model

import (
	baseModel "prompt_market/pkg/model"
)

// Prompt is a catalog entry. Content is the paid payload; everything
// else is public listing data. Only approved prompts are purchasable.
type Prompt struct {
	baseModel.BaseModel
	Title        string `gorm:"type:varchar(200);not null" json:"title"`
	Description  string `json:"description"`
	Content      string `json:"content,omitempty"`
	Price        int64  `gorm:"not null" json:"price"`
	IsFree       bool   `gorm:"column:is_free;default:false" json:"is_free"`
	Status       string `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Category     string `gorm:"type:varchar(50);index" json:"category"`
	ThumbnailURL string `json:"thumbnailUrl"`
	SellerID     string `gorm:"type:uuid;index" json:"sellerId"`
	RejectReason string `json:"rejectReason,omitempty"`
}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Summary is the trimmed shape echoed by listing and payment responses.
type Summary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Price  int64  `json:"price"`
	IsFree bool   `json:"is_free"`
}

// Summary trims a prompt to its public listing fields.
func (p *Prompt) Summary() Summary {
	return Summary{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		IsFree: p.IsFree,
	}
}
