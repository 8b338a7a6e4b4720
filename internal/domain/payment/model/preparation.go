package model

import (
	"time"

	baseModel "prompt_market/pkg/model"
)

// PaymentPreparation is the ledger row backing the two-step handshake:
// a row is written before the buyer is redirected to the payment widget,
// and confirmation transitions it exactly once.
//
//	prepared ──gateway success──► confirmed  (terminal)
//	prepared ──gateway failure──► failed     (terminal)
//
// Rows are never deleted; the ledger doubles as the audit trail.
type PaymentPreparation struct {
	baseModel.BaseModel
	OrderID       string     `gorm:"column:order_id;not null;index:idx_preparations_order_status" json:"orderId"`
	UserID        string     `gorm:"type:uuid;not null" json:"userId"`
	PromptID      string     `gorm:"type:uuid;not null" json:"promptId"`
	Amount        int64      `gorm:"not null" json:"amount"`
	OrderName     string     `json:"orderName"`
	Status        string     `gorm:"type:varchar(20);default:'prepared';index:idx_preparations_order_status" json:"status"`
	PaymentKey    string     `json:"paymentKey,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
}

func (PaymentPreparation) TableName() string {
	return "payment_preparations"
}

const (
	StatusPrepared  = "prepared"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
)
