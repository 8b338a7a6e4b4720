package model

import (
	"time"

	baseModel "prompt_market/pkg/model"
)

// User is a marketplace account. Identity is the email address;
// sellers and admins are distinguished by Role.
type User struct {
	baseModel.BaseModel
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Nickname      string     `gorm:"type:varchar(50)" json:"nickname"`
	AvatarURL     string     `json:"avatarUrl"`
	Role          int        `gorm:"default:1" json:"role"`
	Status        int        `gorm:"default:1" json:"status"`
	BannedUntil   *time.Time `json:"bannedUntil,omitempty"`
	Token         string     `json:"-"`
	TokenExpireAt *time.Time `json:"-"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
}

const (
	RoleUser   = 1
	RoleSeller = 2
	RoleAdmin  = 9

	StatusNormal  = 1
	StatusBanned  = 2
	StatusDeleted = 3
)
