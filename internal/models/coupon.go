package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code with temporal, usage and minimum-spend constraints.
type Coupon struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // primary key
	Code        string         `gorm:"uniqueIndex;not null" json:"code"`                          // coupon code
	Type        string         `gorm:"not null" json:"type"`                                      // percentage / fixed_amount
	Value       Money          `gorm:"type:decimal(20,2);not null" json:"value"`                  // percentage points or fixed amount
	MinAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_amount"`   // minimum cart total (0 = none)
	MaxDiscount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"` // discount cap, percentage type only (0 = none)
	UsageLimit  int            `gorm:"not null;default:0" json:"usage_limit"`                     // total redemption limit (0 = unlimited)
	UsedCount   int            `gorm:"not null;default:0" json:"used_count"`                      // redemptions so far
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`                    // enabled flag
	StartsAt    *time.Time     `gorm:"index" json:"starts_at"`                                    // valid from
	ExpiresAt   *time.Time     `gorm:"index" json:"expires_at"`                                   // valid until
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
