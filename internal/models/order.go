package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a placed checkout.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         string         `gorm:"index;not null" json:"status"` // pending/confirmed/completed/cancelled
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`        // item total before discounts
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // coupon discount
	ServiceCost    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"service_cost"`    // booked services total
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // subtotal - discount + services
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`
	City           string         `gorm:"type:varchar(64)" json:"city"` // delivery/installation location
	Area           string         `gorm:"type:varchar(64)" json:"area"`
	Address        string         `gorm:"type:varchar(500)" json:"address"`
	Notes          string         `gorm:"type:text" json:"notes"`
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at"`  // unconfirmed orders auto-cancel after this
	ConfirmedAt    *time.Time     `gorm:"index" json:"confirmed_at"`
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Items    []OrderItem              `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Schedule *ServiceProviderSchedule `gorm:"foreignKey:OrderID" json:"schedule,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
