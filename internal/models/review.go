package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer product review; one per user and product.
type Review struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product_id"`
	UserID     uint           `gorm:"not null;uniqueIndex:idx_review_product_user" json:"user_id"`
	Rating     int            `gorm:"not null" json:"rating"` // 1..5
	Comment    string         `gorm:"type:text" json:"comment"`
	IsApproved bool           `gorm:"not null;default:false;index" json:"is_approved"` // admin moderation gate
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
