package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a snapshotted product or service line on an order.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"index;not null" json:"order_id"`
	ProductID  uint           `gorm:"index" json:"product_id,omitempty"` // 0 for pure service lines
	ServiceID  uint           `gorm:"index" json:"service_id,omitempty"` // 0 for product lines
	Name       string         `gorm:"not null" json:"name"`              // name snapshot at checkout
	PartNumber string         `gorm:"type:varchar(64)" json:"part_number,omitempty"`
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
