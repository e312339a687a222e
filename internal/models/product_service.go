package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductService is an orderable service (installation, delivery, setup, ...).
type ProductService struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Type        string         `gorm:"not null;index" json:"type"`                          // setup/delivery/installation/maintenance/other
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // base price
	IsOptional  bool           `gorm:"not null;default:true" json:"is_optional"`            // false = mandatory with every order
	IsFree      bool           `gorm:"not null;default:false" json:"is_free"`               // free regardless of price
	FreeRules   JSON           `gorm:"type:json" json:"free_rules"`                         // free-condition rules (e.g. min order total)
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ProductService) TableName() string {
	return "product_services"
}

// ProductServiceAssignment attaches a service to a product with optional overrides.
// Null override fields fall back to the service defaults.
type ProductServiceAssignment struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProductID   uint           `gorm:"not null;uniqueIndex:idx_service_product" json:"product_id"`
	ServiceID   uint           `gorm:"not null;uniqueIndex:idx_service_product" json:"service_id"`
	CustomPrice *Money         `gorm:"type:decimal(20,2)" json:"custom_price,omitempty"` // per-product price override
	IsOptional  *bool          `json:"is_optional,omitempty"`                            // per-product mandatory override
	IsFree      *bool          `json:"is_free,omitempty"`                                // per-product free override
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Service *ProductService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName sets the table name.
func (ProductServiceAssignment) TableName() string {
	return "product_service_assignments"
}
