package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a spare part listing.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`                              // category reference
	BrandID        *uint          `gorm:"index" json:"brand_id,omitempty"`                                // brand reference
	Slug           string         `gorm:"uniqueIndex;not null" json:"slug"`                               // unique URL key
	PartNumber     string         `gorm:"index;not null" json:"part_number"`                              // manufacturer part number
	Name           string         `gorm:"not null" json:"name"`                                           // display name
	Description    string         `gorm:"type:text" json:"description"`                                   // long description
	Price          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`             // selling price
	CompareAtPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"compare_at_price"`  // RRP for strike-through display (0 = none)
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                       // on-hand stock
	Images         StringArray    `gorm:"type:json" json:"images"`                                        // image paths
	Attributes     JSON           `gorm:"type:json" json:"attributes"`                                    // free-form attributes (GC number, fits models, ...)
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                            // listed flag
	IsFeatured     bool           `gorm:"default:false;index" json:"is_featured"`                         // homepage feature flag
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
