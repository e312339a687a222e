package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a part category (boilers, pumps, PCBs, thermostats, ...).
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`  // unique URL key
	Name      string         `gorm:"not null" json:"name"`              // display name
	Icon      string         `gorm:"type:varchar(500)" json:"icon"`     // icon image path
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`  // optional parent category
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // listing weight
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
