package models

import (
	"time"

	"gorm.io/gorm"
)

// Brand is a boiler/part manufacturer (Worcester, Vaillant, Baxi, ...).
type Brand struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name      string         `gorm:"not null" json:"name"`
	Logo      string         `gorm:"type:varchar(500)" json:"logo"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Brand) TableName() string {
	return "brands"
}
