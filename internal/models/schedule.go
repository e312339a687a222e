package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceProviderSchedule is a booked slot for a provider.
// The composite unique index on (provider, date, start) is the final arbiter
// against double-booking: the availability computation is advisory and a
// concurrent insert for the same slot fails here.
type ServiceProviderSchedule struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	ProviderID  uint           `gorm:"not null;uniqueIndex:idx_provider_date_start" json:"provider_id"`
	OrderID     *uint          `gorm:"index" json:"order_id,omitempty"`
	ServiceDate string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_provider_date_start" json:"service_date"` // "YYYY-MM-DD"
	StartTime   string         `gorm:"type:varchar(5);not null;uniqueIndex:idx_provider_date_start" json:"start_time"`    // "HH:MM" 24h
	EndTime     string         `gorm:"type:varchar(5);not null" json:"end_time"`                                          // "HH:MM" 24h
	Status      string         `gorm:"not null;default:'scheduled';index" json:"status"` // scheduled/in_progress/completed/cancelled
	Notes       string         `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ServiceProviderSchedule) TableName() string {
	return "service_provider_schedules"
}
