package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceProvider is an installer/delivery/support agent assignable to orders.
type ServiceProvider struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	Name                   string         `gorm:"not null" json:"name"`
	Email                  string         `gorm:"index" json:"email"`
	Phone                  string         `gorm:"type:varchar(32)" json:"phone"`
	Category               string         `gorm:"not null;index" json:"category"`                               // installer/delivery/support
	City                   string         `gorm:"not null;index" json:"city"`
	Area                   string         `gorm:"not null;index" json:"area"`
	AvailabilityStatus     string         `gorm:"not null;default:'available';index" json:"availability_status"` // available/busy/offline
	MaxDailyOrders         int            `gorm:"not null;default:8" json:"max_daily_orders"`
	CurrentDailyOrders     int            `gorm:"not null;default:0" json:"current_daily_orders"`
	Rating                 float64        `gorm:"not null;default:0;index" json:"rating"`
	TotalJobsCompleted     int            `gorm:"not null;default:0" json:"total_jobs_completed"`
	AvgServiceDuration     int            `gorm:"not null;default:60" json:"avg_service_duration"`       // minutes per job, also the slot length
	MinAdvanceBookingHours int            `gorm:"not null;default:2" json:"min_advance_booking_hours"`   // same-day lead time
	IsActive               bool           `gorm:"not null;default:true;index" json:"is_active"`
	IsVerified             bool           `gorm:"not null;default:false;index" json:"is_verified"`
	CreatedAt              time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`

	ServiceLinks []ProviderServiceLink `gorm:"foreignKey:ProviderID" json:"service_links,omitempty"`
	WorkingHours []ProviderWorkingHours `gorm:"foreignKey:ProviderID" json:"working_hours,omitempty"`
}

// TableName sets the table name.
func (ServiceProvider) TableName() string {
	return "service_providers"
}

// Eligible reports whether the provider may be assigned new work at all.
func (p *ServiceProvider) Eligible() bool {
	return p != nil &&
		p.IsActive &&
		p.IsVerified &&
		p.AvailabilityStatus == "available" &&
		p.CurrentDailyOrders < p.MaxDailyOrders
}

// ProviderServiceLink joins a provider to a service it can perform.
type ProviderServiceLink struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProviderID      uint           `gorm:"not null;uniqueIndex:idx_provider_service" json:"provider_id"`
	ServiceID       uint           `gorm:"not null;uniqueIndex:idx_provider_service" json:"service_id"`
	CustomPrice     *Money         `gorm:"type:decimal(20,2)" json:"custom_price,omitempty"` // per-provider price override
	ExperienceLevel string         `gorm:"type:varchar(32)" json:"experience_level"`         // junior/senior/expert
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Service *ProductService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName sets the table name.
func (ProviderServiceLink) TableName() string {
	return "provider_service_links"
}

// ProviderWorkingHours is one weekday's availability window, one row per weekday.
type ProviderWorkingHours struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProviderID uint           `gorm:"not null;uniqueIndex:idx_provider_weekday" json:"provider_id"`
	Weekday    int            `gorm:"not null;uniqueIndex:idx_provider_weekday" json:"weekday"` // time.Weekday (0 = Sunday)
	StartTime  string         `gorm:"type:varchar(5);not null" json:"start_time"`               // "HH:MM" 24h
	EndTime    string         `gorm:"type:varchar(5);not null" json:"end_time"`                 // "HH:MM" 24h
	Available  bool           `gorm:"not null;default:true" json:"available"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ProviderWorkingHours) TableName() string {
	return "provider_working_hours"
}
