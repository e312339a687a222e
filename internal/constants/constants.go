package constants

// Coupon type constants
const (
	CouponTypePercentage  = "percentage"
	CouponTypeFixedAmount = "fixed_amount"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// User account status constants
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// Provider availability status constants
const (
	ProviderStatusAvailable = "available"
	ProviderStatusBusy      = "busy"
	ProviderStatusOffline   = "offline"
)

// Provider category constants
const (
	ProviderCategoryInstaller = "installer"
	ProviderCategoryDelivery  = "delivery"
	ProviderCategorySupport   = "support"
)

// Booking schedule status constants
const (
	ScheduleStatusScheduled  = "scheduled"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

// Product service type constants
const (
	ServiceTypeSetup        = "setup"
	ServiceTypeDelivery     = "delivery"
	ServiceTypeInstallation = "installation"
	ServiceTypeMaintenance  = "maintenance"
	ServiceTypeOther        = "other"
)

// Queue names
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Queue task types
const (
	TaskOrderConfirmationEmail = "order:confirmation_email"
	TaskBookingReminderEmail   = "booking:reminder_email"
	TaskOrderTimeoutCancel     = "order:timeout_cancel"
)

// Setting keys
const (
	SettingKeySiteConfig    = "site_config"
	SettingKeyBookingConfig = "booking_config"
)

// Setting fields
const (
	SettingFieldOrderTimeoutMinutes = "order_timeout_minutes"
)

// Cache keys
const (
	CacheKeySiteConfig       = "settings:site_config"
	CacheKeyFeaturedProducts = "catalog:featured"
	CacheKeyNavigation       = "catalog:navigation"
	CacheKeyCartCountPrefix  = "cart:count:"
)

// Scheduling defaults
const (
	DefaultServiceDurationMinutes = 60
	DefaultMinAdvanceBookingHours = 2
	DefaultOrderTimeoutMinutes    = 30
)
