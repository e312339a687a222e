package service

import "errors"

// Coupon validation errors.
var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponInactive   = errors.New("coupon is not active")
	ErrCouponNotStarted = errors.New("coupon is not yet valid")
	ErrCouponExpired    = errors.New("coupon has expired")
	ErrCouponUsageLimit = errors.New("coupon usage limit reached")
	ErrCouponMinAmount  = errors.New("cart total below coupon minimum")
	ErrCouponCodeTaken  = errors.New("coupon code already exists")
)

// Booking errors.
var (
	ErrProviderNotFound   = errors.New("service provider not found")
	ErrProviderIneligible = errors.New("service provider cannot take this booking")
	ErrProviderAtCapacity = errors.New("service provider has reached its daily limit")
	ErrScheduleNotFound   = errors.New("schedule entry not found")
	ErrScheduleNotOpen    = errors.New("schedule entry is not open")
	ErrSlotTaken          = errors.New("time slot is no longer available")
	ErrSlotOutsideHours   = errors.New("time slot is outside working hours")
	ErrSlotTooSoon        = errors.New("time slot is within the advance booking window")
	ErrInvalidTimeRange   = errors.New("invalid time range")
	ErrServiceNotProvided = errors.New("provider does not offer a requested service")
)

// Catalog and cart errors.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not available")
	ErrServiceNotFound   = errors.New("service not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrBrandNotFound     = errors.New("brand not found")
	ErrSlugTaken         = errors.New("slug already exists")
	ErrWishlistDuplicate = errors.New("product already in wishlist")
)

// Order errors.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotPending    = errors.New("order is not pending")
	ErrOrderNotCancelable = errors.New("order can no longer be cancelled")
)

// Account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Review errors.
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewDuplicate = errors.New("product already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)
