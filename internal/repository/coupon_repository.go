package repository

import (
	"errors"
	"time"

	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// CouponRepository is the coupon data-access interface.
type CouponRepository interface {
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	List(filter CouponListFilter) ([]models.Coupon, int64, error)
	RedeemWithinLimit(id uint) (bool, error)
	ReleaseUsage(id uint) error
	WithTx(tx *gorm.DB) CouponRepository
}

// CouponListFilter narrows coupon listings.
type CouponListFilter struct {
	Code           string
	IsActive       *bool
	CurrentlyValid bool // active, within window, under the usage limit
	Now            time.Time
	Page           int
	PageSize       int
}

// GormCouponRepository is the GORM implementation.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a coupon repository.
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCouponRepository) WithTx(tx *gorm.DB) CouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// GetByID fetches a coupon by id.
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode fetches a coupon by its code.
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// Create inserts a coupon.
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return r.db.Create(coupon).Error
}

// Update saves a coupon.
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return r.db.Save(coupon).Error
}

// Delete removes a coupon outright. The code column carries a unique index
// that a soft-deleted row would keep occupying, blocking the code from ever
// being recreated.
func (r *GormCouponRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.Coupon{}, id).Error
}

// List returns coupons matching the filter.
// The CurrentlyValid scope mirrors the validity rules minus the cart-total
// check, so admin listings stay consistent with checkout validation.
func (r *GormCouponRepository) List(filter CouponListFilter) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	query := r.db.Model(&models.Coupon{})

	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CurrentlyValid {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query = query.
			Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", now).
			Where("expires_at IS NULL OR expires_at >= ?", now).
			Where("usage_limit = 0 OR used_count < usage_limit")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&coupons).Error; err != nil {
		return nil, 0, err
	}
	return coupons, total, nil
}

// RedeemWithinLimit atomically increments used_count while under the limit.
// A false return means the limit was already reached.
func (r *GormCouponRepository) RedeemWithinLimit(id uint) (bool, error) {
	result := r.db.Model(&models.Coupon{}).
		Where("id = ?", id).
		Where("usage_limit = 0 OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseUsage decrements used_count, floored at zero (admin correction,
// cancelled orders).
func (r *GormCouponRepository) ReleaseUsage(id uint) error {
	return r.db.Model(&models.Coupon{}).
		Where("id = ?", id).
		Where("used_count > 0").
		UpdateColumn("used_count", gorm.Expr("used_count - 1")).Error
}
