package service

import (
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// CouponAdminService is the back-office coupon management surface.
type CouponAdminService struct {
	coupons repository.CouponRepository
	usages  repository.CouponUsageRepository
}

// NewCouponAdminService creates a coupon admin service.
func NewCouponAdminService(coupons repository.CouponRepository, usages repository.CouponUsageRepository) *CouponAdminService {
	return &CouponAdminService{coupons: coupons, usages: usages}
}

// List returns coupons matching the filter.
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.coupons.List(filter)
}

// Get fetches a coupon.
func (s *CouponAdminService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create inserts a coupon, normalizing and reserving its code.
func (s *CouponAdminService) Create(coupon *models.Coupon) error {
	coupon.Code = normalizeCouponCode(coupon.Code)
	existing, err := s.coupons.GetByCode(coupon.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrCouponCodeTaken
	}
	return s.coupons.Create(coupon)
}

// Update saves coupon changes, keeping the code unique.
func (s *CouponAdminService) Update(coupon *models.Coupon) error {
	coupon.Code = normalizeCouponCode(coupon.Code)
	existing, err := s.coupons.GetByCode(coupon.Code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != coupon.ID {
		return ErrCouponCodeTaken
	}
	return s.coupons.Update(coupon)
}

// Delete soft-deletes a coupon.
func (s *CouponAdminService) Delete(id uint) error {
	return s.coupons.Delete(id)
}

// ReleaseUsage manually returns one redemption, floored at zero.
func (s *CouponAdminService) ReleaseUsage(id uint) error {
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.coupons.ReleaseUsage(id)
}

// Usages lists a coupon's redemption records.
func (s *CouponAdminService) Usages(couponID uint, page, pageSize int) ([]models.CouponUsage, int64, error) {
	return s.usages.ListByCoupon(couponID, page, pageSize)
}
