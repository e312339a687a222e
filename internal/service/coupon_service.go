package service

import (
	"strings"
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponService validates and redeems discount codes.
type CouponService struct {
	coupons repository.CouponRepository
	usages  repository.CouponUsageRepository
}

// NewCouponService creates a coupon service.
func NewCouponService(coupons repository.CouponRepository, usages repository.CouponUsageRepository) *CouponService {
	return &CouponService{coupons: coupons, usages: usages}
}

// CouponQuote is the result of previewing a coupon against a cart total.
type CouponQuote struct {
	Valid    bool           `json:"valid"`
	Discount models.Money   `json:"discount"`
	Coupon   *models.Coupon `json:"coupon,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// Validate checks every redemption rule and returns the first violated one.
// All rules must hold; there is no partial validity.
func (s *CouponService) Validate(coupon *models.Coupon, cartTotal decimal.Decimal, now time.Time) error {
	if coupon == nil {
		return ErrCouponNotFound
	}
	if !coupon.IsActive {
		return ErrCouponInactive
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return ErrCouponNotStarted
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return ErrCouponUsageLimit
	}
	if coupon.MinAmount.IsPositive() && cartTotal.LessThan(coupon.MinAmount.Decimal) {
		return ErrCouponMinAmount
	}
	return nil
}

// IsValid reports whether the coupon may be redeemed against the cart total.
func (s *CouponService) IsValid(coupon *models.Coupon, cartTotal decimal.Decimal, now time.Time) bool {
	return s.Validate(coupon, cartTotal, now) == nil
}

// CalculateDiscount computes the discount for a cart total, zero when the
// coupon is not redeemable. Percentage discounts are clamped to max_discount
// when one is set; fixed discounts never exceed the cart total.
func (s *CouponService) CalculateDiscount(coupon *models.Coupon, cartTotal decimal.Decimal, now time.Time) models.Money {
	if !s.IsValid(coupon, cartTotal, now) {
		return models.NewMoneyFromDecimal(decimal.Zero)
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case constants.CouponTypePercentage:
		discount = cartTotal.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100))
		if coupon.MaxDiscount.IsPositive() && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
	case constants.CouponTypeFixedAmount:
		discount = coupon.Value.Decimal
		if discount.GreaterThan(cartTotal) {
			discount = cartTotal
		}
	default:
		return models.NewMoneyFromDecimal(decimal.Zero)
	}
	return models.NewMoneyFromDecimal(discount)
}

// Preview quotes a coupon code against a cart total without redeeming it.
// Rule failures degrade to an invalid quote rather than an error.
func (s *CouponService) Preview(code string, cartTotal decimal.Decimal, now time.Time) (*CouponQuote, error) {
	coupon, err := s.coupons.GetByCode(normalizeCouponCode(code))
	if err != nil {
		return nil, err
	}
	if err := s.Validate(coupon, cartTotal, now); err != nil {
		return &CouponQuote{
			Valid:    false,
			Discount: models.NewMoneyFromDecimal(decimal.Zero),
			Reason:   err.Error(),
		}, nil
	}
	return &CouponQuote{
		Valid:    true,
		Discount: s.CalculateDiscount(coupon, cartTotal, now),
		Coupon:   coupon,
	}, nil
}

// Apply validates a coupon code for checkout and returns the coupon with its
// discount. Unlike Preview, rule failures come back as sentinel errors.
func (s *CouponService) Apply(code string, cartTotal decimal.Decimal, now time.Time) (*models.Coupon, models.Money, error) {
	coupon, err := s.coupons.GetByCode(normalizeCouponCode(code))
	if err != nil {
		return nil, models.Money{}, err
	}
	if err := s.Validate(coupon, cartTotal, now); err != nil {
		return nil, models.Money{}, err
	}
	return coupon, s.CalculateDiscount(coupon, cartTotal, now), nil
}

// Redeem consumes one use of the coupon and records it against the order.
// The conditional increment is the arbiter under concurrency: losing the race
// for the last use returns ErrCouponUsageLimit.
func (s *CouponService) Redeem(tx *gorm.DB, coupon *models.Coupon, userID, orderID uint, discount models.Money) error {
	coupons := s.coupons.WithTx(tx)
	usages := s.usages.WithTx(tx)

	ok, err := coupons.RedeemWithinLimit(coupon.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCouponUsageLimit
	}
	return usages.Create(&models.CouponUsage{
		CouponID:       coupon.ID,
		UserID:         userID,
		OrderID:        orderID,
		DiscountAmount: discount,
	})
}

// Release returns one use of a coupon, for cancelled orders.
func (s *CouponService) Release(tx *gorm.DB, couponID uint) error {
	return s.coupons.WithTx(tx).ReleaseUsage(couponID)
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
