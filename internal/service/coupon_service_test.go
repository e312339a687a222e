package service

import (
	"errors"
	"testing"
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"github.com/shopspring/decimal"
)

func percentageCoupon(value, minAmount, maxDiscount float64) *models.Coupon {
	return &models.Coupon{
		ID:          1,
		Code:        "TEST",
		Type:        constants.CouponTypePercentage,
		Value:       models.NewMoneyFromFloat(value),
		MinAmount:   models.NewMoneyFromFloat(minAmount),
		MaxDiscount: models.NewMoneyFromFloat(maxDiscount),
		IsActive:    true,
	}
}

func TestCouponValidateRules(t *testing.T) {
	svc := NewCouponService(nil, nil)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cartTotal := decimal.NewFromInt(100)

	coupon := percentageCoupon(10, 0, 0)
	if err := svc.Validate(coupon, cartTotal, now); err != nil {
		t.Fatalf("valid coupon rejected: %v", err)
	}

	if err := svc.Validate(nil, cartTotal, now); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("nil coupon want ErrCouponNotFound got %v", err)
	}

	inactive := percentageCoupon(10, 0, 0)
	inactive.IsActive = false
	if err := svc.Validate(inactive, cartTotal, now); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("inactive want ErrCouponInactive got %v", err)
	}

	future := now.Add(time.Hour)
	notStarted := percentageCoupon(10, 0, 0)
	notStarted.StartsAt = &future
	if err := svc.Validate(notStarted, cartTotal, now); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("not started want ErrCouponNotStarted got %v", err)
	}

	past := now.Add(-time.Hour)
	expired := percentageCoupon(10, 0, 0)
	expired.ExpiresAt = &past
	if err := svc.Validate(expired, cartTotal, now); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expired want ErrCouponExpired got %v", err)
	}

	exhausted := percentageCoupon(10, 0, 0)
	exhausted.UsageLimit = 5
	exhausted.UsedCount = 5
	if err := svc.Validate(exhausted, cartTotal, now); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("exhausted want ErrCouponUsageLimit got %v", err)
	}

	underMin := percentageCoupon(10, 150, 0)
	if err := svc.Validate(underMin, cartTotal, now); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("under min amount want ErrCouponMinAmount got %v", err)
	}
}

func TestCouponBoundaryTimesAreValid(t *testing.T) {
	svc := NewCouponService(nil, nil)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	coupon := percentageCoupon(10, 0, 0)
	coupon.StartsAt = &now
	coupon.ExpiresAt = &now
	if err := svc.Validate(coupon, decimal.NewFromInt(100), now); err != nil {
		t.Fatalf("window boundaries should be inclusive: %v", err)
	}

	atMin := percentageCoupon(10, 100, 0)
	if err := svc.Validate(atMin, decimal.NewFromInt(100), now); err != nil {
		t.Fatalf("cart total equal to min_amount should pass: %v", err)
	}
}

func TestCouponPercentageDiscountClampedToMax(t *testing.T) {
	svc := NewCouponService(nil, nil)
	now := time.Now()

	coupon := percentageCoupon(20, 0, 15)
	discount := svc.CalculateDiscount(coupon, decimal.NewFromInt(200), now)
	if !discount.Decimal.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("discount want 15 got %s", discount.Decimal)
	}

	uncapped := percentageCoupon(20, 0, 0)
	discount = svc.CalculateDiscount(uncapped, decimal.NewFromInt(200), now)
	if !discount.Decimal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("discount want 40 got %s", discount.Decimal)
	}
}

func TestCouponFixedDiscountNeverExceedsCartTotal(t *testing.T) {
	svc := NewCouponService(nil, nil)
	now := time.Now()

	coupon := &models.Coupon{
		ID:       2,
		Code:     "FIXED",
		Type:     constants.CouponTypeFixedAmount,
		Value:    models.NewMoneyFromFloat(50),
		IsActive: true,
	}
	discount := svc.CalculateDiscount(coupon, decimal.NewFromInt(30), now)
	if !discount.Decimal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("fixed discount want 30 got %s", discount.Decimal)
	}

	discount = svc.CalculateDiscount(coupon, decimal.NewFromInt(80), now)
	if !discount.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("fixed discount want 50 got %s", discount.Decimal)
	}
}

func TestCouponUnknownTypeYieldsZeroDiscount(t *testing.T) {
	svc := NewCouponService(nil, nil)
	coupon := &models.Coupon{
		ID:       3,
		Code:     "ODD",
		Type:     "buy_one_get_one",
		Value:    models.NewMoneyFromFloat(10),
		IsActive: true,
	}
	discount := svc.CalculateDiscount(coupon, decimal.NewFromInt(100), time.Now())
	if !discount.Decimal.IsZero() {
		t.Fatalf("unknown type want zero discount got %s", discount.Decimal)
	}
}

func TestCouponInvalidMeansZeroDiscount(t *testing.T) {
	svc := NewCouponService(nil, nil)
	coupon := percentageCoupon(10, 500, 0)
	discount := svc.CalculateDiscount(coupon, decimal.NewFromInt(100), time.Now())
	if !discount.Decimal.IsZero() {
		t.Fatalf("invalid coupon want zero discount got %s", discount.Decimal)
	}
}
