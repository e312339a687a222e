package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponRepositoryTest(t *testing.T) (*GormCouponRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate coupon failed: %v", err)
	}
	return NewCouponRepository(db), db
}

func createTestCoupon(t *testing.T, repo *GormCouponRepository, code string, usageLimit, usedCount int) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:       code,
		Type:       constants.CouponTypePercentage,
		Value:      models.NewMoneyFromFloat(10),
		UsageLimit: usageLimit,
		UsedCount:  usedCount,
		IsActive:   true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestRedeemWithinLimitStopsAtTheLimit(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	coupon := createTestCoupon(t, repo, "REDEEM-LIMIT", 2, 1)

	ok, err := repo.RedeemWithinLimit(coupon.ID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !ok {
		t.Fatalf("redeem under limit should succeed")
	}

	ok, err = repo.RedeemWithinLimit(coupon.ID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if ok {
		t.Fatalf("redeem at limit should be refused")
	}

	reloaded, err := repo.GetByID(coupon.ID)
	if err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", reloaded.UsedCount)
	}
}

func TestRedeemWithZeroLimitIsUnlimited(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	coupon := createTestCoupon(t, repo, "REDEEM-UNLIMITED", 0, 999)

	ok, err := repo.RedeemWithinLimit(coupon.ID)
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if !ok {
		t.Fatalf("unlimited coupon should always redeem")
	}
}

func TestReleaseUsageFlooredAtZero(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	coupon := createTestCoupon(t, repo, "RELEASE-FLOOR", 5, 1)

	if err := repo.ReleaseUsage(coupon.ID); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := repo.ReleaseUsage(coupon.ID); err != nil {
		t.Fatalf("release at zero failed: %v", err)
	}

	reloaded, err := repo.GetByID(coupon.ID)
	if err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("used count want 0 got %d", reloaded.UsedCount)
	}
}

func TestDeleteFreesCouponCode(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	coupon := createTestCoupon(t, repo, "REUSE-CODE", 0, 0)

	if err := repo.Delete(coupon.ID); err != nil {
		t.Fatalf("delete coupon failed: %v", err)
	}

	recreated := createTestCoupon(t, repo, "REUSE-CODE", 0, 0)
	if recreated.ID == coupon.ID {
		t.Fatalf("recreated coupon should be a fresh row")
	}
}

func TestCouponCodeUniqueIndex(t *testing.T) {
	repo, _ := setupCouponRepositoryTest(t)
	createTestCoupon(t, repo, "UNIQUE-CODE", 0, 0)

	err := repo.Create(&models.Coupon{
		Code:     "UNIQUE-CODE",
		Type:     constants.CouponTypeFixedAmount,
		Value:    models.NewMoneyFromFloat(5),
		IsActive: true,
	})
	if !IsDuplicateKey(err) {
		t.Fatalf("duplicate code want duplicate-key error got %v", err)
	}
}
