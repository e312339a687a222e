package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderTestEnv struct {
	svc *OrderService
	db  *gorm.DB
}

func setupOrderTest(t *testing.T) *orderTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.ProductService{},
		&models.ProductServiceAssignment{},
		&models.ServiceProvider{},
		&models.ProviderWorkingHours{},
		&models.ProviderServiceLink{},
		&models.ServiceProviderSchedule{},
	)
	if err != nil {
		t.Fatalf("migrate order tables failed: %v", err)
	}

	coupons := NewCouponService(repository.NewCouponRepository(db), repository.NewCouponUsageRepository(db))
	booking := NewBookingService(repository.NewProviderRepository(db), repository.NewScheduleRepository(db), time.UTC)
	costs := NewServiceCostCalculator(repository.NewServiceRepository(db))
	svc := NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		coupons, booking, costs,
		nil, 30, time.UTC,
	)
	return &orderTestEnv{svc: svc, db: db}
}

func createCheckoutProduct(t *testing.T, db *gorm.DB, slug string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    1,
		Slug:          slug,
		PartNumber:    "PN-" + slug,
		Name:          "part " + slug,
		Price:         models.NewMoneyFromFloat(price),
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func addCartLine(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := setupOrderTest(t)
	_, err := env.svc.Checkout(context.Background(), CheckoutInput{UserID: 9001, City: "Leeds", Address: "1 Kirkstall Rd"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart want ErrCartEmpty got %v", err)
	}
}

func TestCheckoutReservesStockAndClearsCart(t *testing.T) {
	env := setupOrderTest(t)
	const userID = 9002
	product := createCheckoutProduct(t, env.db, "checkout-pcb", 120, 5)
	addCartLine(t, env.db, userID, product.ID, 2)

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:  userID,
		City:    "Leeds",
		Address: "1 Kirkstall Rd",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("order status want pending got %s", order.Status)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(240)) {
		t.Fatalf("total want 240 got %s", order.TotalAmount.Decimal)
	}
	if order.ExpiresAt == nil {
		t.Fatalf("pending order must carry an expiry")
	}

	var refreshed models.Product
	if err := env.db.First(&refreshed, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if refreshed.StockQuantity != 3 {
		t.Fatalf("stock want 3 got %d", refreshed.StockQuantity)
	}

	var cartCount int64
	if err := env.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart should be empty after checkout, got %d lines", cartCount)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	env := setupOrderTest(t)
	const userID = 9003
	product := createCheckoutProduct(t, env.db, "checkout-lowstock", 50, 1)
	addCartLine(t, env.db, userID, product.ID, 3)

	_, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:  userID,
		City:    "Leeds",
		Address: "1 Kirkstall Rd",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}

	var orderCount int64
	if err := env.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("failed checkout left %d orders behind", orderCount)
	}

	var refreshed models.Product
	if err := env.db.First(&refreshed, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if refreshed.StockQuantity != 1 {
		t.Fatalf("stock want untouched 1 got %d", refreshed.StockQuantity)
	}
}

func TestCheckoutRedeemsCoupon(t *testing.T) {
	env := setupOrderTest(t)
	const userID = 9004
	product := createCheckoutProduct(t, env.db, "checkout-coupon", 100, 10)
	addCartLine(t, env.db, userID, product.ID, 1)

	coupon := &models.Coupon{
		Code:       "ORDERTEST10",
		Type:       constants.CouponTypePercentage,
		Value:      models.NewMoneyFromFloat(10),
		UsageLimit: 1,
		IsActive:   true,
	}
	if err := env.db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:     userID,
		CouponCode: "ordertest10",
		City:       "Leeds",
		Address:    "1 Kirkstall Rd",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !order.DiscountAmount.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("discount want 10 got %s", order.DiscountAmount.Decimal)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("total want 90 got %s", order.TotalAmount.Decimal)
	}

	var refreshed models.Coupon
	if err := env.db.First(&refreshed, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshed.UsedCount != 1 {
		t.Fatalf("used count want 1 got %d", refreshed.UsedCount)
	}

	var usageCount int64
	if err := env.db.Model(&models.CouponUsage{}).Where("coupon_id = ?", coupon.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usageCount != 1 {
		t.Fatalf("usage rows want 1 got %d", usageCount)
	}
}

func TestCheckoutWithBookingClaimsSlot(t *testing.T) {
	env := setupOrderTest(t)
	env.svc.booking.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const userID = 9005
	const date = "2026-09-21"
	product := createCheckoutProduct(t, env.db, "checkout-booking", 150, 4)
	addCartLine(t, env.db, userID, product.ID, 1)

	install := &models.ProductService{
		Name:     "fit on site",
		Type:     constants.ServiceTypeInstallation,
		Price:    models.NewMoneyFromFloat(85),
		IsActive: true,
	}
	if err := env.db.Create(install).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	provider := createBookableProvider(t, env.db, "order-booking@test.example", date, "09:00", "17:00", 60)

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:  userID,
		City:    "Leeds",
		Address: "1 Kirkstall Rd",
		Booking: &BookingRequest{
			ProviderID: provider.ID,
			ServiceIDs: []uint{install.ID},
			Date:       date,
			StartTime:  "10:00",
		},
	})
	if err != nil {
		t.Fatalf("checkout with booking failed: %v", err)
	}
	if order.Schedule == nil {
		t.Fatalf("order should carry its schedule")
	}
	if !order.ServiceCost.Decimal.Equal(decimal.NewFromInt(85)) {
		t.Fatalf("service cost want 85 got %s", order.ServiceCost.Decimal)
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(235)) {
		t.Fatalf("total want 235 got %s", order.TotalAmount.Decimal)
	}

	var schedule models.ServiceProviderSchedule
	if err := env.db.Where("provider_id = ? AND service_date = ?", provider.ID, date).First(&schedule).Error; err != nil {
		t.Fatalf("load schedule failed: %v", err)
	}
	if schedule.OrderID == nil || *schedule.OrderID != order.ID {
		t.Fatalf("schedule not linked to order: %+v", schedule)
	}
}

func TestCancelRestoresStockCouponAndSlot(t *testing.T) {
	env := setupOrderTest(t)
	env.svc.booking.now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}
	const userID = 9006
	const date = "2026-09-22"
	product := createCheckoutProduct(t, env.db, "cancel-restock", 200, 3)
	addCartLine(t, env.db, userID, product.ID, 1)

	coupon := &models.Coupon{
		Code:     "CANCELBACK",
		Type:     constants.CouponTypeFixedAmount,
		Value:    models.NewMoneyFromFloat(20),
		IsActive: true,
	}
	if err := env.db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	install := &models.ProductService{
		Name:     "fit and test",
		Type:     constants.ServiceTypeInstallation,
		Price:    models.NewMoneyFromFloat(60),
		IsActive: true,
	}
	if err := env.db.Create(install).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	provider := createBookableProvider(t, env.db, "cancel-booking@test.example", date, "09:00", "17:00", 60)

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:     userID,
		CouponCode: "CANCELBACK",
		City:       "Leeds",
		Address:    "1 Kirkstall Rd",
		Booking: &BookingRequest{
			ProviderID: provider.ID,
			ServiceIDs: []uint{install.ID},
			Date:       date,
			StartTime:  "09:00",
		},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := env.svc.Cancel(order.ID, userID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var refreshedProduct models.Product
	if err := env.db.First(&refreshedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if refreshedProduct.StockQuantity != 3 {
		t.Fatalf("stock want restored 3 got %d", refreshedProduct.StockQuantity)
	}

	var refreshedCoupon models.Coupon
	if err := env.db.First(&refreshedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshedCoupon.UsedCount != 0 {
		t.Fatalf("coupon use want released got %d", refreshedCoupon.UsedCount)
	}

	var schedule models.ServiceProviderSchedule
	if err := env.db.Where("provider_id = ? AND service_date = ?", provider.ID, date).First(&schedule).Error; err != nil {
		t.Fatalf("load schedule failed: %v", err)
	}
	if schedule.Status != constants.ScheduleStatusCancelled {
		t.Fatalf("schedule status want cancelled got %s", schedule.Status)
	}

	var refreshedProvider models.ServiceProvider
	if err := env.db.First(&refreshedProvider, provider.ID).Error; err != nil {
		t.Fatalf("reload provider failed: %v", err)
	}
	if refreshedProvider.CurrentDailyOrders != 0 {
		t.Fatalf("provider capacity want released got %d", refreshedProvider.CurrentDailyOrders)
	}

	// Cancelled orders stay cancelled.
	if err := env.svc.Cancel(order.ID, userID); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("second cancel want ErrOrderNotCancelable got %v", err)
	}
}

func TestCancelExpiredSweepsPendingOrders(t *testing.T) {
	env := setupOrderTest(t)
	const userID = 9007
	product := createCheckoutProduct(t, env.db, "expire-sweep", 30, 10)
	addCartLine(t, env.db, userID, product.ID, 1)

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:  userID,
		City:    "Leeds",
		Address: "1 Kirkstall Rd",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// Push the expiry into the past.
	expired := time.Now().Add(-time.Hour)
	if err := env.db.Model(&models.Order{}).Where("id = ?", order.ID).
		UpdateColumn("expires_at", expired).Error; err != nil {
		t.Fatalf("backdate expiry failed: %v", err)
	}

	cancelled, err := env.svc.CancelExpired(10)
	if err != nil {
		t.Fatalf("cancel expired failed: %v", err)
	}
	if cancelled != 1 {
		t.Fatalf("swept orders want 1 got %d", cancelled)
	}

	var refreshed models.Order
	if err := env.db.First(&refreshed, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if refreshed.Status != constants.OrderStatusCancelled {
		t.Fatalf("order status want cancelled got %s", refreshed.Status)
	}
}

func TestConfirmOnlyPendingOrders(t *testing.T) {
	env := setupOrderTest(t)
	const userID = 9008
	product := createCheckoutProduct(t, env.db, "confirm-once", 45, 5)
	addCartLine(t, env.db, userID, product.ID, 1)

	order, err := env.svc.Checkout(context.Background(), CheckoutInput{
		UserID:  userID,
		City:    "Leeds",
		Address: "1 Kirkstall Rd",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if err := env.svc.Confirm(order.ID); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := env.svc.Confirm(order.ID); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("second confirm want ErrOrderNotPending got %v", err)
	}
	if err := env.svc.Cancel(order.ID, userID); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("cancel confirmed want ErrOrderNotCancelable got %v", err)
	}
}
