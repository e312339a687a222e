package service

import (
	"context"
	"strings"
	"time"

	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderTasks enqueues order follow-up work; a nil implementation is allowed
// when the queue is disabled.
type OrderTasks interface {
	EnqueueOrderConfirmation(orderID uint) error
	EnqueueOrderTimeoutCancel(orderID uint, delay time.Duration) error
	EnqueueBookingReminder(scheduleID uint, processAt time.Time) error
}

// OrderService runs checkout and the order lifecycle.
type OrderService struct {
	db       *gorm.DB
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	coupons  *CouponService
	booking  *BookingService
	costs    *ServiceCostCalculator
	tasks    OrderTasks

	timeout time.Duration
	loc     *time.Location
	now     func() time.Time
}

// NewOrderService creates an order service.
func NewOrderService(
	db *gorm.DB,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	coupons *CouponService,
	booking *BookingService,
	costs *ServiceCostCalculator,
	tasks OrderTasks,
	timeoutMinutes int,
	loc *time.Location,
) *OrderService {
	if timeoutMinutes <= 0 {
		timeoutMinutes = constants.DefaultOrderTimeoutMinutes
	}
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		db:       db,
		orders:   orders,
		products: products,
		carts:    carts,
		coupons:  coupons,
		booking:  booking,
		costs:    costs,
		tasks:    tasks,
		timeout:  time.Duration(timeoutMinutes) * time.Minute,
		loc:      loc,
		now:      time.Now,
	}
}

// BookingRequest is the optional service appointment attached to a checkout.
type BookingRequest struct {
	ProviderID uint   `json:"provider_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	Date       string `json:"date" binding:"required"`       // "YYYY-MM-DD"
	StartTime  string `json:"start_time" binding:"required"` // "HH:MM"
}

// CheckoutInput is everything a checkout needs beyond the cart itself.
type CheckoutInput struct {
	UserID     uint
	CouponCode string
	City       string
	Area       string
	Address    string
	Notes      string
	Booking    *BookingRequest
}

// Checkout turns the user's cart into a pending order in one transaction:
// stock is reserved, the coupon redeemed, and the booking slot claimed
// together or not at all.
func (s *OrderService) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	cart, err := s.cartLines(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, ErrCartEmpty
	}
	subtotal := cart.Subtotal.Decimal

	// Validate the coupon before the transaction; redemption inside it.
	var coupon *models.Coupon
	var discount models.Money
	now := s.now()
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		coupon, discount, err = s.coupons.Apply(code, subtotal, now)
		if err != nil {
			return nil, err
		}
	} else {
		discount = models.NewMoneyFromDecimal(decimal.Zero)
	}

	serviceCost := models.NewMoneyFromDecimal(decimal.Zero)
	var costBreakdown *ServiceCostBreakdown
	if input.Booking != nil {
		productIDs := make([]uint, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			productIDs = append(productIDs, line.Item.ProductID)
		}
		costBreakdown, err = s.costs.Calculate(input.Booking.ServiceIDs, productIDs)
		if err != nil {
			return nil, err
		}
		serviceCost = costBreakdown.Total
	}

	total := subtotal.Sub(discount.Decimal).Add(serviceCost.Decimal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	expiresAt := now.Add(s.timeout)
	order := &models.Order{
		OrderNo:        newOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		Subtotal:       models.NewMoneyFromDecimal(subtotal),
		DiscountAmount: discount,
		ServiceCost:    serviceCost,
		TotalAmount:    models.NewMoneyFromDecimal(total),
		City:           input.City,
		Area:           input.Area,
		Address:        input.Address,
		Notes:          input.Notes,
		ExpiresAt:      &expiresAt,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
	}
	for _, line := range cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:  line.Item.ProductID,
			Name:       line.Item.Product.Name,
			PartNumber: line.Item.Product.PartNumber,
			UnitPrice:  line.Item.Product.Price,
			Quantity:   line.Item.Quantity,
			TotalPrice: line.LineTotal,
		})
	}
	if costBreakdown != nil {
		for _, costLine := range costBreakdown.Lines {
			order.Items = append(order.Items, models.OrderItem{
				ServiceID:  costLine.ServiceID,
				ProductID:  costLine.ProductID,
				Name:       costLine.ServiceName,
				UnitPrice:  costLine.Price,
				Quantity:   1,
				TotalPrice: costLine.Price,
			})
		}
	}

	var schedule *models.ServiceProviderSchedule
	err = s.db.Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		for _, line := range cart.Lines {
			ok, err := products.AdjustStock(line.Item.ProductID, -line.Item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientStock
			}
		}

		if err := s.orders.WithTx(tx).Create(order); err != nil {
			return err
		}

		if coupon != nil {
			if err := s.coupons.Redeem(tx, coupon, input.UserID, order.ID, discount); err != nil {
				return err
			}
		}

		if input.Booking != nil {
			schedule, err = s.booking.BookSlot(tx, input.Booking.ProviderID, &order.ID,
				input.Booking.Date, input.Booking.StartTime)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Schedule = schedule

	if err := s.carts.Clear(input.UserID); err != nil {
		logger.Warnw("cart_clear_failed", "user_id", input.UserID, "error", err)
	}
	s.enqueueFollowups(order, schedule)
	return order, nil
}

// enqueueFollowups schedules the confirmation email, the timeout sweep and,
// for bookings, the reminder. Queue failures only log; the order stands.
func (s *OrderService) enqueueFollowups(order *models.Order, schedule *models.ServiceProviderSchedule) {
	if s.tasks == nil {
		return
	}
	if err := s.tasks.EnqueueOrderConfirmation(order.ID); err != nil {
		logger.Warnw("order_confirmation_enqueue_failed", "order_id", order.ID, "error", err)
	}
	if err := s.tasks.EnqueueOrderTimeoutCancel(order.ID, s.timeout); err != nil {
		logger.Warnw("order_timeout_enqueue_failed", "order_id", order.ID, "error", err)
	}
	if schedule != nil {
		if visitAt, err := parseServiceDate(schedule.ServiceDate, s.loc); err == nil {
			if start, err := parseClock(schedule.StartTime); err == nil {
				remindAt := visitAt.Add(time.Duration(start)*time.Minute - 24*time.Hour)
				if remindAt.After(s.now()) {
					if err := s.tasks.EnqueueBookingReminder(schedule.ID, remindAt); err != nil {
						logger.Warnw("booking_reminder_enqueue_failed", "schedule_id", schedule.ID, "error", err)
					}
				}
			}
		}
	}
}

// Get fetches an order, scoped to its owner when userID is non-zero.
func (s *OrderService) Get(id, userID uint) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil || (userID > 0 && order.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo fetches an order by number, scoped to its owner.
func (s *OrderService) GetByOrderNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orders.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || (userID > 0 && order.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForUser lists a user's orders.
func (s *OrderService) ListForUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orders.List(repository.OrderListFilter{
		UserID:   userID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// Confirm moves a pending order to confirmed.
func (s *OrderService) Confirm(id uint) error {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	ok, err := s.orders.UpdateStatus(id, constants.OrderStatusPending, constants.OrderStatusConfirmed)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotPending
	}
	now := s.now()
	order.ConfirmedAt = &now
	order.Status = constants.OrderStatusConfirmed
	return s.orders.Update(order)
}

// Cancel cancels a pending order, releasing stock, coupon use and any booked
// slot together.
func (s *OrderService) Cancel(id, userID uint) error {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil || (userID > 0 && order.UserID != userID) {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return ErrOrderNotCancelable
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.orders.WithTx(tx).UpdateStatus(id, constants.OrderStatusPending, constants.OrderStatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrOrderNotCancelable
		}

		products := s.products.WithTx(tx)
		for _, item := range order.Items {
			if item.ProductID == 0 || item.ServiceID != 0 {
				continue
			}
			if _, err := products.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if order.CouponID != nil {
			if err := s.coupons.Release(tx, *order.CouponID); err != nil {
				return err
			}
		}

		if order.Schedule != nil {
			if err := s.booking.CancelBooking(tx, order.Schedule.ID); err != nil {
				return err
			}
		}

		now := s.now()
		return tx.Model(&models.Order{}).
			Where("id = ?", id).
			UpdateColumn("cancelled_at", now).Error
	})
}

// CancelExpired sweeps pending orders past their confirmation window.
func (s *OrderService) CancelExpired(limit int) (int, error) {
	expired, err := s.orders.ListExpiredPending(s.now(), limit)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, order := range expired {
		if err := s.Cancel(order.ID, 0); err != nil {
			logger.Warnw("order_expire_cancel_failed", "order_id", order.ID, "error", err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

// cartLines loads the priced cart for checkout.
func (s *OrderService) cartLines(userID uint) (*CartDetail, error) {
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	detail := &CartDetail{Lines: []CartLine{}}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			return nil, ErrProductInactive
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		detail.Lines = append(detail.Lines, CartLine{
			Item:      item,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})
		subtotal = subtotal.Add(lineTotal)
	}
	detail.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return detail, nil
}

// newOrderNo derives an order number from a uuid.
func newOrderNo() string {
	return "HS" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:22]
}
