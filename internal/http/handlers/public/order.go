package public

import (
	"errors"
	"strings"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest turns the cart into an order.
type CheckoutRequest struct {
	CouponCode string                  `json:"coupon_code"`
	City       string                  `json:"city" binding:"required"`
	Area       string                  `json:"area"`
	Address    string                  `json:"address" binding:"required"`
	Notes      string                  `json:"notes"`
	Booking    *service.BookingRequest `json:"booking"`
}

// Checkout creates a pending order from the cart, optionally redeeming a
// coupon and booking a service visit.
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, err := h.OrderService.Checkout(c.Request.Context(), service.CheckoutInput{
		UserID:     uid,
		CouponCode: strings.TrimSpace(req.CouponCode),
		City:       strings.TrimSpace(req.City),
		Area:       strings.TrimSpace(req.Area),
		Address:    strings.TrimSpace(req.Address),
		Notes:      req.Notes,
		Booking:    req.Booking,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders returns the signed-in user's orders.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	status := strings.TrimSpace(c.Query("status"))

	orders, total, err := h.OrderService.ListForUser(uid, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one of the user's orders by order number.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := strings.TrimSpace(c.Param("order_no"))
	if orderNo == "" {
		respondError(c, response.CodeBadRequest, "order number is required", nil)
		return
	}
	order, err := h.OrderService.GetByOrderNo(orderNo, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, order)
}

// CancelOrder cancels one of the user's pending orders.
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}
	if err := h.OrderService.Cancel(id, uid); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrOrderNotCancelable):
			respondError(c, response.CodeBadRequest, "order can no longer be cancelled", nil)
		default:
			respondError(c, response.CodeInternal, "failed to cancel order", err)
		}
		return
	}
	response.Success(c, gin.H{"cancelled": true})
}
