package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/repository"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders is the admin order listing with filters.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.OrderListFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
		City:     strings.TrimSpace(c.Query("city")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("user_id"); raw != "" {
		if uid, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(uid)
		}
	}

	orders, total, err := h.OrderRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrder returns one order with its items and schedule.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id, 0)
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

// ConfirmOrder moves a pending order to confirmed.
func (h *Handler) ConfirmOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.OrderService.Confirm(id); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrOrderNotPending):
			respondError(c, response.CodeBadRequest, "order is not pending", nil)
		default:
			respondError(c, response.CodeInternal, "failed to confirm order", err)
		}
		return
	}
	response.Success(c, gin.H{"confirmed": true})
}

// CancelOrder cancels a pending order on the customer's behalf.
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.OrderService.Cancel(id, 0); err != nil {
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
