package public

import (
	"errors"

	handlershared "github.com/heatspares-next/internal/http/handlers/shared"
	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListWishlist returns the user's saved products.
func (h *Handler) ListWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	items, total, err := h.WishlistService.List(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load wishlist", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"items": items}, response.NewPagination(page, pageSize, total))
}

// AddWishlistItem saves a product to the wishlist.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeBadRequest, "product not found", nil)
		case errors.Is(err, service.ErrWishlistDuplicate):
			respondError(c, response.CodeConflict, "product already in wishlist", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update wishlist", err)
		}
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem drops a product from the wishlist.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return
	}
	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondError(c, response.CodeInternal, "failed to update wishlist", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}
