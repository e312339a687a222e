package service

import (
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"
)

// WishlistService manages per-user saved products.
type WishlistService struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
}

// NewWishlistService creates a wishlist service.
func NewWishlistService(wishlist repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Add saves a product to the user's wishlist.
func (s *WishlistService) Add(userID, productID uint) error {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	existing, err := s.wishlist.Get(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrWishlistDuplicate
	}
	err = s.wishlist.Create(&models.WishlistItem{UserID: userID, ProductID: productID})
	if err != nil && repository.IsDuplicateKey(err) {
		return ErrWishlistDuplicate
	}
	return err
}

// Remove drops a product from the user's wishlist.
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlist.Delete(userID, productID)
}

// List returns the user's wishlist.
func (s *WishlistService) List(userID uint, page, pageSize int) ([]models.WishlistItem, int64, error) {
	return s.wishlist.ListByUser(userID, page, pageSize)
}
