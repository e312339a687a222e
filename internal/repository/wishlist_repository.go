package repository

import (
	"errors"

	"github.com/heatspares-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data-access interface.
type WishlistRepository interface {
	Get(userID, productID uint) (*models.WishlistItem, error)
	ListByUser(userID uint, page, pageSize int) ([]models.WishlistItem, int64, error)
	Create(item *models.WishlistItem) error
	Delete(userID, productID uint) error
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// Get fetches a user's wishlist entry for a product.
func (r *GormWishlistRepository) Get(userID, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByUser lists a user's wishlist, newest first.
func (r *GormWishlistRepository) ListByUser(userID uint, page, pageSize int) ([]models.WishlistItem, int64, error) {
	query := r.db.Model(&models.WishlistItem{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.WishlistItem
	err := applyPagination(query, page, pageSize).
		Preload("Product").Preload("Product.Brand").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a wishlist entry.
func (r *GormWishlistRepository) Create(item *models.WishlistItem) error {
	return r.db.Create(item).Error
}

// Delete removes a wishlist entry.
func (r *GormWishlistRepository) Delete(userID, productID uint) error {
	return r.db.
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}
