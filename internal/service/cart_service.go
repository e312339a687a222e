package service

import (
	"context"
	"fmt"
	"time"

	"github.com/heatspares-next/internal/cache"
	"github.com/heatspares-next/internal/constants"
	"github.com/heatspares-next/internal/models"
	"github.com/heatspares-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService manages per-user carts.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository

	countTTL time.Duration
}

// NewCartService creates a cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, countTTL time.Duration) *CartService {
	if countTTL <= 0 {
		countTTL = 30 * time.Second
	}
	return &CartService{carts: carts, products: products, countTTL: countTTL}
}

// CartLine is one cart row with its live price.
type CartLine struct {
	Item      models.CartItem `json:"item"`
	LineTotal models.Money    `json:"line_total"`
}

// CartDetail is a priced cart listing.
type CartDetail struct {
	Lines    []CartLine   `json:"lines"`
	Subtotal models.Money `json:"subtotal"`
}

// AddItem upserts a product line into the user's cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	existing, err := s.carts.GetItem(userID, productID)
	if err != nil {
		return err
	}
	total := quantity
	if existing != nil {
		total += existing.Quantity
	}
	if product.StockQuantity < total {
		return ErrInsufficientStock
	}

	if existing != nil {
		err = s.carts.UpdateQuantity(existing.ID, total)
	} else {
		err = s.carts.Create(&models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	if err != nil {
		return err
	}
	s.invalidateCount(ctx, userID)
	return nil
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	item, err := s.carts.GetItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrProductNotFound
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}
	if product.StockQuantity < quantity {
		return ErrInsufficientStock
	}
	return s.carts.UpdateQuantity(item.ID, quantity)
}

// RemoveItem drops a product line from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if err := s.carts.Delete(userID, productID); err != nil {
		return err
	}
	s.invalidateCount(ctx, userID)
	return nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.carts.Clear(userID); err != nil {
		return err
	}
	s.invalidateCount(ctx, userID)
	return nil
}

// Detail prices the user's cart at live prices, pruning lines whose product
// went inactive or away.
func (s *CartService) Detail(userID uint) (*CartDetail, error) {
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	detail := &CartDetail{Lines: []CartLine{}}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			_ = s.carts.Delete(userID, item.ProductID)
			continue
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

// Count returns the cached cart badge count.
func (s *CartService) Count(ctx context.Context, userID uint) (int64, error) {
	return cache.RememberJSON(ctx, s.countKey(userID), s.countTTL, func() (int64, error) {
		return s.carts.CountByUser(userID)
	})
}

func (s *CartService) countKey(userID uint) string {
	return fmt.Sprintf("%s%d", constants.CacheKeyCartCountPrefix, userID)
}

func (s *CartService) invalidateCount(ctx context.Context, userID uint) {
	_ = cache.Del(ctx, s.countKey(userID))
}
