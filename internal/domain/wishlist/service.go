// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// Item is a wishlist entry
type Item struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image,omitempty"`
	InStock   bool      `json:"in_stock"`
	AddedAt   time.Time `json:"added_at"`
}

// Service wraps the wishlist endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new wishlist service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// List retrieves the wishlist. A 404 means no wishlist exists yet and
// is treated as empty, same as the cart convention.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := s.api.Get(ctx, "/wishlist", nil, &items); err != nil {
		if api.IsNotFound(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}
	return items, nil
}

// Add adds a product to the wishlist
func (s *Service) Add(ctx context.Context, productID uint) ([]Item, error) {
	body := map[string]uint{"product_id": productID}
	var items []Item
	if err := s.api.Post(ctx, "/wishlist", body, &items); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return items, nil
}

// Remove removes a wishlist entry
func (s *Service) Remove(ctx context.Context, itemID uint) ([]Item, error) {
	var items []Item
	if err := s.api.Delete(ctx, fmt.Sprintf("/wishlist/%d", itemID), &items); err != nil {
		return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return items, nil
}

// MoveToCart moves a wishlist entry into the cart: the server adds the
// product to the cart and drops the wishlist entry in one call, and the
// fresh cart snapshot comes back
func (s *Service) MoveToCart(ctx context.Context, itemID uint) (*cart.Cart, error) {
	var c cart.Cart
	if err := s.api.Post(ctx, fmt.Sprintf("/wishlist/%d/move-to-cart", itemID), nil, &c); err != nil {
		return nil, fmt.Errorf("failed to move wishlist item to cart: %w", err)
	}

	s.logger.WithField("item_id", itemID).Info("Moved wishlist item to cart")
	return &c, nil
}
