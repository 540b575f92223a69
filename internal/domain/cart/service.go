// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"golang.org/x/sync/singleflight"
)

// Service wraps the cart endpoints. Every mutation returns the server's
// fresh cart snapshot; the client state is always replaced, never
// patched locally.
type Service struct {
	api     *api.Client
	logger  *logrus.Logger
	flights singleflight.Group
}

// NewService creates a new cart service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

// Get fetches the authoritative cart. A 404 means the user has no cart
// yet and is silently treated as empty.
func (s *Service) Get(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := s.api.Get(ctx, "/cart", nil, &cart); err != nil {
		if api.IsNotFound(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return &cart, nil
}

// Add adds a product to the cart
func (s *Service) Add(ctx context.Context, req *AddItemRequest) (*Cart, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	return s.mutate(fmt.Sprintf("add:%d", req.ProductID), func() (*Cart, error) {
		var cart Cart
		if err := s.api.Post(ctx, "/cart/add", req, &cart); err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}
		return &cart, nil
	})
}

// UpdateQuantity sets the quantity of a cart line. Quantities below 1
// are rejected client-side; removal is a separate, explicit action.
func (s *Service) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	return s.mutate(fmt.Sprintf("update:%d", itemID), func() (*Cart, error) {
		body := map[string]int{"quantity": quantity}
		var cart Cart
		if err := s.api.Put(ctx, fmt.Sprintf("/cart/items/%d", itemID), body, &cart); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return &cart, nil
	})
}

// Remove deletes a cart line
func (s *Service) Remove(ctx context.Context, itemID uint) (*Cart, error) {
	return s.mutate(fmt.Sprintf("remove:%d", itemID), func() (*Cart, error) {
		var cart Cart
		if err := s.api.Delete(ctx, fmt.Sprintf("/cart/items/%d", itemID), &cart); err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
		return &cart, nil
	})
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context) (*Cart, error) {
	return s.mutate("clear", func() (*Cart, error) {
		if err := s.api.Delete(ctx, "/cart", nil); err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		return Empty(), nil
	})
}

// ApplyCoupon applies a coupon code; the discount itself is computed
// server-side and comes back in the fresh snapshot
func (s *Service) ApplyCoupon(ctx context.Context, code string) (*Cart, error) {
	if code == "" {
		return nil, fmt.Errorf("coupon code is required")
	}

	return s.mutate("coupon:"+code, func() (*Cart, error) {
		body := map[string]string{"code": code}
		var cart Cart
		if err := s.api.Post(ctx, "/cart/coupon/apply", body, &cart); err != nil {
			return nil, fmt.Errorf("failed to apply coupon: %w", err)
		}
		s.logger.WithFields(logrus.Fields{
			"coupon":   code,
			"discount": cart.Discount,
		}).Info("Coupon applied")
		return &cart, nil
	})
}

// RemoveCoupon removes the applied coupon
func (s *Service) RemoveCoupon(ctx context.Context) (*Cart, error) {
	return s.mutate("coupon:remove", func() (*Cart, error) {
		var cart Cart
		if err := s.api.Delete(ctx, "/cart/coupon", &cart); err != nil {
			return nil, fmt.Errorf("failed to remove coupon: %w", err)
		}
		return &cart, nil
	})
}

// mutate funnels a mutation through a per-action single-flight group so
// a double-tapped action fires one request, not two
func (s *Service) mutate(key string, fn func() (*Cart, error)) (*Cart, error) {
	result, err, _ := s.flights.Do(key, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return result.(*Cart), nil
}
