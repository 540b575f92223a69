// internal/domain/review/service.go
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
)

// Review is a product review
type Review struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Verified  bool      `json:"verified"` // Reviewer bought the product
	CreatedAt time.Time `json:"created_at"`
}

// Service wraps the review endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new review service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// CreateReviewRequest represents a new review
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	OrderID   uint   `json:"order_id,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// ListForProduct retrieves the reviews for a product
func (s *Service) ListForProduct(ctx context.Context, productID uint) ([]Review, error) {
	query := map[string]string{"product_id": fmt.Sprintf("%d", productID)}
	var reviews []Review
	if err := s.api.Get(ctx, "/reviews", query, &reviews); err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// Create submits a review. Ratings outside 1-5 are rejected before the
// network call.
func (s *Service) Create(ctx context.Context, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	var rev Review
	if err := s.api.Post(ctx, "/reviews", req, &rev); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": req.ProductID,
		"rating":     req.Rating,
	}).Info("Review submitted")
	return &rev, nil
}
