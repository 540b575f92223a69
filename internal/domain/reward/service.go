// internal/domain/reward/service.go
package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
)

// Summary is the user's reward points balance
type Summary struct {
	Balance       int64 `json:"balance"`
	LifetimePoint int64 `json:"lifetime_points"`
	PendingPoints int64 `json:"pending_points"`
}

// Entry is one reward ledger line
type Entry struct {
	ID          uint      `json:"id"`
	Points      int64     `json:"points"` // Negative for redemptions
	Description string    `json:"description,omitempty"`
	OrderID     uint      `json:"order_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Redemption is the result of redeeming points
type Redemption struct {
	Points     int64  `json:"points"`
	Value      int64  `json:"value"` // Credit granted
	CouponCode string `json:"coupon_code,omitempty"`
	Balance    int64  `json:"balance"`
}

// Service wraps the reward program endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new reward service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// Summary retrieves the points balance
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := s.api.Get(ctx, "/rewards", nil, &summary); err != nil {
		return nil, fmt.Errorf("failed to retrieve rewards summary: %w", err)
	}
	return &summary, nil
}

// History retrieves the reward ledger
func (s *Service) History(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.api.Get(ctx, "/rewards/history", nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to retrieve rewards history: %w", err)
	}
	return entries, nil
}

// Redeem converts points into store credit
func (s *Service) Redeem(ctx context.Context, points int64) (*Redemption, error) {
	if points <= 0 {
		return nil, fmt.Errorf("points to redeem must be positive")
	}

	body := map[string]int64{"points": points}
	var redemption Redemption
	if err := s.api.Post(ctx, "/rewards/redeem", body, &redemption); err != nil {
		return nil, fmt.Errorf("failed to redeem points: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"points": points,
		"value":  redemption.Value,
	}).Info("Points redeemed")
	return &redemption, nil
}
