// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
)

// ErrSandboxOnly is returned when a test-support affordance is invoked
// outside sandbox mode
var ErrSandboxOnly = errors.New("order: status simulation is only available in sandbox mode")

// simulatedStatuses are the synthetic courier statuses the sandbox
// webhook refresh accepts
var simulatedStatuses = map[Status]bool{
	StatusConfirmed: true,
	StatusPickedUp:  true,
	StatusInTransit: true,
	StatusCompleted: true,
}

// settleDelay is how long to wait after a simulated webhook before
// refetching, giving the server time to apply the transition
const settleDelay = 2 * time.Second

// Service wraps the order and tracking endpoints
type Service struct {
	api    *api.Client
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(client *api.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		config: cfg,
		logger: logger,
	}
}

// List retrieves the user's orders, newest first
func (s *Service) List(ctx context.Context, page, limit int) ([]Order, error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = strconv.Itoa(page)
	}
	if limit > 0 {
		query["limit"] = strconv.Itoa(limit)
	}

	var orders []Order
	if err := s.api.Get(ctx, "/orders", query, &orders); err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// Get retrieves a single order
func (s *Service) Get(ctx context.Context, orderID uint) (*Order, error) {
	var ord Order
	if err := s.api.Get(ctx, fmt.Sprintf("/orders/%d", orderID), nil, &ord); err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &ord, nil
}

// Tracking retrieves the shipment state for an order
func (s *Service) Tracking(ctx context.Context, orderID uint) (*Tracking, error) {
	var tracking Tracking
	if err := s.api.Get(ctx, fmt.Sprintf("/orders/%d/tracking", orderID), nil, &tracking); err != nil {
		return nil, fmt.Errorf("failed to retrieve tracking: %w", err)
	}
	return &tracking, nil
}

// SimulateStatus emulates an inbound courier webhook for the order,
// waits for the transition to settle, then refetches the order. This is
// a test-support affordance and is refused outside sandbox mode.
func (s *Service) SimulateStatus(ctx context.Context, orderID uint, status Status) (*Order, error) {
	if !s.config.IsSandbox() {
		return nil, ErrSandboxOnly
	}
	if !simulatedStatuses[status] {
		return nil, fmt.Errorf("unsupported simulated status %q", status)
	}

	body := map[string]string{"status": string(status)}
	if err := s.api.Post(ctx, fmt.Sprintf("/webhooks/refresh-status/%d", orderID), body, nil); err != nil {
		return nil, fmt.Errorf("status simulation failed: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   status,
	}).Info("Simulated courier status, waiting for transition to settle")

	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.Get(ctx, orderID)
}
