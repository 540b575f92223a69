// internal/domain/affiliate/service.go
package affiliate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
)

// Dashboard is the affiliate overview
type Dashboard struct {
	AffiliateID     string  `json:"affiliate_id"`
	Active          bool    `json:"active"`
	ReferralCode    string  `json:"referral_code,omitempty"`
	TotalReferrals  int     `json:"total_referrals"`
	TotalClicks     int     `json:"total_clicks"`
	ConversionRate  float64 `json:"conversion_rate"`
	PendingEarnings int64   `json:"pending_earnings"`
	PaidEarnings    int64   `json:"paid_earnings"`
}

// Earning is one affiliate commission entry
type Earning struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ReferralLink is a generated referral URL
type ReferralLink struct {
	LinkID string `json:"link_id"`
	URL    string `json:"url"`
}

// Periods accepted by the earnings listing
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Service wraps the affiliate program endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new affiliate service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// Dashboard retrieves the affiliate overview
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if err := s.api.Get(ctx, "/affiliate/dashboard", nil, &dash); err != nil {
		return nil, fmt.Errorf("failed to retrieve affiliate dashboard: %w", err)
	}
	return &dash, nil
}

// Earnings retrieves commissions for a period (week, month, year, all)
func (s *Service) Earnings(ctx context.Context, period string) ([]Earning, error) {
	query := map[string]string{}
	if period != "" {
		query["period"] = period
	}

	var earnings []Earning
	if err := s.api.Get(ctx, "/affiliate/earnings", query, &earnings); err != nil {
		return nil, fmt.Errorf("failed to retrieve affiliate earnings: %w", err)
	}
	return earnings, nil
}

// Activate enrolls the user into the affiliate program
func (s *Service) Activate(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if err := s.api.Post(ctx, "/affiliate/activate", nil, &dash); err != nil {
		return nil, fmt.Errorf("failed to activate affiliate account: %w", err)
	}

	s.logger.WithField("affiliate_id", dash.AffiliateID).Info("Affiliate account activated")
	return &dash, nil
}

// CreateLink generates a referral link for a channel
func (s *Service) CreateLink(ctx context.Context, channel string) (*ReferralLink, error) {
	body := map[string]string{"channel": channel}
	var link ReferralLink
	if err := s.api.Post(ctx, "/affiliate/links", body, &link); err != nil {
		return nil, fmt.Errorf("failed to create referral link: %w", err)
	}
	return &link, nil
}
