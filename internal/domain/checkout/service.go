// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/order"
	"golang.org/x/sync/singleflight"
)

// Service drives the checkout flow against the API: delivery rate
// quotes and order submission
type Service struct {
	api     *api.Client
	logger  *logrus.Logger
	flights singleflight.Group
}

// NewService creates a new checkout service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// rateQuoteRequest keys the quote by the destination and recipient
type rateQuoteRequest struct {
	City          string `json:"city"`
	State         string `json:"state"`
	Street        string `json:"street"`
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
}

// FetchRates requests delivery rate quotes for the given address. On
// any failure the fixed fallback triple is substituted so checkout is
// never blocked on a transient quote failure; live reports which case
// occurred so the caller can surface an informational notice.
func (s *Service) FetchRates(ctx context.Context, addr *address.Address) (options []DeliveryOption, live bool) {
	req := rateQuoteRequest{
		City:          addr.City,
		State:         addr.State,
		Street:        addr.Street,
		RecipientName: addr.FullName,
		Phone:         addr.Phone,
	}

	var quotes []RateQuote
	if err := s.api.Post(ctx, "/delivery/rates", &req, &quotes); err != nil {
		s.logger.WithError(err).Warn("Live delivery rates unavailable, using fallback options")
		return fallbackOptions(), false
	}
	if len(quotes) == 0 {
		s.logger.Warn("Rate service returned no quotes, using fallback options")
		return fallbackOptions(), false
	}

	return buildOptions(quotes), true
}

// LoadRates fetches rates for the flow's selected address and installs
// them, applying the pickup-first auto-selection
func (s *Service) LoadRates(ctx context.Context, f *Flow) error {
	addr := f.Address()
	if addr == nil {
		return ErrAddressRequired
	}

	options, live := s.FetchRates(ctx, addr)
	f.SetOptions(options, live)
	return nil
}

// CreateOrderRequest is the order-creation payload. It carries the
// client-selected delivery price, courier and vendor breakdown verbatim
// rather than re-deriving them server-side at submission time.
type CreateOrderRequest struct {
	ShippingAddress       order.AddressSnapshot `json:"shipping_address"`
	PaymentMethod         string                `json:"payment_method"`
	DeliveryType          string                `json:"delivery_type"`
	Notes                 string                `json:"notes,omitempty"`
	CouponCode            string                `json:"coupon_code,omitempty"`
	SelectedDeliveryPrice int64                 `json:"selected_delivery_price"`
	SelectedCourier       string                `json:"selected_courier,omitempty"`
	VendorBreakdown       []VendorCharge        `json:"vendor_breakdown,omitempty"`
}

// BuildOrderRequest assembles the creation payload from the flow's
// current selections. The defensive re-checks mirror the step guards:
// even from the payment step, a missing address or option aborts.
func BuildOrderRequest(f *Flow) (*CreateOrderRequest, error) {
	addr := f.Address()
	if addr == nil {
		return nil, ErrAddressRequired
	}
	opt := f.SelectedOption()
	if opt == nil {
		return nil, ErrDeliveryRequired
	}
	if f.Payment() == "" {
		return nil, ErrPaymentRequired
	}

	return &CreateOrderRequest{
		ShippingAddress: order.AddressSnapshot{
			FullName:   addr.FullName,
			Phone:      addr.Phone,
			Street:     addr.Street,
			City:       addr.City,
			State:      addr.State,
			Country:    addr.Country,
			PostalCode: addr.PostalCode,
		},
		PaymentMethod:         string(f.Payment()),
		DeliveryType:          string(opt.Type),
		Notes:                 f.Notes(),
		CouponCode:            f.Cart().CouponCode,
		SelectedDeliveryPrice: opt.Price,
		SelectedCourier:       opt.Courier,
		VendorBreakdown:       opt.VendorBreakdown,
	}, nil
}

// Submit builds the order payload and creates the order. On failure the
// flow state is left intact so the user can retry without re-entering
// earlier steps; the flow's idempotency key makes the retry safe.
func (s *Service) Submit(ctx context.Context, f *Flow) (*order.Confirmation, error) {
	payload, err := BuildOrderRequest(f)
	if err != nil {
		return nil, err
	}

	result, err, _ := s.flights.Do("submit:"+f.IdempotencyKey(), func() (interface{}, error) {
		var conf order.Confirmation
		if err := s.api.PostIdempotent(ctx, "/orders", f.IdempotencyKey(), payload, &conf); err != nil {
			return nil, fmt.Errorf("order submission failed: %w", err)
		}
		return &conf, nil
	})
	if err != nil {
		return nil, err
	}

	conf := result.(*order.Confirmation)
	if conf.Order != nil {
		s.logger.WithFields(logrus.Fields{
			"order_number":   conf.Order.OrderNumber,
			"payment_method": payload.PaymentMethod,
			"total":          conf.Order.TotalAmount,
		}).Info("Order placed")
	}
	return conf, nil
}
