// internal/domain/address/service.go
package address

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
)

// Service wraps the address endpoints plus the reverse-geocoding
// autofill helper
type Service struct {
	api      *api.Client
	geocoder *resty.Client
	logger   *logrus.Logger
}

// NewService creates a new address service
func NewService(client *api.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	geocoder := resty.New().
		SetBaseURL(cfg.Geocoder.BaseURL).
		SetTimeout(cfg.Geocoder.Timeout).
		SetHeader("User-Agent", cfg.API.UserAgent)

	return &Service{
		api:      client,
		geocoder: geocoder,
		logger:   logger,
	}
}

// CreateAddressRequest represents address creation data. The validate
// tags are the client-side gate: nothing is sent until every field
// passes.
type CreateAddressRequest struct {
	FullName   string `json:"full_name" validate:"required,full_name"`
	Phone      string `json:"phone" validate:"required,ng_phone"`
	Street     string `json:"street" validate:"required,trimmin=5"`
	City       string `json:"city" validate:"required,trimmin=2"`
	State      string `json:"state" validate:"required,trimmin=2"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Label      string `json:"label,omitempty" validate:"omitempty,oneof=Home Office Other"`
	IsDefault  bool   `json:"is_default,omitempty"`
}

// List retrieves the user's saved addresses, default first
func (s *Service) List(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := s.api.Get(ctx, "/addresses", nil, &addresses); err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return addresses, nil
}

// Get retrieves a single address
func (s *Service) Get(ctx context.Context, addressID uint) (*Address, error) {
	var address Address
	if err := s.api.Get(ctx, fmt.Sprintf("/addresses/%d", addressID), nil, &address); err != nil {
		return nil, fmt.Errorf("failed to retrieve address: %w", err)
	}
	return &address, nil
}

// Create validates locally, normalizes the phone to +234 form, then
// creates the address. A *ValidationError is returned before any
// network call when a field fails.
func (s *Service) Create(ctx context.Context, req *CreateAddressRequest) (*Address, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	payload := *req
	payload.Phone = NormalizePhone(req.Phone)

	var address Address
	if err := s.api.Post(ctx, "/addresses", &payload, &address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	s.logger.WithField("address_id", address.ID).Info("Address created")
	return &address, nil
}

// Update validates and updates an existing address
func (s *Service) Update(ctx context.Context, addressID uint, req *CreateAddressRequest) (*Address, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	payload := *req
	payload.Phone = NormalizePhone(req.Phone)

	var address Address
	if err := s.api.Put(ctx, fmt.Sprintf("/addresses/%d", addressID), &payload, &address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &address, nil
}

// Delete removes an address
func (s *Service) Delete(ctx context.Context, addressID uint) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/addresses/%d", addressID), nil); err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

// SetDefault marks an address as the default delivery address
func (s *Service) SetDefault(ctx context.Context, addressID uint) error {
	if err := s.api.Post(ctx, fmt.Sprintf("/addresses/%d/default", addressID), nil, nil); err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}
	return nil
}

// GeocodeResult is the subset of the reverse-geocoder response used to
// prefill the address form
type GeocodeResult struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
		City     string `json:"city"`
		Town     string `json:"town"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
		Country  string `json:"country"`
	} `json:"address"`
}

// LookupCoordinates reverse-geocodes device coordinates into a partial
// address for form autofill. This talks to the public geocoder, not the
// marketplace API, so no auth token is attached.
func (s *Service) LookupCoordinates(ctx context.Context, lat, lon float64) (*CreateAddressRequest, error) {
	var result GeocodeResult
	resp, err := s.geocoder.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "json",
			"lat":    strconv.FormatFloat(lat, 'f', 6, 64),
			"lon":    strconv.FormatFloat(lon, 'f', 6, 64),
		}).
		SetResult(&result).
		Get("/reverse")
	if err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("reverse geocoding failed with status %d", resp.StatusCode())
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}

	return &CreateAddressRequest{
		Street:     result.Address.Road,
		City:       city,
		State:      result.Address.State,
		PostalCode: result.Address.Postcode,
		Country:    result.Address.Country,
	}, nil
}
