// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
)

// Service wraps the catalog endpoints
type Service struct {
	api    *api.Client
	logger *logrus.Logger
}

// NewService creates a new product service
func NewService(client *api.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    client,
		logger: logger,
	}
}

// ListOptions filters and pages a catalog listing
type ListOptions struct {
	Search   string
	Category string
	VendorID uint
	Page     int
	Limit    int
}

// List retrieves a page of the catalog
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	query := map[string]string{}
	if opts.Search != "" {
		query["search"] = opts.Search
	}
	if opts.Category != "" {
		query["category"] = opts.Category
	}
	if opts.VendorID > 0 {
		query["vendor_id"] = strconv.FormatUint(uint64(opts.VendorID), 10)
	}
	if opts.Page > 0 {
		query["page"] = strconv.Itoa(opts.Page)
	}
	if opts.Limit > 0 {
		query["limit"] = strconv.Itoa(opts.Limit)
	}

	var products []Product
	if err := s.api.Get(ctx, "/products", query, &products); err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// Get retrieves a single product
func (s *Service) Get(ctx context.Context, productID uint) (*Product, error) {
	var prod Product
	if err := s.api.Get(ctx, fmt.Sprintf("/products/%d", productID), nil, &prod); err != nil {
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &prod, nil
}
