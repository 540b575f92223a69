// internal/domain/checkout/delivery.go
package checkout

import "fmt"

// DeliveryType enumerates the delivery tiers the marketplace quotes
type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "pickup"
	DeliveryStandard DeliveryType = "standard"
	DeliveryExpress  DeliveryType = "express"
	DeliverySameDay  DeliveryType = "same_day"
)

// VendorCharge is a per-vendor sub-charge inside a multi-vendor quote
type VendorCharge struct {
	VendorName string `json:"vendor_name"`
	Price      int64  `json:"price"`
	Courier    string `json:"courier,omitempty"`
}

// DeliveryOption is the client-side representation of one rate quote.
// The upstream quote carries no stable identifier, so a synthetic id
// (type-courier-index) is stamped once on receipt and never recomputed.
type DeliveryOption struct {
	ID              string         `json:"id"`
	Type            DeliveryType   `json:"type"`
	Price           int64          `json:"price"`
	EstimatedDays   string         `json:"estimated_days"`
	Courier         string         `json:"courier,omitempty"`
	PickupAddress   string         `json:"pickup_address,omitempty"`
	VendorBreakdown []VendorCharge `json:"vendor_breakdown,omitempty"`
}

// RateQuote is the wire shape of one quote in the rate response
type RateQuote struct {
	Type          string         `json:"type"`
	Price         int64          `json:"price"`
	EstimatedDays string         `json:"estimated_days"`
	Courier       string         `json:"courier,omitempty"`
	PickupAddress string         `json:"pickup_address,omitempty"`
	Vendors       []VendorCharge `json:"vendors,omitempty"`
}

// buildOptions maps rate quotes into delivery options, assigning the
// synthetic composite identifiers
func buildOptions(quotes []RateQuote) []DeliveryOption {
	options := make([]DeliveryOption, 0, len(quotes))
	for i, q := range quotes {
		options = append(options, DeliveryOption{
			ID:              fmt.Sprintf("%s-%s-%d", q.Type, q.Courier, i),
			Type:            DeliveryType(q.Type),
			Price:           q.Price,
			EstimatedDays:   q.EstimatedDays,
			Courier:         q.Courier,
			PickupAddress:   q.PickupAddress,
			VendorBreakdown: q.Vendors,
		})
	}
	return options
}

// fallbackOptions is the fixed three-tier substitute used when live
// quotes are unavailable, so checkout is never blocked on a transient
// quote failure
func fallbackOptions() []DeliveryOption {
	quotes := []RateQuote{
		{Type: string(DeliveryPickup), Price: 0, EstimatedDays: "Same day"},
		{Type: string(DeliveryStandard), Price: 2500, EstimatedDays: "3-5 days"},
		{Type: string(DeliveryExpress), Price: 5000, EstimatedDays: "1-2 days"},
	}
	return buildOptions(quotes)
}

// FallbackOptions exposes the fixed substitute list
func FallbackOptions() []DeliveryOption {
	return fallbackOptions()
}
