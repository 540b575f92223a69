// internal/domain/order/entity.go
package order

import "time"

// Status represents the order status as reported by the server
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusPickedUp       Status = "picked_up"
	StatusInTransit      Status = "in_transit"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Item represents one line of a placed order
type Item struct {
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	VariantLabel string `json:"variant_label,omitempty"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`       // Per unit
	TotalPrice   int64  `json:"total_price"` // Quantity * Price
}

// AddressSnapshot is the shipping address frozen into the order at
// submission time
type AddressSnapshot struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Order is the server-owned order. The client reads it back after
// submission and never recomputes its totals locally.
type Order struct {
	ID              uint            `json:"id"`
	OrderNumber     string          `json:"order_number"`
	Status          Status          `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	Items           []Item          `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	Discount        int64           `json:"discount"`
	DeliveryFee     int64           `json:"delivery_fee"`
	TotalAmount     int64           `json:"total_amount"`
	DeliveryType    string          `json:"delivery_type"`
	Courier         string          `json:"courier,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	ShippingAddress AddressSnapshot `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PaymentInitiation is returned when the gateway payment method needs
// a follow-up authorization step
type PaymentInitiation struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	AccessCode       string `json:"access_code,omitempty"`
	Gateway          string `json:"gateway,omitempty"`
}

// Confirmation is the order-creation response
type Confirmation struct {
	Order   *Order             `json:"order"`
	Payment *PaymentInitiation `json:"payment,omitempty"`
}

// TrackingEvent is one entry in the shipment history
type TrackingEvent struct {
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Tracking is the shipment state for an order
type Tracking struct {
	TrackingNumber string          `json:"tracking_number"`
	Courier        string          `json:"courier,omitempty"`
	Status         Status          `json:"status"`
	Events         []TrackingEvent `json:"events,omitempty"`
}
