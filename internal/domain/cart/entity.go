// internal/domain/cart/entity.go
package cart

// Item is one line of the server-owned cart snapshot
type Item struct {
	ID           uint   `json:"id"`
	ProductID    uint   `json:"product_id"`
	VendorID     uint   `json:"vendor_id,omitempty"`
	Name         string `json:"name"`
	VariantLabel string `json:"variant_label,omitempty"`
	Image        string `json:"image,omitempty"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"` // Unit price at time of adding
}

// Cart is a read-only snapshot of the server-computed cart. The client
// never recomputes subtotal or discount; both arrive from the server.
type Cart struct {
	Items      []Item `json:"items"`
	Subtotal   int64  `json:"subtotal"`
	Discount   int64  `json:"discount"`
	CouponCode string `json:"coupon_code,omitempty"`
}

// DisplayTotal is the single client-derived value: subtotal minus
// discount. Delivery is deliberately excluded; the fee only exists
// after an address is chosen later in checkout.
func (c *Cart) DisplayTotal() int64 {
	return c.Subtotal - c.Discount
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums the quantities across all lines
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Empty returns a cart with no items and zero totals
func Empty() *Cart {
	return &Cart{Items: []Item{}}
}
