// internal/domain/address/entity.go
package address

// Address is a server-owned delivery address
type Address struct {
	ID         uint   `json:"id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Label      string `json:"label,omitempty"` // Home, Office or Other
	IsDefault  bool   `json:"is_default"`
}

// Labels available for an address
const (
	LabelHome   = "Home"
	LabelOffice = "Office"
	LabelOther  = "Other"
)
