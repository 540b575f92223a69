// internal/domain/checkout/flow.go
package checkout

import (
	"errors"

	"github.com/google/uuid"
	"github.com/your-org/storefront-client/internal/domain/address"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// Step identifies a checkout stage
type Step int

const (
	StepAddress Step = iota + 1
	StepDelivery
	StepPayment
)

// String returns the display name of the step
func (s Step) String() string {
	switch s {
	case StepAddress:
		return "Address"
	case StepDelivery:
		return "Delivery"
	case StepPayment:
		return "Payment"
	}
	return "Unknown"
}

// PaymentMethod enumerates the supported payment methods
type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentWallet         PaymentMethod = "wallet"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Guard errors returned by forward transitions
var (
	ErrAddressRequired  = errors.New("checkout: select a delivery address before continuing")
	ErrDeliveryRequired = errors.New("checkout: select a delivery option before continuing")
	ErrPaymentRequired  = errors.New("checkout: select a payment method")
	ErrUnknownOption    = errors.New("checkout: unknown delivery option")
	ErrUnknownPayment   = errors.New("checkout: unsupported payment method")
)

// Flow is the in-memory checkout session: a three-step linear flow with
// guarded forward transitions and unguarded backward ones. It is never
// persisted; abandoning checkout discards it.
type Flow struct {
	cart             *cart.Cart
	step             Step
	address          *address.Address
	options          []DeliveryOption
	selectedOptionID string
	liveRates        bool
	payment          PaymentMethod
	notes            string
	idempotencyKey   string
}

// NewFlow starts a checkout session over the given cart snapshot. The
// card method is pre-selected; the idempotency key is fixed for the
// flow's lifetime so retried submissions cannot double-order.
func NewFlow(c *cart.Cart) *Flow {
	return &Flow{
		cart:           c,
		step:           StepAddress,
		payment:        PaymentCard,
		idempotencyKey: uuid.NewString(),
	}
}

// Step returns the current step
func (f *Flow) Step() Step {
	return f.step
}

// Cart returns the cart snapshot the flow was started with
func (f *Flow) Cart() *cart.Cart {
	return f.cart
}

// IdempotencyKey returns the key attached to the order submission
func (f *Flow) IdempotencyKey() string {
	return f.idempotencyKey
}

// SelectAddress picks the delivery address. Changing the address
// invalidates any previously fetched rate quotes.
func (f *Flow) SelectAddress(a *address.Address) {
	f.address = a
	f.options = nil
	f.selectedOptionID = ""
	f.liveRates = false
}

// Address returns the selected delivery address, or nil
func (f *Flow) Address() *address.Address {
	return f.address
}

// SetOptions installs the delivery options for the selected address and
// auto-selects a pickup option when one exists, else the first option.
// live records whether the options came from the rate service or from
// the fixed fallback.
func (f *Flow) SetOptions(options []DeliveryOption, live bool) {
	f.options = options
	f.liveRates = live
	f.selectedOptionID = ""

	for _, opt := range options {
		if opt.Type == DeliveryPickup {
			f.selectedOptionID = opt.ID
			return
		}
	}
	if len(options) > 0 {
		f.selectedOptionID = options[0].ID
	}
}

// Options returns the installed delivery options
func (f *Flow) Options() []DeliveryOption {
	return f.options
}

// LiveRates reports whether the options came from the rate service
func (f *Flow) LiveRates() bool {
	return f.liveRates
}

// SelectOption changes the selected delivery option by id
func (f *Flow) SelectOption(id string) error {
	for _, opt := range f.options {
		if opt.ID == id {
			f.selectedOptionID = id
			return nil
		}
	}
	return ErrUnknownOption
}

// SelectedOption resolves the currently selected option. Resolved on
// every call from the selected id; nothing is cached.
func (f *Flow) SelectedOption() *DeliveryOption {
	if f.selectedOptionID == "" {
		return nil
	}
	for i := range f.options {
		if f.options[i].ID == f.selectedOptionID {
			return &f.options[i]
		}
	}
	return nil
}

// SelectPayment changes the payment method
func (f *Flow) SelectPayment(method PaymentMethod) error {
	switch method {
	case PaymentCard, PaymentWallet, PaymentCashOnDelivery:
		f.payment = method
		return nil
	}
	return ErrUnknownPayment
}

// Payment returns the selected payment method
func (f *Flow) Payment() PaymentMethod {
	return f.payment
}

// SetNotes sets the free-text order notes
func (f *Flow) SetNotes(notes string) {
	f.notes = notes
}

// Notes returns the order notes
func (f *Flow) Notes() string {
	return f.notes
}

// Advance moves one step forward. Transitions are guarded: a guard
// failure returns an error and leaves the step unchanged. Submission
// from the payment step goes through Service.Submit, not Advance.
func (f *Flow) Advance() error {
	switch f.step {
	case StepAddress:
		if f.address == nil {
			return ErrAddressRequired
		}
		f.step = StepDelivery
	case StepDelivery:
		if f.selectedOptionID == "" {
			return ErrDeliveryRequired
		}
		f.step = StepPayment
	}
	return nil
}

// Back moves one step backward with no guard. It returns false from
// the address step, meaning the caller should exit checkout entirely.
func (f *Flow) Back() bool {
	if f.step > StepAddress {
		f.step--
		return true
	}
	return false
}

// DeliveryFee is the price of the currently selected option, derived
// on every call
func (f *Flow) DeliveryFee() int64 {
	if opt := f.SelectedOption(); opt != nil {
		return opt.Price
	}
	return 0
}

// Total is the checkout total preview: subtotal − discount + delivery
// fee, recomputed from current selections on every call
func (f *Flow) Total() int64 {
	return f.cart.DisplayTotal() + f.DeliveryFee()
}
