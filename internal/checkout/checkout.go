// Package checkout validates the delivery address form and submits the cart
// as an order.
package checkout

import (
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/cart"
	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

// Local mobile numbers: 09 then one of 1/2/4/5 and seven digits.
var phonePattern = regexp.MustCompile(`^09(1|2|4|5)[0-9]{7}$`)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Form holds the buyer fields collected at checkout.
type Form struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	Notes      string
	LocationID int64
	ShippingID int64
}

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

// Validate checks every field and returns the full set of problems, or nil.
func (f Form) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "name is required"
	}
	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "email is required"
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "email is invalid"
	}
	switch {
	case strings.TrimSpace(f.Phone) == "":
		errs["phone"] = "phone is required"
	case !phonePattern.MatchString(f.Phone):
		errs["phone"] = "phone is invalid"
	}
	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "address is required"
	}
	if f.LocationID == 0 {
		errs["location"] = "location is required"
	}
	if f.ShippingID == 0 {
		errs["shipping"] = "shipping method is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidationError blocks submission and carries per-field messages.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout form: %d field(s)", len(e.Fields))
}

type orderSubmitter interface {
	SubmitOrder(ctx context.Context, order domain.Order) error
}

// Service turns the cart and a validated form into an order submission.
// The cart is reset only after the API accepts the order.
type Service struct {
	client orderSubmitter
	cart   *cart.Store
	logger *log.Logger
}

func New(client orderSubmitter, cartStore *cart.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{client: client, cart: cartStore, logger: logger}
}

// Submit validates the form, flattens the cart into order lines, and posts
// the order. Validation problems return a *ValidationError; an empty cart
// is rejected; any failure leaves the cart untouched.
func (s *Service) Submit(ctx context.Context, form Form) error {
	if fields := form.Validate(); fields != nil {
		return &ValidationError{Fields: fields}
	}

	state := s.cart.State()
	lines := FlattenLines(state)
	if len(lines) == 0 {
		return fmt.Errorf("cart is empty")
	}

	order := domain.Order{
		Name:       strings.TrimSpace(form.Name),
		Email:      strings.TrimSpace(form.Email),
		Phone:      strings.TrimSpace(form.Phone),
		Address:    strings.TrimSpace(form.Address),
		Notes:      strings.TrimSpace(form.Notes),
		LocationID: form.LocationID,
		ShippingID: form.ShippingID,
		Lines:      lines,
	}
	if err := s.client.SubmitOrder(ctx, order); err != nil {
		return fmt.Errorf("submit order: %w", err)
	}

	s.logger.Printf("checkout: order submitted, %d line(s), total %d", len(lines), state.Total())
	s.cart.Reset()
	return nil
}

// FlattenLines converts cart lines into the wire payload: one entry per
// simple line, one entry per selected variant.
func FlattenLines(state domain.CartState) []domain.OrderLine {
	var lines []domain.OrderLine
	for _, l := range state.Lines {
		if len(l.Variants) == 0 {
			if l.Count > 0 {
				lines = append(lines, domain.OrderLine{ProductID: l.Product.ID, Count: l.Count})
			}
			continue
		}
		for _, v := range l.Variants {
			variantID := v.Variant.ID
			lines = append(lines, domain.OrderLine{
				ProductID: l.Product.ID,
				VariantID: &variantID,
				Count:     v.Count,
			})
		}
	}
	return lines
}
