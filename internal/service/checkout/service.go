package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"elitecart/internal/domain"
	"elitecart/internal/razorpay"
	"github.com/shopspring/decimal"
)

// storeName and description appear on the client payment sheet.
const (
	storeName        = "EliteCart"
	orderDescription = "Order Payment"
)

type gateway interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
}

// Service builds checkout sessions: it prices the cart and creates the
// corresponding payment order at the gateway.
type Service struct {
	gateway  gateway
	keyID    string
	currency string
}

// New wires the checkout service. keyID is the public client key echoed to
// the storefront; currency is the fixed operational currency.
func New(gw gateway, keyID, currency string) *Service {
	return &Service{gateway: gw, keyID: keyID, currency: currency}
}

var hundred = decimal.NewFromInt(100)

// Amount converts cart lines into a gateway-exact total in minor currency
// units. Each unit price is rounded to a whole minor unit before being
// multiplied by the quantity; rounding after the multiply diverges for
// fractional prices and must not be used.
func Amount(lines []domain.CartLine) (int64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: cart is empty", domain.ErrInvalidCart)
	}
	var total int64
	for i, line := range lines {
		if line.Quantity < 1 {
			return 0, fmt.Errorf("%w: line %d: quantity must be at least 1", domain.ErrInvalidCart, i)
		}
		if line.UnitPrice.IsNegative() {
			return 0, fmt.Errorf("%w: line %d: unit price must not be negative", domain.ErrInvalidCart, i)
		}
		unitMinor := line.UnitPrice.Mul(hundred).Round(0).IntPart()
		total += unitMinor * int64(line.Quantity)
	}
	return total, nil
}

// CreateSession prices the cart and creates a payment order at the gateway,
// returning the client-facing session. The call creates one remote order
// per invocation and is not idempotent: on failure, retry only with a fresh
// order number in the metadata.
func (s *Service) CreateSession(ctx context.Context, items []domain.CartLine, meta domain.Metadata) (*domain.CheckoutSession, error) {
	amount, err := Amount(items)
	if err != nil {
		return nil, err
	}

	notes, err := buildNotes(items, meta)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:         amount,
		Currency:       s.currency,
		Receipt:        meta.OrderNumber,
		Notes:          notes,
		PaymentCapture: true,
	})
	if err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		GatewayOrderID: order.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Key:            s.keyID,
		Name:           storeName,
		Description:    orderDescription,
		OrderNumber:    meta.OrderNumber,
		CustomerName:   meta.CustomerName,
		CustomerEmail:  meta.CustomerEmail,
		Address:        meta.Address,
	}, nil
}

// buildNotes serializes the order metadata and a compact product manifest
// into the notes bag the gateway echoes back verbatim on settlement.
func buildNotes(items []domain.CartLine, meta domain.Metadata) (map[string]string, error) {
	manifest := make([]domain.OrderLine, 0, len(items))
	for _, line := range items {
		manifest = append(manifest, domain.OrderLine{
			ProductRef: strings.TrimSpace(line.ProductID),
			Quantity:   line.Quantity,
		})
	}
	products, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("marshal product manifest: %w", err)
	}

	notes := map[string]string{
		"orderNumber":    meta.OrderNumber,
		"customerName":   meta.CustomerName,
		"customerEmail":  meta.CustomerEmail,
		"clerkUserId":    meta.UserID,
		"products":       string(products),
		"amountDiscount": "0",
		"address":        "",
	}
	if meta.Address != nil {
		address, err := json.Marshal(meta.Address)
		if err != nil {
			return nil, fmt.Errorf("marshal address: %w", err)
		}
		notes["address"] = string(address)
	}
	return notes, nil
}
