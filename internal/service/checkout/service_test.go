package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"elitecart/internal/domain"
	"elitecart/internal/razorpay"
	"github.com/shopspring/decimal"
)

type stubGateway struct {
	order   *razorpay.Order
	err     error
	calls   int
	lastReq razorpay.OrderRequest
}

func (s *stubGateway) CreateOrder(_ context.Context, req razorpay.OrderRequest) (*razorpay.Order, error) {
	s.calls++
	s.lastReq = req
	return s.order, s.err
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAmountRoundsPerLineBeforeQuantity(t *testing.T) {
	// round(19.995*100)=2000 per unit, times 3 = 6000; rounding after the
	// multiply would give 5999.
	got, err := Amount([]domain.CartLine{
		{ProductID: "p1", UnitPrice: price("19.995"), Quantity: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 6000 {
		t.Fatalf("expected 6000, got %d", got)
	}
}

func TestAmountSumsLines(t *testing.T) {
	got, err := Amount([]domain.CartLine{
		{ProductID: "p1", UnitPrice: price("19.99"), Quantity: 2},
		{ProductID: "p2", UnitPrice: price("5"), Quantity: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 4498 {
		t.Fatalf("expected 4498, got %d", got)
	}
}

func TestAmountEmptyCart(t *testing.T) {
	_, err := Amount(nil)
	if !errors.Is(err, domain.ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart, got %v", err)
	}
}

func TestAmountInvalidLines(t *testing.T) {
	_, err := Amount([]domain.CartLine{{ProductID: "p1", UnitPrice: price("10"), Quantity: 0}})
	if !errors.Is(err, domain.ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart for zero quantity, got %v", err)
	}

	_, err = Amount([]domain.CartLine{{ProductID: "p1", UnitPrice: price("-1"), Quantity: 1}})
	if !errors.Is(err, domain.ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart for negative price, got %v", err)
	}
}

func TestCreateSessionHappyPath(t *testing.T) {
	gw := &stubGateway{order: &razorpay.Order{ID: "order_123", Amount: 3998, Currency: "INR", Status: "created"}}
	svc := New(gw, "rzp_test_key", "INR")

	addr := &domain.Address{City: "Mumbai", Zip: "400001"}
	session, err := svc.CreateSession(context.Background(), []domain.CartLine{
		{ProductID: "p1", UnitPrice: price("19.99"), Quantity: 2},
	}, domain.Metadata{
		OrderNumber:   "ORD-1",
		CustomerName:  "A",
		CustomerEmail: "a@x.com",
		UserID:        "user_1",
		Address:       addr,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.GatewayOrderID != "order_123" || session.Amount != 3998 || session.Currency != "INR" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.Key != "rzp_test_key" || session.OrderNumber != "ORD-1" {
		t.Fatalf("unexpected session identity: %+v", session)
	}

	req := gw.lastReq
	if req.Amount != 3998 || req.Currency != "INR" || req.Receipt != "ORD-1" || !req.PaymentCapture {
		t.Fatalf("unexpected order request: %+v", req)
	}
	if req.Notes["orderNumber"] != "ORD-1" || req.Notes["customerEmail"] != "a@x.com" || req.Notes["clerkUserId"] != "user_1" {
		t.Fatalf("unexpected notes: %+v", req.Notes)
	}
	if req.Notes["amountDiscount"] != "0" {
		t.Fatalf("expected zero discount note, got %q", req.Notes["amountDiscount"])
	}

	var manifest []domain.OrderLine
	if err := json.Unmarshal([]byte(req.Notes["products"]), &manifest); err != nil {
		t.Fatalf("decode product manifest: %v", err)
	}
	if len(manifest) != 1 || manifest[0].ProductRef != "p1" || manifest[0].Quantity != 2 {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}

	var gotAddr domain.Address
	if err := json.Unmarshal([]byte(req.Notes["address"]), &gotAddr); err != nil {
		t.Fatalf("decode address note: %v", err)
	}
	if gotAddr != *addr {
		t.Fatalf("address did not round-trip: %+v", gotAddr)
	}
}

func TestCreateSessionWithoutAddress(t *testing.T) {
	gw := &stubGateway{order: &razorpay.Order{ID: "order_1", Amount: 100, Currency: "INR"}}
	svc := New(gw, "key", "INR")

	_, err := svc.CreateSession(context.Background(), []domain.CartLine{
		{ProductID: "p1", UnitPrice: price("1"), Quantity: 1},
	}, domain.Metadata{OrderNumber: "ORD-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastReq.Notes["address"] != "" {
		t.Fatalf("expected empty address note, got %q", gw.lastReq.Notes["address"])
	}
}

func TestCreateSessionEmptyCart(t *testing.T) {
	gw := &stubGateway{}
	svc := New(gw, "key", "INR")

	_, err := svc.CreateSession(context.Background(), nil, domain.Metadata{OrderNumber: "ORD-3"})
	if !errors.Is(err, domain.ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for an empty cart")
	}
}

func TestCreateSessionGatewayErrorPropagates(t *testing.T) {
	gwErr := &razorpay.GatewayError{Op: "create order", Status: 503, Body: "down"}
	gw := &stubGateway{err: gwErr}
	svc := New(gw, "key", "INR")

	_, err := svc.CreateSession(context.Background(), []domain.CartLine{
		{ProductID: "p1", UnitPrice: price("1"), Quantity: 1},
	}, domain.Metadata{OrderNumber: "ORD-4"})

	var got *razorpay.GatewayError
	if !errors.As(err, &got) || got.Status != 503 {
		t.Fatalf("expected gateway error to propagate unmodified, got %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gw.calls)
	}
}
