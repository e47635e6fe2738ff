package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	var gotReq OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Fatalf("missing or wrong basic auth")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Order{
			ID:       "order_123",
			Amount:   gotReq.Amount,
			Currency: gotReq.Currency,
			Receipt:  gotReq.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	c := &Client{KeyID: "key_id", KeySecret: "key_secret", BaseURL: srv.URL}
	order, err := c.CreateOrder(context.Background(), OrderRequest{
		Amount:         3998,
		Currency:       "INR",
		Receipt:        "ORD-1",
		Notes:          map[string]string{"orderNumber": "ORD-1"},
		PaymentCapture: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_123" || order.Amount != 3998 || order.Status != "created" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if !gotReq.PaymentCapture || gotReq.Notes["orderNumber"] != "ORD-1" {
		t.Fatalf("unexpected wire request: %+v", gotReq)
	}
}

func TestCreateOrderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"amount required"}}`))
	}))
	defer srv.Close()

	c := &Client{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}
	_, err := c.CreateOrder(context.Background(), OrderRequest{Currency: "INR"})

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Status != http.StatusBadRequest || gwErr.Op != "create order" {
		t.Fatalf("unexpected gateway error: %+v", gwErr)
	}
}

func TestCreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoices" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req InvoiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Type != "link" || len(req.LineItems) != 1 {
			t.Fatalf("unexpected invoice request: %+v", req)
		}
		json.NewEncoder(w).Encode(Invoice{
			ID:            "inv_1",
			InvoiceNumber: "INV-001",
			Status:        "issued",
			Amount:        req.LineItems[0].Amount,
			Currency:      req.LineItems[0].Currency,
			ShortURL:      "https://rzp.io/i/abc",
		})
	}))
	defer srv.Close()

	c := &Client{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}
	inv, err := c.CreateInvoice(context.Background(), InvoiceRequest{
		Type:      "link",
		Customer:  InvoiceCustomer{Name: "A", Email: "a@x.com"},
		LineItems: []InvoiceLineItem{{Name: "Order #ORD-1", Amount: 3998, Currency: "INR", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID != "inv_1" || inv.Amount != 3998 || inv.ShortURL == "" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestCreateInvoiceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Client{KeyID: "k", KeySecret: "s", BaseURL: srv.URL}
	_, err := c.CreateInvoice(ctx, InvoiceRequest{Type: "link"})

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError wrapping context cancellation, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}
