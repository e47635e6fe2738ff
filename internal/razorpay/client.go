package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client is a minimal Razorpay REST client covering order and invoice
// creation. Credentials are sent as HTTP basic auth; BaseURL and HTTP are
// overridable so tests can point at a local server.
type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	HTTP      *http.Client
}

// GatewayError carries an upstream gateway failure. Checkout propagates it
// to the caller unmodified; callers must not retry with the same receipt.
type GatewayError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("razorpay %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("razorpay %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// OrderRequest creates a gateway payment order. Notes round-trip verbatim on
// settlement events.
type OrderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt"`
	Notes          map[string]string `json:"notes,omitempty"`
	PaymentCapture bool              `json:"payment_capture"`
}

// Order is the gateway's order entity.
type Order struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	Notes     map[string]string `json:"notes,omitempty"`
	CreatedAt int64             `json:"created_at"`
}

// InvoiceCustomer identifies the invoice recipient.
type InvoiceCustomer struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// InvoiceLineItem is a single invoice position, amount in minor units.
type InvoiceLineItem struct {
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Quantity int    `json:"quantity"`
}

// InvoiceRequest creates a link-type invoice for a captured payment.
type InvoiceRequest struct {
	Type        string            `json:"type"`
	Customer    InvoiceCustomer   `json:"customer"`
	LineItems   []InvoiceLineItem `json:"line_items"`
	Description string            `json:"description,omitempty"`
	Receipt     string            `json:"receipt,omitempty"`
	EmailNotify int               `json:"email_notify"`
	SMSNotify   int               `json:"sms_notify"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// Invoice is the gateway's invoice entity. Timestamps are Unix seconds;
// zero means unset.
type Invoice struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	ShortURL      string `json:"short_url"`
	InvoiceURL    string `json:"invoice_url"`
	CreatedAt     int64  `json:"created_at"`
	PaidAt        int64  `json:"paid_at"`
}

// CreateOrder creates a payment order at the gateway. Not idempotent: each
// call creates a new remote order, so callers must use a fresh receipt
// rather than retrying a failed call blindly.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var order Order
	if err := c.post(ctx, "create order", "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateInvoice issues a customer invoice for a captured payment.
func (c *Client) CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error) {
	var invoice Invoice
	if err := c.post(ctx, "create invoice", "/invoices", req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *Client) post(ctx context.Context, op, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}

	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(payload))
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &GatewayError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Err: err}
	}
	return nil
}
