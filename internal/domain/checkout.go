package domain

import "github.com/shopspring/decimal"

// CartLine is one product position in a checkout request. Ephemeral: the
// service never persists carts, it only turns them into gateway orders.
type CartLine struct {
	ProductID string          `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Address is the structured shipping address attached to checkout metadata
// and echoed back on settlement.
type Address struct {
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Metadata travels opaquely through the gateway as order notes and must
// round-trip unchanged. OrderNumber is caller-generated and unique; it is the
// idempotency key for the whole pipeline.
type Metadata struct {
	OrderNumber   string   `json:"orderNumber"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	UserID        string   `json:"userId,omitempty"`
	Address       *Address `json:"address,omitempty"`
}

// CheckoutSession is the client-facing payload for initiating a gateway
// payment. It is returned to the storefront and never persisted server-side.
type CheckoutSession struct {
	GatewayOrderID string   `json:"id"`
	Amount         int64    `json:"amount"`
	Currency       string   `json:"currency"`
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	OrderNumber    string   `json:"orderNumber"`
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	Address        *Address `json:"address,omitempty"`
}
