package domain

import "time"

// OrderStatus values are a durable contract shared with fulfillment and
// admin tooling; do not rename.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusPaid           OrderStatus = "paid"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPaid, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderLine references a purchased product. The ref is the storefront's
// product id as carried through the checkout manifest.
type OrderLine struct {
	ProductRef string `json:"product"`
	Quantity   int    `json:"quantity"`
}

// Invoice mirrors the gateway invoice attached to an order. Optional: order
// persistence never depends on it.
type Invoice struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Status    string     `json:"status"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	URL       string     `json:"invoice_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// Order is the durable order document. Field names form the contract other
// tooling reads; OrderNumber is the unique key.
type Order struct {
	OrderNumber    string      `json:"orderNumber"`
	PaymentID      string      `json:"razorpayPaymentId"`
	GatewayOrderID string      `json:"razorpayOrderId"`
	Invoice        *Invoice    `json:"razorpayInvoice,omitempty"`
	CustomerName   string      `json:"customerName"`
	UserID         string      `json:"clerkUserId,omitempty"`
	Email          string      `json:"email"`
	Currency       string      `json:"currency"`
	Discount       float64     `json:"amountDiscount"`
	Lines          []OrderLine `json:"products"`
	TotalPrice     float64     `json:"totalPrice"`
	Status         OrderStatus `json:"status"`
	OrderDate      time.Time   `json:"orderDate"`
	Address        *Address    `json:"address,omitempty"`
}
