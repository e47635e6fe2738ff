package payment

import (
	"encoding/json"
	"strconv"

	"elitecart/internal/domain"
)

// Notes is the decoded settlement metadata. Every field defaults to its
// zero value: the gateway echoes exactly what checkout attached, but a
// schema drift must never crash an in-flight event.
type Notes struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	UserID        string
	Discount      float64
	Address       *domain.Address
	Products      []domain.OrderLine
}

// ParseNotes decodes the notes bag from a payment entity. Missing keys,
// non-string values and malformed embedded JSON all fail soft.
func ParseNotes(raw map[string]interface{}) Notes {
	n := Notes{
		OrderNumber:   stringAt(raw, "orderNumber"),
		CustomerName:  stringAt(raw, "customerName"),
		CustomerEmail: stringAt(raw, "customerEmail"),
		UserID:        stringAt(raw, "clerkUserId"),
	}

	if s := stringAt(raw, "amountDiscount"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
			n.Discount = v
		}
	}

	if s := stringAt(raw, "address"); s != "" {
		var addr domain.Address
		if err := json.Unmarshal([]byte(s), &addr); err == nil {
			n.Address = &addr
		}
	}

	if s := stringAt(raw, "products"); s != "" {
		var lines []domain.OrderLine
		if err := json.Unmarshal([]byte(s), &lines); err == nil {
			n.Products = lines
		}
	}

	return n
}

func stringAt(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	s, _ := raw[key].(string)
	return s
}
