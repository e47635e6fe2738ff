package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader is the request header carrying the webhook signature.
const SignatureHeader = "X-Razorpay-Signature"

// EventPaymentCaptured is the settlement event the pipeline acts on. All
// other event types are acknowledged without processing.
const EventPaymentCaptured = "payment.captured"

// WebhookEvent is the envelope of a gateway notification. Trusted only
// after its signature has been verified against the raw request body.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// PaymentEntity is the payment inside a webhook event. Notes hold whatever
// was attached at order creation; values are decoded defensively elsewhere.
type PaymentEntity struct {
	ID       string                 `json:"id"`
	OrderID  string                 `json:"order_id"`
	Amount   int64                  `json:"amount"`
	Currency string                 `json:"currency"`
	Contact  string                 `json:"contact"`
	Email    string                 `json:"email"`
	Notes    map[string]interface{} `json:"notes"`
}

// Sign computes the hex HMAC-SHA256 of body under secret.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the HMAC of the exact
// raw body bytes. It must be given the untouched wire bytes: re-serialized
// JSON is not guaranteed byte-identical and would fail verification.
func VerifySignature(body []byte, signature, secret string) bool {
	expected := Sign(body, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
