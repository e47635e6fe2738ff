package httpserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"elitecart/internal/razorpay"
	"elitecart/internal/service/payment"
	"github.com/gin-gonic/gin"
)

// webhookHandler verifies and processes gateway notifications. The HMAC
// check runs over the raw body bytes before any parsing; nothing in the
// payload is trusted until it passes.
func webhookHandler(logger *log.Logger, proc EventProcessor, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook secret not set"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		if !razorpay.VerifySignature(body, c.GetHeader(razorpay.SignatureHeader), secret) {
			webhookEventsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
			return
		}

		var event razorpay.WebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.Printf("webhook: undecodable event after valid signature: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		outcome, err := proc.Process(c.Request.Context(), event)
		if err != nil {
			webhookEventsTotal.WithLabelValues("failed").Inc()
			logger.Printf("webhook %s: %v", event.Event, err)
			// 500 makes the gateway redeliver; the repository's uniqueness
			// guard keeps the retry safe.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation failed"})
			return
		}

		webhookEventsTotal.WithLabelValues(outcomeLabel(outcome)).Inc()
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func outcomeLabel(o payment.Outcome) string {
	switch o {
	case payment.OutcomeCreated:
		return "created"
	case payment.OutcomeDuplicate:
		return "duplicate"
	default:
		return "ignored"
	}
}
