// Command replay posts a signed payment.captured event to a running
// instance, for exercising the webhook path locally without the gateway.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"elitecart/internal/razorpay"
	"github.com/google/uuid"
)

func main() {
	logger := log.New(os.Stdout, "[replay] ", log.LstdFlags|log.LUTC)

	url := flag.String("url", "http://localhost:8080/api/webhook", "webhook endpoint")
	amount := flag.Int64("amount", 3998, "payment amount in minor units")
	currency := flag.String("currency", "INR", "payment currency")
	orderNumber := flag.String("order", "", "order number (defaults to a fresh uuid)")
	flag.Parse()

	secret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	if secret == "" {
		logger.Fatal("RAZORPAY_WEBHOOK_SECRET not set")
	}

	num := *orderNumber
	if num == "" {
		num = "ORD-" + uuid.NewString()
	}

	event := map[string]interface{}{
		"event": razorpay.EventPaymentCaptured,
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       "pay_" + uuid.NewString()[:12],
					"order_id": "order_" + uuid.NewString()[:12],
					"amount":   *amount,
					"currency": *currency,
					"contact":  "+910000000000",
					"email":    "replay@example.com",
					"notes": map[string]string{
						"orderNumber":    num,
						"customerName":   "Replay Customer",
						"customerEmail":  "replay@example.com",
						"clerkUserId":    "",
						"products":       `[{"product":"p1","quantity":2}]`,
						"amountDiscount": "0",
						"address":        "",
					},
				},
			},
		},
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Fatalf("marshal event: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		logger.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(razorpay.SignatureHeader, razorpay.Sign(body, secret))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		logger.Fatalf("post event: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("order %s -> %s: %s\n", num, resp.Status, respBody)
}
