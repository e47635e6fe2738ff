package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"elitecart/internal/domain"
	"elitecart/internal/razorpay"
	"github.com/shopspring/decimal"
)

// Outcome reports what a delivery did. Duplicate deliveries are a success
// from the gateway's point of view: acknowledging them stops redelivery.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCreated
	OutcomeDuplicate
)

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}

type invoiceService interface {
	CreateInvoice(ctx context.Context, req razorpay.InvoiceRequest) (*razorpay.Invoice, error)
}

// Processor reconciles verified gateway events into durable orders. It is
// stateless; idempotency lives in the repository's uniqueness constraint,
// which is the only guard that survives restarts and concurrent delivery.
type Processor struct {
	repo           orderRepo
	invoices       invoiceService
	invoiceTimeout time.Duration
	logger         *log.Logger
	now            func() time.Time
}

// New wires a Processor. invoiceTimeout bounds the best-effort invoice call
// so a slow gateway cannot stall order persistence.
func New(repo orderRepo, invoices invoiceService, invoiceTimeout time.Duration, logger *log.Logger) *Processor {
	if invoiceTimeout <= 0 {
		invoiceTimeout = 5 * time.Second
	}
	return &Processor{
		repo:           repo,
		invoices:       invoices,
		invoiceTimeout: invoiceTimeout,
		logger:         logger,
		now:            time.Now,
	}
}

// Process handles one verified webhook delivery. Only payment.captured
// events have effects; everything else is acknowledged untouched. A nil
// error means the delivery can be acked; a non-nil error means persistence
// failed and the gateway must redeliver.
func (p *Processor) Process(ctx context.Context, event razorpay.WebhookEvent) (Outcome, error) {
	if event.Event != razorpay.EventPaymentCaptured {
		return OutcomeIgnored, nil
	}

	entity := event.Payload.Payment.Entity
	notes := ParseNotes(entity.Notes)

	// Step 1 of the saga: invoicing is a value-add, never a gate. Failure
	// is logged and the order persists without an invoice.
	invoice := p.issueInvoice(ctx, entity, notes)

	o := &domain.Order{
		OrderNumber:    notes.OrderNumber,
		PaymentID:      entity.ID,
		GatewayOrderID: entity.OrderID,
		Invoice:        invoice,
		CustomerName:   notes.CustomerName,
		UserID:         notes.UserID,
		Email:          notes.CustomerEmail,
		Currency:       entity.Currency,
		Discount:       notes.Discount,
		Lines:          notes.Products,
		TotalPrice:     minorToMajor(entity.Amount),
		Status:         domain.StatusPaid,
		OrderDate:      p.now().UTC(),
		Address:        notes.Address,
	}

	// Step 2 is mandatory; redelivery is the retry loop.
	if err := p.repo.Create(ctx, o); err != nil {
		if errors.Is(err, domain.ErrOrderExists) {
			p.checkRedelivery(ctx, o)
			return OutcomeDuplicate, nil
		}
		return OutcomeIgnored, fmt.Errorf("persist order %s: %w", o.OrderNumber, err)
	}

	p.logger.Printf("order %s created for payment %s", o.OrderNumber, o.PaymentID)
	return OutcomeCreated, nil
}

func (p *Processor) issueInvoice(ctx context.Context, entity razorpay.PaymentEntity, notes Notes) *domain.Invoice {
	if p.invoices == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, p.invoiceTimeout)
	defer cancel()

	inv, err := p.invoices.CreateInvoice(ctx, razorpay.InvoiceRequest{
		Type: "link",
		Customer: razorpay.InvoiceCustomer{
			Name:    notes.CustomerName,
			Email:   notes.CustomerEmail,
			Contact: entity.Contact,
		},
		LineItems: []razorpay.InvoiceLineItem{{
			Name:     "Order #" + notes.OrderNumber,
			Amount:   entity.Amount,
			Currency: entity.Currency,
			Quantity: 1,
		}},
		Description: "Invoice for order #" + notes.OrderNumber,
		Receipt:     notes.OrderNumber,
		EmailNotify: 1,
	})
	if err != nil {
		p.logger.Printf("create invoice for order %s: %v (continuing without invoice)", notes.OrderNumber, err)
		return nil
	}

	number := inv.InvoiceNumber
	if number == "" {
		number = "N/A"
	}
	url := inv.ShortURL
	if url == "" {
		url = inv.InvoiceURL
	}
	return &domain.Invoice{
		ID:        inv.ID,
		Number:    number,
		Status:    inv.Status,
		Amount:    minorToMajor(inv.Amount),
		Currency:  inv.Currency,
		URL:       url,
		CreatedAt: unixTime(inv.CreatedAt),
		PaidAt:    unixTime(inv.PaidAt),
	}
}

// checkRedelivery flags redeliveries whose amount no longer matches the
// stored order. The stored document is never overwritten; the mismatch is
// surfaced to operators through the log.
func (p *Processor) checkRedelivery(ctx context.Context, incoming *domain.Order) {
	existing, err := p.repo.GetByOrderNumber(ctx, incoming.OrderNumber)
	if err != nil {
		p.logger.Printf("order %s: redelivered, existing order not readable: %v", incoming.OrderNumber, err)
		return
	}
	if existing.TotalPrice != incoming.TotalPrice {
		p.logger.Printf("order %s: redelivered with total %.2f, stored total is %.2f; keeping stored order",
			incoming.OrderNumber, incoming.TotalPrice, existing.TotalPrice)
		return
	}
	p.logger.Printf("order %s: duplicate delivery ignored", incoming.OrderNumber)
}

func minorToMajor(amount int64) float64 {
	f, _ := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).Float64()
	return f
}

func unixTime(sec int64) *time.Time {
	if sec == 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
