package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización emitida por el mayorista.
const (
	QuoteStatusSent     = "SENT"
	QuoteStatusAccepted = "ACCEPTED"
	QuoteStatusRejected = "REJECTED"
)

// Quote representa la respuesta del mayorista a una Inquiry.
type Quote struct {
	ID         string
	InquiryID  string
	Status     string
	ValidUntil time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuoteItem línea cotizada: precio ofrecido por SKU y cantidad.
type QuoteItem struct {
	ID          string
	QuoteID     string
	SKUID       string
	Quantity    int64
	QuotedPrice decimal.Decimal
}
