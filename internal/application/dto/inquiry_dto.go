package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInquiryItem línea de una solicitud de cotización.
type CreateInquiryItem struct {
	SKUID       string           `json:"sku_id" validate:"required"`
	Quantity    int64            `json:"quantity" validate:"required,min=1"`
	TargetPrice *decimal.Decimal `json:"target_price"`
}

// CreateInquiryRequest entrada para crear una solicitud de cotización (RFQ).
type CreateInquiryRequest struct {
	Note  string              `json:"note"`
	Items []CreateInquiryItem `json:"items" validate:"required,min=1"`
}

// InquiryItemResponse salida de una línea de consulta.
type InquiryItemResponse struct {
	ID          string           `json:"id"`
	SKUID       string           `json:"sku_id"`
	Quantity    int64            `json:"quantity"`
	TargetPrice *decimal.Decimal `json:"target_price,omitempty"`
}

// InquiryResponse salida de una consulta con sus líneas.
type InquiryResponse struct {
	ID        string                `json:"id"`
	CompanyID string                `json:"company_id"`
	UserID    string                `json:"user_id"`
	Status    string                `json:"status"`
	Note      string                `json:"note"`
	Items     []InquiryItemResponse `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// InquiryListResponse lista paginada de consultas.
type InquiryListResponse struct {
	Items []InquiryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateQuoteItem línea de la cotización que responde una consulta.
type CreateQuoteItem struct {
	SKUID       string          `json:"sku_id" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	QuotedPrice decimal.Decimal `json:"quoted_price"`
}

// CreateQuoteRequest entrada administrativa para cotizar una consulta.
type CreateQuoteRequest struct {
	ValidUntil time.Time         `json:"valid_until"`
	Items      []CreateQuoteItem `json:"items" validate:"required,min=1"`
}

// QuoteItemResponse salida de una línea cotizada.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	SKUID       string          `json:"sku_id"`
	Quantity    int64           `json:"quantity"`
	QuotedPrice decimal.Decimal `json:"quoted_price"`
}

// QuoteResponse salida de una cotización.
type QuoteResponse struct {
	ID         string              `json:"id"`
	InquiryID  string              `json:"inquiry_id"`
	Status     string              `json:"status"`
	ValidUntil time.Time           `json:"valid_until"`
	Items      []QuoteItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
