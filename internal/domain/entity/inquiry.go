package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una consulta de cotización (RFQ).
const (
	InquiryStatusOpen   = "OPEN"   // enviada por el comprador, pendiente de respuesta
	InquiryStatusQuoted = "QUOTED" // el mayorista respondió con una cotización
	InquiryStatusClosed = "CLOSED" // cotización aceptada o consulta cerrada
)

// Inquiry representa una solicitud de cotización de un comprador sobre
// líneas del catálogo. No interactúa con stock.
type Inquiry struct {
	ID        string
	CompanyID string
	UserID    string
	Status    string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InquiryItem línea de una consulta: SKU, cantidad deseada y precio objetivo opcional.
type InquiryItem struct {
	ID          string
	InquiryID   string
	SKUID       string
	Quantity    int64
	TargetPrice *decimal.Decimal // nil = sin precio objetivo
}
