package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderItem línea solicitada por el comprador. UnitPrice y ProductName
// se aceptan en el JSON por compatibilidad con clientes viejos pero el
// backend los ignora: el precio se deriva siempre del catálogo.
type PlaceOrderItem struct {
	SKUID       string          `json:"sku_id" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`   // ignorado por el backend
	ProductName string          `json:"product_name"` // ignorado por el backend
}

// PlaceOrderRequest entrada para colocar un pedido.
// ExternalID opcional: referencia idempotente del cliente; dos peticiones con
// el mismo external_id devuelven el mismo pedido.
type PlaceOrderRequest struct {
	ExternalID string           `json:"external_id"`
	Items      []PlaceOrderItem `json:"items" validate:"required,min=1"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	SKUID       string          `json:"sku_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID         string              `json:"id"`
	CompanyID  string              `json:"company_id"`
	UserID     string              `json:"user_id"`
	Status     string              `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	ExternalID string              `json:"external_id,omitempty"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest entrada administrativa para avanzar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PROCESSING SHIPPED COMPLETED CANCELLED"`
}
