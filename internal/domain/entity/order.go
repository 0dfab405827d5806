package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT" // creado por colocación exitosa
	OrderStatusProcessing     = "PROCESSING"
	OrderStatusShipped        = "SHIPPED"
	OrderStatusCompleted      = "COMPLETED"
	OrderStatusCancelled      = "CANCELLED" // dispara restauración de stock, exactamente una vez
)

// orderTransitions define las transiciones administrativas válidas.
// CANCELLED solo se alcanza vía el flujo de cancelación con compensación,
// y únicamente desde estados que aún no despacharon mercancía.
var orderTransitions = map[string][]string{
	OrderStatusPendingPayment: {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusCompleted},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order representa la cabecera de un pedido mayorista.
type Order struct {
	ID         string
	CompanyID  string // empresa compradora
	UserID     string // usuario que colocó el pedido
	Status     string
	Total      decimal.Decimal // derivado: suma de subtotales de las líneas
	ExternalID string          // referencia idempotente del cliente; vacío = sin idempotencia
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItem representa una línea de pedido. Inmutable tras la creación,
// salvo por el flujo administrativo de cancelación.
type OrderItem struct {
	ID          string
	OrderID     string
	SKUID       string
	ProductName string // nombre del producto al momento del pedido
	Quantity    int64
	UnitPrice   decimal.Decimal // asignado por el servidor desde el catálogo, nunca del cliente
	Subtotal    decimal.Decimal // Quantity × UnitPrice
}
