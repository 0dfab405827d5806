package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SKU representa una variante comprable de un producto (ej. color+talla),
// con su propio precio, stock y cantidad mínima de pedido.
//
// Invariante: Stock nunca es negativo. Solo lo mutan la reserva al crear
// pedido (decremento condicional) y la restauración al cancelar (incremento),
// ambas dentro de una transacción de la capa de almacenamiento.
type SKU struct {
	ID        string
	ProductID string
	Code      string // código único de la variante
	Color     string
	Size      string
	Price     decimal.Decimal // precio de venta mayorista; el servidor lo fija, nunca el cliente
	Stock     int64           // unidades disponibles
	MOQ       int64           // cantidad mínima de pedido; 0 = sin mínimo
	CreatedAt time.Time
	UpdatedAt time.Time
}
