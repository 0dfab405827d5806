package repository

import (
	"time"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido (SELECT FOR UPDATE) para que el
	// chequeo de idempotencia de la cancelación y el cambio de estado sean
	// atómicos frente a cancelaciones concurrentes.
	GetForUpdate(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	UpdateStatus(orderID, status string, updatedAt time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
}
