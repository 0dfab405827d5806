package repository

import "github.com/jhoicas/Mayorista-api/internal/domain/entity"

// SKURepository define el puerto para consultar y reservar stock por variante.
// Las mutaciones de stock son atómicas en la capa de almacenamiento: el par
// chequeo+decremento es una sola sentencia condicional, no un read-then-write.
type SKURepository interface {
	Create(sku *entity.SKU) error
	GetByID(id string) (*entity.SKU, error)
	GetByCode(code string) (*entity.SKU, error)
	Update(sku *entity.SKU) error
	ListByProduct(productID string) ([]*entity.SKU, error)
	// DecrementStockIfAvailable descuenta quantity solo si hay stock suficiente.
	// Devuelve false (sin error) cuando la fila no se afectó: stock insuficiente
	// o SKU inexistente. Debe ejecutarse dentro de una transacción.
	DecrementStockIfAvailable(skuID string, quantity int64) (bool, error)
	// IncrementStock restaura quantity unidades (cancelación o reposición).
	IncrementStock(skuID string, quantity int64) error
}
