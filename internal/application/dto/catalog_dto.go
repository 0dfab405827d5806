package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto base del catálogo.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Attributes  json.RawMessage `json:"attributes"`
}

// UpdateProductRequest entrada para actualizar un producto base.
type UpdateProductRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Attributes  json.RawMessage `json:"attributes"`
}

// CreateSKURequest entrada para crear una variante de producto.
// Stock es el inventario inicial; después solo lo mutan pedidos y reposiciones.
type CreateSKURequest struct {
	Code  string          `json:"code" validate:"required,min=1,max=100"`
	Color string          `json:"color"`
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock" validate:"min=0"`
	MOQ   int64           `json:"moq" validate:"min=0"`
}

// UpdateSKURequest entrada para actualizar precio/MOQ de una variante (el stock no).
type UpdateSKURequest struct {
	Color *string          `json:"color"`
	Size  *string          `json:"size"`
	Price *decimal.Decimal `json:"price"`
	MOQ   *int64           `json:"moq" validate:"omitempty,min=0"`
}

// ReplenishStockRequest entrada para reponer unidades de una variante.
type ReplenishStockRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

// SKUResponse salida de una variante.
type SKUResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	MOQ       int64           `json:"moq"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductResponse salida de un producto con sus variantes.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Attributes  json.RawMessage `json:"attributes"`
	SKUs        []SKUResponse   `json:"skus,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
