package entity

import (
	"encoding/json"
	"time"
)

// Product representa un producto base del catálogo mayorista.
// El precio, el stock y el MOQ viven en las variantes (SKU), no aquí.
type Product struct {
	ID          string
	Code        string // código base único del producto
	Name        string
	Description string
	Category    string
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
