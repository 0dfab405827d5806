package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"     // personal del mayorista: catálogo, cotizaciones, estados de pedido
	RoleComprador = "comprador" // usuario de empresa compradora: consultas, pedidos, cancelaciones propias
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, comprador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
