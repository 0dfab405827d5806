package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del motor de pedidos. Los de validación se detectan antes de tocar
// stock; ErrInsufficientStock y ErrTransactionAborted surgen dentro de la
// transacción y provocan rollback completo (nunca pedidos parciales).
var (
	ErrInvalidQuantity           = errors.New("cantidad inválida: debe ser un entero positivo")
	ErrSKUNotFound               = errors.New("sku no encontrado")
	ErrBelowMinimumOrderQuantity = errors.New("cantidad por debajo del mínimo de pedido (MOQ)")
	ErrInsufficientStock         = errors.New("stock insuficiente")
	ErrOrderNotFound             = errors.New("pedido no encontrado")
	ErrAlreadyCancelled          = errors.New("el pedido ya está cancelado")
	// ErrTransactionAborted: la transacción perdió una carrera en la capa de
	// almacenamiento (serialization failure / deadlock). El caller puede
	// reintentar la petición completa, nunca líneas individuales.
	ErrTransactionAborted = errors.New("transacción abortada por concurrencia, reintente")
)
