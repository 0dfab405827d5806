package redisx

import "time"

const (
	// Idempotencia de creación de pedido: idem:order:create:{external_id} -> order_id
	KeyIdemOrderCreate = "idem:order:create:%s"

	// Cache de estado de pedido: order_status:{order_id} -> status
	KeyOrderStatus = "order_status:%s"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
)
