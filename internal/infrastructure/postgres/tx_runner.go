package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// Ensure TxRunner implements orders.TxRunner.
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los fallos de serialización/deadlock se traducen a domain.ErrTransactionAborted
// para que la capa HTTP los exponga como reintentar-la-petición-completa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	skuRepo repository.SKURepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	skuRepo := NewSKURepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(skuRepo, orderRepo); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrTransactionAborted
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrTransactionAborted
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
