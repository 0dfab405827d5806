package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación de SKURepository sobre PostgreSQL (usable con pool o tx).
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

// Create persiste una nueva variante.
func (r *SKURepo) Create(sku *entity.SKU) error {
	if sku.ID == "" {
		sku.ID = uuid.New().String()
	}
	query := `
		INSERT INTO skus (id, product_id, code, color, size, price, stock, moq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sku.ID, sku.ProductID, sku.Code, sku.Color, sku.Size,
		sku.Price, sku.Stock, sku.MOQ, sku.CreatedAt, sku.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sku: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *SKURepo) GetByID(id string) (*entity.SKU, error) {
	query := `
		SELECT id, product_id, code, color, size, price, stock, moq, created_at, updated_at
		FROM skus WHERE id = $1`
	var s entity.SKU
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.Code, &s.Color, &s.Size,
		&s.Price, &s.Stock, &s.MOQ, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku: %w", err)
	}
	return &s, nil
}

// GetByCode obtiene una variante por código.
func (r *SKURepo) GetByCode(code string) (*entity.SKU, error) {
	query := `
		SELECT id, product_id, code, color, size, price, stock, moq, created_at, updated_at
		FROM skus WHERE code = $1`
	var s entity.SKU
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&s.ID, &s.ProductID, &s.Code, &s.Color, &s.Size,
		&s.Price, &s.Stock, &s.MOQ, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku by code: %w", err)
	}
	return &s, nil
}

// Update actualiza precio y MOQ de la variante. El stock no se toca aquí:
// solo lo mutan DecrementStockIfAvailable e IncrementStock.
func (r *SKURepo) Update(sku *entity.SKU) error {
	query := `
		UPDATE skus SET color = $2, size = $3, price = $4, moq = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sku.ID, sku.Color, sku.Size, sku.Price, sku.MOQ, sku.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sku: %w", err)
	}
	return nil
}

// ListByProduct lista las variantes de un producto.
func (r *SKURepo) ListByProduct(productID string) ([]*entity.SKU, error) {
	query := `
		SELECT id, product_id, code, color, size, price, stock, moq, created_at, updated_at
		FROM skus WHERE product_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.SKU
	for rows.Next() {
		var s entity.SKU
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Code, &s.Color, &s.Size,
			&s.Price, &s.Stock, &s.MOQ, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DecrementStockIfAvailable descuenta quantity en una sola sentencia condicional.
// El WHERE stock >= quantity hace que el chequeo y el decremento sean una unidad
// atómica serializada por el lock de fila de PostgreSQL: de N transacciones
// compitiendo por el mismo SKU, solo las que observan stock suficiente afectan
// la fila. Cero filas afectadas = stock insuficiente (o SKU inexistente).
func (r *SKURepo) DecrementStockIfAvailable(skuID string, quantity int64) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE skus SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		skuID, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// IncrementStock restaura quantity unidades (cancelación de pedido o reposición).
func (r *SKURepo) IncrementStock(skuID string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE skus SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		skuID, quantity,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSKUNotFound
	}
	return nil
}
