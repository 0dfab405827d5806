package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

var _ repository.InquiryRepository = (*InquiryRepo)(nil)
var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// InquiryRepo implementación de InquiryRepository sobre PostgreSQL.
type InquiryRepo struct {
	q Querier
}

// NewInquiryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInquiryRepository(q Querier) *InquiryRepo {
	return &InquiryRepo{q: q}
}

// Create persiste la cabecera de la consulta.
func (r *InquiryRepo) Create(inquiry *entity.Inquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inquiries (id, company_id, user_id, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		inquiry.ID, inquiry.CompanyID, inquiry.UserID, inquiry.Status,
		inquiry.Note, inquiry.CreatedAt, inquiry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la consulta.
func (r *InquiryRepo) CreateItem(item *entity.InquiryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inquiry_items (id, inquiry_id, sku_id, quantity, target_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InquiryID, item.SKUID, item.Quantity, item.TargetPrice,
	)
	if err != nil {
		return fmt.Errorf("insert inquiry item: %w", err)
	}
	return nil
}

// GetByID obtiene una consulta por ID.
func (r *InquiryRepo) GetByID(id string) (*entity.Inquiry, error) {
	query := `
		SELECT id, company_id, user_id, status, note, created_at, updated_at
		FROM inquiries WHERE id = $1`
	var iq entity.Inquiry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&iq.ID, &iq.CompanyID, &iq.UserID, &iq.Status, &iq.Note,
		&iq.CreatedAt, &iq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return &iq, nil
}

// GetItemsByInquiryID obtiene las líneas de una consulta.
func (r *InquiryRepo) GetItemsByInquiryID(inquiryID string) ([]*entity.InquiryItem, error) {
	query := `
		SELECT id, inquiry_id, sku_id, quantity, target_price
		FROM inquiry_items WHERE inquiry_id = $1`
	rows, err := r.q.Query(context.Background(), query, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("list inquiry items: %w", err)
	}
	defer rows.Close()
	var items []*entity.InquiryItem
	for rows.Next() {
		var it entity.InquiryItem
		if err := rows.Scan(&it.ID, &it.InquiryID, &it.SKUID, &it.Quantity, &it.TargetPrice); err != nil {
			return nil, fmt.Errorf("scan inquiry item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus actualiza el estado de la consulta.
func (r *InquiryRepo) UpdateStatus(inquiryID, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inquiries SET status = $2, updated_at = $3 WHERE id = $1`,
		inquiryID, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inquiry status: %w", err)
	}
	return nil
}

// ListByCompany lista consultas de una empresa con paginación.
func (r *InquiryRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Inquiry, error) {
	query := `
		SELECT id, company_id, user_id, status, note, created_at, updated_at
		FROM inquiries WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inquiry
	for rows.Next() {
		var iq entity.Inquiry
		if err := rows.Scan(&iq.ID, &iq.CompanyID, &iq.UserID, &iq.Status, &iq.Note,
			&iq.CreatedAt, &iq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		list = append(list, &iq)
	}
	return list, rows.Err()
}

// QuoteRepo implementación de QuoteRepository sobre PostgreSQL.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create persiste la cabecera de la cotización.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	if quote.ID == "" {
		quote.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotes (id, inquiry_id, status, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.InquiryID, quote.Status, quote.ValidUntil,
		quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea cotizada.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quote_items (id, quote_id, sku_id, quantity, quoted_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.SKUID, item.Quantity, item.QuotedPrice,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	return r.getOne(`
		SELECT id, inquiry_id, status, valid_until, created_at, updated_at
		FROM quotes WHERE id = $1`, id)
}

// GetByInquiryID obtiene la cotización asociada a una consulta.
func (r *QuoteRepo) GetByInquiryID(inquiryID string) (*entity.Quote, error) {
	return r.getOne(`
		SELECT id, inquiry_id, status, valid_until, created_at, updated_at
		FROM quotes WHERE inquiry_id = $1`, inquiryID)
}

func (r *QuoteRepo) getOne(query, arg string) (*entity.Quote, error) {
	var qt entity.Quote
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&qt.ID, &qt.InquiryID, &qt.Status, &qt.ValidUntil, &qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return &qt, nil
}

// GetItemsByQuoteID obtiene las líneas de una cotización.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, sku_id, quantity, quoted_price
		FROM quote_items WHERE quote_id = $1`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var items []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.SKUID, &it.Quantity, &it.QuotedPrice); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus actualiza el estado de la cotización.
func (r *QuoteRepo) UpdateStatus(quoteID, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`,
		quoteID, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}
