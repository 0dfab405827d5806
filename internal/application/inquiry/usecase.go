package inquiry

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// InquiryUseCase gestiona el flujo consulta → cotización → aceptación.
// Nada de este flujo toca stock: aceptar una cotización no reserva unidades,
// el comprador coloca el pedido después por el motor de pedidos.
type InquiryUseCase struct {
	inquiryRepo repository.InquiryRepository
	quoteRepo   repository.QuoteRepository
	skuRepo     repository.SKURepository
}

// NewInquiryUseCase construye el caso de uso de consultas.
func NewInquiryUseCase(inquiryRepo repository.InquiryRepository, quoteRepo repository.QuoteRepository, skuRepo repository.SKURepository) *InquiryUseCase {
	return &InquiryUseCase{inquiryRepo: inquiryRepo, quoteRepo: quoteRepo, skuRepo: skuRepo}
}

// CreateInquiry registra una consulta de cotización del comprador. Valida que
// cada línea refiera un SKU existente y cantidad positiva; no aplica MOQ, una
// consulta por debajo del mínimo es justamente el caso de negociar precio.
func (uc *InquiryUseCase) CreateInquiry(companyID, userID string, in dto.CreateInquiryRequest) (*dto.InquiryResponse, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		sku, err := uc.skuRepo.GetByID(item.SKUID)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			return nil, domain.ErrSKUNotFound
		}
	}
	now := time.Now()
	inquiry := &entity.Inquiry{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Status:    entity.InquiryStatusOpen,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}
	items := make([]*entity.InquiryItem, 0, len(in.Items))
	for _, item := range in.Items {
		it := &entity.InquiryItem{
			ID:          uuid.New().String(),
			InquiryID:   inquiry.ID,
			SKUID:       item.SKUID,
			Quantity:    item.Quantity,
			TargetPrice: item.TargetPrice,
		}
		if err := uc.inquiryRepo.CreateItem(it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return toInquiryResponse(inquiry, items), nil
}

// GetInquiry obtiene una consulta con sus líneas, con scoping por empresa.
// companyID vacío = acceso administrativo.
func (uc *InquiryUseCase) GetInquiry(companyID, inquiryID string) (*dto.InquiryResponse, error) {
	inquiry, err := uc.inquiryRepo.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, domain.ErrNotFound
	}
	if companyID != "" && inquiry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.inquiryRepo.GetItemsByInquiryID(inquiryID)
	if err != nil {
		return nil, err
	}
	return toInquiryResponse(inquiry, items), nil
}

// ListInquiries lista las consultas de una empresa con paginación (sin líneas).
func (uc *InquiryUseCase) ListInquiries(companyID string, limit, offset int) (*dto.InquiryListResponse, error) {
	list, err := uc.inquiryRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InquiryResponse, 0, len(list))
	for _, inq := range list {
		items = append(items, *toInquiryResponse(inq, nil))
	}
	return &dto.InquiryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// CreateQuote responde una consulta OPEN con una cotización (flujo admin).
// Transiciona la consulta a QUOTED; una consulta ya cotizada o cerrada
// devuelve ErrConflict.
func (uc *InquiryUseCase) CreateQuote(inquiryID string, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	inquiry, err := uc.inquiryRepo.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, domain.ErrNotFound
	}
	if inquiry.Status != entity.InquiryStatusOpen {
		return nil, domain.ErrConflict
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.QuotedPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		sku, err := uc.skuRepo.GetByID(item.SKUID)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			return nil, domain.ErrSKUNotFound
		}
	}
	now := time.Now()
	quote := &entity.Quote{
		ID:         uuid.New().String(),
		InquiryID:  inquiryID,
		Status:     entity.QuoteStatusSent,
		ValidUntil: in.ValidUntil,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.quoteRepo.Create(quote); err != nil {
		return nil, err
	}
	items := make([]*entity.QuoteItem, 0, len(in.Items))
	for _, item := range in.Items {
		it := &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			SKUID:       item.SKUID,
			Quantity:    item.Quantity,
			QuotedPrice: item.QuotedPrice,
		}
		if err := uc.quoteRepo.CreateItem(it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := uc.inquiryRepo.UpdateStatus(inquiryID, entity.InquiryStatusQuoted, now); err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// GetQuote obtiene la cotización de una consulta, con scoping por empresa.
func (uc *InquiryUseCase) GetQuote(companyID, inquiryID string) (*dto.QuoteResponse, error) {
	inquiry, err := uc.inquiryRepo.GetByID(inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, domain.ErrNotFound
	}
	if companyID != "" && inquiry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	quote, err := uc.quoteRepo.GetByInquiryID(inquiryID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItemsByQuoteID(quote.ID)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// AcceptQuote acepta una cotización SENT (comprador dueño de la consulta) y
// cierra la consulta. Una cotización vencida o no SENT devuelve ErrConflict.
func (uc *InquiryUseCase) AcceptQuote(companyID, quoteID string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	inquiry, err := uc.inquiryRepo.GetByID(quote.InquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, domain.ErrNotFound
	}
	if companyID != "" && inquiry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if quote.Status != entity.QuoteStatusSent {
		return nil, domain.ErrConflict
	}
	if !quote.ValidUntil.IsZero() && time.Now().After(quote.ValidUntil) {
		return nil, domain.ErrConflict // cotización vencida
	}
	now := time.Now()
	if err := uc.quoteRepo.UpdateStatus(quoteID, entity.QuoteStatusAccepted, now); err != nil {
		return nil, err
	}
	if err := uc.inquiryRepo.UpdateStatus(quote.InquiryID, entity.InquiryStatusClosed, now); err != nil {
		return nil, err
	}
	quote.Status = entity.QuoteStatusAccepted
	quote.UpdatedAt = now
	items, err := uc.quoteRepo.GetItemsByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// RejectQuote rechaza una cotización SENT y reabre la consulta para una nueva oferta.
func (uc *InquiryUseCase) RejectQuote(companyID, quoteID string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	inquiry, err := uc.inquiryRepo.GetByID(quote.InquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry == nil {
		return nil, domain.ErrNotFound
	}
	if companyID != "" && inquiry.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if quote.Status != entity.QuoteStatusSent {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	if err := uc.quoteRepo.UpdateStatus(quoteID, entity.QuoteStatusRejected, now); err != nil {
		return nil, err
	}
	if err := uc.inquiryRepo.UpdateStatus(quote.InquiryID, entity.InquiryStatusOpen, now); err != nil {
		return nil, err
	}
	quote.Status = entity.QuoteStatusRejected
	quote.UpdatedAt = now
	items, err := uc.quoteRepo.GetItemsByQuoteID(quoteID)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

func toInquiryResponse(inq *entity.Inquiry, items []*entity.InquiryItem) *dto.InquiryResponse {
	resp := &dto.InquiryResponse{
		ID:        inq.ID,
		CompanyID: inq.CompanyID,
		UserID:    inq.UserID,
		Status:    inq.Status,
		Note:      inq.Note,
		Items:     make([]dto.InquiryItemResponse, 0, len(items)),
		CreatedAt: inq.CreatedAt,
		UpdatedAt: inq.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InquiryItemResponse{
			ID:          it.ID,
			SKUID:       it.SKUID,
			Quantity:    it.Quantity,
			TargetPrice: it.TargetPrice,
		})
	}
	return resp
}

func toQuoteResponse(q *entity.Quote, items []*entity.QuoteItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:         q.ID,
		InquiryID:  q.InquiryID,
		Status:     q.Status,
		ValidUntil: q.ValidUntil,
		Items:      make([]dto.QuoteItemResponse, 0, len(items)),
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuoteItemResponse{
			ID:          it.ID,
			SKUID:       it.SKUID,
			Quantity:    it.Quantity,
			QuotedPrice: it.QuotedPrice,
		})
	}
	return resp
}
