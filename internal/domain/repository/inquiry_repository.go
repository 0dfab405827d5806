package repository

import (
	"time"

	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// InquiryRepository define el puerto de persistencia para Inquiry (RFQ).
type InquiryRepository interface {
	Create(inquiry *entity.Inquiry) error
	CreateItem(item *entity.InquiryItem) error
	GetByID(id string) (*entity.Inquiry, error)
	GetItemsByInquiryID(inquiryID string) ([]*entity.InquiryItem, error)
	UpdateStatus(inquiryID, status string, updatedAt time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Inquiry, error)
}

// QuoteRepository define el puerto de persistencia para Quote.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	GetByInquiryID(inquiryID string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	UpdateStatus(quoteID, status string, updatedAt time.Time) error
}
