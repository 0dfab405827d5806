package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// CatalogUseCase administra el catálogo mayorista: productos base, variantes
// (SKU) y reposición de stock. El stock solo se repone por aquí; la reserva y
// la restauración viven en el motor de pedidos.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	skuRepo     repository.SKURepository
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(productRepo repository.ProductRepository, skuRepo repository.SKURepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, skuRepo: skuRepo}
}

// CreateProduct crea un producto base. Devuelve ErrDuplicate si el código ya existe.
func (uc *CatalogUseCase) CreateProduct(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.productRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// UpdateProduct actualiza parcialmente un producto base (campos no nil).
func (uc *CatalogUseCase) UpdateProduct(productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Attributes != nil {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetProduct obtiene un producto con todas sus variantes.
func (uc *CatalogUseCase) GetProduct(productID string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	skus, err := uc.skuRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, skus), nil
}

// ListProducts lista productos paginados (sin variantes).
func (uc *CatalogUseCase) ListProducts(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteProduct elimina un producto base del catálogo.
func (uc *CatalogUseCase) DeleteProduct(productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(productID)
}

// CreateSKU crea una variante bajo un producto existente con su stock inicial.
func (uc *CatalogUseCase) CreateSKU(productID string, in dto.CreateSKURequest) (*dto.SKUResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.skuRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Stock < 0 || in.MOQ < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sku := &entity.SKU{
		ID:        uuid.New().String(),
		ProductID: productID,
		Code:      in.Code,
		Color:     in.Color,
		Size:      in.Size,
		Price:     in.Price,
		Stock:     in.Stock,
		MOQ:       in.MOQ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.skuRepo.Create(sku); err != nil {
		return nil, err
	}
	return toSKUResponse(sku), nil
}

// UpdateSKU actualiza precio, MOQ o atributos de la variante. El stock nunca
// se edita por aquí: solo pedidos (reserva) y reposiciones (incremento).
func (uc *CatalogUseCase) UpdateSKU(skuID string, in dto.UpdateSKURequest) (*dto.SKUResponse, error) {
	sku, err := uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrSKUNotFound
	}
	if in.Color != nil {
		sku.Color = *in.Color
	}
	if in.Size != nil {
		sku.Size = *in.Size
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		sku.Price = *in.Price
	}
	if in.MOQ != nil {
		if *in.MOQ < 0 {
			return nil, domain.ErrInvalidInput
		}
		sku.MOQ = *in.MOQ
	}
	sku.UpdatedAt = time.Now()
	if err := uc.skuRepo.Update(sku); err != nil {
		return nil, err
	}
	return toSKUResponse(sku), nil
}

// GetSKU obtiene una variante por id.
func (uc *CatalogUseCase) GetSKU(skuID string) (*dto.SKUResponse, error) {
	sku, err := uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrSKUNotFound
	}
	return toSKUResponse(sku), nil
}

// ReplenishStock suma quantity unidades al stock de la variante (ingreso de
// mercancía). Usa el mismo incremento atómico que la cancelación de pedidos.
func (uc *CatalogUseCase) ReplenishStock(skuID string, in dto.ReplenishStockRequest) (*dto.SKUResponse, error) {
	if in.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	sku, err := uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	if sku == nil {
		return nil, domain.ErrSKUNotFound
	}
	if err := uc.skuRepo.IncrementStock(skuID, in.Quantity); err != nil {
		return nil, err
	}
	sku, err = uc.skuRepo.GetByID(skuID)
	if err != nil {
		return nil, err
	}
	return toSKUResponse(sku), nil
}

func toProductResponse(p *entity.Product, skus []*entity.SKU) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, s := range skus {
		resp.SKUs = append(resp.SKUs, *toSKUResponse(s))
	}
	return resp
}

func toSKUResponse(s *entity.SKU) *dto.SKUResponse {
	return &dto.SKUResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Code:      s.Code,
		Color:     s.Color,
		Size:      s.Size,
		Price:     s.Price,
		Stock:     s.Stock,
		MOQ:       s.MOQ,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
