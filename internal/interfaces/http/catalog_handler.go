package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mayorista-api/internal/application/catalog"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
)

// CatalogHandler maneja productos, variantes y reposición de stock.
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto base (solo admin)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "code, name"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
	}
	out, err := h.uc.CreateProduct(in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto base (solo admin)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "product id"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateProduct(c.Params("id"), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// GetProduct godoc
// @Summary      Consultar producto con sus variantes
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "product id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos del catálogo
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListProducts(page.Limit, page.Offset)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Eliminar producto base (solo admin)
// @Tags         catalog
// @Param        id   path  string  true  "product id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSKU godoc
// @Summary      Crear variante de producto (solo admin)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "product id"
// @Param        body  body  dto.CreateSKURequest  true  "code, price, stock, moq"
// @Success      201   {object}  dto.SKUResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/skus [post]
func (h *CatalogHandler) CreateSKU(c *fiber.Ctx) error {
	var in dto.CreateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code es requerido"})
	}
	out, err := h.uc.CreateSKU(c.Params("id"), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSKU godoc
// @Summary      Actualizar precio/MOQ de una variante (solo admin)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "sku id"
// @Param        body  body  dto.UpdateSKURequest  true  "campos a actualizar"
// @Success      200   {object}  dto.SKUResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/skus/{id} [put]
func (h *CatalogHandler) UpdateSKU(c *fiber.Ctx) error {
	var in dto.UpdateSKURequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateSKU(c.Params("id"), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// GetSKU godoc
// @Summary      Consultar una variante
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "sku id"
// @Success      200  {object}  dto.SKUResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/skus/{id} [get]
func (h *CatalogHandler) GetSKU(c *fiber.Ctx) error {
	out, err := h.uc.GetSKU(c.Params("id"))
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// ReplenishStock godoc
// @Summary      Reponer stock de una variante (solo admin)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "sku id"
// @Param        body  body  dto.ReplenishStockRequest  true  "quantity"
// @Success      200   {object}  dto.SKUResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/skus/{id}/replenish [post]
func (h *CatalogHandler) ReplenishStock(c *fiber.Ctx) error {
	var in dto.ReplenishStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReplenishStock(c.Params("id"), in)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// catalogError traduce errores de dominio del catálogo a HTTP.
func catalogError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput, domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "petición inválida"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no existe"})
	case domain.ErrSKUNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SKU_NOT_FOUND", Message: "el SKU no existe"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODE_EXISTS", Message: "el código ya está registrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
