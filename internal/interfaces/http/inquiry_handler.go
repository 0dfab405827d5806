package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/inquiry"
	"github.com/jhoicas/Mayorista-api/internal/domain"
)

// InquiryHandler maneja consultas de cotización y cotizaciones.
type InquiryHandler struct {
	uc *inquiry.InquiryUseCase
}

// NewInquiryHandler construye el handler de consultas.
func NewInquiryHandler(uc *inquiry.InquiryUseCase) *InquiryHandler {
	return &InquiryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear consulta de cotización
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInquiryRequest  true  "líneas de la consulta"
// @Success      201   {object}  dto.InquiryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inquiries [post]
func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInquiryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateInquiry(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return inquiryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar una consulta con sus líneas
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "inquiry id"
// @Success      200  {object}  dto.InquiryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id} [get]
func (h *InquiryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetInquiry(scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return inquiryError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar consultas de la empresa
// @Tags         inquiries
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.InquiryListResponse
// @Router       /api/inquiries [get]
func (h *InquiryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.ListInquiries(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return inquiryError(c, err)
	}
	return c.JSON(out)
}

// CreateQuote godoc
// @Summary      Responder una consulta con una cotización (solo admin)
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "inquiry id"
// @Param        body  body  dto.CreateQuoteRequest  true  "líneas cotizadas"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id}/quote [post]
func (h *InquiryHandler) CreateQuote(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateQuote(c.Params("id"), in)
	if err != nil {
		return inquiryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetQuote godoc
// @Summary      Consultar la cotización de una consulta
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "inquiry id"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inquiries/{id}/quote [get]
func (h *InquiryHandler) GetQuote(c *fiber.Ctx) error {
	out, err := h.uc.GetQuote(scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return inquiryError(c, err)
	}
	return c.JSON(out)
}

// AcceptQuote godoc
// @Summary      Aceptar una cotización (cierra la consulta, no reserva stock)
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "quote id"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/accept [post]
func (h *InquiryHandler) AcceptQuote(c *fiber.Ctx) error {
	out, err := h.uc.AcceptQuote(scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return inquiryError(c, err)
	}
	return c.JSON(out)
}

// RejectQuote godoc
// @Summary      Rechazar una cotización (reabre la consulta)
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "quote id"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/reject [post]
func (h *InquiryHandler) RejectQuote(c *fiber.Ctx) error {
	out, err := h.uc.RejectQuote(scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return inquiryError(c, err)
	}
	return c.JSON(out)
}

// inquiryError traduce errores de dominio de consultas a HTTP.
func inquiryError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput, domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "petición inválida"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la consulta o cotización no existe"})
	case domain.ErrSKUNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SKU_NOT_FOUND", Message: "el SKU no existe"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el estado actual no permite esta operación"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la consulta pertenece a otra empresa"})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
