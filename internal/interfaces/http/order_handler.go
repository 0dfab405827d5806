package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

// OrderHandler maneja colocación, consulta y cancelación de pedidos.
type OrderHandler struct {
	placeUC  *orders.PlaceOrderUseCase
	cancelUC *orders.CancelOrderUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(placeUC *orders.PlaceOrderUseCase, cancelUC *orders.CancelOrderUseCase) *OrderHandler {
	return &OrderHandler{placeUC: placeUC, cancelUC: cancelUC}
}

// Place godoc
// @Summary      Colocar pedido reservando stock
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "líneas del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.placeUC.PlaceOrder(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Consultar un pedido con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.placeUC.GetOrder(c.UserContext(), scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos de la empresa
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.placeUC.ListOrders(c.UserContext(), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// GetStatus godoc
// @Summary      Consultar solo el estado de un pedido (polling)
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [get]
func (h *OrderHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.placeUC.GetOrderStatus(c.UserContext(), scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"order_id": c.Params("id"), "status": status})
}

// Cancel godoc
// @Summary      Cancelar pedido restaurando stock
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.cancelUC.Cancel(c.UserContext(), scopeCompanyID(c), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Avanzar estado de un pedido (solo admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "order id"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	switch in.Status {
	case entity.OrderStatusProcessing, entity.OrderStatusShipped, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}
	out, err := h.cancelUC.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// scopeCompanyID devuelve "" para admin (sin scoping de empresa) y el
// company_id del token para compradores.
func scopeCompanyID(c *fiber.Ctx) string {
	if GetRole(c) == entity.RoleAdmin {
		return ""
	}
	return GetCompanyID(c)
}

// orderError traduce errores de dominio del motor de pedidos a HTTP.
func orderError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida: debe ser >= 1"})
	case domain.ErrBelowMinimumOrderQuantity:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BELOW_MOQ", Message: "cantidad por debajo del mínimo de pedido del SKU"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "petición inválida"})
	case domain.ErrSKUNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SKU_NOT_FOUND", Message: "el SKU no existe"})
	case domain.ErrOrderNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "el pedido no existe"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para una o más líneas"})
	case domain.ErrAlreadyCancelled:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CANCELLED", Message: "el pedido ya fue cancelado"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "el estado actual no permite esta transición"})
	case domain.ErrTransactionAborted:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_ABORTED", Message: "conflicto de concurrencia, reintente la operación"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el pedido pertenece a otra empresa"})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
