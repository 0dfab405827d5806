package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// PlaceOrderUseCase coloca pedidos reservando stock de forma transaccional.
//
// Contrato de concurrencia: con N peticiones concurrentes compitiendo por un
// SKU con stock S, exactamente min(N, S/cantidad) transacciones observan stock
// suficiente y hacen commit; el resto aborta con ErrInsufficientStock y no
// consume stock. El par chequeo+decremento es una sola sentencia condicional
// serializada por la fila del SKU, nunca un read-then-write en este código.
type PlaceOrderUseCase struct {
	txRunner    TxRunner
	skuRepo     repository.SKURepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	idem        IdempotencyStore // opcional (nil = sin idempotencia por external_id)
	events      EventPublisher   // opcional
	statusCache StatusCache      // opcional
}

// NewPlaceOrderUseCase construye el caso de uso. idem, events y statusCache
// pueden ser nil.
func NewPlaceOrderUseCase(
	txRunner TxRunner,
	skuRepo repository.SKURepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	idem IdempotencyStore,
	events EventPublisher,
	statusCache StatusCache,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		txRunner:    txRunner,
		skuRepo:     skuRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		idem:        idem,
		events:      events,
		statusCache: statusCache,
	}
}

// PlaceOrder valida las líneas, reserva stock y crea el pedido en una sola
// transacción. Los precios del cliente se ignoran: cada línea se valora con el
// precio de catálogo vigente al momento del commit.
//
// Orden de validación (todo antes de mutar stock):
//  1. cantidad >= 1 por línea (ErrInvalidQuantity)
//  2. el SKU existe (ErrSKUNotFound)
//  3. cantidad >= MOQ del SKU (ErrBelowMinimumOrderQuantity)
//
// Dentro de la transacción, cualquier línea sin stock suficiente aborta el
// pedido completo: no existen pedidos parciales.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, companyID, userID string, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if companyID == "" || userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Idempotencia: si el external_id ya produjo un pedido, devolverlo sin
	// volver a reservar stock. Best-effort: si Redis falla se continúa.
	if in.ExternalID != "" && uc.idem != nil {
		if orderID, found, err := uc.idem.GetOrderID(ctx, in.ExternalID); err == nil && found {
			return uc.GetOrder(ctx, companyID, orderID)
		}
	}

	// Validación previa, solo lectura: nada de esto toca stock.
	productNames := make(map[string]string, len(in.Items))
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		if seen[item.SKUID] {
			return nil, domain.ErrInvalidInput // SKU repetido: el cliente debe consolidar líneas
		}
		seen[item.SKUID] = true

		sku, err := uc.skuRepo.GetByID(item.SKUID)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			return nil, domain.ErrSKUNotFound
		}
		if sku.MOQ > 0 && item.Quantity < sku.MOQ {
			return nil, domain.ErrBelowMinimumOrderQuantity
		}
		name := sku.Code
		if product, err := uc.productRepo.GetByID(sku.ProductID); err == nil && product != nil {
			name = product.Name
		}
		productNames[item.SKUID] = name
	}

	now := time.Now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		UserID:     userID,
		Status:     entity.OrderStatusPendingPayment,
		ExternalID: in.ExternalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var items []*entity.OrderItem

	// Inicia transacción; Commit si todas las líneas reservan, Rollback si
	// cualquiera falla (TxRunner.Run lo garantiza).
	err := uc.txRunner.Run(ctx, func(
		skuRepo repository.SKURepository,
		orderRepo repository.OrderRepository,
	) error {
		items = items[:0]
		total := decimal.Zero
		for _, item := range in.Items {
			// Releer el SKU dentro de la tx: el precio almacenado es el
			// vigente al momento del commit, no el que envió el cliente.
			sku, err := skuRepo.GetByID(item.SKUID)
			if err != nil {
				return err
			}
			if sku == nil {
				return domain.ErrSKUNotFound
			}
			ok, err := skuRepo.DecrementStockIfAvailable(sku.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
			subtotal := sku.Price.Mul(decimal.NewFromInt(item.Quantity))
			items = append(items, &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				SKUID:       sku.ID,
				ProductName: productNames[sku.ID],
				Quantity:    item.Quantity,
				UnitPrice:   sku.Price,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}
		order.Total = total
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, it := range items {
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit, best-effort: idempotencia, cache de estado y evento.
	if in.ExternalID != "" && uc.idem != nil {
		_ = uc.idem.SaveOrderID(ctx, in.ExternalID, order.ID)
	}
	if uc.statusCache != nil {
		uc.statusCache.SetStatus(ctx, order.ID, order.Status)
	}
	if uc.events != nil {
		uc.events.PublishOrderEvent(ctx, newOrderEvent(EventOrderCreated, order, items))
	}
	return toOrderResponse(order, items), nil
}

// GetOrder obtiene un pedido con sus líneas, validando la pertenencia a la empresa.
// companyID vacío = acceso administrativo sin scoping.
func (uc *PlaceOrderUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if companyID != "" && order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.GetItemsByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// GetOrderStatus devuelve solo el estado de un pedido, para polling barato.
// La vía rápida por cache se reserva al acceso administrativo (companyID
// vacío); los compradores siempre pasan por la BD para validar pertenencia.
func (uc *PlaceOrderUseCase) GetOrderStatus(ctx context.Context, companyID, orderID string) (string, error) {
	if companyID == "" && uc.statusCache != nil {
		if status, ok := uc.statusCache.GetStatus(ctx, orderID); ok {
			return status, nil
		}
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrOrderNotFound
	}
	if companyID != "" && order.CompanyID != companyID {
		return "", domain.ErrForbidden
	}
	if uc.statusCache != nil {
		uc.statusCache.SetStatus(ctx, order.ID, order.Status)
	}
	return order.Status, nil
}

// ListOrders lista los pedidos de una empresa con paginación (sin líneas).
func (uc *PlaceOrderUseCase) ListOrders(ctx context.Context, companyID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         order.ID,
		CompanyID:  order.CompanyID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		ExternalID: order.ExternalID,
		Items:      make([]dto.OrderItemResponse, 0, len(items)),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID,
			SKUID:       it.SKUID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
