package orders

import (
	"context"
	"time"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// CancelOrderUseCase cancela pedidos restaurando el stock reservado
// (compensación estilo saga: un incremento explícito, no un rollback del
// lenguaje) y avanza estados administrativos.
type CancelOrderUseCase struct {
	txRunner    TxRunner
	events      EventPublisher // opcional
	statusCache StatusCache    // opcional
}

// NewCancelOrderUseCase construye el caso de uso. events y statusCache pueden ser nil.
func NewCancelOrderUseCase(txRunner TxRunner, events EventPublisher, statusCache StatusCache) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner, events: events, statusCache: statusCache}
}

// Cancel transiciona el pedido a CANCELLED y devuelve a cada SKU la cantidad
// de su línea, todo en una transacción. Idempotente por pedido: el chequeo de
// estado actual se hace con la fila bloqueada (SELECT FOR UPDATE), así que un
// pedido ya cancelado retorna ErrAlreadyCancelled y nunca restaura dos veces.
// Si la restauración de cualquier línea falla, la cancelación completa falla
// y ni el estado ni el stock cambian.
//
// companyID vacío = cancelación administrativa sin scoping de empresa.
func (uc *CancelOrderUseCase) Cancel(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	var order *entity.Order
	var items []*entity.OrderItem

	err := uc.txRunner.Run(ctx, func(
		skuRepo repository.SKURepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if companyID != "" && order.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if order.Status == entity.OrderStatusCancelled {
			return domain.ErrAlreadyCancelled
		}
		if !entity.CanTransition(order.Status, entity.OrderStatusCancelled) {
			return domain.ErrConflict // SHIPPED/COMPLETED ya no se cancelan
		}
		items, err = orderRepo.GetItemsByOrderID(orderID)
		if err != nil {
			return err
		}
		// Compensación: devolver exactamente la cantidad reservada por línea.
		for _, it := range items {
			if err := skuRepo.IncrementStock(it.SKUID, it.Quantity); err != nil {
				return err
			}
		}
		now := time.Now()
		if err := orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled, now); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelled
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.statusCache != nil {
		uc.statusCache.SetStatus(ctx, order.ID, order.Status)
	}
	if uc.events != nil {
		uc.events.PublishOrderEvent(ctx, newOrderEvent(EventOrderCancelled, order, items))
	}
	return toOrderResponse(order, items), nil
}

// UpdateStatus avanza el estado de un pedido (flujo administrativo).
// CANCELLED delega en Cancel para que la compensación de stock nunca se omita;
// las transiciones hacia adelante no tocan stock.
func (uc *CancelOrderUseCase) UpdateStatus(ctx context.Context, orderID, newStatus string) (*dto.OrderResponse, error) {
	if newStatus == entity.OrderStatusCancelled {
		return uc.Cancel(ctx, "", orderID)
	}
	var order *entity.Order

	err := uc.txRunner.Run(ctx, func(
		_ repository.SKURepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if !entity.CanTransition(order.Status, newStatus) {
			return domain.ErrConflict
		}
		now := time.Now()
		if err := orderRepo.UpdateStatus(orderID, newStatus, now); err != nil {
			return err
		}
		order.Status = newStatus
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.statusCache != nil {
		uc.statusCache.SetStatus(ctx, order.ID, order.Status)
	}
	return toOrderResponse(order, nil), nil
}
