package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mayorista-api/internal/application/dto"
	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
)

const (
	buyerCompanyID = "11111111-1111-1111-1111-111111111111"
	buyerUserID    = "22222222-2222-2222-2222-222222222222"
)

// newPlaceFixture arma un caso de uso de colocación con store en memoria,
// captura de eventos e idempotencia en memoria.
func newPlaceFixture() (*memStore, *orders.PlaceOrderUseCase, *capturedEvents, *memIdemStore) {
	store := newMemStore()
	events := &capturedEvents{}
	idem := newMemIdemStore()
	uc := orders.NewPlaceOrderUseCase(
		memTxRunner{store},
		lockedSKURepo{store},
		lockedProductRepo{store},
		lockedOrderRepo{store},
		idem,
		events,
		nil,
	)
	return store, uc, events, idem
}

func seedCatalog(store *memStore, skuID string, price string, stock, moq int64) {
	store.seedProduct(&entity.Product{
		ID:   "prod-" + skuID,
		Code: "P-" + skuID,
		Name: "Camisa Oxford",
	})
	store.seedSKU(&entity.SKU{
		ID:        skuID,
		ProductID: "prod-" + skuID,
		Code:      "SKU-" + skuID,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		MOQ:       moq,
	})
}

func placeReq(items ...dto.PlaceOrderItem) dto.PlaceOrderRequest {
	return dto.PlaceOrderRequest{Items: items}
}

// ──────────────────────────────────────────────────────────────────────────────
// Colocación exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_Exitoso_ReservaStockYCalculaTotal(t *testing.T) {
	store, uc, events, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "100.50", 10, 0)
	seedCatalog(store, "sku-b", "25.00", 5, 0)

	out, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 3},
		dto.PlaceOrderItem{SKUID: "sku-b", Quantity: 2},
	))
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.OrderStatusPendingPayment, out.Status)
	assert.Equal(t, buyerCompanyID, out.CompanyID)
	require.Len(t, out.Items, 2)
	// total = 3×100.50 + 2×25.00 = 351.50
	assert.True(t, decimal.RequireFromString("351.50").Equal(out.Total),
		"total esperado 351.50, obtenido %s", out.Total)

	assert.Equal(t, int64(7), store.stockOf("sku-a"), "stock de sku-a debe quedar en 7")
	assert.Equal(t, int64(3), store.stockOf("sku-b"), "stock de sku-b debe quedar en 3")

	created := events.byType(orders.EventOrderCreated)
	require.Len(t, created, 1, "debe publicarse un evento order.created")
	assert.Equal(t, out.ID, created[0].OrderID)
}

func TestPlaceOrder_PrecioDelCatalogo_IgnoraPrecioDelCliente(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "200.00", 10, 0)

	// El cliente manda un precio regalado; el backend debe ignorarlo.
	out, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 2, UnitPrice: decimal.RequireFromString("0.01"), ProductName: "Gratis"},
	))
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, decimal.RequireFromString("200.00").Equal(out.Items[0].UnitPrice),
		"el precio unitario debe salir del catálogo")
	assert.True(t, decimal.RequireFromString("400.00").Equal(out.Total))
	assert.Equal(t, "Camisa Oxford", out.Items[0].ProductName,
		"el nombre del producto debe salir del catálogo, no del cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones previas (nunca tocan stock)
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_CantidadInvalida(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 10, 0)

	for _, qty := range []int64{0, -1, -100} {
		_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
			dto.PlaceOrderItem{SKUID: "sku-a", Quantity: qty},
		))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
	assert.Equal(t, int64(10), store.stockOf("sku-a"), "el stock no debe cambiar")
	assert.Equal(t, 0, store.orderCount())
}

func TestPlaceOrder_SKUInexistente(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 10, 0)

	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 1},
		dto.PlaceOrderItem{SKUID: "sku-fantasma", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)
	assert.Equal(t, int64(10), store.stockOf("sku-a"))
	assert.Equal(t, 0, store.orderCount())
}

func TestPlaceOrder_PorDebajoDelMOQ(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 100, 12) // cajas de 12

	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 5},
	))
	assert.ErrorIs(t, err, domain.ErrBelowMinimumOrderQuantity)

	// Exactamente el MOQ sí pasa.
	_, err = uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 12},
	))
	assert.NoError(t, err)
}

func TestPlaceOrder_LineasDuplicadas(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 10, 0)

	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 1},
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 2},
	))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el mismo SKU en dos líneas debe rechazarse")
}

func TestPlaceOrder_SinLineas(t *testing.T) {
	_, uc, _, _ := newPlaceFixture()
	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_SinAutenticacion(t *testing.T) {
	_, uc, _, _ := newPlaceFixture()
	_, err := uc.PlaceOrder(context.Background(), "", "", placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad multi-línea
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_AtomicidadMultilinea_NadaCambiaSiUnaLineaFalla(t *testing.T) {
	store, uc, events, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 10, 0)
	seedCatalog(store, "sku-b", "20.00", 1, 0) // insuficiente para 5

	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 4},
		dto.PlaceOrderItem{SKUID: "sku-b", Quantity: 5},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea ya había decrementado dentro de la tx: el rollback
	// debe devolverlo todo.
	assert.Equal(t, int64(10), store.stockOf("sku-a"), "el stock de la línea que sí alcanzaba debe restaurarse")
	assert.Equal(t, int64(1), store.stockOf("sku-b"))
	assert.Equal(t, 0, store.orderCount(), "no deben existir pedidos parciales")
	assert.Empty(t, events.byType(orders.EventOrderCreated), "un pedido fallido no publica eventos")
}

func TestPlaceOrder_StockInsuficiente_UnaSolaLinea(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 3, 0)

	_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 4},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), store.stockOf("sku-a"))

	// Pedir exactamente el stock disponible sí pasa y deja 0.
	_, err = uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 3},
	))
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.stockOf("sku-a"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: nunca sobrevender
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_NoOversell_Concurrente(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-hot", "99.99", 1, 0) // una sola unidad

	const n = 100
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
				dto.PlaceOrderItem{SKUID: "sku-hot", Quantity: 1},
			))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case err == domain.ErrInsufficientStock:
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una petición debe ganar la unidad")
	assert.Equal(t, n-1, insufficient, "el resto debe fallar con stock insuficiente")
	assert.Equal(t, int64(0), store.stockOf("sku-hot"))
	assert.Equal(t, 1, store.orderCount())
}

func TestPlaceOrder_NoOversell_StockRepartidoEntreGanadores(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	// stock 10, cada pedido pide 3: deben ganar exactamente 3 pedidos (queda 1).
	seedCatalog(store, "sku-lote", "10.00", 10, 0)

	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
				dto.PlaceOrderItem{SKUID: "sku-lote", Quantity: 3},
			))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 3, ok, "con stock 10 y pedidos de 3, ganan exactamente 3")
	assert.Equal(t, int64(1), store.stockOf("sku-lote"), "queda el residuo que no alcanza para otro pedido")
	assert.Equal(t, 3, store.orderCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia por external_id
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_Idempotencia_MismoExternalIDNoReservaDosVeces(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "50.00", 10, 0)

	req := dto.PlaceOrderRequest{
		ExternalID: "po-cliente-001",
		Items:      []dto.PlaceOrderItem{{SKUID: "sku-a", Quantity: 2}},
	}
	first, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(8), store.stockOf("sku-a"))

	second, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "la repetición debe devolver el mismo pedido")
	assert.Equal(t, int64(8), store.stockOf("sku-a"), "el stock no debe decrementarse de nuevo")
	assert.Equal(t, 1, store.orderCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Cache de estado para polling
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrderStatus_CacheYFallback(t *testing.T) {
	store := newMemStore()
	cache := newMemStatusCache()
	uc := orders.NewPlaceOrderUseCase(
		memTxRunner{store},
		lockedSKURepo{store},
		lockedProductRepo{store},
		lockedOrderRepo{store},
		nil,
		nil,
		cache,
	)
	seedCatalog(store, "sku-a", "10.00", 10, 0)

	out, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 1},
	))
	require.NoError(t, err)

	// Post-commit el estado queda cacheado.
	cached, ok := cache.GetStatus(context.Background(), out.ID)
	require.True(t, ok)
	assert.Equal(t, entity.OrderStatusPendingPayment, cached)

	// Vía rápida administrativa: responde desde el cache.
	status, err := uc.GetOrderStatus(context.Background(), "", out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPendingPayment, status)

	// Comprador: siempre valida pertenencia contra la BD.
	status, err = uc.GetOrderStatus(context.Background(), buyerCompanyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPendingPayment, status)

	_, err = uc.GetOrderStatus(context.Background(), "33333333-3333-3333-3333-333333333333", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetOrderStatus(context.Background(), buyerCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta y scoping por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_ScopingPorEmpresa(t *testing.T) {
	store, uc, _, _ := newPlaceFixture()
	seedCatalog(store, "sku-a", "10.00", 10, 0)

	out, err := uc.PlaceOrder(context.Background(), buyerCompanyID, buyerUserID, placeReq(
		dto.PlaceOrderItem{SKUID: "sku-a", Quantity: 1},
	))
	require.NoError(t, err)

	// La empresa dueña sí puede leerlo.
	got, err := uc.GetOrder(context.Background(), buyerCompanyID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)

	// Otra empresa no.
	_, err = uc.GetOrder(context.Background(), "33333333-3333-3333-3333-333333333333", out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Acceso administrativo (sin scoping) sí.
	_, err = uc.GetOrder(context.Background(), "", out.ID)
	assert.NoError(t, err)

	// Pedido inexistente.
	_, err = uc.GetOrder(context.Background(), buyerCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
