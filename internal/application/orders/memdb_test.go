package orders_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Mayorista-api/internal/application/orders"
	"github.com/jhoicas/Mayorista-api/internal/domain"
	"github.com/jhoicas/Mayorista-api/internal/domain/entity"
	"github.com/jhoicas/Mayorista-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con transacciones reales.
//
// El memStore simula el comportamiento transaccional de Postgres que el motor
// de pedidos necesita: Run toma un lock global (transacciones serializadas),
// trabaja sobre una copia del estado y solo publica la copia si el callback
// termina sin error. Un error descarta la copia completa, igual que un
// ROLLBACK: así los tests de atomicidad y de no-oversell ejercitan el mismo
// contrato que la implementación de pgx.
// ──────────────────────────────────────────────────────────────────────────────

type memData struct {
	skus     map[string]*entity.SKU
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	items    map[string][]*entity.OrderItem // por order_id
}

func newMemData() *memData {
	return &memData{
		skus:     make(map[string]*entity.SKU),
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
		items:    make(map[string][]*entity.OrderItem),
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.skus {
		sku := *v
		c.skus[k] = &sku
	}
	for k, v := range d.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range d.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, list := range d.items {
		cp := make([]*entity.OrderItem, len(list))
		for i, it := range list {
			item := *it
			cp[i] = &item
		}
		c.items[k] = cp
	}
	return c
}

type memStore struct {
	mu   sync.Mutex
	data *memData
}

func newMemStore() *memStore {
	return &memStore{data: newMemData()}
}

// seedSKU inserta una variante directamente en el estado.
func (s *memStore) seedSKU(sku *entity.SKU) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sku
	s.data.skus[sku.ID] = &cp
}

// seedProduct inserta un producto base directamente en el estado.
func (s *memStore) seedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.data.products[p.ID] = &cp
}

// stockOf lee el stock actual de una variante.
func (s *memStore) stockOf(skuID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sku, ok := s.data.skus[skuID]; ok {
		return sku.Stock
	}
	return -1
}

// orderCount cuenta los pedidos persistidos.
func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders)
}

// ── Repos sin lock, atados a un *memData (se usan dentro de una tx) ──────────

type skuData struct{ d *memData }

func (r skuData) Create(sku *entity.SKU) error {
	cp := *sku
	r.d.skus[sku.ID] = &cp
	return nil
}

func (r skuData) GetByID(id string) (*entity.SKU, error) {
	sku, ok := r.d.skus[id]
	if !ok {
		return nil, nil
	}
	cp := *sku
	return &cp, nil
}

func (r skuData) GetByCode(code string) (*entity.SKU, error) {
	for _, sku := range r.d.skus {
		if sku.Code == code {
			cp := *sku
			return &cp, nil
		}
	}
	return nil, nil
}

func (r skuData) Update(sku *entity.SKU) error {
	if _, ok := r.d.skus[sku.ID]; !ok {
		return domain.ErrSKUNotFound
	}
	cp := *sku
	r.d.skus[sku.ID] = &cp
	return nil
}

func (r skuData) ListByProduct(productID string) ([]*entity.SKU, error) {
	var out []*entity.SKU
	for _, sku := range r.d.skus {
		if sku.ProductID == productID {
			cp := *sku
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r skuData) DecrementStockIfAvailable(skuID string, quantity int64) (bool, error) {
	sku, ok := r.d.skus[skuID]
	if !ok || sku.Stock < quantity {
		return false, nil
	}
	sku.Stock -= quantity
	return true, nil
}

func (r skuData) IncrementStock(skuID string, quantity int64) error {
	sku, ok := r.d.skus[skuID]
	if !ok {
		return domain.ErrSKUNotFound
	}
	sku.Stock += quantity
	return nil
}

type orderData struct{ d *memData }

func (r orderData) Create(order *entity.Order) error {
	cp := *order
	r.d.orders[order.ID] = &cp
	return nil
}

func (r orderData) CreateItem(item *entity.OrderItem) error {
	cp := *item
	r.d.items[item.OrderID] = append(r.d.items[item.OrderID], &cp)
	return nil
}

func (r orderData) GetByID(id string) (*entity.Order, error) {
	o, ok := r.d.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

// GetForUpdate: dentro del memStore las transacciones ya están serializadas
// por el lock global, así que equivale a GetByID.
func (r orderData) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r orderData) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	list := r.d.items[orderID]
	out := make([]*entity.OrderItem, len(list))
	for i, it := range list {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r orderData) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	o, ok := r.d.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r orderData) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	var all []*entity.Order
	for _, o := range r.d.orders {
		if o.CompanyID == companyID {
			cp := *o
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

type productData struct{ d *memData }

func (r productData) Create(p *entity.Product) error {
	cp := *p
	r.d.products[p.ID] = &cp
	return nil
}

func (r productData) GetByID(id string) (*entity.Product, error) {
	p, ok := r.d.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r productData) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.d.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r productData) Update(p *entity.Product) error {
	if _, ok := r.d.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.d.products[p.ID] = &cp
	return nil
}

func (r productData) List(limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	for _, p := range r.d.products {
		cp := *p
		all = append(all, &cp)
	}
	return all, nil
}

func (r productData) Delete(id string) error {
	delete(r.d.products, id)
	return nil
}

// ── Repos con lock (acceso fuera de transacción) ─────────────────────────────

type lockedSKURepo struct{ s *memStore }

func (r lockedSKURepo) Create(sku *entity.SKU) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.Create(sku)
}

func (r lockedSKURepo) GetByID(id string) (*entity.SKU, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.GetByID(id)
}

func (r lockedSKURepo) GetByCode(code string) (*entity.SKU, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.GetByCode(code)
}

func (r lockedSKURepo) Update(sku *entity.SKU) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.Update(sku)
}

func (r lockedSKURepo) ListByProduct(productID string) ([]*entity.SKU, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.ListByProduct(productID)
}

func (r lockedSKURepo) DecrementStockIfAvailable(skuID string, quantity int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.DecrementStockIfAvailable(skuID, quantity)
}

func (r lockedSKURepo) IncrementStock(skuID string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return skuData{r.s.data}.IncrementStock(skuID, quantity)
}

type lockedOrderRepo struct{ s *memStore }

func (r lockedOrderRepo) Create(order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.Create(order)
}

func (r lockedOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.CreateItem(item)
}

func (r lockedOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.GetByID(id)
}

func (r lockedOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.GetForUpdate(id)
}

func (r lockedOrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.GetItemsByOrderID(orderID)
}

func (r lockedOrderRepo) UpdateStatus(orderID, status string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.UpdateStatus(orderID, status, updatedAt)
}

func (r lockedOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return orderData{r.s.data}.ListByCompany(companyID, limit, offset)
}

type lockedProductRepo struct{ s *memStore }

func (r lockedProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.Create(p)
}

func (r lockedProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.GetByID(id)
}

func (r lockedProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.GetByCode(code)
}

func (r lockedProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.Update(p)
}

func (r lockedProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.List(limit, offset)
}

func (r lockedProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return productData{r.s.data}.Delete(id)
}

// ── TxRunner en memoria ──────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(
	skuRepo repository.SKURepository,
	orderRepo repository.OrderRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stage := r.s.data.clone()
	if err := fn(skuData{stage}, orderData{stage}); err != nil {
		return err // la copia se descarta: rollback
	}
	r.s.data = stage // commit
	return nil
}

// ── Dobles de eventos e idempotencia ─────────────────────────────────────────

type capturedEvents struct {
	mu     sync.Mutex
	events []orders.OrderEvent
}

func (c *capturedEvents) PublishOrderEvent(_ context.Context, ev orders.OrderEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *capturedEvents) byType(eventType string) []orders.OrderEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []orders.OrderEvent
	for _, ev := range c.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

type memStatusCache struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemStatusCache() *memStatusCache {
	return &memStatusCache{m: make(map[string]string)}
}

func (c *memStatusCache) SetStatus(_ context.Context, orderID, status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[orderID] = status
}

func (c *memStatusCache) GetStatus(_ context.Context, orderID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.m[orderID]
	return s, ok
}

type memIdemStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{m: make(map[string]string)}
}

func (s *memIdemStore) GetOrderID(_ context.Context, externalID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.m[externalID]
	return id, ok, nil
}

func (s *memIdemStore) SaveOrderID(_ context.Context, externalID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[externalID]; !ok {
		s.m[externalID] = orderID
	}
	return nil
}
