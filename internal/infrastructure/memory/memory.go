// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Sirve como backend de desarrollo cuando no hay DATABASE_URL y como
// doble de prueba: Run toma un lock global y restaura un snapshot ante error,
// con la misma semántica todo-o-nada que la transacción de Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/uow"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// Store contenedor de todos los agregados. Los valores se guardan por copia:
// el llamador nunca recibe punteros al estado interno.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type dataset struct {
	products    map[string]entity.Product
	productSKUs map[string]string // sku -> id

	batches    map[string]entity.InventoryBatch
	batchOrder []string // orden de inserción, desempate FIFO

	movements []entity.StockMovement

	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	ledger    []entity.LedgerEntry

	sales     map[string]entity.Sale
	saleItems map[string][]entity.SaleItem

	orders      map[string]entity.PurchaseOrder
	orderItems  map[string][]entity.PurchaseOrderItem
	itemToOrder map[string]string

	supplies    map[string]entity.Supply
	supplyItems map[string][]entity.SupplyItem
}

func newDataset() *dataset {
	return &dataset{
		products:    make(map[string]entity.Product),
		productSKUs: make(map[string]string),
		batches:     make(map[string]entity.InventoryBatch),
		customers:   make(map[string]entity.Customer),
		suppliers:   make(map[string]entity.Supplier),
		sales:       make(map[string]entity.Sale),
		saleItems:   make(map[string][]entity.SaleItem),
		orders:      make(map[string]entity.PurchaseOrder),
		orderItems:  make(map[string][]entity.PurchaseOrderItem),
		itemToOrder: make(map[string]string),
		supplies:    make(map[string]entity.Supply),
		supplyItems: make(map[string][]entity.SupplyItem),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.productSKUs {
		c.productSKUs[k] = v
	}
	for k, v := range d.batches {
		c.batches[k] = v
	}
	c.batchOrder = append([]string(nil), d.batchOrder...)
	c.movements = append([]entity.StockMovement(nil), d.movements...)
	for k, v := range d.customers {
		c.customers[k] = v
	}
	for k, v := range d.suppliers {
		c.suppliers[k] = v
	}
	c.ledger = append([]entity.LedgerEntry(nil), d.ledger...)
	for k, v := range d.sales {
		c.sales[k] = v
	}
	for k, v := range d.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.orderItems {
		c.orderItems[k] = append([]entity.PurchaseOrderItem(nil), v...)
	}
	for k, v := range d.itemToOrder {
		c.itemToOrder[k] = v
	}
	for k, v := range d.supplies {
		c.supplies[k] = v
	}
	for k, v := range d.supplyItems {
		c.supplyItems[k] = append([]entity.SupplyItem(nil), v...)
	}
	return c
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Run ejecuta fn con semántica transaccional: lock global durante toda la
// unidad de trabajo y, ante error, restauración del snapshot previo.
func (s *Store) Run(ctx context.Context, fn func(r *uow.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	err := fn(s.repos(true))
	if err != nil {
		s.data = snapshot
	}
	return err
}

// Repos devuelve el bundle de repositorios para uso fuera de transacción.
func (s *Store) Repos() *uow.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) *uow.Repos {
	b := base{s: s, inTx: inTx}
	return &uow.Repos{
		Products:  &productRepo{b},
		Batches:   &batchRepo{b},
		Movements: &movementRepo{b},
		Customers: &customerRepo{b},
		Suppliers: &supplierRepo{b},
		Ledger:    &ledgerRepo{b},
		Sales:     &saleRepo{b},
		Orders:    &orderRepo{b},
		Supplies:  &supplyRepo{b},
	}
}

type base struct {
	s    *Store
	inTx bool
}

// enter toma el lock global salvo dentro de una transacción (donde Run ya lo
// sostiene).
func (b *base) enter() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func paginate(total, limit, offset int) (int, int) {
	if offset >= total {
		return 0, 0
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return offset, end
}

// --- productos ---

type productRepo struct{ base }

func (r *productRepo) Create(p *entity.Product) error {
	defer r.enter()()
	r.s.data.products[p.ID] = *p
	r.s.data.productSKUs[p.SKU] = p.ID
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer r.enter()()
	if p, ok := r.s.data.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer r.enter()()
	if id, ok := r.s.data.productSKUs[sku]; ok {
		p := r.s.data.products[id]
		return &p, nil
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	defer r.enter()()
	r.s.data.products[p.ID] = *p
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer r.enter()()
	all := make([]*entity.Product, 0, len(r.s.data.products))
	for id := range r.s.data.products {
		p := r.s.data.products[id]
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}

// --- lotes ---

type batchRepo struct{ base }

func (r *batchRepo) Create(b *entity.InventoryBatch) error {
	defer r.enter()()
	r.s.data.batches[b.ID] = *b
	r.s.data.batchOrder = append(r.s.data.batchOrder, b.ID)
	return nil
}

func (r *batchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	defer r.enter()()
	if b, ok := r.s.data.batches[id]; ok {
		return &b, nil
	}
	return nil, nil
}

func (r *batchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	return r.GetByID(id)
}

func (r *batchRepo) ListActiveByProduct(productID string) ([]*entity.InventoryBatch, error) {
	defer r.enter()()
	return r.listActive(productID), nil
}

func (r *batchRepo) ListActiveByProductForUpdate(productID string) ([]*entity.InventoryBatch, error) {
	return r.ListActiveByProduct(productID)
}

// listActive devuelve los lotes activos en orden FIFO: vencimiento ascendente,
// sin vencimiento de último, orden de inserción como desempate (sort estable).
func (r *batchRepo) listActive(productID string) []*entity.InventoryBatch {
	out := make([]*entity.InventoryBatch, 0)
	for _, id := range r.s.data.batchOrder {
		b := r.s.data.batches[id]
		if b.ProductID != productID || b.Status != entity.BatchStatusActive {
			continue
		}
		copied := b
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := out[i], out[j]
		switch {
		case bi.ExpiresAt == nil && bj.ExpiresAt == nil:
			return false
		case bi.ExpiresAt == nil:
			return false
		case bj.ExpiresAt == nil:
			return true
		default:
			return bi.ExpiresAt.Before(*bj.ExpiresAt)
		}
	})
	return out
}

func (r *batchRepo) GetDefaultForUpdate(productID string) (*entity.InventoryBatch, error) {
	defer r.enter()()
	for _, id := range r.s.data.batchOrder {
		b := r.s.data.batches[id]
		if b.ProductID == productID && b.LotCode == "" {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *batchRepo) UpdateQuantity(id string, quantity int64) error {
	defer r.enter()()
	b := r.s.data.batches[id]
	b.Quantity = quantity
	b.UpdatedAt = time.Now()
	r.s.data.batches[id] = b
	return nil
}

func (r *batchRepo) SetStatus(id, status string) error {
	defer r.enter()()
	b := r.s.data.batches[id]
	b.Status = status
	b.UpdatedAt = time.Now()
	r.s.data.batches[id] = b
	return nil
}

func (r *batchRepo) TotalOnHand(productID string) (int64, error) {
	defer r.enter()()
	var total int64
	for _, b := range r.s.data.batches {
		if b.ProductID == productID && b.Status == entity.BatchStatusActive {
			total += b.Quantity
		}
	}
	return total, nil
}

// --- movimientos ---

type movementRepo struct{ base }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	defer r.enter()()
	r.s.data.movements = append(r.s.data.movements, *m)
	return nil
}

func (r *movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.enter()()
	matched := make([]*entity.StockMovement, 0)
	// Más reciente primero: el log es append-only, basta recorrer al revés
	for i := len(r.s.data.movements) - 1; i >= 0; i-- {
		if r.s.data.movements[i].ProductID == productID {
			m := r.s.data.movements[i]
			matched = append(matched, &m)
		}
	}
	from, to := paginate(len(matched), limit, offset)
	return matched[from:to], nil
}

func (r *movementRepo) ListByReference(referenceID string) ([]*entity.StockMovement, error) {
	defer r.enter()()
	matched := make([]*entity.StockMovement, 0)
	for i := range r.s.data.movements {
		if r.s.data.movements[i].ReferenceID == referenceID {
			m := r.s.data.movements[i]
			matched = append(matched, &m)
		}
	}
	return matched, nil
}

// --- clientes ---

type customerRepo struct{ base }

func (r *customerRepo) Create(c *entity.Customer) error {
	defer r.enter()()
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) GetByID(id string) (*entity.Customer, error) {
	defer r.enter()()
	if c, ok := r.s.data.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *customerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *customerRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	defer r.enter()()
	c := r.s.data.customers[id]
	c.CreditBalance = balance
	c.UpdatedAt = time.Now()
	r.s.data.customers[id] = c
	return nil
}

func (r *customerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	defer r.enter()()
	all := make([]*entity.Customer, 0, len(r.s.data.customers))
	for id := range r.s.data.customers {
		c := r.s.data.customers[id]
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}

// --- proveedores ---

type supplierRepo struct{ base }

func (r *supplierRepo) Create(s *entity.Supplier) error {
	defer r.enter()()
	r.s.data.suppliers[s.ID] = *s
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	defer r.enter()()
	if s, ok := r.s.data.suppliers[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *supplierRepo) GetForUpdate(id string) (*entity.Supplier, error) {
	return r.GetByID(id)
}

func (r *supplierRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	defer r.enter()()
	s := r.s.data.suppliers[id]
	s.PayableBalance = balance
	s.UpdatedAt = time.Now()
	r.s.data.suppliers[id] = s
	return nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	defer r.enter()()
	all := make([]*entity.Supplier, 0, len(r.s.data.suppliers))
	for id := range r.s.data.suppliers {
		s := r.s.data.suppliers[id]
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}

// --- libro auxiliar ---

type ledgerRepo struct{ base }

func (r *ledgerRepo) Create(e *entity.LedgerEntry) error {
	defer r.enter()()
	r.s.data.ledger = append(r.s.data.ledger, *e)
	return nil
}

func (r *ledgerRepo) ListByAccount(accountType, accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	defer r.enter()()
	matched := make([]*entity.LedgerEntry, 0)
	for i := len(r.s.data.ledger) - 1; i >= 0; i-- {
		e := r.s.data.ledger[i]
		if e.AccountType == accountType && e.AccountID == accountID {
			matched = append(matched, &e)
		}
	}
	from, to := paginate(len(matched), limit, offset)
	return matched[from:to], nil
}

func (r *ledgerRepo) SumByAccount(accountType, accountID string) (decimal.Decimal, error) {
	defer r.enter()()
	sum := decimal.Zero
	for i := range r.s.data.ledger {
		e := &r.s.data.ledger[i]
		if e.AccountType == accountType && e.AccountID == accountID {
			sum = sum.Add(e.Debit).Sub(e.Credit)
		}
	}
	return sum, nil
}

func (r *ledgerRepo) SumByReference(referenceType, referenceID string) (decimal.Decimal, error) {
	defer r.enter()()
	sum := decimal.Zero
	for i := range r.s.data.ledger {
		e := &r.s.data.ledger[i]
		if e.ReferenceType == referenceType && e.ReferenceID == referenceID {
			sum = sum.Add(e.Debit).Sub(e.Credit)
		}
	}
	return sum, nil
}

// --- ventas ---

type saleRepo struct{ base }

func (r *saleRepo) Create(s *entity.Sale) error {
	defer r.enter()()
	r.s.data.sales[s.ID] = *s
	return nil
}

func (r *saleRepo) CreateItem(item *entity.SaleItem) error {
	defer r.enter()()
	r.s.data.saleItems[item.SaleID] = append(r.s.data.saleItems[item.SaleID], *item)
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.enter()()
	if s, ok := r.s.data.sales[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *saleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *saleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	defer r.enter()()
	items := r.s.data.saleItems[saleID]
	out := make([]*entity.SaleItem, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (r *saleRepo) MarkVoided(id, reason string) error {
	defer r.enter()()
	s := r.s.data.sales[id]
	now := time.Now()
	s.Status = entity.SaleStatusVoided
	s.VoidReason = reason
	s.VoidedAt = &now
	r.s.data.sales[id] = s
	return nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	defer r.enter()()
	all := make([]*entity.Sale, 0, len(r.s.data.sales))
	for id := range r.s.data.sales {
		s := r.s.data.sales[id]
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}

// --- órdenes de compra ---

type orderRepo struct{ base }

func (r *orderRepo) Create(o *entity.PurchaseOrder) error {
	defer r.enter()()
	r.s.data.orders[o.ID] = *o
	return nil
}

func (r *orderRepo) CreateItem(item *entity.PurchaseOrderItem) error {
	defer r.enter()()
	r.s.data.orderItems[item.OrderID] = append(r.s.data.orderItems[item.OrderID], *item)
	r.s.data.itemToOrder[item.ID] = item.OrderID
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	defer r.enter()()
	if o, ok := r.s.data.orders[id]; ok {
		return &o, nil
	}
	return nil, nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(id)
}

func (r *orderRepo) ListItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	defer r.enter()()
	items := r.s.data.orderItems[orderID]
	out := make([]*entity.PurchaseOrderItem, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (r *orderRepo) UpdateItemReceived(itemID string, qtyReceived int64) error {
	defer r.enter()()
	orderID := r.s.data.itemToOrder[itemID]
	items := r.s.data.orderItems[orderID]
	for i := range items {
		if items[i].ID == itemID {
			items[i].QtyReceived = qtyReceived
			break
		}
	}
	return nil
}

func (r *orderRepo) SetStatus(id, status string) error {
	defer r.enter()()
	o := r.s.data.orders[id]
	o.Status = status
	o.UpdatedAt = time.Now()
	r.s.data.orders[id] = o
	return nil
}

func (r *orderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	defer r.enter()()
	all := make([]*entity.PurchaseOrder, 0, len(r.s.data.orders))
	for id := range r.s.data.orders {
		o := r.s.data.orders[id]
		all = append(all, &o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}

// --- suministros ---

type supplyRepo struct{ base }

func (r *supplyRepo) Create(s *entity.Supply) error {
	defer r.enter()()
	r.s.data.supplies[s.ID] = *s
	return nil
}

func (r *supplyRepo) CreateItem(item *entity.SupplyItem) error {
	defer r.enter()()
	r.s.data.supplyItems[item.SupplyID] = append(r.s.data.supplyItems[item.SupplyID], *item)
	return nil
}

func (r *supplyRepo) GetByID(id string) (*entity.Supply, error) {
	defer r.enter()()
	if s, ok := r.s.data.supplies[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *supplyRepo) GetForUpdate(id string) (*entity.Supply, error) {
	return r.GetByID(id)
}

func (r *supplyRepo) ListItems(supplyID string) ([]*entity.SupplyItem, error) {
	defer r.enter()()
	items := r.s.data.supplyItems[supplyID]
	out := make([]*entity.SupplyItem, 0, len(items))
	for i := range items {
		item := items[i]
		out = append(out, &item)
	}
	return out, nil
}

func (r *supplyRepo) MarkVoided(id, reason string) error {
	defer r.enter()()
	s := r.s.data.supplies[id]
	now := time.Now()
	s.Status = entity.SupplyStatusVoided
	s.VoidReason = reason
	s.VoidedAt = &now
	r.s.data.supplies[id] = s
	return nil
}

func (r *supplyRepo) List(limit, offset int) ([]*entity.Supply, error) {
	defer r.enter()()
	all := make([]*entity.Supply, 0, len(r.s.data.supplies))
	for id := range r.s.data.supplies {
		s := r.s.data.supplies[id]
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	from, to := paginate(len(all), limit, offset)
	return all[from:to], nil
}
