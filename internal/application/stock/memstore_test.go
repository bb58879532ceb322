package stock_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: estado compartido + repos + tx runner con semántica de
// rollback (el callback trabaja sobre un clon; solo el éxito lo publica).
// ──────────────────────────────────────────────────────────────────────────────

type tripleKey struct {
	productID   int64
	warehouseID int64
	companyID   int64
}

type memState struct {
	levels        map[tripleKey]decimal.Decimal
	moves         []*entity.StockMovement
	products      map[int64]*entity.Product
	nextProductID int64
	nextMoveID    int64
}

func newMemState() *memState {
	return &memState{
		levels:   make(map[tripleKey]decimal.Decimal),
		products: make(map[int64]*entity.Product),
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		levels:        make(map[tripleKey]decimal.Decimal, len(s.levels)),
		moves:         make([]*entity.StockMovement, len(s.moves)),
		products:      make(map[int64]*entity.Product, len(s.products)),
		nextProductID: s.nextProductID,
		nextMoveID:    s.nextMoveID,
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	copy(c.moves, s.moves)
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

func (s *memState) addProduct(companyID int64, code, name string, price decimal.Decimal) *entity.Product {
	s.nextProductID++
	p := &entity.Product{
		ID:        s.nextProductID,
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		Unit:      "und",
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.products[p.ID] = p
	return p
}

// fakeTxRunner serializa los callbacks con un mutex (equivalente grueso del
// bloqueo de fila) y publica el clon solo si fn no falla.
type fakeTxRunner struct {
	mu    sync.Mutex
	state *memState
}

func newFakeTxRunner(state *memState) *fakeTxRunner {
	return &fakeTxRunner{state: state}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	levelRepo repository.StockLevelRepository,
	moveRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	work := r.state.clone()
	st := func() *memState { return work }
	if err := fn(&fakeLevelRepo{st: st}, &fakeMoveRepo{st: st}, &fakeProductRepo{st: st}); err != nil {
		return err
	}
	r.state = work
	return nil
}

// current entrega el estado publicado, para los repos "de pool" que leen fuera
// de la transacción.
func (r *fakeTxRunner) current() *memState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *fakeTxRunner) productRepo() *fakeProductRepo {
	return &fakeProductRepo{st: r.current}
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeLevelRepo struct {
	st func() *memState
}

func (f *fakeLevelRepo) Get(productID, warehouseID, companyID int64) (*entity.StockLevel, error) {
	qty, ok := f.st().levels[tripleKey{productID, warehouseID, companyID}]
	if !ok {
		return nil, nil
	}
	return &entity.StockLevel{
		ProductID: productID, WarehouseID: warehouseID, CompanyID: companyID, Qty: qty,
	}, nil
}

func (f *fakeLevelRepo) GetForUpdate(productID, warehouseID, companyID int64) (*entity.StockLevel, error) {
	return f.Get(productID, warehouseID, companyID)
}

func (f *fakeLevelRepo) AggregateByProduct(productID, companyID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for k, qty := range f.st().levels {
		if k.productID == productID && k.companyID == companyID {
			total = total.Add(qty)
		}
	}
	return total, nil
}

func (f *fakeLevelRepo) AddDelta(productID, warehouseID, companyID int64, delta decimal.Decimal) error {
	s := f.st()
	key := tripleKey{productID, warehouseID, companyID}
	if qty, ok := s.levels[key]; ok {
		s.levels[key] = qty.Add(delta)
		return nil
	}
	if delta.IsNegative() {
		delta = decimal.Zero
	}
	s.levels[key] = delta
	return nil
}

func (f *fakeLevelRepo) ListByWarehouse(warehouseID, companyID int64, limit, offset int) ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for k, qty := range f.st().levels {
		if k.warehouseID == warehouseID && k.companyID == companyID {
			list = append(list, &entity.StockLevel{
				ProductID: k.productID, WarehouseID: k.warehouseID, CompanyID: k.companyID, Qty: qty,
			})
		}
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeMoveRepo struct {
	st func() *memState
}

func (f *fakeMoveRepo) Create(m *entity.StockMovement) error {
	s := f.st()
	s.nextMoveID++
	m.ID = s.nextMoveID
	cp := *m
	s.moves = append(s.moves, &cp)
	return nil
}

func (f *fakeMoveRepo) ListByProduct(productID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range f.st().moves {
		if m.ProductID == productID && m.CompanyID == companyID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (f *fakeMoveRepo) ListByWarehouse(warehouseID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range f.st().moves {
		if m.WarehouseID == warehouseID && m.CompanyID == companyID {
			list = append(list, m)
		}
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	st func() *memState
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	s := f.st()
	for _, ex := range s.products {
		if ex.CompanyID == p.CompanyID && ex.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	s.nextProductID++
	p.ID = s.nextProductID
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id, companyID int64) (*entity.Product, error) {
	p, ok := f.st().products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByCode(code string, companyID int64) (*entity.Product, error) {
	for _, p := range f.st().products {
		if p.CompanyID == companyID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByName(name string, companyID int64) (*entity.Product, error) {
	for _, p := range f.st().products {
		if p.CompanyID == companyID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	s := f.st()
	if _, ok := s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id, companyID int64) error {
	s := f.st()
	p, ok := s.products[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (f *fakeProductRepo) HasMovements(id, companyID int64) (bool, error) {
	for _, m := range f.st().moves {
		if m.ProductID == id && m.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) GetWithStock(id, companyID int64, warehouseID *int64) (*repository.ProductWithStock, error) {
	s := f.st()
	p, ok := s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	qty := decimal.Zero
	if warehouseID != nil {
		qty = s.levels[tripleKey{id, *warehouseID, companyID}]
	} else {
		for k, v := range s.levels {
			if k.productID == id && k.companyID == companyID {
				qty = qty.Add(v)
			}
		}
	}
	return &repository.ProductWithStock{
		ID: p.ID, Code: p.Code, Name: p.Name, Unit: p.Unit, Price: p.Price, StockQty: qty,
	}, nil
}

func (f *fakeProductRepo) Search(companyID int64, q string, warehouseID *int64, limit, offset int) ([]*repository.ProductWithStock, int, error) {
	var views []*repository.ProductWithStock
	q = strings.ToLower(q)
	for _, p := range f.st().products {
		if p.CompanyID != companyID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Code), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Unit), q) {
			continue
		}
		view, _ := f.GetWithStock(p.ID, companyID, warehouseID)
		views = append(views, view)
	}
	return views, len(views), nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	warehouses map[int64]*entity.Warehouse
	nextID     int64
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[int64]*entity.Warehouse)}
}

func (f *fakeWarehouseRepo) add(companyID int64, name string) *entity.Warehouse {
	f.nextID++
	wh := &entity.Warehouse{ID: f.nextID, CompanyID: companyID, Name: name}
	f.warehouses[wh.ID] = wh
	return wh
}

func (f *fakeWarehouseRepo) Create(wh *entity.Warehouse) error {
	f.nextID++
	wh.ID = f.nextID
	f.warehouses[wh.ID] = wh
	return nil
}

func (f *fakeWarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	wh, ok := f.warehouses[id]
	if !ok {
		return nil, nil
	}
	return wh, nil
}

func (f *fakeWarehouseRepo) Update(wh *entity.Warehouse) error {
	f.warehouses[wh.ID] = wh
	return nil
}

func (f *fakeWarehouseRepo) ListByCompany(companyID int64) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, wh := range f.warehouses {
		if wh.CompanyID == companyID {
			list = append(list, wh)
		}
	}
	return list, nil
}

func (f *fakeWarehouseRepo) Delete(id, companyID int64) error {
	wh, ok := f.warehouses[id]
	if !ok || wh.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(f.warehouses, id)
	return nil
}
