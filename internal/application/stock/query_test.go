package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/stock"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// queryFixture arma el lado de lectura sobre el estado publicado por los
// fakes de escritura: dos bodegas de la misma empresa y un producto con
// stock en ambas.
type queryFixture struct {
	uc         *stock.StockUseCase
	query      *stock.StockQueryUseCase
	warehouseA *entity.Warehouse
	warehouseB *entity.Warehouse
	product    *entity.Product
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()
	state := newMemState()
	product := state.addProduct(testCompanyID, "TORN-01", "Tornillo 1/4", dec("150"))
	runner := newFakeTxRunner(state)

	warehouses := newFakeWarehouseRepo()
	whA := warehouses.add(testCompanyID, "Bodega Central")
	whB := warehouses.add(testCompanyID, "Bodega Norte")

	uc := stock.NewStockUseCase(runner, runner.productRepo(), warehouses)
	query := stock.NewStockQueryUseCase(
		&fakeLevelRepo{st: runner.current},
		&fakeMoveRepo{st: runner.current},
		runner.productRepo(),
		warehouses,
	)
	return &queryFixture{uc: uc, query: query, warehouseA: whA, warehouseB: whB, product: product}
}

func (f *queryFixture) stockIn(t *testing.T, warehouseID int64, qty string) {
	t.Helper()
	_, err := f.uc.StockIn(context.Background(), testCompanyID, testUser, stock.MoveInput{
		ProductID:   f.product.ID,
		WarehouseID: warehouseID,
		Qty:         dec(qty),
	})
	require.NoError(t, err)
}

func TestMovementsByProduct_ListaElHistorial(t *testing.T) {
	f := newQueryFixture(t)
	f.stockIn(t, f.warehouseA.ID, "5")
	f.stockIn(t, f.warehouseB.ID, "3")

	moves, err := f.query.MovementsByProduct(testCompanyID, f.product.ID, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	for _, m := range moves {
		assert.Equal(t, f.product.ID, m.ProductID)
		assert.Equal(t, entity.MoveTypeIN, m.MoveType)
	}
}

func TestMovementsByProduct_ProductoAjeno(t *testing.T) {
	f := newQueryFixture(t)
	f.stockIn(t, f.warehouseA.ID, "5")

	_, err := f.query.MovementsByProduct(otherCompanyID, f.product.ID, nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementsByWarehouse_FiltraPorBodega(t *testing.T) {
	f := newQueryFixture(t)
	f.stockIn(t, f.warehouseA.ID, "5")
	f.stockIn(t, f.warehouseB.ID, "3")

	moves, err := f.query.MovementsByWarehouse(testCompanyID, f.warehouseA.ID, nil, nil, 20, 0)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, f.warehouseA.ID, moves[0].WarehouseID)
}

func TestMovementsByWarehouse_BodegaAjena(t *testing.T) {
	f := newQueryFixture(t)

	_, err := f.query.MovementsByWarehouse(otherCompanyID, f.warehouseA.ID, nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMovementsByWarehouse_BodegaInexistente(t *testing.T) {
	f := newQueryFixture(t)

	_, err := f.query.MovementsByWarehouse(testCompanyID, 999, nil, nil, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLevelsByWarehouse_ListaLosNiveles(t *testing.T) {
	f := newQueryFixture(t)
	f.stockIn(t, f.warehouseA.ID, "5")
	f.stockIn(t, f.warehouseB.ID, "3")

	levels, err := f.query.LevelsByWarehouse(testCompanyID, f.warehouseA.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, f.product.ID, levels[0].ProductID)
	assert.True(t, levels[0].Qty.Equal(dec("5")))
}

func TestTotalByProduct_SumaTodasLasBodegas(t *testing.T) {
	f := newQueryFixture(t)
	f.stockIn(t, f.warehouseA.ID, "5")
	f.stockIn(t, f.warehouseB.ID, "3")

	total, err := f.query.TotalByProduct(testCompanyID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("8")), "el total debe sumar el stock de ambas bodegas")
}

func TestTotalByProduct_ProductoInexistente(t *testing.T) {
	f := newQueryFixture(t)

	_, err := f.query.TotalByProduct(testCompanyID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
