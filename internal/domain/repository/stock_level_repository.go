package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockLevelRepository define el puerto para consultar/mutar el stock por
// (producto, bodega, empresa). Get y GetForUpdate devuelven nil cuando la
// fila no existe: la ausencia significa cero, no error.
type StockLevelRepository interface {
	Get(productID, warehouseID, companyID int64) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) por la duración de la
	// transacción. Solo tiene sentido con un repositorio atado a una tx.
	GetForUpdate(productID, warehouseID, companyID int64) (*entity.StockLevel, error)
	// AggregateByProduct suma el stock del producto en todas las bodegas de la empresa.
	AggregateByProduct(productID, companyID int64) (decimal.Decimal, error)
	// AddDelta crea la fila con qty = max(0, delta) si no existe, o suma delta
	// a la existente. La suficiencia para deltas negativos la valida el caller
	// bajo el bloqueo de fila, antes de llamar aquí.
	AddDelta(productID, warehouseID, companyID int64, delta decimal.Decimal) error
	ListByWarehouse(warehouseID, companyID int64, limit, offset int) ([]*entity.StockLevel, error)
}
