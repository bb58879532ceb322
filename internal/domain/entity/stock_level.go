package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel cantidad actual de un producto en una bodega, por empresa.
// Es una proyección materializada del ledger: Qty == suma con signo de los
// movimientos del mismo triple (producto, bodega, empresa). Nunca negativa.
type StockLevel struct {
	ProductID   int64
	WarehouseID int64
	CompanyID   int64
	Qty         decimal.Decimal
	UpdatedAt   time.Time
}
