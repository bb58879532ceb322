package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MoveTypeIN          = "IN"           // entrada
	MoveTypeOUT         = "OUT"          // salida
	MoveTypeAssemblyIN  = "ASSEMBLY_IN"  // resultado de un ensamble
	MoveTypeAssemblyOUT = "ASSEMBLY_OUT" // componente consumido por un ensamble
)

// StockMovement entrada del ledger de inventario: append-only, inmutable una
// vez escrita. Qty es magnitud positiva; la dirección la da MoveType.
type StockMovement struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	CompanyID   int64
	MoveType    string
	Qty         decimal.Decimal
	Note        string
	Reference   string // agrupa los movimientos escritos por una misma transacción
	CreatedBy   string
	CreatedAt   time.Time
}
