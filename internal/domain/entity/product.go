package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo, con código único por empresa.
// El stock no vive aquí: se materializa por bodega en StockLevel y el ledger
// de movimientos (StockMovement) es la fuente de verdad.
type Product struct {
	ID        int64
	CompanyID int64
	Code      string // único por empresa
	Name      string
	Unit      string
	Price     decimal.Decimal
	CreatedBy string // nombre del usuario que lo creó
	CreatedAt time.Time
	UpdatedAt time.Time
}
