package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Las líneas descuentan inventario de la bodega
// indicada dentro de la misma transacción que escribe la cabecera.
type Sale struct {
	ID                    int64
	CompanyID             int64
	WarehouseID           int64
	SellerID              int64
	IssueDate             time.Time
	ValidUntil            time.Time
	Total                 decimal.Decimal
	SellerCommissionTotal decimal.Decimal
	CreatedAt             time.Time
}

// SaleItem línea de venta. Los campos de descuento, impuesto y comisión se
// persisten tal como llegan del caller; aquí no se calcula nada.
type SaleItem struct {
	ID                      int64
	SaleID                  int64
	ProductID               int64
	Quantity                decimal.Decimal
	Price                   decimal.Decimal
	DiscountPercent         decimal.Decimal
	DiscountAmount          decimal.Decimal
	TaxType                 string
	Tax                     decimal.Decimal
	BeforeTax               decimal.Decimal
	WithholdingTax          decimal.Decimal
	Total                   decimal.Decimal
	CommissionMode          string // "percent" | "amount"
	CommissionPreset        *int
	CommissionCustomPercent *decimal.Decimal
	CommissionAmountPerUnit decimal.Decimal
	CommissionPerUnit       decimal.Decimal
	CommissionTotal         decimal.Decimal
}
