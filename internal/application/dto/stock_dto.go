package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMoveRequest body para POST /api/stock/in y /api/stock/out.
type StockMoveRequest struct {
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Qty         decimal.Decimal `json:"qty"`
	Note        string          `json:"note,omitempty"`
}

// AssemblyComponentRequest componente de un ensamble.
type AssemblyComponentRequest struct {
	ProductID int64           `json:"product_id"`
	PerUnit   decimal.Decimal `json:"per_unit"`
}

// AssemblyResultRequest producto resultado del ensamble.
type AssemblyResultRequest struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
	Qty   decimal.Decimal `json:"qty"`
}

// AssemblyRequest body para POST /api/stock/assembly.
type AssemblyRequest struct {
	Components  []AssemblyComponentRequest `json:"components"`
	Result      AssemblyResultRequest      `json:"result"`
	WarehouseID int64                      `json:"warehouse_id"`
}

// MovementResponse movimiento del ledger en listados.
type MovementResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	MoveType    string          `json:"move_type"`
	Qty         decimal.Decimal `json:"qty"`
	Note        string          `json:"note,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse nivel de stock de un producto en una bodega.
type StockLevelResponse struct {
	ProductID   int64           `json:"product_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Qty         decimal.Decimal `json:"qty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockLevelListResponse niveles de una bodega, paginados.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ProductTotalStockResponse stock agregado de un producto en todas las bodegas.
type ProductTotalStockResponse struct {
	ProductID int64           `json:"product_id"`
	TotalQty  decimal.Decimal `json:"total_qty"`
}
