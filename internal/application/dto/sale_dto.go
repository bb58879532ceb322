package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. El producto se referencia por nombre
// (contrato externo del frontend); los montos llegan ya calculados.
type SaleItemRequest struct {
	ProductName             string           `json:"product_name"`
	Quantity                decimal.Decimal  `json:"quantity"`
	Price                   decimal.Decimal  `json:"price"`
	DiscountPercent         decimal.Decimal  `json:"discount"`
	DiscountAmount          decimal.Decimal  `json:"discount_amount"`
	TaxType                 string           `json:"tax_type"`
	Tax                     decimal.Decimal  `json:"tax"`
	BeforeTax               decimal.Decimal  `json:"before_tax"`
	WithholdingTax          decimal.Decimal  `json:"withholding_tax"`
	Total                   decimal.Decimal  `json:"total"`
	CommissionMode          string           `json:"commission_mode"`
	CommissionPreset        *int             `json:"commission_preset"`
	CommissionCustomPercent *decimal.Decimal `json:"commission_custom_percent"`
	CommissionAmountPerUnit decimal.Decimal  `json:"commission_amount_per_unit"`
	CommissionPerUnit       decimal.Decimal  `json:"commission_per_unit"`
	CommissionTotal         decimal.Decimal  `json:"commission_total"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	WarehouseID           int64             `json:"warehouse_id"`
	IssueDate             string            `json:"issue_date"`  // YYYY-MM-DD
	ValidUntil            string            `json:"valid_until"` // YYYY-MM-DD
	TotalAmount           decimal.Decimal   `json:"total_amount"`
	SellerCommissionTotal decimal.Decimal   `json:"seller_commission_total"`
	Items                 []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta en la consulta del detalle.
type SaleItemResponse struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent decimal.Decimal `json:"discount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxType         string          `json:"tax_type"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	CommissionTotal decimal.Decimal `json:"commission_total"`
}

// SaleDetailResponse venta con sus líneas.
type SaleDetailResponse struct {
	SaleResponse
	Items []SaleItemResponse `json:"items"`
}

// SaleResponse respuesta de una venta creada.
type SaleResponse struct {
	ID                    int64           `json:"id"`
	WarehouseID           int64           `json:"warehouse_id"`
	SellerID              int64           `json:"seller_id"`
	IssueDate             time.Time       `json:"issue_date"`
	ValidUntil            time.Time       `json:"valid_until"`
	Total                 decimal.Decimal `json:"total"`
	SellerCommissionTotal decimal.Decimal `json:"seller_commission_total"`
	CreatedAt             time.Time       `json:"created_at"`
}
