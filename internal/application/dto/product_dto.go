package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Stock y WarehouseID opcionales: si vienen, el stock inicial se registra
// como un movimiento IN en esa bodega.
type CreateProductRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Stock       decimal.Decimal `json:"stock,omitempty"`
	WarehouseID *int64          `json:"warehouse_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos parciales).
type UpdateProductRequest struct {
	Name  *string          `json:"name,omitempty"`
	Unit  *string          `json:"unit,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// ProductResponse respuesta de catálogo (sin stock).
type ProductResponse struct {
	ID        int64           `json:"id"`
	CompanyID int64           `json:"company_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductStockResponse vista de producto con stock (por bodega o agregado).
type ProductStockResponse struct {
	ID       int64           `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	StockQty decimal.Decimal `json:"stock_qty"`
}

// ProductListResponse listado paginado de productos con stock.
type ProductListResponse struct {
	Items []ProductStockResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
