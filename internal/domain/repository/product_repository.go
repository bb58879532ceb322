package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ProductWithStock vista de producto con su stock: por bodega cuando se
// indica una, agregado (suma de todas) cuando no.
type ProductWithStock struct {
	ID       int64
	Code     string
	Name     string
	Unit     string
	Price    decimal.Decimal
	StockQty decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas van cercadas por empresa: no hay forma de resolver un producto
// de otro tenant.
type ProductRepository interface {
	Create(product *entity.Product) error // asigna ID
	GetByID(id, companyID int64) (*entity.Product, error)
	GetByCode(code string, companyID int64) (*entity.Product, error)
	GetByName(name string, companyID int64) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id, companyID int64) error
	// HasMovements indica si el ledger referencia al producto (bloquea el borrado).
	HasMovements(id, companyID int64) (bool, error)
	GetWithStock(id, companyID int64, warehouseID *int64) (*ProductWithStock, error)
	// Search busca por código, nombre o unidad; con bodega filtra a productos
	// con fila de stock en ella. Devuelve la página y el total.
	Search(companyID int64, q string, warehouseID *int64, limit, offset int) ([]*ProductWithStock, int, error)
}
