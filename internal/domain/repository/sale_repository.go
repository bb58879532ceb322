package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Create y CreateItem se usan dentro de la transacción que también descuenta
// el inventario (nunca por separado).
type SaleRepository interface {
	Create(sale *entity.Sale) error // asigna ID
	CreateItem(item *entity.SaleItem) error
	GetByID(id, companyID int64) (*entity.Sale, error)
	ListItems(saleID int64) ([]*entity.SaleItem, error)
}
