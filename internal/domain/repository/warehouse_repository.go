package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// GetByID no cerca por empresa a propósito: el caso de uso compara CompanyID
// para distinguir "no existe" (NotFound) de "es de otra empresa" (Forbidden).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error // asigna ID
	GetByID(id int64) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID int64) ([]*entity.Warehouse, error)
	Delete(id, companyID int64) error
}
