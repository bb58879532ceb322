package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error // asigna ID
	GetByID(id int64) (*entity.Company, error)
	List() ([]*entity.Company, error)
}
