package sale

import (
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// SaleQueryUseCase lecturas de ventas (cabecera + líneas), cercadas por empresa.
type SaleQueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(saleRepo repository.SaleRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo}
}

// GetByID devuelve la venta con sus líneas; NotFound si no existe o es de otra
// empresa.
func (uc *SaleQueryUseCase) GetByID(companyID, id int64) (*entity.Sale, []*entity.SaleItem, error) {
	s, err := uc.saleRepo.GetByID(id, companyID)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, fmt.Errorf("%w: venta %d", domain.ErrNotFound, id)
	}
	items, err := uc.saleRepo.ListItems(s.ID)
	if err != nil {
		return nil, nil, err
	}
	return s, items, nil
}
