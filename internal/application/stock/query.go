package stock

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockQueryUseCase lecturas del ledger y de los niveles de stock. Solo
// consultas: las escrituras pasan por StockUseCase y CreateSaleUseCase.
type StockQueryUseCase struct {
	levelRepo     repository.StockLevelRepository
	moveRepo      repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	levelRepo repository.StockLevelRepository,
	moveRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		levelRepo:     levelRepo,
		moveRepo:      moveRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MovementsByProduct lista el historial de un producto de la empresa,
// opcionalmente acotado por rango de fechas, del más reciente al más antiguo.
func (uc *StockQueryUseCase) MovementsByProduct(companyID, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID, companyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	return uc.moveRepo.ListByProduct(productID, companyID, from, to, limit, offset)
}

// MovementsByWarehouse lista el historial de una bodega de la empresa.
func (uc *StockQueryUseCase) MovementsByWarehouse(companyID, warehouseID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.moveRepo.ListByWarehouse(warehouseID, companyID, from, to, limit, offset)
}

// LevelsByWarehouse lista los niveles de stock de una bodega, paginados.
func (uc *StockQueryUseCase) LevelsByWarehouse(companyID, warehouseID int64, limit, offset int) ([]*entity.StockLevel, error) {
	if err := uc.checkWarehouse(companyID, warehouseID); err != nil {
		return nil, err
	}
	return uc.levelRepo.ListByWarehouse(warehouseID, companyID, limit, offset)
}

// TotalByProduct suma el stock del producto en todas las bodegas de la empresa.
func (uc *StockQueryUseCase) TotalByProduct(companyID, productID int64) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(productID, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, fmt.Errorf("%w: producto %d", domain.ErrNotFound, productID)
	}
	return uc.levelRepo.AggregateByProduct(productID, companyID)
}

func (uc *StockQueryUseCase) checkWarehouse(companyID, warehouseID int64) error {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("%w: bodega %d", domain.ErrNotFound, warehouseID)
	}
	if wh.CompanyID != companyID {
		return fmt.Errorf("%w: la bodega %d no pertenece a la empresa", domain.ErrForbidden, warehouseID)
	}
	return nil
}
