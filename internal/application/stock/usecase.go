package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

// StockUseCase motor de mutación de stock: entradas, salidas y ensambles.
// Toda mutación corre dentro de una transacción con bloqueo de fila
// (SELECT FOR UPDATE) y escribe el movimiento del ledger en la misma tx.
type StockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// MoveInput entrada para StockIn/StockOut.
type MoveInput struct {
	ProductID   int64
	WarehouseID int64
	Qty         decimal.Decimal
	Note        string
}

// StockIn registra una entrada: crea o incrementa el nivel del triple
// (producto, bodega, empresa) y agrega un movimiento IN, en una sola tx.
// Devuelve la vista refrescada del producto con su stock en la bodega.
func (uc *StockUseCase) StockIn(ctx context.Context, companyID int64, userName string, in MoveInput) (*repository.ProductWithStock, error) {
	if _, err := uc.validateMove(companyID, in); err != nil {
		return nil, err
	}

	now := time.Now()
	ref := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		// Bloquea la fila si ya existe; el upsert del delta la crea si no.
		if _, err := levelRepo.GetForUpdate(in.ProductID, in.WarehouseID, companyID); err != nil {
			return err
		}
		if err := levelRepo.AddDelta(in.ProductID, in.WarehouseID, companyID, in.Qty); err != nil {
			return err
		}
		return moveRepo.Create(&entity.StockMovement{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			CompanyID:   companyID,
			MoveType:    entity.MoveTypeIN,
			Qty:         in.Qty,
			Note:        in.Note,
			Reference:   ref,
			CreatedBy:   userName,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(entity.MoveTypeIN).Inc()
	return uc.productRepo.GetWithStock(in.ProductID, companyID, &in.WarehouseID)
}

// StockOut registra una salida: bloquea la fila, verifica suficiencia
// (fila ausente cuenta como cero), descuenta y agrega un movimiento OUT.
// Si la cantidad no alcanza falla con ErrInsufficientStock sin mutar nada.
func (uc *StockUseCase) StockOut(ctx context.Context, companyID int64, userName string, in MoveInput) (*repository.ProductWithStock, error) {
	product, err := uc.validateMove(companyID, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ref := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		level, err := levelRepo.GetForUpdate(in.ProductID, in.WarehouseID, companyID)
		if err != nil {
			return err
		}
		current := decimal.Zero
		if level != nil {
			current = level.Qty
		}
		if current.LessThan(in.Qty) {
			metrics.InsufficientStockTotal.Inc()
			return fmt.Errorf("%w: %s en bodega %d (solicitado %s, disponible %s)",
				domain.ErrInsufficientStock, product.Code, in.WarehouseID, in.Qty, current)
		}
		if err := levelRepo.AddDelta(in.ProductID, in.WarehouseID, companyID, in.Qty.Neg()); err != nil {
			return err
		}
		return moveRepo.Create(&entity.StockMovement{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			CompanyID:   companyID,
			MoveType:    entity.MoveTypeOUT,
			Qty:         in.Qty,
			Note:        in.Note,
			Reference:   ref,
			CreatedBy:   userName,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(entity.MoveTypeOUT).Inc()
	return uc.productRepo.GetWithStock(in.ProductID, companyID, &in.WarehouseID)
}

// validateMove precondiciones comunes: cantidad positiva, producto de la
// empresa (NotFound si no) y bodega de la empresa (Forbidden si es de otra).
func (uc *StockUseCase) validateMove(companyID int64, in MoveInput) (*entity.Product, error) {
	if !in.Qty.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(in.ProductID, companyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	if err := uc.ensureWarehouse(companyID, in.WarehouseID); err != nil {
		return nil, err
	}
	return product, nil
}

// ensureWarehouse valida que la bodega exista y pertenezca a la empresa.
func (uc *StockUseCase) ensureWarehouse(companyID, warehouseID int64) error {
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
