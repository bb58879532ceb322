package repository

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el ledger de
// movimientos (append-only; no hay Update ni Delete).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
