package stock

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Si fn retorna error se hace Rollback; si no, Commit.
// Garantiza que la mutación del nivel y el movimiento del ledger se escriban
// en la misma unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
