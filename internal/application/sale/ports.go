package sale

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// SaleTxRunner ejecuta fn dentro de una transacción con los repositorios de
// inventario y de ventas atados a esa tx (para CreateSale: cabecera, líneas
// y descuentos de stock en una sola unidad atómica).
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
