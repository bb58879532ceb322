package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx; GetForUpdate solo tiene sentido con tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

const stockLevelColumns = `product_id, warehouse_id, company_id, qty, updated_at`

// Get obtiene el nivel de stock del triple; nil si la fila no existe.
func (r *StockLevelRepo) Get(productID, warehouseID, companyID int64) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM product_stock
		WHERE product_id = $1 AND warehouse_id = $2 AND company_id = $3`
	return r.scanOne(query, productID, warehouseID, companyID)
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE) hasta
// el fin de la transacción; nil si la fila no existe.
func (r *StockLevelRepo) GetForUpdate(productID, warehouseID, companyID int64) (*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM product_stock
		WHERE product_id = $1 AND warehouse_id = $2 AND company_id = $3
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID, companyID)
}

func (r *StockLevelRepo) scanOne(query string, args ...any) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ProductID, &s.WarehouseID, &s.CompanyID, &s.Qty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// AggregateByProduct suma el stock del producto en todas las bodegas de la empresa.
func (r *StockLevelRepo) AggregateByProduct(productID, companyID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(qty), 0) FROM product_stock WHERE product_id = $1 AND company_id = $2`,
		productID, companyID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate stock: %w", err)
	}
	return total, nil
}

// AddDelta crea la fila con qty = max(0, delta) si no existe, o suma delta a
// la existente. El caller valida la suficiencia de deltas negativos bajo el
// bloqueo de fila antes de llamar aquí.
func (r *StockLevelRepo) AddDelta(productID, warehouseID, companyID int64, delta decimal.Decimal) error {
	query := `
		INSERT INTO product_stock (product_id, warehouse_id, company_id, qty, updated_at)
		VALUES ($1, $2, $3, GREATEST($4::numeric, 0), now())
		ON CONFLICT (product_id, warehouse_id, company_id)
		DO UPDATE SET qty = product_stock.qty + $4, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, companyID, delta)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByWarehouse lista los niveles de una bodega con paginación.
func (r *StockLevelRepo) ListByWarehouse(warehouseID, companyID int64, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT ` + stockLevelColumns + `
		FROM product_stock
		WHERE warehouse_id = $1 AND company_id = $2
		ORDER BY product_id ASC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, warehouseID, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.CompanyID, &s.Qty, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
