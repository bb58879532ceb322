package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre
// PostgreSQL. La tabla stock_moves es append-only: aquí no hay Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento del ledger y asigna su ID.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_moves (product_id, warehouse_id, company_id, move_type, qty, note, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.ProductID, m.WarehouseID, m.CompanyID, m.MoveType, m.Qty, m.Note, m.Reference, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

const stockMoveColumns = `id, product_id, warehouse_id, company_id, move_type, qty, note, reference, created_by, created_at`

// ListByProduct lista los movimientos de un producto, con rango de fechas opcional.
func (r *StockMovementRepo) ListByProduct(productID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMoveColumns + `
		FROM stock_moves
		WHERE product_id = $1 AND company_id = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC, id DESC LIMIT $5 OFFSET $6`
	return r.list(query, productID, companyID, from, to, limit, offset)
}

// ListByWarehouse lista los movimientos de una bodega, con rango de fechas opcional.
func (r *StockMovementRepo) ListByWarehouse(warehouseID, companyID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + stockMoveColumns + `
		FROM stock_moves
		WHERE warehouse_id = $1 AND company_id = $2
		  AND ($3::timestamptz IS NULL OR created_at >= $3)
		  AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC, id DESC LIMIT $5 OFFSET $6`
	return r.list(query, warehouseID, companyID, from, to, limit, offset)
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.CompanyID,
			&m.MoveType, &m.Qty, &m.Note, &m.Reference, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
