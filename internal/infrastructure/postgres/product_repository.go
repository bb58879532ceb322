package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, code, name, unit, price, created_by, created_at, updated_at`

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (company_id, code, name, unit, price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.CompanyID, p.Code, p.Name, p.Unit, p.Price, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: code %s", domain.ErrDuplicate, p.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID dentro de la empresa; nil si no existe.
func (r *ProductRepo) GetByID(id, companyID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND company_id = $2`
	return r.scanOne(query, id, companyID)
}

// GetByCode obtiene un producto por código dentro de la empresa; nil si no existe.
func (r *ProductRepo) GetByCode(code string, companyID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1 AND company_id = $2`
	return r.scanOne(query, code, companyID)
}

// GetByName obtiene un producto por nombre dentro de la empresa; nil si no existe.
func (r *ProductRepo) GetByName(name string, companyID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 AND company_id = $2 LIMIT 1`
	return r.scanOne(query, name, companyID)
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.CompanyID, &p.Code, &p.Name, &p.Unit, &p.Price, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, unidad y precio. El código no se modifica: es la
// llave de merge de los ensambles.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, unit = $4, price = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Name, p.Unit, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto de la empresa; ErrNotFound si no existía.
func (r *ProductRepo) Delete(id, companyID int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasMovements indica si el ledger referencia al producto.
func (r *ProductRepo) HasMovements(id, companyID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM stock_moves WHERE product_id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product movements: %w", err)
	}
	return exists, nil
}

// GetWithStock devuelve la vista de producto con stock: de la bodega indicada
// (COALESCE a 0 si no hay fila) o agregado de todas las bodegas.
func (r *ProductRepo) GetWithStock(id, companyID int64, warehouseID *int64) (*repository.ProductWithStock, error) {
	var query string
	var args []any
	if warehouseID != nil {
		query = `
			SELECT p.id, p.code, p.name, p.unit, p.price, COALESCE(ps.qty, 0) AS stock_qty
			FROM products p
			LEFT JOIN product_stock ps
			  ON ps.product_id = p.id AND ps.warehouse_id = $3 AND ps.company_id = p.company_id
			WHERE p.id = $1 AND p.company_id = $2`
		args = []any{id, companyID, *warehouseID}
	} else {
		query = `
			SELECT p.id, p.code, p.name, p.unit, p.price, COALESCE(SUM(ps.qty), 0) AS stock_qty
			FROM products p
			LEFT JOIN product_stock ps
			  ON ps.product_id = p.id AND ps.company_id = p.company_id
			WHERE p.id = $1 AND p.company_id = $2
			GROUP BY p.id, p.code, p.name, p.unit, p.price`
		args = []any{id, companyID}
	}
	var v repository.ProductWithStock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&v.ID, &v.Code, &v.Name, &v.Unit, &v.Price, &v.StockQty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product with stock: %w", err)
	}
	return &v, nil
}

// Search busca por código/nombre/unidad. Con bodega, restringe a productos
// con fila de stock en ella (INNER JOIN, como la vista "solo esta bodega");
// sin bodega, agrega el stock de todas.
func (r *ProductRepo) Search(companyID int64, q string, warehouseID *int64, limit, offset int) ([]*repository.ProductWithStock, int, error) {
	like := "%" + q + "%"
	ctx := context.Background()

	var rows pgx.Rows
	var err error
	var total int
	if warehouseID != nil {
		err = r.q.QueryRow(ctx, `
			SELECT COUNT(DISTINCT p.id)
			FROM products p
			INNER JOIN product_stock ps
			  ON ps.product_id = p.id AND ps.warehouse_id = $2 AND ps.company_id = p.company_id
			WHERE p.company_id = $1 AND (p.code ILIKE $3 OR p.name ILIKE $3 OR p.unit ILIKE $3)`,
			companyID, *warehouseID, like,
		).Scan(&total)
		if err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
		rows, err = r.q.Query(ctx, `
			SELECT p.id, p.code, p.name, p.unit, p.price, ps.qty AS stock_qty
			FROM products p
			INNER JOIN product_stock ps
			  ON ps.product_id = p.id AND ps.warehouse_id = $2 AND ps.company_id = p.company_id
			WHERE p.company_id = $1 AND (p.code ILIKE $3 OR p.name ILIKE $3 OR p.unit ILIKE $3)
			ORDER BY p.code ASC LIMIT $4 OFFSET $5`,
			companyID, *warehouseID, like, limit, offset,
		)
	} else {
		err = r.q.QueryRow(ctx, `
			SELECT COUNT(*)
			FROM products p
			WHERE p.company_id = $1 AND (p.code ILIKE $2 OR p.name ILIKE $2 OR p.unit ILIKE $2)`,
			companyID, like,
		).Scan(&total)
		if err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
		rows, err = r.q.Query(ctx, `
			SELECT p.id, p.code, p.name, p.unit, p.price, COALESCE(SUM(ps.qty), 0) AS stock_qty
			FROM products p
			LEFT JOIN product_stock ps
			  ON ps.product_id = p.id AND ps.company_id = p.company_id
			WHERE p.company_id = $1 AND (p.code ILIKE $2 OR p.name ILIKE $2 OR p.unit ILIKE $2)
			GROUP BY p.id, p.code, p.name, p.unit, p.price
			ORDER BY p.code ASC LIMIT $3 OFFSET $4`,
			companyID, like, limit, offset,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var list []*repository.ProductWithStock
	for rows.Next() {
		var v repository.ProductWithStock
		if err := rows.Scan(&v.ID, &v.Code, &v.Name, &v.Unit, &v.Price, &v.StockQty); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &v)
	}
	return list, total, rows.Err()
}
