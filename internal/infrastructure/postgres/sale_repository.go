package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Se usa atado a la tx de CreateSale; las lecturas pueden ir con el pool.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta y asigna su ID.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (company_id, warehouse_id, seller_id, issue_date, valid_until, total, seller_commission_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.CompanyID, s.WarehouseID, s.SellerID, s.IssueDate, s.ValidUntil,
		s.Total, s.SellerCommissionTotal, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta con los montos tal como llegaron.
func (r *SaleRepo) CreateItem(it *entity.SaleItem) error {
	query := `
		INSERT INTO sales_items
			(sales_id, product_id, quantity, price,
			 discount_percent, discount_amount, tax_type, tax, before_tax, withholding_tax, total,
			 commission_mode, commission_preset, commission_custom_percent,
			 commission_amount_per_unit, commission_per_unit, commission_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		it.SaleID, it.ProductID, it.Quantity, it.Price,
		it.DiscountPercent, it.DiscountAmount, it.TaxType, it.Tax, it.BeforeTax, it.WithholdingTax, it.Total,
		it.CommissionMode, it.CommissionPreset, it.CommissionCustomPercent,
		it.CommissionAmountPerUnit, it.CommissionPerUnit, it.CommissionTotal,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta de la empresa; nil si no existe.
func (r *SaleRepo) GetByID(id, companyID int64) (*entity.Sale, error) {
	query := `
		SELECT id, company_id, warehouse_id, seller_id, issue_date, valid_until, total, seller_commission_total, created_at
		FROM sales WHERE id = $1 AND company_id = $2`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.WarehouseID, &s.SellerID, &s.IssueDate, &s.ValidUntil,
		&s.Total, &s.SellerCommissionTotal, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// ListItems lista las líneas de una venta.
func (r *SaleRepo) ListItems(saleID int64) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sales_id, product_id, quantity, price,
		       discount_percent, discount_amount, tax_type, tax, before_tax, withholding_tax, total,
		       commission_mode, commission_preset, commission_custom_percent,
		       commission_amount_per_unit, commission_per_unit, commission_total
		FROM sales_items WHERE sales_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price,
			&it.DiscountPercent, &it.DiscountAmount, &it.TaxType, &it.Tax, &it.BeforeTax, &it.WithholdingTax, &it.Total,
			&it.CommissionMode, &it.CommissionPreset, &it.CommissionCustomPercent,
			&it.CommissionAmountPerUnit, &it.CommissionPerUnit, &it.CommissionTotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
