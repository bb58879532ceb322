package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/stock"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se edita aquí:
// el stock inicial opcional del alta se registra como un movimiento IN vía el
// motor de stock, y de ahí en adelante solo los movimientos lo mutan.
type ProductUseCase struct {
	repo    repository.ProductRepository
	stockUC *stock.StockUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, stockUC *stock.StockUseCase) *ProductUseCase {
	return &ProductUseCase{repo: repo, stockUC: stockUC}
}

// Create crea un producto; el código debe ser único dentro de la empresa.
// Si vienen bodega y stock inicial positivos, registra la entrada inicial.
func (uc *ProductUseCase) Create(ctx context.Context, companyID int64, userName string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(code, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código %s ya existe en la empresa", domain.ErrDuplicate, code)
	}

	now := time.Now()
	product := &entity.Product{
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		Unit:      strings.TrimSpace(in.Unit),
		Price:     in.Price,
		CreatedBy: userName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.WarehouseID != nil && in.Stock.GreaterThan(decimal.Zero) {
		_, err := uc.stockUC.StockIn(ctx, companyID, userName, stock.MoveInput{
			ProductID:   product.ID,
			WarehouseID: *in.WarehouseID,
			Qty:         in.Stock,
			Note:        "stock inicial",
		})
		if err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// GetWithStock devuelve la vista de producto con stock: de la bodega indicada
// o el agregado de todas las bodegas de la empresa.
func (uc *ProductUseCase) GetWithStock(companyID, id int64, warehouseID *int64) (*dto.ProductStockResponse, error) {
	view, err := uc.repo.GetWithStock(id, companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return toProductStockResponse(view), nil
}

// Update aplica cambios parciales de nombre, unidad y precio.
func (uc *ProductUseCase) Update(companyID, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id, companyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Mientras el ledger lo referencie, el borrado se
// bloquea con Conflict: los movimientos son inmutables y no se huérfanan.
func (uc *ProductUseCase) Delete(companyID, id int64) error {
	product, err := uc.repo.GetByID(id, companyID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	has, err := uc.repo.HasMovements(id, companyID)
	if err != nil {
		return err
	}
	if has {
		return fmt.Errorf("%w: el producto %s tiene movimientos en el ledger", domain.ErrConflict, product.Code)
	}
	return uc.repo.Delete(id, companyID)
}

// List busca productos por código/nombre/unidad, con stock por bodega cuando
// se indica una y agregado cuando no, paginado.
func (uc *ProductUseCase) List(companyID int64, q string, warehouseID *int64, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	views, total, err := uc.repo.Search(companyID, strings.TrimSpace(q), warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductStockResponse, 0, len(views))
	for _, v := range views {
		items = append(items, *toProductStockResponse(v))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Code:      p.Code,
		Name:      p.Name,
		Unit:      p.Unit,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductStockResponse(v *repository.ProductWithStock) *dto.ProductStockResponse {
	return &dto.ProductStockResponse{
		ID:       v.ID,
		Code:     v.Code,
		Name:     v.Name,
		Unit:     v.Unit,
		Price:    v.Price,
		StockQty: v.StockQty,
	}
}
