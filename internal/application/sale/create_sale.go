package sale

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

// CreateSaleUseCase aplica una venta de N líneas como un lote de salidas de
// stock más la cabecera de venta, atómicamente: si una línea no tiene stock
// suficiente, nada de la venta queda persistido.
type CreateSaleUseCase struct {
	txRunner      SaleTxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner SaleTxRunner, warehouseRepo repository.WarehouseRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// ItemInput línea de venta. El producto se resuelve por nombre (contrato
// externo); los campos de descuento/impuesto/comisión se persisten tal cual.
type ItemInput struct {
	ProductName             string
	Quantity                decimal.Decimal
	Price                   decimal.Decimal
	DiscountPercent         decimal.Decimal
	DiscountAmount          decimal.Decimal
	TaxType                 string
	Tax                     decimal.Decimal
	BeforeTax               decimal.Decimal
	WithholdingTax          decimal.Decimal
	Total                   decimal.Decimal
	CommissionMode          string
	CommissionPreset        *int
	CommissionCustomPercent *decimal.Decimal
	CommissionAmountPerUnit decimal.Decimal
	CommissionPerUnit       decimal.Decimal
	CommissionTotal         decimal.Decimal
}

// CreateSaleInput entrada para CreateSale.
type CreateSaleInput struct {
	SellerID              int64
	WarehouseID           int64
	IssueDate             time.Time
	ValidUntil            time.Time
	TotalAmount           decimal.Decimal
	SellerCommissionTotal decimal.Decimal
	Items                 []ItemInput
}

// CreateSale inserta la cabecera y, por cada línea: resuelve el producto por
// nombre dentro de la empresa, bloquea su fila de stock en la bodega de la
// venta, verifica suficiencia, inserta la línea, descuenta y agrega un
// movimiento OUT que referencia la venta. Todo en una transacción.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID int64, userName string, in CreateSaleInput) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta requiere al menos una línea", domain.ErrInvalidInput)
	}
	// Nombres repetidos en una misma venta se rechazan antes de abrir la tx:
	// procesarlos dos veces descontaría stock dos veces en silencio.
	seen := make(map[string]struct{}, len(in.Items))
	for _, item := range in.Items {
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			return nil, fmt.Errorf("%w: línea sin nombre de producto", domain.ErrInvalidInput)
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: cantidad inválida para %s", domain.ErrInvalidInput, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: producto repetido en la venta: %s", domain.ErrInvalidInput, name)
		}
		seen[name] = struct{}{}
	}

	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("%w: bodega %d", domain.ErrNotFound, in.WarehouseID)
	}
	if wh.CompanyID != companyID {
		return nil, fmt.Errorf("%w: la bodega %d no pertenece a la empresa", domain.ErrForbidden, in.WarehouseID)
	}

	now := time.Now()
	ref := uuid.New().String()
	sale := &entity.Sale{
		CompanyID:             companyID,
		WarehouseID:           in.WarehouseID,
		SellerID:              in.SellerID,
		IssueDate:             in.IssueDate,
		ValidUntil:            in.ValidUntil,
		Total:                 in.TotalAmount,
		SellerCommissionTotal: in.SellerCommissionTotal,
		CreatedAt:             now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			name := strings.TrimSpace(item.ProductName)
			product, err := productRepo.GetByName(name, companyID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, name)
			}

			level, err := levelRepo.GetForUpdate(product.ID, in.WarehouseID, companyID)
			if err != nil {
				return err
			}
			current := decimal.Zero
			if level != nil {
				current = level.Qty
			}
			if current.LessThan(item.Quantity) {
				metrics.InsufficientStockTotal.Inc()
				return fmt.Errorf("%w: %s (solicitado %s, disponible %s)",
					domain.ErrInsufficientStock, name, item.Quantity, current)
			}

			if err := saleRepo.CreateItem(&entity.SaleItem{
				SaleID:                  sale.ID,
				ProductID:               product.ID,
				Quantity:                item.Quantity,
				Price:                   item.Price,
				DiscountPercent:         item.DiscountPercent,
				DiscountAmount:          item.DiscountAmount,
				TaxType:                 item.TaxType,
				Tax:                     item.Tax,
				BeforeTax:               item.BeforeTax,
				WithholdingTax:          item.WithholdingTax,
				Total:                   item.Total,
				CommissionMode:          item.CommissionMode,
				CommissionPreset:        item.CommissionPreset,
				CommissionCustomPercent: item.CommissionCustomPercent,
				CommissionAmountPerUnit: item.CommissionAmountPerUnit,
				CommissionPerUnit:       item.CommissionPerUnit,
				CommissionTotal:         item.CommissionTotal,
			}); err != nil {
				return err
			}
			if err := levelRepo.AddDelta(product.ID, in.WarehouseID, companyID, item.Quantity.Neg()); err != nil {
				return err
			}
			if err := moveRepo.Create(&entity.StockMovement{
				ProductID:   product.ID,
				WarehouseID: in.WarehouseID,
				CompanyID:   companyID,
				MoveType:    entity.MoveTypeOUT,
				Qty:         item.Quantity,
				Note:        fmt.Sprintf("venta #%d", sale.ID),
				Reference:   ref,
				CreatedBy:   userName,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(entity.MoveTypeOUT).Add(float64(len(in.Items)))
	metrics.SalesTotal.Inc()
	return sale, nil
}
