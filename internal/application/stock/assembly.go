package stock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

// AssemblyComponent componente de un ensamble: PerUnit unidades del producto
// por cada unidad del resultado.
type AssemblyComponent struct {
	ProductID int64
	PerUnit   decimal.Decimal
}

// AssemblyResult producto resultante del ensamble. Code es la llave de merge:
// si ya existe un producto con ese código en la empresa se actualiza en vez
// de duplicarse (permite repetir la misma receta).
type AssemblyResult struct {
	Code  string
	Name  string
	Unit  string
	Price decimal.Decimal
	Qty   decimal.Decimal
}

// AssemblyInput entrada para Assembly.
type AssemblyInput struct {
	Components  []AssemblyComponent
	Result      AssemblyResult
	WarehouseID int64
}

// estado de un componente tras el pase de bloqueo.
type lockedComponent struct {
	code      string
	available decimal.Decimal
}

// Assembly consume N componentes en proporciones fijas y produce Result.Qty
// unidades del producto resultado, todo o nada:
//
//  1. Pase de bloqueo: toma FOR UPDATE sobre todas las filas de stock de los
//     componentes, en orden canónico ascendente de productID (evita deadlocks
//     entre ensambles concurrentes con componentes en común).
//  2. Pase de validación: en el orden del caller, fail-fast; una falla en el
//     componente 3 deja los componentes 1 y 2 intactos porque nada se mutó aún.
//  3. Pase de descuento + upsert del resultado por código + movimientos
//     ASSEMBLY_OUT/ASSEMBLY_IN, todos en la misma transacción.
func (uc *StockUseCase) Assembly(ctx context.Context, companyID int64, userName string, in AssemblyInput) (*repository.ProductWithStock, error) {
	in.Result.Code = strings.TrimSpace(in.Result.Code)
	in.Result.Name = strings.TrimSpace(in.Result.Name)
	in.Result.Unit = strings.TrimSpace(in.Result.Unit)

	if len(in.Components) == 0 {
		return nil, fmt.Errorf("%w: sin componentes", domain.ErrInvalidInput)
	}
	if in.Result.Code == "" {
		return nil, fmt.Errorf("%w: el código del resultado es requerido", domain.ErrInvalidInput)
	}
	if !in.Result.Qty.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad del resultado debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Result.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	for _, c := range in.Components {
		if !c.PerUnit.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: perUnit del producto %d debe ser mayor que cero", domain.ErrInvalidInput, c.ProductID)
		}
	}
	if err := uc.ensureWarehouse(companyID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	ref := uuid.New().String()
	var resultID int64

	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.StockLevelRepository,
		moveRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// 1) Pase de bloqueo en orden canónico por productID.
		locked := make(map[int64]*lockedComponent, len(in.Components))
		ids := make([]int64, 0, len(in.Components))
		for _, c := range in.Components {
			if _, ok := locked[c.ProductID]; ok {
				continue
			}
			locked[c.ProductID] = nil
			ids = append(ids, c.ProductID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			product, err := productRepo.GetByID(id, companyID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
			}
			level, err := levelRepo.GetForUpdate(id, in.WarehouseID, companyID)
			if err != nil {
				return err
			}
			if level == nil {
				// Sin fila en esta bodega; se reporta en el pase de validación
				// respetando el orden de los componentes del caller.
				delete(locked, id)
				continue
			}
			locked[id] = &lockedComponent{code: product.Code, available: level.Qty}
		}

		// 2) Pase de validación en orden del caller, fail-fast. consumed
		// acumula lo que componentes previos del mismo producto ya reservaron.
		consumed := make(map[int64]decimal.Decimal)
		for _, c := range in.Components {
			need := c.PerUnit.Mul(in.Result.Qty)
			st := locked[c.ProductID]
			if st == nil {
				return fmt.Errorf("%w: producto %d sin stock en bodega %d",
					domain.ErrNotFound, c.ProductID, in.WarehouseID)
			}
			available := st.available.Sub(consumed[c.ProductID])
			if available.LessThan(need) {
				metrics.InsufficientStockTotal.Inc()
				return fmt.Errorf("%w: %s requiere %s y hay %s",
					domain.ErrInsufficientStock, st.code, need, available)
			}
			consumed[c.ProductID] = consumed[c.ProductID].Add(need)
		}

		// 3) Pase de descuento: resta y movimiento ASSEMBLY_OUT por componente.
		for _, c := range in.Components {
			need := c.PerUnit.Mul(in.Result.Qty)
			if err := levelRepo.AddDelta(c.ProductID, in.WarehouseID, companyID, need.Neg()); err != nil {
				return err
			}
			if err := moveRepo.Create(&entity.StockMovement{
				ProductID:   c.ProductID,
				WarehouseID: in.WarehouseID,
				CompanyID:   companyID,
				MoveType:    entity.MoveTypeAssemblyOUT,
				Qty:         need,
				Note:        "para " + in.Result.Code,
				Reference:   ref,
				CreatedBy:   userName,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		// 4) Upsert del producto resultado por código (llave de merge estable).
		existing, err := productRepo.GetByCode(in.Result.Code, companyID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Name = in.Result.Name
			existing.Unit = in.Result.Unit
			existing.Price = in.Result.Price
			existing.UpdatedAt = now
			if err := productRepo.Update(existing); err != nil {
				return err
			}
			resultID = existing.ID
		} else {
			created := &entity.Product{
				CompanyID: companyID,
				Code:      in.Result.Code,
				Name:      in.Result.Name,
				Unit:      in.Result.Unit,
				Price:     in.Result.Price,
				CreatedBy: userName,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := productRepo.Create(created); err != nil {
				return err
			}
			resultID = created.ID
		}

		// 5) Suma del resultado y movimiento ASSEMBLY_IN.
		if _, err := levelRepo.GetForUpdate(resultID, in.WarehouseID, companyID); err != nil {
			return err
		}
		if err := levelRepo.AddDelta(resultID, in.WarehouseID, companyID, in.Result.Qty); err != nil {
			return err
		}
		return moveRepo.Create(&entity.StockMovement{
			ProductID:   resultID,
			WarehouseID: in.WarehouseID,
			CompanyID:   companyID,
			MoveType:    entity.MoveTypeAssemblyIN,
			Qty:         in.Result.Qty,
			Note:        "resultado de ensamble",
			Reference:   ref,
			CreatedBy:   userName,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(entity.MoveTypeAssemblyOUT).Add(float64(len(in.Components)))
	metrics.MovementsTotal.WithLabelValues(entity.MoveTypeAssemblyIN).Inc()
	return uc.productRepo.GetWithStock(resultID, companyID, &in.WarehouseID)
}
