package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/stock"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// StockHandler maneja entradas, salidas, ensambles y consultas del ledger
// (protegido).
type StockHandler struct {
	uc    *stock.StockUseCase
	query *stock.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase, query *stock.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc, query: query}
}

// StockIn registra una entrada de stock y devuelve el producto con el stock
// resultante en la bodega.
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.uc.StockIn(c.Context(), GetCompanyID(c), GetUserName(c), stock.MoveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Qty:         in.Qty,
		Note:        in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductStockResponse{
		ID: view.ID, Code: view.Code, Name: view.Name, Unit: view.Unit,
		Price: view.Price, StockQty: view.StockQty,
	})
}

// StockOut registra una salida de stock; sin stock suficiente responde 409.
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.uc.StockOut(c.Context(), GetCompanyID(c), GetUserName(c), stock.MoveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Qty:         in.Qty,
		Note:        in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductStockResponse{
		ID: view.ID, Code: view.Code, Name: view.Name, Unit: view.Unit,
		Price: view.Price, StockQty: view.StockQty,
	})
}

// Assembly consume componentes y produce el producto resultado, todo o nada.
func (h *StockHandler) Assembly(c *fiber.Ctx) error {
	var in dto.AssemblyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	components := make([]stock.AssemblyComponent, 0, len(in.Components))
	for _, comp := range in.Components {
		components = append(components, stock.AssemblyComponent{ProductID: comp.ProductID, PerUnit: comp.PerUnit})
	}
	view, err := h.uc.Assembly(c.Context(), GetCompanyID(c), GetUserName(c), stock.AssemblyInput{
		Components: components,
		Result: stock.AssemblyResult{
			Code:  in.Result.Code,
			Name:  in.Result.Name,
			Unit:  in.Result.Unit,
			Price: in.Result.Price,
			Qty:   in.Result.Qty,
		},
		WarehouseID: in.WarehouseID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductStockResponse{
		ID: view.ID, Code: view.Code, Name: view.Name, Unit: view.Unit,
		Price: view.Price, StockQty: view.StockQty,
	})
}

// Movements lista el historial del ledger por producto (?product_id=) o por
// bodega (?warehouse_id=), con rango opcional ?from= y ?to= (YYYY-MM-DD).
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	from, err := dateParam(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato YYYY-MM-DD"})
	}
	to, err := dateParam(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato YYYY-MM-DD"})
	}

	companyID := GetCompanyID(c)
	var list []*entity.StockMovement
	switch {
	case c.QueryInt("product_id", 0) > 0:
		list, err = h.query.MovementsByProduct(companyID, int64(c.QueryInt("product_id")), from, to, page.Limit, page.Offset)
	case c.QueryInt("warehouse_id", 0) > 0:
		list, err = h.query.MovementsByWarehouse(companyID, int64(c.QueryInt("warehouse_id")), from, to, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o warehouse_id requerido"})
	}
	if err != nil {
		return respondError(c, err)
	}

	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			MoveType:    m.MoveType,
			Qty:         m.Qty,
			Note:        m.Note,
			Reference:   m.Reference,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Levels lista los niveles de stock de una bodega (?warehouse_id=) o el total
// agregado de un producto en todas las bodegas (?product_id=).
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)

	if pid := c.QueryInt("product_id", 0); pid > 0 {
		total, err := h.query.TotalByProduct(companyID, int64(pid))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ProductTotalStockResponse{ProductID: int64(pid), TotalQty: total})
	}

	whID := c.QueryInt("warehouse_id", 0)
	if whID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id o warehouse_id requerido"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	levels, err := h.query.LevelsByWarehouse(companyID, int64(whID), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		items = append(items, dto.StockLevelResponse{
			ProductID:   lv.ProductID,
			WarehouseID: lv.WarehouseID,
			Qty:         lv.Qty,
			UpdatedAt:   lv.UpdatedAt,
		})
	}
	return c.JSON(dto.StockLevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// dateParam parsea un query param de fecha opcional. Para el límite superior
// devuelve el fin del día para que el rango sea inclusivo.
func dateParam(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
