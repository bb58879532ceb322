package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/sale"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// SaleHandler maneja la creación y consulta de ventas (protegido).
type SaleHandler struct {
	uc    *sale.CreateSaleUseCase
	query *sale.SaleQueryUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.CreateSaleUseCase, query *sale.SaleQueryUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, query: query}
}

// Create aplica una venta: inserta cabecera y líneas y descuenta el stock de
// cada producto en la bodega indicada, todo en una transacción.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	issueDate, err := time.Parse("2006-01-02", in.IssueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "issue_date inválida, formato YYYY-MM-DD"})
	}
	validUntil, err := time.Parse("2006-01-02", in.ValidUntil)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "valid_until inválida, formato YYYY-MM-DD"})
	}

	items := make([]sale.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sale.ItemInput{
			ProductName:             it.ProductName,
			Quantity:                it.Quantity,
			Price:                   it.Price,
			DiscountPercent:         it.DiscountPercent,
			DiscountAmount:          it.DiscountAmount,
			TaxType:                 it.TaxType,
			Tax:                     it.Tax,
			BeforeTax:               it.BeforeTax,
			WithholdingTax:          it.WithholdingTax,
			Total:                   it.Total,
			CommissionMode:          it.CommissionMode,
			CommissionPreset:        it.CommissionPreset,
			CommissionCustomPercent: it.CommissionCustomPercent,
			CommissionAmountPerUnit: it.CommissionAmountPerUnit,
			CommissionPerUnit:       it.CommissionPerUnit,
			CommissionTotal:         it.CommissionTotal,
		})
	}

	out, err := h.uc.CreateSale(c.Context(), GetCompanyID(c), GetUserName(c), sale.CreateSaleInput{
		SellerID:              GetUserID(c),
		WarehouseID:           in.WarehouseID,
		IssueDate:             issueDate,
		ValidUntil:            validUntil,
		TotalAmount:           in.TotalAmount,
		SellerCommissionTotal: in.SellerCommissionTotal,
		Items:                 items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(out))
}

// GetByID devuelve la venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id numérico requerido"})
	}
	s, items, err := h.query.GetByID(GetCompanyID(c), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.SaleDetailResponse{SaleResponse: toSaleResponse(s)}
	for _, it := range items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			Price:           it.Price,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
			TaxType:         it.TaxType,
			Tax:             it.Tax,
			Total:           it.Total,
			CommissionTotal: it.CommissionTotal,
		})
	}
	return c.JSON(out)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:                    s.ID,
		WarehouseID:           s.WarehouseID,
		SellerID:              s.SellerID,
		IssueDate:             s.IssueDate,
		ValidUntil:            s.ValidUntil,
		Total:                 s.Total,
		SellerCommissionTotal: s.SellerCommissionTotal,
		CreatedAt:             s.CreatedAt,
	}
}
