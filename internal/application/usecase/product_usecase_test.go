package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const testCompanyID = int64(1)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fakeProductRepo catálogo en memoria; withMoves marca productos que el
// ledger referencia (para la regla de borrado).
type fakeProductRepo struct {
	products  map[int64]*entity.Product
	withMoves map[int64]bool
	nextID    int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  make(map[int64]*entity.Product),
		withMoves: make(map[int64]bool),
	}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	for _, ex := range f.products {
		if ex.CompanyID == p.CompanyID && ex.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id, companyID int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByCode(code string, companyID int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByName(name string, companyID int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(id, companyID int64) error {
	p, ok := f.products[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) HasMovements(id, companyID int64) (bool, error) {
	return f.withMoves[id], nil
}

func (f *fakeProductRepo) GetWithStock(id, companyID int64, warehouseID *int64) (*repository.ProductWithStock, error) {
	p, ok := f.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &repository.ProductWithStock{
		ID: p.ID, Code: p.Code, Name: p.Name, Unit: p.Unit, Price: p.Price,
		StockQty: decimal.Zero,
	}, nil
}

func (f *fakeProductRepo) Search(companyID int64, q string, warehouseID *int64, limit, offset int) ([]*repository.ProductWithStock, int, error) {
	var views []*repository.ProductWithStock
	for _, p := range f.products {
		if p.CompanyID != companyID {
			continue
		}
		views = append(views, &repository.ProductWithStock{
			ID: p.ID, Code: p.Code, Name: p.Name, Unit: p.Unit, Price: p.Price,
		})
	}
	total := len(views)
	if offset > len(views) {
		offset = len(views)
	}
	end := offset + limit
	if end > len(views) {
		end = len(views)
	}
	return views[offset:end], total, nil
}

func newProductUC() (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	// el motor de stock solo participa cuando el alta trae stock inicial
	return usecase.NewProductUseCase(repo, nil), repo
}

func createRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:  "CAM-01",
		Name:  "Camisa",
		Unit:  "und",
		Price: dec("95.5"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_OK(t *testing.T) {
	uc, _ := newProductUC()

	out, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "CAM-01", out.Code)
	assert.True(t, out.Price.Equal(dec("95.5")))
}

func TestProductCreate_CodigoDuplicado_Duplicate(t *testing.T) {
	uc, _ := newProductUC()
	_, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"el código es único dentro de la empresa")
}

func TestProductCreate_MismoCodigoOtraEmpresa_OK(t *testing.T) {
	uc, _ := newProductUC()
	_, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), int64(2), "Luis", createRequest())
	assert.NoError(t, err, "el cerco de unicidad es por empresa, no global")
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newProductUC()

	in := createRequest()
	in.Code = "  "
	_, err := uc.Create(context.Background(), testCompanyID, "Ana", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = createRequest()
	in.Price = dec("-1")
	_, err = uc.Create(context.Background(), testCompanyID, "Ana", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)

	out, err := uc.Update(testCompanyID, created.ID, dto.UpdateProductRequest{
		Name:  strPtr("Camisa manga larga"),
		Price: decPtr("120"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Camisa manga larga", out.Name)
	assert.Equal(t, "und", out.Unit, "los campos no enviados se conservan")
	assert.True(t, out.Price.Equal(dec("120")))
	assert.Equal(t, "CAM-01", out.Code, "el código no se edita")
}

func TestProductUpdate_OtraEmpresa_NotFound(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)

	_, err = uc.Update(int64(2), created.ID, dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_SinMovimientos_OK(t *testing.T) {
	uc, repo := newProductUC()
	created, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(testCompanyID, created.ID))
	assert.NotContains(t, repo.products, created.ID)
}

func TestProductDelete_ConMovimientos_Conflict(t *testing.T) {
	uc, repo := newProductUC()
	created, err := uc.Create(context.Background(), testCompanyID, "Ana", createRequest())
	require.NoError(t, err)
	repo.withMoves[created.ID] = true

	err = uc.Delete(testCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un producto referenciado por el ledger no se borra")
	assert.Contains(t, repo.products, created.ID)
}

func TestProductDelete_Inexistente_NotFound(t *testing.T) {
	uc, _ := newProductUC()
	assert.ErrorIs(t, uc.Delete(testCompanyID, 42), domain.ErrNotFound)
}

func TestProductList_Pagina(t *testing.T) {
	uc, _ := newProductUC()
	for _, code := range []string{"A-1", "A-2", "A-3"} {
		in := createRequest()
		in.Code = code
		in.Name = "Prod " + code
		_, err := uc.Create(context.Background(), testCompanyID, "Ana", in)
		require.NoError(t, err)
	}

	out, err := uc.List(testCompanyID, "", nil, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Limit)
}
