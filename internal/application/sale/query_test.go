package sale_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/sale"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

func TestSaleQuery_DevuelveCabeceraYLineas(t *testing.T) {
	f := newSaleFixture(t)

	out, err := f.uc.CreateSale(context.Background(), testCompanyID, testUser,
		f.saleInput(item("Camisa", "3"), item("Gorra", "1")))
	require.NoError(t, err)

	query := sale.NewSaleQueryUseCase(&fakeSaleRepo{f.runner.state})
	s, items, err := query.GetByID(testCompanyID, out.ID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, out.ID, s.ID)
	assert.Equal(t, testCompanyID, s.CompanyID)

	require.Len(t, items, 2)
	assert.Equal(t, "Camisa", items[0].ProductName)
	assert.Equal(t, "Gorra", items[1].ProductName)
	for _, it := range items {
		assert.Equal(t, s.ID, it.SaleID)
	}
}

func TestSaleQuery_VentaDeOtraEmpresa(t *testing.T) {
	f := newSaleFixture(t)

	out, err := f.uc.CreateSale(context.Background(), testCompanyID, testUser,
		f.saleInput(item("Camisa", "1")))
	require.NoError(t, err)

	query := sale.NewSaleQueryUseCase(&fakeSaleRepo{f.runner.state})
	_, _, err = query.GetByID(otherCompanyID, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleQuery_VentaInexistente(t *testing.T) {
	f := newSaleFixture(t)

	query := sale.NewSaleQueryUseCase(&fakeSaleRepo{f.runner.state})
	_, _, err := query.GetByID(testCompanyID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
