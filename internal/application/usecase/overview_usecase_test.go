package usecase_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

func TestOverview_TotalesGlobales(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, out.TotalCustomers)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 2, out.TotalVendors)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(306000)))
	assert.Equal(t, 1080.0, out.TotalPurchased)
	assert.Equal(t, 540.0, out.TotalActivated)
	assert.Equal(t, 50.0, out.ActivationRate)
	assert.Equal(t, 6, out.ChurnedCustomers)
	assert.Equal(t, 50.0, out.ChurnRate)
}

// 55 activadas sobre 60 compradas: 91.666...% se redondea a 91.7.
func TestOverview_TasaDeActivacionRedondeada(t *testing.T) {
	tables := dataset.Tables{
		Customers: []entity.Customer{{ID: "c1", Name: "Uno", Status: entity.StatusActive}},
		Licenses: []entity.License{
			{CustomerID: "c1", ProductID: "p1", Purchased: 60, Activated: 55,
				ContractValue: decimal.Zero, DaysSinceLastActivation: 10},
		},
	}
	uc := usecase.NewOverviewUseCase(storeWith(tables), testAnalyticsConfig())

	out, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 91.7, out.ActivationRate)
}

func TestCustomerMetrics_ClienteExistente(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.CustomerMetrics(context.Background(), "c01")
	require.NoError(t, err)

	assert.Equal(t, "c01", out.CustomerID)
	assert.Equal(t, "Cliente c01", out.CustomerName)
	assert.Equal(t, "Active", out.Status)
	assert.Equal(t, 30.0, out.TotalPurchased)
	assert.Equal(t, 15.0, out.TotalActivated)
	assert.Equal(t, 50.0, out.ActivationRate)
	assert.True(t, out.TotalContractValue.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 1, out.LicenseCount)
}

func TestCustomerMetrics_ClienteDesconocido(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	_, err := uc.CustomerMetrics(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRevenueByCategory_OrdenDescendente(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.RevenueByCategory(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 10)

	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].Revenue.GreaterThanOrEqual(out[i].Revenue))
	}
	for _, row := range out {
		assert.NotEmpty(t, row.Category)
	}
}

func TestActivationByProduct_TopConNombresTruncados(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.ActivationByProduct(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 10)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Activated, out[i].Activated)
	}
	for _, row := range out {
		assert.LessOrEqual(t, len(row.ProductName), 20)
	}
}

func TestActivationByProduct_NombresMultibyteNoSeParten(t *testing.T) {
	tables := dataset.Tables{
		Customers: []entity.Customer{{ID: "c1", Name: "Uno", Status: entity.StatusActive}},
		Products: []entity.Product{
			{ID: "p1", Name: "Solución de Seguridad Avanzada Año Nuevo", Category: "Security"},
		},
		Licenses: []entity.License{
			{CustomerID: "c1", ProductID: "p1", Purchased: 10, Activated: 5,
				ContractValue: decimal.NewFromInt(1000), DaysSinceFirstPurchase: 50, DaysSinceLastActivation: 10},
		},
	}
	uc := usecase.NewOverviewUseCase(storeWith(tables), testAnalyticsConfig())

	out, err := uc.ActivationByProduct(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 1)

	name := out[0].ProductName
	assert.True(t, utf8.ValidString(name), "el recorte no debe partir una runa: %q", name)
	assert.LessOrEqual(t, utf8.RuneCountInString(name), 20)
	assert.True(t, strings.HasSuffix(name, "..."))
}

func TestRankings_FiltradosPorCliente(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())
	ctx := context.Background()

	// c01 tiene una sola licencia, el agregado filtrado debe reflejar solo esa.
	revenue, err := uc.RevenueByCategory(ctx, "c01")
	require.NoError(t, err)
	require.Len(t, revenue, 1)
	assert.True(t, revenue[0].Revenue.Equal(decimal.NewFromInt(8000)),
		"esperaba 8000, obtuve %s", revenue[0].Revenue)

	activated, err := uc.ActivationByProduct(ctx, "c01")
	require.NoError(t, err)
	require.Len(t, activated, 1)
	assert.Equal(t, 15.0, activated[0].Activated)

	_, err = uc.RevenueByCategory(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	_, err = uc.ActivationByProduct(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestListados_IDsYNombres(t *testing.T) {
	uc := usecase.NewOverviewUseCase(storeWith(trainingTables()), testAnalyticsConfig())
	ctx := context.Background()

	customers, err := uc.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 12)
	assert.Equal(t, "c01", customers[0].ID)

	vendors, err := uc.Vendors(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 2)
}
