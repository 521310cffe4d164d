package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

func buildSnapshot(t *testing.T, customers []entity.Customer, licenses []entity.License) *dataset.Snapshot {
	t.Helper()
	return dataset.NewSnapshot(dataset.Tables{
		Customers: customers,
		Licenses:  licenses,
	}, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
}

func TestBuildFeatures_AgregaPorCliente(t *testing.T) {
	snap := buildSnapshot(t,
		[]entity.Customer{{ID: "c1", Name: "Acme", Status: entity.StatusActive}},
		[]entity.License{
			{
				CustomerID: "c1", ProductID: "p1",
				Purchased: 100, Activated: 80,
				ContractValue:           decimal.NewFromInt(50000),
				Satisfaction:            8,
				SupportTickets:          3,
				DaysSinceFirstPurchase:  400,
				DaysSinceLastPurchase:   30,
				DaysSinceLastActivation: 10,
			},
			{
				CustomerID: "c1", ProductID: "p2",
				Purchased: 50, Activated: 50,
				ContractValue:           decimal.NewFromInt(20000),
				Satisfaction:            6,
				SupportTickets:          1,
				DaysSinceFirstPurchase:  200,
				DaysSinceLastPurchase:   60,
				DaysSinceLastActivation: 45,
			},
		},
	)

	features := analytics.BuildFeatures(snap)
	require.Len(t, features, 1)

	v := features[0]
	assert.Equal(t, 150.0, v.TotalPurchased)
	assert.Equal(t, 130.0, v.TotalActivated)
	assert.True(t, v.TotalContractValue.Equal(decimal.NewFromInt(70000)))
	assert.Equal(t, 2, v.LicenseCount)
	assert.InDelta(t, 7.0, v.Satisfaction, 1e-9)
	assert.Equal(t, 4.0, v.SupportTickets)

	// Primera compra: la más antigua. Última compra/activación: la más reciente.
	assert.Equal(t, 400.0, v.DaysSinceFirstPurchase)
	assert.Equal(t, 30.0, v.DaysSinceLastPurchase)
	assert.Equal(t, 10.0, v.DaysSinceLastActivation)
}

// Cliente sin compras: vector en cero, presente en la salida. Descartarlo
// sesgaría la segmentación y el modelo de churn.
func TestBuildFeatures_ClienteSinComprasNoSeDescarta(t *testing.T) {
	snap := buildSnapshot(t,
		[]entity.Customer{
			{ID: "c1", Name: "Con compras", Status: entity.StatusActive},
			{ID: "c2", Name: "Sin compras", Status: entity.StatusActive},
		},
		[]entity.License{
			{CustomerID: "c1", ProductID: "p1", Purchased: 10, Activated: 5, ContractValue: decimal.NewFromInt(100)},
		},
	)

	features := analytics.BuildFeatures(snap)
	require.Len(t, features, 2)

	empty := features[1]
	assert.Equal(t, "c2", empty.CustomerID)
	assert.Zero(t, empty.TotalPurchased)
	assert.Zero(t, empty.LicenseCount)
	assert.True(t, empty.TotalContractValue.IsZero())
	assert.Zero(t, empty.ActivationRate())
}

func TestActivationRate_RecortadaARango(t *testing.T) {
	over := analytics.FeatureVector{TotalPurchased: 10, TotalActivated: 25}
	assert.Equal(t, 100.0, over.ActivationRate(), "activado > comprado se recorta a 100")

	zero := analytics.FeatureVector{TotalPurchased: 0, TotalActivated: 5}
	assert.Equal(t, 0.0, zero.ActivationRate(), "sin compras la tasa es 0, no división por cero")

	normal := analytics.FeatureVector{TotalPurchased: 200, TotalActivated: 50}
	assert.InDelta(t, 25.0, normal.ActivationRate(), 1e-9)
}

func TestChurned_PoliticaDeEtiquetado(t *testing.T) {
	cases := []struct {
		name     string
		vector   analytics.FeatureVector
		expected bool
	}{
		{
			name:     "activación reciente y estado activo",
			vector:   analytics.FeatureVector{Status: entity.StatusActive, DaysSinceLastActivation: 30},
			expected: false,
		},
		{
			name:     "recencia supera el umbral",
			vector:   analytics.FeatureVector{Status: entity.StatusActive, DaysSinceLastActivation: 120},
			expected: true,
		},
		{
			name:     "estado inactivo gana aunque la recencia sea corta",
			vector:   analytics.FeatureVector{Status: entity.StatusInactive, DaysSinceLastActivation: 5},
			expected: true,
		},
		{
			name:     "estado suspendido también marca churn",
			vector:   analytics.FeatureVector{Status: entity.StatusSuspended, DaysSinceLastActivation: 5},
			expected: true,
		},
		{
			name:     "exactamente en el umbral no es churn",
			vector:   analytics.FeatureVector{Status: entity.StatusActive, DaysSinceLastActivation: 90},
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.vector.Churned(90))
		})
	}
}

func TestRow_OrdenDeFeatureNames(t *testing.T) {
	v := analytics.FeatureVector{
		TotalPurchased:          1,
		TotalActivated:          2,
		TotalContractValue:      decimal.NewFromInt(3),
		DaysSinceFirstPurchase:  4,
		DaysSinceLastPurchase:   5,
		DaysSinceLastActivation: 6,
		Satisfaction:            7,
		SupportTickets:          8,
		FeatureUtilization:      9,
	}

	row := v.Row()
	require.Len(t, row, len(analytics.FeatureNames))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, row)
}
