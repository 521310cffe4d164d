package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
)

func TestSegments_CadaClienteEnUnSegmento(t *testing.T) {
	uc := usecase.NewSegmentationUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.Segments(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out.Segments)

	total := 0
	for _, s := range out.Segments {
		total += s.Count
		assert.Positive(t, s.Count, "no se reportan segmentos vacíos")
	}
	assert.Equal(t, out.TotalCustomers, total, "la suma de counts cubre la población completa")
	assert.Equal(t, 12, out.TotalCustomers)
}

func TestSegments_PerfilYEtiquetas(t *testing.T) {
	uc := usecase.NewSegmentationUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.Segments(context.Background())
	require.NoError(t, err)
	require.Len(t, out.CharacteristicLabels, 4)

	valid := []string{"Premium", "Enterprise", "Active", "At-Risk", "Standard"}
	for _, s := range out.Segments {
		assert.Contains(t, valid, s.Name)
		assert.Contains(t, []string{"High", "Medium", "Low"}, s.ChurnRisk)
		assert.NotEmpty(t, s.Recommendation)

		require.Len(t, s.Characteristics, len(out.CharacteristicLabels))
		for _, c := range s.Characteristics {
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 100.0)
		}

		assert.NotEmpty(t, s.TopCustomers)
		for i := 1; i < len(s.TopCustomers); i++ {
			assert.True(t, s.TopCustomers[i-1].ContractValue.GreaterThanOrEqual(s.TopCustomers[i].ContractValue),
				"clientes destacados ordenados por valor de contrato")
		}
	}
}

// k se recorta al tamaño de la población: con 3 clientes y k=4 configurado,
// salen a lo sumo 3 segmentos.
func TestSegments_KRecortadoAPoblacion(t *testing.T) {
	uc := usecase.NewSegmentationUseCase(storeWith(smallTables()), testAnalyticsConfig())

	out, err := uc.Segments(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out.Segments), 3)

	total := 0
	for _, s := range out.Segments {
		total += s.Count
	}
	assert.Equal(t, 3, total)
}

func TestSegments_PoblacionVacia(t *testing.T) {
	uc := usecase.NewSegmentationUseCase(storeWith(dataset.Tables{}), testAnalyticsConfig())

	out, err := uc.Segments(context.Background())
	require.NoError(t, err, "población vacía es un resultado vacío, no un error")
	assert.Empty(t, out.Segments)
	assert.Zero(t, out.TotalCustomers)
}

func TestSegments_Determinista(t *testing.T) {
	uc := usecase.NewSegmentationUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	a, err := uc.Segments(context.Background())
	require.NoError(t, err)
	b, err := uc.Segments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
