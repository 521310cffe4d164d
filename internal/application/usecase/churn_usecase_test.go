package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
)

func TestPredictCustomer_ClienteDesconocido(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	_, err := uc.PredictCustomer(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestPredictCustomer_MuestraChicaMarcadaComoInsuficiente(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(smallTables()), testAnalyticsConfig())

	out, err := uc.PredictCustomer(context.Background(), "c1")
	require.NoError(t, err, "muestra chica no es un error: es un resultado marcado")

	assert.True(t, out.InsufficientData)
	assert.Equal(t, 0.0, out.ChurnProbability)
	assert.Empty(t, out.Drivers)
	assert.Equal(t, "Low", out.RiskLevel)
}

func TestPredictCustomer_ProbabilidadYDrivers(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.PredictCustomer(context.Background(), "c01")
	require.NoError(t, err)

	assert.False(t, out.InsufficientData)
	assert.GreaterOrEqual(t, out.ChurnProbability, 0.0)
	assert.LessOrEqual(t, out.ChurnProbability, 1.0)
	assert.Contains(t, []string{"High", "Medium", "Low"}, out.RiskLevel)
	assert.NotEmpty(t, out.Recommendation)

	require.Len(t, out.Drivers, len(analytics.FeatureNames))
	for i := 1; i < len(out.Drivers); i++ {
		assert.GreaterOrEqual(t, out.Drivers[i-1].Importance, out.Drivers[i].Importance,
			"drivers ordenados por importancia descendente")
	}
	for _, d := range out.Drivers {
		assert.Contains(t, []string{"Positive", "Negative"}, d.Impact)
		assert.GreaterOrEqual(t, d.Importance, 0.0)
	}
}

// Un cliente con recencia larga debe puntuar más alto que uno recién activo.
func TestPredictCustomer_RecenciaLargaPuntuaMasAlto(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(trainingTables()), testAnalyticsConfig())
	ctx := context.Background()

	active, err := uc.PredictCustomer(ctx, "c01")
	require.NoError(t, err)
	churned, err := uc.PredictCustomer(ctx, "c12")
	require.NoError(t, err)

	assert.Greater(t, churned.ChurnProbability, active.ChurnProbability)
}

func TestModelMetrics_DatosInsuficientes(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(smallTables()), testAnalyticsConfig())

	_, err := uc.ModelMetrics(context.Background())
	assert.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestModelMetrics_MetricasEnRango(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.ModelMetrics(context.Background())
	require.NoError(t, err)

	for name, v := range map[string]float64{
		"accuracy":  out.Accuracy,
		"precision": out.Precision,
		"recall":    out.Recall,
		"f1":        out.F1Score,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}

	if !out.BaselineModel {
		assert.Equal(t, analytics.FeatureNames, out.Features)
		assert.Len(t, out.Importances, len(analytics.FeatureNames))
	}
	assert.Positive(t, out.TrainingRows)
}

func TestHighRisk_RankingOrdenado(t *testing.T) {
	uc := usecase.NewChurnUseCase(storeWith(trainingTables()), testAnalyticsConfig())

	out, err := uc.HighRisk(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 10)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].ChurnProbability, out[i].ChurnProbability)
	}
}
