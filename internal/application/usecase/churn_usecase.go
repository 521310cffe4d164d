package usecase

import (
	"context"
	"math"
	"sort"

	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/ml"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
)

const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
	highRiskTopN        = 10
	testFraction        = 0.3
	splitSeed           = 42
)

// Textos de recomendación por nivel de riesgo (copy de producto, en inglés
// porque así lo consume el dashboard).
const (
	recoHigh   = "Immediate intervention required. Schedule an executive business review and offer renewal incentives."
	recoMedium = "Proactive outreach recommended. Increase engagement through training and feature adoption programs."
	recoLow    = "Customer is healthy. Continue regular engagement and look for upsell opportunities."
)

// ChurnUseCase entrena y consulta el modelo de riesgo de fuga. El modelo se
// reentrena en cada llamada sobre el snapshot vigente: el dataset cabe en
// memoria y el entrenamiento es determinista, así que el resultado es estable
// entre requests con el mismo snapshot.
type ChurnUseCase struct {
	store *dataset.Store
	cfg   config.AnalyticsConfig
}

// NewChurnUseCase construye el caso de uso.
func NewChurnUseCase(store *dataset.Store, cfg config.AnalyticsConfig) *ChurnUseCase {
	return &ChurnUseCase{store: store, cfg: cfg}
}

// PredictCustomer probabilidad de fuga de un cliente con sus drivers.
// Con menos filas que el mínimo de entrenamiento devuelve un resultado
// marcado como insuficiente en vez de una probabilidad inventada.
func (uc *ChurnUseCase) PredictCustomer(_ context.Context, customerID string) (*dto.ChurnPredictionDTO, error) {
	snap := uc.store.Current()
	customer, ok := snap.CustomerByID(customerID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}

	features := analytics.BuildFeatures(snap)
	target, ok := findVector(features, customerID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}

	if len(features) < uc.cfg.MinTrainingRows {
		return &dto.ChurnPredictionDTO{
			CustomerID:       customer.ID,
			CustomerName:     customer.Name,
			ChurnProbability: 0,
			RiskLevel:        riskLevel(0),
			Recommendation:   recoLow,
			Drivers:          []dto.DriverDTO{},
			InsufficientData: true,
		}, nil
	}

	x, y := trainingMatrix(features, uc.cfg.ChurnThresholdDays)
	scaler := ml.FitScaler(x)
	clf, fallback := ml.FitClassifier(scaler.TransformAll(x), y, ml.DefaultLogisticOptions())

	proba := clf.PredictProba(scaler.Transform(target.Row()))
	level := riskLevel(proba)

	return &dto.ChurnPredictionDTO{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		ChurnProbability: proba,
		RiskLevel:        level,
		Recommendation:   recommendationFor(level),
		Drivers:          buildDrivers(clf),
		BaselineModel:    fallback,
	}, nil
}

// ModelMetrics entrena con partición 70/30 y reporta métricas sobre la parte
// de prueba. Determinista: semilla fija para la partición.
func (uc *ChurnUseCase) ModelMetrics(_ context.Context) (*dto.ChurnModelDTO, error) {
	snap := uc.store.Current()
	features := analytics.BuildFeatures(snap)
	if len(features) < uc.cfg.MinTrainingRows {
		return nil, domain.ErrInsufficientData
	}

	x, y := trainingMatrix(features, uc.cfg.ChurnThresholdDays)
	scaler := ml.FitScaler(x)
	scaled := scaler.TransformAll(x)

	trainIdx, testIdx := ml.TrainTestSplit(len(scaled), testFraction, splitSeed)
	xTrain, yTrain := subset(scaled, y, trainIdx)
	xTest, yTest := subset(scaled, y, testIdx)

	clf, fallback := ml.FitClassifier(xTrain, yTrain, ml.DefaultLogisticOptions())

	yPred := make([]int, len(xTest))
	for i, row := range xTest {
		if clf.PredictProba(row) >= 0.5 {
			yPred[i] = 1
		}
	}
	m := ml.EvaluateBinary(yTest, yPred)

	out := &dto.ChurnModelDTO{
		Accuracy:      m.Accuracy,
		Precision:     m.Precision,
		Recall:        m.Recall,
		F1Score:       m.F1,
		Features:      []string{},
		Importances:   []float64{},
		TrainingRows:  len(xTrain),
		BaselineModel: fallback,
	}
	if weights, ok := clf.Coefficients(); ok {
		out.Features = append([]string(nil), analytics.FeatureNames...)
		out.Importances = make([]float64, len(weights))
		for i, w := range weights {
			out.Importances[i] = math.Abs(w)
		}
	}
	return out, nil
}

// HighRisk ranking de los clientes con mayor probabilidad de fuga, con el
// valor de contrato en juego para priorizar la retención.
func (uc *ChurnUseCase) HighRisk(_ context.Context) ([]dto.HighRiskCustomerDTO, error) {
	snap := uc.store.Current()
	features := analytics.BuildFeatures(snap)
	if len(features) < uc.cfg.MinTrainingRows {
		return nil, domain.ErrInsufficientData
	}

	x, y := trainingMatrix(features, uc.cfg.ChurnThresholdDays)
	scaler := ml.FitScaler(x)
	clf, _ := ml.FitClassifier(scaler.TransformAll(x), y, ml.DefaultLogisticOptions())

	type scored struct {
		v     analytics.FeatureVector
		proba float64
	}
	rows := make([]scored, 0, len(features))
	for _, v := range features {
		rows = append(rows, scored{v: v, proba: clf.PredictProba(scaler.Transform(v.Row()))})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].proba > rows[j].proba })
	if len(rows) > highRiskTopN {
		rows = rows[:highRiskTopN]
	}

	out := make([]dto.HighRiskCustomerDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.HighRiskCustomerDTO{
			CustomerID:        r.v.CustomerID,
			CustomerName:      r.v.CustomerName,
			ChurnProbability:  r.proba,
			RiskLevel:         riskLevel(r.proba),
			ContractValue:     r.v.TotalContractValue.Round(2),
			DaysSincePurchase: r.v.DaysSinceLastPurchase,
		})
	}
	return out, nil
}

// trainingMatrix filas numéricas y etiquetas de churn en el orden de features.
func trainingMatrix(features []analytics.FeatureVector, thresholdDays int) (x [][]float64, y []int) {
	x = make([][]float64, len(features))
	y = make([]int, len(features))
	for i, v := range features {
		x[i] = v.Row()
		if v.Churned(thresholdDays) {
			y[i] = 1
		}
	}
	return x, y
}

func subset(x [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
	}
	return xs, ys
}

// buildDrivers coeficientes ordenados por importancia descendente; vacío (no
// nil) cuando el modelo no expone pesos.
func buildDrivers(clf ml.Classifier) []dto.DriverDTO {
	weights, ok := clf.Coefficients()
	if !ok {
		return []dto.DriverDTO{}
	}

	drivers := make([]dto.DriverDTO, 0, len(weights))
	for i, w := range weights {
		impact := "Negative"
		if w > 0 {
			impact = "Positive"
		}
		drivers = append(drivers, dto.DriverDTO{
			Feature:    analytics.FeatureNames[i],
			Importance: math.Abs(w),
			Impact:     impact,
		})
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Importance > drivers[j].Importance
	})
	return drivers
}

func findVector(features []analytics.FeatureVector, customerID string) (analytics.FeatureVector, bool) {
	for _, v := range features {
		if v.CustomerID == customerID {
			return v, true
		}
	}
	return analytics.FeatureVector{}, false
}

func riskLevel(proba float64) string {
	switch {
	case proba > highRiskThreshold:
		return "High"
	case proba > mediumRiskThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

func recommendationFor(level string) string {
	switch level {
	case "High":
		return recoHigh
	case "Medium":
		return recoMedium
	default:
		return recoLow
	}
}
