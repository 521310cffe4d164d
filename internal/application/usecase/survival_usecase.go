package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
)

const (
	survivalStepDays = 30
	retentionWindow  = 180
)

// SurvivalUseCase curva de supervivencia empírica sobre la vida de los
// clientes (días desde su primera compra). Población vacía produce series
// vacías, nunca NaN ni división por cero.
type SurvivalUseCase struct {
	store *dataset.Store
	cfg   config.AnalyticsConfig
}

// NewSurvivalUseCase construye el caso de uso.
func NewSurvivalUseCase(store *dataset.Store, cfg config.AnalyticsConfig) *SurvivalUseCase {
	return &SurvivalUseCase{store: store, cfg: cfg}
}

// Analyze calcula la curva en pasos de 30 días junto con vida promedio,
// mediana, LTV promedio y retención a 6 meses.
func (uc *SurvivalUseCase) Analyze(_ context.Context) (*dto.SurvivalAnalysisDTO, error) {
	snap := uc.store.Current()
	features := analytics.BuildFeatures(snap)

	out := &dto.SurvivalAnalysisDTO{
		TimePeriods:    []int{},
		SurvivalProb:   []float64{},
		HazardRate:     []float64{},
		AvgLTV:         decimal.Zero,
		TotalCustomers: len(features),
	}
	if len(features) == 0 {
		return out, nil
	}

	lifetimes := make([]float64, len(features))
	churned := make([]bool, len(features))
	maxLifetime := 0.0
	totalLTV := decimal.Zero
	retained := 0

	for i, v := range features {
		lifetimes[i] = v.DaysSinceFirstPurchase
		churned[i] = v.Churned(uc.cfg.ChurnThresholdDays)
		if churned[i] {
			out.ChurnedCount++
		}
		if lifetimes[i] > maxLifetime {
			maxLifetime = lifetimes[i]
		}
		if lifetimes[i] >= retentionWindow {
			retained++
		}
		totalLTV = totalLTV.Add(v.TotalContractValue)
	}

	// Curva en puntos de control cada 30 días, incluyendo t=0. El evento de
	// muerte es el churn al final de la vida observada; los clientes activos
	// están censurados y sobreviven todos los puntos de control, lo que
	// garantiza una curva no creciente sobre la cohorte fija.
	total := len(features)
	for t := 0; float64(t) <= maxLifetime; t += survivalStepDays {
		dead := 0
		churnedInWindow := 0
		atRiskBefore := 0
		windowStart := float64(t - survivalStepDays)
		for i := range lifetimes {
			if churned[i] && lifetimes[i] < float64(t) {
				dead++
			}
			if lifetimes[i] >= windowStart {
				atRiskBefore++
				if churned[i] && lifetimes[i] < float64(t) {
					churnedInWindow++
				}
			}
		}

		prob := float64(total-dead) / float64(total)

		// Tasa de riesgo del intervalo [t-30, t): churns consumados en la
		// ventana sobre la población en riesgo al inicio de la ventana.
		hazard := 0.0
		if t > 0 && atRiskBefore > 0 {
			hazard = float64(churnedInWindow) / float64(atRiskBefore)
		}

		out.TimePeriods = append(out.TimePeriods, t)
		out.SurvivalProb = append(out.SurvivalProb, prob)
		out.HazardRate = append(out.HazardRate, hazard)
	}

	out.AvgLifetimeDays = mean(lifetimes)
	out.MedianLifetime = median(lifetimes)
	out.AvgLTV = totalLTV.Div(decimal.NewFromInt(int64(len(features)))).Round(2)
	out.Retention6Mo = float64(retained) / float64(len(features))
	return out, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
